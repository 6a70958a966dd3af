package game

import "upanddown-server/pkg/docstore"

// every document path used by the game is built here

func gameRoot(gameID string) string {
	return docstore.Join("game", gameID)
}

func statePath(gameID string) string {
	return docstore.Join(gameRoot(gameID), "state")
}

func settingsPath(gameID string) string {
	return docstore.Join(gameRoot(gameID), "settings")
}

func playersPrefix(gameID string) string {
	return docstore.Join(gameRoot(gameID), "players") + "/"
}

func playerPath(gameID, playerID string) string {
	return docstore.Join(gameRoot(gameID), "players", playerID)
}

func scorePath(gameID, playerID string) string {
	return docstore.Join(playerPath(gameID, playerID), "score")
}

func handPrefix(gameID, playerID, roundID string) string {
	return docstore.Join(playerPath(gameID, playerID), "hands", roundID, "cards") + "/"
}

func handCardPath(gameID, playerID, roundID, cardID string) string {
	return docstore.Join(playerPath(gameID, playerID), "hands", roundID, "cards", cardID)
}

func roundPath(gameID, roundID string) string {
	return docstore.Join(gameRoot(gameID), "rounds", roundID)
}

func bidsPrefix(gameID, roundID string) string {
	return docstore.Join(roundPath(gameID, roundID), "bids") + "/"
}

func bidPath(gameID, roundID, playerID string) string {
	return docstore.Join(roundPath(gameID, roundID), "bids", playerID)
}

func tricksPrefix(gameID, roundID string) string {
	return docstore.Join(roundPath(gameID, roundID), "tricks") + "/"
}

func trickPath(gameID, roundID, trickID string) string {
	return docstore.Join(roundPath(gameID, roundID), "tricks", trickID)
}

func roundScoresPrefix(gameID, roundID string) string {
	return docstore.Join(roundPath(gameID, roundID), "scores") + "/"
}

func roundScorePath(gameID, roundID, playerID string) string {
	return docstore.Join(roundPath(gameID, roundID), "scores", playerID)
}
