package game

import (
	"context"
	"sort"

	"upanddown-server/pkg/deck"
	"upanddown-server/pkg/docstore"
	"upanddown-server/pkg/rules"
)

// GameState is the overall game state
// This is safe for all players to see
type GameState struct {
	GameID          string             `json:"gameId"`
	Version         int64              `json:"version"`
	Settings        Settings           `json:"settings"`
	Status          Status             `json:"status"`
	Players         []*GameStatePlayer `json:"players"`
	CurrentPlayerID string             `json:"currentPlayerId"`
	DealerID        string             `json:"dealerId"`
	RoundNum        int                `json:"roundNum"`
	NumRounds       int                `json:"numRounds"`
	NumCards        int                `json:"numCards"`
	TrumpCard       *deck.Card         `json:"trumpCard"`
	Tricks          []*Trick           `json:"tricks"`
	// RoundScores is only populated once the round has been scored
	RoundScores map[string]RoundScore `json:"roundScores,omitempty"`
}

// GameStatePlayer is the state of an individual player
// This is safe for all players to see
type GameStatePlayer struct {
	PlayerID string `json:"playerId"`
	Name     string `json:"name"`
	Host     bool   `json:"host"`
	Present  bool   `json:"present"`
	Score    int    `json:"score"`
	// InRound is false for players who joined mid-game or left before the round was dealt
	InRound     bool `json:"inRound"`
	Bid         *int `json:"bid"`
	TricksWon   int  `json:"tricksWon"`
	CardsInHand int  `json:"cardsInHand"`
}

// Response is the view of the game for a single player
type Response struct {
	GameState *GameState `json:"gameState"`
	// Data below is player specific, and must only be shown to the intended player
	PlayerID   string    `json:"playerId"`
	Hand       deck.Hand `json:"hand"`
	IsTurn     bool      `json:"isTurn"`
	LegalBids  []int     `json:"legalBids,omitempty"`
	LegalCards []string  `json:"legalCards,omitempty"`
}

// PlayerView returns the game as seen by the player
// Nothing is written.
func (e *Engine) PlayerView(ctx context.Context, gameID, playerID string) (*Response, error) {
	var res *Response
	err := e.store.RunTransaction(ctx, gameRoot(gameID), func(ctx context.Context, tx docstore.Tx) error {
		g, err := loadGame(ctx, newRepository(tx, gameID), e.rng, e.logger)
		if err != nil {
			return err
		}

		if _, ok := g.players[playerID]; !ok {
			return ErrPlayerNotFound
		}

		res, err = g.playerView(ctx, playerID)
		return err
	})

	if err != nil {
		return nil, err
	}

	return res, nil
}

func (g *game) gameState(ctx context.Context) (*GameState, error) {
	inRound := make(map[string]bool, len(g.state.PlayerOrder))
	for _, id := range g.state.PlayerOrder {
		inRound[id] = true
	}

	var won map[string]int
	if g.round != nil {
		won = g.round.TricksWon()
	}

	players := make([]*GameStatePlayer, 0, len(g.players))
	for _, player := range g.players {
		gsp := &GameStatePlayer{
			PlayerID:  player.ID,
			Name:      player.Name,
			Host:      player.Host,
			Present:   player.Present,
			Score:     player.Score,
			InRound:   inRound[player.ID],
			TricksWon: won[player.ID],
		}

		if g.round != nil && gsp.InRound {
			if bid, ok := g.round.Bids[player.ID]; ok {
				bid := bid
				gsp.Bid = &bid
			}

			hand, err := g.hand(ctx, player.ID)
			if err != nil {
				return nil, err
			}

			gsp.CardsInHand = len(hand)
		}

		players = append(players, gsp)
	}

	// players in the round come first in turn order, everybody else by join time
	order := make(map[string]int, len(g.state.PlayerOrder))
	for i, id := range g.state.PlayerOrder {
		order[id] = i
	}

	sort.Slice(players, func(i, j int) bool {
		a, b := players[i], players[j]
		if a.InRound != b.InRound {
			return a.InRound
		}

		if a.InRound {
			return order[a.PlayerID] < order[b.PlayerID]
		}

		ja, jb := g.players[a.PlayerID].Joined, g.players[b.PlayerID].Joined
		if !ja.Equal(jb) {
			return ja.Before(jb)
		}

		return a.PlayerID < b.PlayerID
	})

	gs := &GameState{
		GameID:          g.id,
		Version:         g.state.Version,
		Settings:        g.settings,
		Status:          g.state.Status,
		Players:         players,
		CurrentPlayerID: g.state.CurrentPlayerID(),
		RoundNum:        g.state.RoundNum,
		NumRounds:       g.state.NumRounds,
		NumCards:        g.state.NumCards,
		Tricks:          []*Trick{},
	}

	if g.round != nil {
		gs.DealerID = g.round.DealerID
		gs.RoundNum = g.round.RoundNum
		gs.NumCards = g.round.NumCards
		gs.TrumpCard = g.round.TrumpCard
		gs.Tricks = g.round.Tricks

		scores, err := g.repo.roundScores(ctx, g.round.ID)
		if err != nil {
			return nil, err
		}

		if len(scores) > 0 {
			gs.RoundScores = scores
		}
	}

	return gs, nil
}

func (g *game) playerView(ctx context.Context, playerID string) (*Response, error) {
	gameState, err := g.gameState(ctx)
	if err != nil {
		return nil, err
	}

	hand, err := g.hand(ctx, playerID)
	if err != nil {
		return nil, err
	}

	res := &Response{
		GameState: gameState,
		PlayerID:  playerID,
		Hand:      hand,
		IsTurn:    g.isPlayersTurn(playerID),
	}

	if res.IsTurn {
		switch g.state.Status {
		case StatusBid:
			res.LegalBids = g.legalBids()
		case StatusPlay:
			cards := rules.LegalCards(hand, g.round.CurrentTrick().LeadSuit)
			res.LegalCards = make([]string, len(cards))
			for i, card := range cards {
				res.LegalCards[i] = card.ID
			}
		}
	}

	return res, nil
}
