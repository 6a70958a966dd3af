package game

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"upanddown-server/pkg/deck"
	"upanddown-server/pkg/docstore"
)

// repository provides typed access to a single game's documents inside a transaction
type repository struct {
	tx     docstore.Tx
	gameID string
}

func newRepository(tx docstore.Tx, gameID string) *repository {
	return &repository{
		tx:     tx,
		gameID: gameID,
	}
}

func (r *repository) state(ctx context.Context) (*State, error) {
	var state State
	if err := r.tx.Get(ctx, statePath(r.gameID), &state); err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return nil, ErrGameNotFound
		}

		return nil, fmt.Errorf("could not read state: %w", err)
	}

	return &state, nil
}

func (r *repository) settings(ctx context.Context) (Settings, error) {
	var settings Settings
	if err := r.tx.Get(ctx, settingsPath(r.gameID), &settings); err != nil {
		return Settings{}, fmt.Errorf("could not read settings: %w", err)
	}

	return settings, nil
}

// players returns every player, including their current score
func (r *repository) players(ctx context.Context) (map[string]*Player, error) {
	prefix := playersPrefix(r.gameID)
	docs, err := r.tx.List(ctx, prefix)
	if err != nil {
		return nil, fmt.Errorf("could not read players: %w", err)
	}

	players := make(map[string]*Player)
	scores := make(map[string]int)
	for path, raw := range docs {
		segments := strings.Split(strings.TrimPrefix(path, prefix), "/")
		switch {
		case len(segments) == 1:
			var player Player
			if err := json.Unmarshal(raw, &player); err != nil {
				return nil, err
			}

			players[player.ID] = &player
		case len(segments) == 2 && segments[1] == "score":
			var score int
			if err := json.Unmarshal(raw, &score); err != nil {
				return nil, err
			}

			scores[segments[0]] = score
		}
	}

	for id, score := range scores {
		if player, ok := players[id]; ok {
			player.Score = score
		}
	}

	return players, nil
}

// round returns the round along with its bids and tricks
func (r *repository) round(ctx context.Context, roundID string) (*Round, error) {
	var round Round
	if err := r.tx.Get(ctx, roundPath(r.gameID, roundID), &round); err != nil {
		return nil, fmt.Errorf("could not read round: %w", err)
	}

	bidDocs, err := r.tx.List(ctx, bidsPrefix(r.gameID, roundID))
	if err != nil {
		return nil, fmt.Errorf("could not read bids: %w", err)
	}

	round.Bids = make(map[string]int)
	for path, raw := range bidDocs {
		var bid int
		if err := json.Unmarshal(raw, &bid); err != nil {
			return nil, err
		}

		round.Bids[strings.TrimPrefix(path, bidsPrefix(r.gameID, roundID))] = bid
	}

	trickDocs, err := r.tx.List(ctx, tricksPrefix(r.gameID, roundID))
	if err != nil {
		return nil, fmt.Errorf("could not read tricks: %w", err)
	}

	round.Tricks = make([]*Trick, 0, len(trickDocs))
	for _, raw := range trickDocs {
		var trick Trick
		if err := json.Unmarshal(raw, &trick); err != nil {
			return nil, err
		}

		round.Tricks = append(round.Tricks, &trick)
	}

	sort.Slice(round.Tricks, func(i, j int) bool {
		return round.Tricks[i].Num < round.Tricks[j].Num
	})

	return &round, nil
}

// hand returns the player's sorted hand for the round
func (r *repository) hand(ctx context.Context, playerID, roundID string) (deck.Hand, error) {
	docs, err := r.tx.List(ctx, handPrefix(r.gameID, playerID, roundID))
	if err != nil {
		return nil, fmt.Errorf("could not read hand: %w", err)
	}

	hand := make(deck.Hand, 0, len(docs))
	for _, raw := range docs {
		var card deck.Card
		if err := json.Unmarshal(raw, &card); err != nil {
			return nil, err
		}

		hand = append(hand, &card)
	}

	// sort by ID first so the result doesn't depend on map iteration
	sort.Slice(hand, func(i, j int) bool {
		return hand[i].ID < hand[j].ID
	})
	deck.SortHand(hand)

	return hand, nil
}

func (r *repository) roundScores(ctx context.Context, roundID string) (map[string]RoundScore, error) {
	prefix := roundScoresPrefix(r.gameID, roundID)
	docs, err := r.tx.List(ctx, prefix)
	if err != nil {
		return nil, fmt.Errorf("could not read round scores: %w", err)
	}

	scores := make(map[string]RoundScore)
	for path, raw := range docs {
		var score RoundScore
		if err := json.Unmarshal(raw, &score); err != nil {
			return nil, err
		}

		scores[strings.TrimPrefix(path, prefix)] = score
	}

	return scores, nil
}

func (r *repository) putState(state *State) {
	r.tx.Set(statePath(r.gameID), state)
}

func (r *repository) putSettings(settings Settings) {
	r.tx.Set(settingsPath(r.gameID), settings)
}

func (r *repository) putPlayer(player *Player) {
	r.tx.Set(playerPath(r.gameID, player.ID), player)
}

func (r *repository) incrementScore(playerID string, delta int) {
	r.tx.Increment(scorePath(r.gameID, playerID), delta)
}

func (r *repository) resetScore(playerID string) {
	r.tx.Set(scorePath(r.gameID, playerID), 0)
}

func (r *repository) putHand(playerID, roundID string, hand deck.Hand) {
	for _, card := range hand {
		r.tx.Set(handCardPath(r.gameID, playerID, roundID, card.ID), card)
	}
}

func (r *repository) removeHandCard(playerID, roundID, cardID string) {
	r.tx.Delete(handCardPath(r.gameID, playerID, roundID, cardID))
}

func (r *repository) putRound(round *Round) {
	r.tx.Set(roundPath(r.gameID, round.ID), round)
}

func (r *repository) putBid(roundID, playerID string, bid int) {
	r.tx.Set(bidPath(r.gameID, roundID, playerID), bid)
}

func (r *repository) putTrick(roundID string, trick *Trick) {
	r.tx.Set(trickPath(r.gameID, roundID, trick.ID), trick)
}

func (r *repository) putRoundScore(roundID, playerID string, score RoundScore) {
	r.tx.Set(roundScorePath(r.gameID, roundID, playerID), score)
}
