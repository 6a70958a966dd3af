package game

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"
	"upanddown-server/pkg/rules"
)

// ErrNoLegalMove happens when auto-play cannot find a single legal bid or card
var ErrNoLegalMove = errors.New("no legal move available")

// AutoPlay makes a uniformly random legal move for the player
// It is used when a player runs out of time or has left the game. ErrNotPlayersTurn is returned
// if the player no longer needs to act, in which case nothing changes.
func (e *Engine) AutoPlay(ctx context.Context, gameID, playerID string) error {
	return e.update(ctx, gameID, func(ctx context.Context, g *game) error {
		if _, ok := g.players[playerID]; !ok {
			return ErrPlayerNotFound
		}

		if g.state.Status == StatusOver {
			return ErrGameIsOver
		}

		if !g.isPlayersTurn(playerID) {
			return ErrNotPlayersTurn
		}

		logger := g.logger.WithField("playerID", playerID)

		switch g.state.Status {
		case StatusBid:
			bids := g.legalBids()
			if len(bids) == 0 {
				return &FatalError{Err: ErrNoLegalMove}
			}

			bid := bids[g.rng.Intn(len(bids))]
			logger.WithField("bid", bid).Info("auto-bid")
			return g.playerDidBid(playerID, bid)
		case StatusPlay:
			hand, err := g.hand(ctx, playerID)
			if err != nil {
				return err
			}

			cards := rules.LegalCards(hand, g.round.CurrentTrick().LeadSuit)
			if len(cards) == 0 {
				return &FatalError{Err: ErrNoLegalMove}
			}

			card := cards[g.rng.Intn(len(cards))]
			logger.WithFields(logrus.Fields{
				"cardID": card.ID,
				"card":   card.String(),
			}).Info("auto-play")
			return g.playerDidPlayCard(ctx, playerID, card.ID)
		}

		return ErrNotPlayersTurn
	})
}

// legalBids returns every bid the current bidder may make
func (g *game) legalBids() []int {
	bids := make([]int, 0, g.round.NumCards+1)
	for bid := 0; bid <= g.round.NumCards; bid++ {
		if g.settings.Dirty && !rules.IsBidAllowed(bid, g.round.NumCards, g.round.Bids, g.numPlayers()) {
			continue
		}

		bids = append(bids, bid)
	}

	return bids
}
