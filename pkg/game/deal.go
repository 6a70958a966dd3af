package game

import (
	"fmt"

	"upanddown-server/pkg/deck"
	"upanddown-server/pkg/rules"
)

// DealHandsToPlayers deals numCards to every player, one card per player per pass, then draws the trump card
// The caller must make sure len(playerIDs) * numCards leaves one card for the trump card.
func DealHandsToPlayers(d *deck.Deck, playerIDs []string, numCards int) (map[string]deck.Hand, *deck.Card, error) {
	if len(playerIDs) == 0 {
		return nil, nil, ErrNotEnoughActivePlayers
	}

	if numCards < rules.MinNumCards || numCards > rules.MaxNumCards(len(playerIDs)) {
		return nil, nil, fmt.Errorf("cannot deal %d cards to %d players", numCards, len(playerIDs))
	}

	hands := make(map[string]deck.Hand, len(playerIDs))
	for _, id := range playerIDs {
		hands[id] = make(deck.Hand, 0, numCards)
	}

	for i := 0; i < numCards; i++ {
		for _, id := range playerIDs {
			card, err := d.Deal()
			if err != nil {
				return nil, nil, err
			}

			hand := hands[id]
			hand.AddCard(card)
			hands[id] = hand
		}
	}

	trumpCard, err := d.Deal()
	if err != nil {
		return nil, nil, err
	}

	for _, hand := range hands {
		deck.SortHand(hand)
	}

	return hands, trumpCard, nil
}
