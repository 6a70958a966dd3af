// Package rules contains the pure rule helpers for Up-and-Down: legality, trick winners,
// scoring, bid restrictions and turn rotation.
package rules

import (
	"upanddown-server/pkg/deck"
)

// MatchedBidBonus is awarded when a player wins exactly the number of tricks they bid
const MatchedBidBonus = 10

// IsLegal returns true if the card may be played from the hand
// An empty leadSuit means the trick has not been opened and any card is legal.
// A player holding a card of the lead suit must follow suit.
func IsLegal(hand []*deck.Card, card *deck.Card, leadSuit deck.Suit) bool {
	if leadSuit == "" || card.Suit == leadSuit {
		return true
	}

	return !deck.Hand(hand).HasSuit(leadSuit)
}

// LegalCards returns the subset of the hand that may be played
func LegalCards(hand []*deck.Card, leadSuit deck.Suit) []*deck.Card {
	legal := make([]*deck.Card, 0, len(hand))
	for _, card := range hand {
		if IsLegal(hand, card, leadSuit) {
			legal = append(legal, card)
		}
	}

	return legal
}

// CalculateScore returns the points for a round
// A matched bid is worth the bonus plus the tricks won. A missed bid is worth the tricks won,
// unless noBidPoints is set, in which case it is worth nothing.
func CalculateScore(bid, won int, noBidPoints bool) int {
	if bid == won {
		return MatchedBidBonus + won
	}

	if noBidPoints {
		return 0
	}

	return won
}

// NextPlayerIndex returns the index of the player after i
func NextPlayerIndex(i, n int) int {
	return (i + 1) % n
}

// IsBidAllowed enforces the "dirty game" rule
// The last player to bid may not make the total of all bids equal the number of cards in the round.
// If the existing bids already exceed the number of cards, any bid is allowed.
func IsBidAllowed(value, numCards int, bids map[string]int, numPlayers int) bool {
	if len(bids)+1 != numPlayers {
		return true
	}

	available := numCards
	for _, bid := range bids {
		available -= bid
	}

	if available < 0 {
		return true
	}

	return value != available
}
