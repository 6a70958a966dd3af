package rules

import (
	"strings"

	"upanddown-server/pkg/deck"
)

// CalculateLeader returns the card currently winning the trick, or nil if no cards were played
// Trump beats non-trump, the lead suit beats any other suit, and higher rank wins within a suit.
// The result does not depend on the order of cards.
func CalculateLeader(cards []*deck.Card, trump, leadSuit deck.Suit) *deck.Card {
	var leader *deck.Card
	for _, card := range cards {
		if leader == nil || compareCards(card, leader, trump, leadSuit) > 0 {
			leader = card
		}
	}

	return leader
}

// compareCards returns > 0 if a beats b, < 0 if b beats a, 0 if they are indistinguishable
func compareCards(a, b *deck.Card, trump, leadSuit deck.Suit) int {
	if cmp := suitStrength(a.Suit, trump, leadSuit) - suitStrength(b.Suit, trump, leadSuit); cmp != 0 {
		return cmp
	}

	if a.Rank != b.Rank {
		return a.Rank - b.Rank
	}

	// only reachable with duplicate cards; keeps the ordering total
	if cmp := strings.Compare(string(a.Suit), string(b.Suit)); cmp != 0 {
		return cmp
	}

	return strings.Compare(b.PlayerID, a.PlayerID)
}

func suitStrength(suit, trump, leadSuit deck.Suit) int {
	switch {
	case suit == trump:
		return 2
	case suit == leadSuit:
		return 1
	default:
		return 0
	}
}
