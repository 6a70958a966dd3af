package deck

import (
	"sort"
)

// suitOrder is the display order clients expect when rendering a hand
var suitOrder = map[Suit]int{
	Clubs:    0,
	Hearts:   1,
	Spades:   2,
	Diamonds: 3,
}

// Hand represents a collection of cards
type Hand []*Card

func (h Hand) Len() int {
	return len(h)
}

func (h Hand) Less(i, j int) bool {
	if si, sj := suitOrder[h[i].Suit], suitOrder[h[j].Suit]; si != sj {
		return si < sj
	}

	return h[i].Rank < h[j].Rank
}

func (h Hand) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
}

// SortHand sorts the cards in place: clubs, hearts, spades, diamonds, then ascending rank
func SortHand(cards []*Card) {
	sort.Stable(Hand(cards))
}

// AddCard adds a card to the hand
func (h *Hand) AddCard(card *Card) {
	*h = append(*h, card)
}

// HasSuit returns true if the hand holds at least one card of the suit
func (h Hand) HasSuit(suit Suit) bool {
	for _, c := range h {
		if c.Suit == suit {
			return true
		}
	}

	return false
}

// FindByID returns the card with the ID, or nil
func (h Hand) FindByID(id string) *Card {
	for _, c := range h {
		if c.ID == id {
			return c
		}
	}

	return nil
}

// RemoveByID will remove the card with the ID
// Returns false if the card was not in the hand
func (h *Hand) RemoveByID(id string) bool {
	newHand := make([]*Card, 0, len(*h))
	found := false
	for _, c := range *h {
		if c.ID == id && !found {
			found = true
		} else {
			newHand = append(newHand, c)
		}
	}

	*h = newHand
	return found
}

func (h Hand) String() string {
	return CardsToString(h)
}

// Clone returns a clone of the hand
func (h Hand) Clone() Hand {
	h2 := make(Hand, len(h))
	copy(h2, h)

	return h2
}
