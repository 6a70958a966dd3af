package deck

import (
	"errors"

	"github.com/google/uuid"
	"upanddown-server/internal/rng"
)

// ErrEndOfDeck is an error when Deal() is attempted and there are no more cards
var ErrEndOfDeck = errors.New("end of deck reached")

// Size is the number of cards in a full deck
const Size = 52

// Deck represents a playing deck
// A new deck is created for every round and is never replenished
type Deck struct {
	Cards []*Card `json:"cards"`
}

// New returns a new shuffled deck of cards
// If gen is nil, a crypto-secure generator is used
func New(gen rng.Generator) *Deck {
	d := &Deck{}
	d.buildDeck()

	if gen == nil {
		gen = rng.Crypto{}
	}

	d.shuffle(gen)
	return d
}

func (d *Deck) buildDeck() {
	cards := make([]*Card, 0, Size)
	for _, suit := range Suits {
		for rank := LowRank; rank <= HighRank; rank++ {
			cards = append(cards, NewCard(suit, rank))
		}
	}

	d.Cards = cards
}

// shuffle performs a Fisher-Yates pass
func (d *Deck) shuffle(gen rng.Generator) {
	for j := len(d.Cards) - 1; j > 0; j-- {
		i := gen.Intn(j + 1)

		d.Cards[i], d.Cards[j] = d.Cards[j], d.Cards[i]
	}
}

// Deal will remove and return the front card
// Every dealt card is assigned a unique ID. If there are no more cards, ErrEndOfDeck is returned along with a nil card.
func (d *Deck) Deal() (*Card, error) {
	if len(d.Cards) <= 0 {
		return nil, ErrEndOfDeck
	}

	card := d.Cards[0]
	d.Cards = d.Cards[1:]

	card.ID = uuid.New().String()
	return card, nil
}

// CanDeal returns true if there are {want} cards left in the deck
func (d *Deck) CanDeal(want int) bool {
	return len(d.Cards) >= want
}

// CardsLeft returns the number of cards left in the deck
func (d *Deck) CardsLeft() int {
	return len(d.Cards)
}
