package deck

import (
	"fmt"
	"regexp"
	"strings"
)

// Suit represents a card suit
type Suit string

// suit constants
const (
	Clubs    Suit = "C"
	Spades   Suit = "S"
	Hearts   Suit = "H"
	Diamonds Suit = "D"
)

// Suits is every suit in deck build order
var Suits = []Suit{Clubs, Spades, Hearts, Diamonds}

// rank bounds. Rank 1 is displayed as "2", rank 13 is displayed as "A"
const (
	LowRank  = 1
	HighRank = 13
)

var displayValues = [...]string{"", "2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K", "A"}

// Card is an individual playing card
type Card struct {
	// ID is unique for every dealt instance of a card
	ID    string `json:"cardId,omitempty"`
	Suit  Suit   `json:"suit"`
	Rank  int    `json:"rank"`
	Value string `json:"value"`

	// PlayerID is set once the card has been played
	PlayerID string `json:"playerId,omitempty"`
}

// NewCard returns a card with its display value populated
func NewCard(suit Suit, rank int) *Card {
	return &Card{
		Suit:  suit,
		Rank:  rank,
		Value: DisplayValue(rank),
	}
}

// DisplayValue returns the display value for the rank
func DisplayValue(rank int) string {
	if rank < LowRank || rank > HighRank {
		panic(fmt.Sprintf("invalid rank: %d", rank))
	}

	return displayValues[rank]
}

func (c *Card) String() string {
	var suit string
	switch c.Suit {
	case Clubs:
		suit = "♣"
	case Diamonds:
		suit = "♢"
	case Hearts:
		suit = "♡"
	case Spades:
		suit = "♠"
	default:
		panic("unknown suit")
	}

	return fmt.Sprintf("%s%s", c.Value, suit)
}

// Equal returns true if the cards are equal (matches suit and rank)
func (c *Card) Equal(card *Card) bool {
	return c.Suit == card.Suit && c.Rank == card.Rank
}

// Clone returns a copy of the card
func (c *Card) Clone() *Card {
	cp := *c
	return &cp
}

var cardRx = regexp.MustCompile(`(?i)^(10|[2-9jqka])([cdhs])\z`)

// CardFromString returns a Card from the string.
// The string must be in the format of <value><suit> where value is 2-10, J, Q, K or A and suit in [cdhs]
func CardFromString(s string) *Card {
	if s == "" {
		return nil
	}

	match := cardRx.FindStringSubmatch(s)
	if match == nil {
		panic(fmt.Sprintf("could not parse card: %s", s))
	}

	value := strings.ToUpper(match[1])
	rank := 0
	for r := LowRank; r <= HighRank; r++ {
		if displayValues[r] == value {
			rank = r
			break
		}
	}

	return NewCard(Suit(strings.ToUpper(match[2])), rank)
}

// CardsFromString will returns a slice of cards
func CardsFromString(s string) []*Card {
	if s == "" {
		return []*Card{}
	}

	cardStrings := strings.Split(s, ",")
	cards := make([]*Card, len(cardStrings))
	for i, card := range cardStrings {
		cards[i] = CardFromString(card)
	}

	return cards
}

// CardToString converts a card (Ace of Clubs) to a string (Ac)
func CardToString(card *Card) string {
	if card == nil {
		return ""
	}

	return card.Value + strings.ToLower(string(card.Suit))
}

// CardsToString will convert a slice of cards to a string in the format of 2c,3h,4s,...
func CardsToString(cards []*Card) string {
	c := make([]string, len(cards))
	for i, card := range cards {
		c[i] = CardToString(card)
	}

	return strings.Join(c, ",")
}
