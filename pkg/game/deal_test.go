package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"upanddown-server/internal/rng"
	"upanddown-server/pkg/deck"
	"upanddown-server/pkg/rules"
)

func TestDealHandsToPlayers(t *testing.T) {
	for numPlayers := MinPlayers; numPlayers <= MaxPlayers; numPlayers++ {
		playerIDs := make([]string, numPlayers)
		for i := range playerIDs {
			playerIDs[i] = string(rune('a' + i))
		}

		for numCards := rules.MinNumCards; numCards <= rules.MaxNumCards(numPlayers); numCards++ {
			d := deck.New(rng.NewSeeded(int64(numPlayers*100 + numCards)))
			hands, trumpCard, err := DealHandsToPlayers(d, playerIDs, numCards)
			if !assert.NoError(t, err, "%d players, %d cards", numPlayers, numCards) {
				continue
			}

			assert.NotNil(t, trumpCard)
			assert.NotEmpty(t, trumpCard.ID)
			assert.Len(t, hands, numPlayers)
			assert.Equal(t, deck.Size-numPlayers*numCards-1, d.CardsLeft())

			seen := map[string]bool{deck.CardToString(trumpCard): true}
			for _, id := range playerIDs {
				hand := hands[id]
				assert.Len(t, hand, numCards)

				for i, card := range hand {
					key := deck.CardToString(card)
					assert.False(t, seen[key], "%s was dealt twice", key)
					seen[key] = true

					if i > 0 {
						assert.False(t, hand.Less(i, i-1), "hand is sorted")
					}
				}
			}

			assert.Len(t, seen, numPlayers*numCards+1)
		}
	}
}

func TestDealHandsToPlayers_RoundRobin(t *testing.T) {
	d := &deck.Deck{Cards: deck.CardsFromString("2c,3c,4c,5c,6c,7c,8c")}
	hands, trumpCard, err := DealHandsToPlayers(d, []string{"a", "b", "c"}, 2)
	assert.NoError(t, err)
	assert.Equal(t, "2c,5c", hands["a"].String())
	assert.Equal(t, "3c,6c", hands["b"].String())
	assert.Equal(t, "4c,7c", hands["c"].String())
	assert.Equal(t, "8c", deck.CardToString(trumpCard))
	assert.Equal(t, 0, d.CardsLeft())
}

func TestDealHandsToPlayers_Errors(t *testing.T) {
	_, _, err := DealHandsToPlayers(deck.New(nil), []string{}, 1)
	assert.Equal(t, ErrNotEnoughActivePlayers, err)

	_, _, err = DealHandsToPlayers(deck.New(nil), []string{"a", "b"}, 26)
	assert.EqualError(t, err, "cannot deal 26 cards to 2 players")

	_, _, err = DealHandsToPlayers(deck.New(nil), []string{"a", "b"}, 0)
	assert.Error(t, err)

	// no card left for trump
	d := &deck.Deck{Cards: deck.CardsFromString("2c,3c")}
	_, _, err = DealHandsToPlayers(d, []string{"a", "b"}, 1)
	assert.Equal(t, deck.ErrEndOfDeck, err)
}
