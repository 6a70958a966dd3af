package game

import (
	"fmt"
	"time"

	"upanddown-server/pkg/deck"
	"upanddown-server/pkg/rules"
)

// Status is the status of the game
type Status string

// Status constants
const (
	StatusPending Status = "pending"
	StatusBid     Status = "bid"
	StatusPlay    Status = "play"
	StatusOver    Status = "over"
)

// player limits
const (
	MinPlayers = 2
	MaxPlayers = 10
)

// Settings are chosen when the game is created and never change
type Settings struct {
	// NumCards is the opening hand size
	NumCards int `json:"numCards"`
	// Dirty forbids the last bidder from making the bids add up to the number of cards
	Dirty bool `json:"dirty"`
	// TimeLimit is the number of seconds a player has to act. Zero means no limit.
	TimeLimit int `json:"timeLimit"`
	// NoBidPoints awards nothing for a missed bid
	NoBidPoints bool `json:"noBidPoints"`
}

// Validate returns an error if the settings cannot be played
func (s Settings) Validate() error {
	if max := rules.MaxNumCards(MinPlayers); s.NumCards < rules.MinNumCards || s.NumCards > max {
		return rejection(InvalidAction, fmt.Sprintf("numCards must be between %d and %d", rules.MinNumCards, max))
	}

	if s.TimeLimit < 0 {
		return rejection(InvalidAction, "timeLimit cannot be negative")
	}

	return nil
}

// State is the overall game state
type State struct {
	Status             Status   `json:"status"`
	CurrentPlayerIndex int      `json:"currentPlayerIndex"`
	PlayerOrder        []string `json:"playerOrder"`
	DealerIndex        int      `json:"dealerIndex"`
	RoundID            string   `json:"roundId"`
	RoundNum           int      `json:"roundNum"`
	NumRounds          int      `json:"numRounds"`
	// NumCards is the scheduled hand size for the current round
	NumCards   int  `json:"numCards"`
	Descending bool `json:"descending"`
	// Version is incremented on every committed change
	Version int64 `json:"version"`
}

// CurrentPlayerID returns the ID of the player who must act, or an empty string
func (s *State) CurrentPlayerID() string {
	if s.Status != StatusBid && s.Status != StatusPlay {
		return ""
	}

	if s.CurrentPlayerIndex < 0 || s.CurrentPlayerIndex >= len(s.PlayerOrder) {
		return ""
	}

	return s.PlayerOrder[s.CurrentPlayerIndex]
}

func (s *State) indexOf(playerID string) int {
	for i, id := range s.PlayerOrder {
		if id == playerID {
			return i
		}
	}

	return -1
}

// Player is an individual in the game
// Absent players keep their score, but are left out of the order when the next round starts
type Player struct {
	ID      string    `json:"playerId"`
	Name    string    `json:"name"`
	Host    bool      `json:"host"`
	Present bool      `json:"present"`
	Joined  time.Time `json:"joined"`

	// Score is stored in its own document so it can be incremented atomically
	Score int `json:"-"`
}

// Round is a single deal
type Round struct {
	ID        string     `json:"roundId"`
	RoundNum  int        `json:"roundNum"`
	NumCards  int        `json:"numCards"`
	Trump     deck.Suit  `json:"trump"`
	TrumpCard *deck.Card `json:"trumpCard"`
	DealerID  string     `json:"dealerId"`

	Bids   map[string]int `json:"-"`
	Tricks []*Trick       `json:"-"`
}

// CurrentTrick returns the trick being played, or nil before the first trick is opened
func (r *Round) CurrentTrick() *Trick {
	if len(r.Tricks) == 0 {
		return nil
	}

	return r.Tricks[len(r.Tricks)-1]
}

// TricksWon returns the number of tricks each player has won so far
func (r *Round) TricksWon() map[string]int {
	winners := make([]string, len(r.Tricks))
	for i, trick := range r.Tricks {
		winners[i] = trick.Winner
	}

	return rules.TricksWon(winners)
}

// Trick is one card from every player
type Trick struct {
	ID  string `json:"trickId"`
	Num int    `json:"num"`
	// LeadSuit is empty until the first card is played
	LeadSuit deck.Suit `json:"leadSuit"`
	// Cards are in play order, each tagged with the player who played it
	Cards []*deck.Card `json:"cards"`
	// Leader is the player currently winning the trick
	Leader string `json:"leader"`
	// Winner is set once every player has played
	Winner string `json:"winner"`
}

// CardFor returns the card played by the player, or nil
func (t *Trick) CardFor(playerID string) *deck.Card {
	for _, card := range t.Cards {
		if card.PlayerID == playerID {
			return card
		}
	}

	return nil
}

// IsComplete returns true if every player has played
func (t *Trick) IsComplete(numPlayers int) bool {
	return len(t.Cards) >= numPlayers
}

// RoundScore is the outcome of a round for a single player
type RoundScore struct {
	Bid    int `json:"bid"`
	Won    int `json:"won"`
	Points int `json:"points"`
}
