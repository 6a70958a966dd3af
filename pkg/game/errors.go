package game

import (
	"errors"
	"fmt"
)

// RejectionKind classifies why an action was rejected
type RejectionKind int

// RejectionKind constants
const (
	// TurnViolation means the player acted out of turn
	TurnViolation RejectionKind = iota
	// IllegalMove means the move breaks the rules or uses a card the player does not have
	IllegalMove
	// DuplicateSubmission means the player already acted
	DuplicateSubmission
	// InvalidAction means the action does not apply to the game in its current state
	InvalidAction
)

func (k RejectionKind) String() string {
	switch k {
	case TurnViolation:
		return "turnViolation"
	case IllegalMove:
		return "illegalMove"
	case DuplicateSubmission:
		return "duplicateSubmission"
	case InvalidAction:
		return "invalidAction"
	default:
		return fmt.Sprintf("RejectionKind(%d)", int(k))
	}
}

// RejectionError is returned when an action is rejected before anything is written
// The client should re-fetch the game state rather than retry.
type RejectionError struct {
	Kind    RejectionKind
	message string
}

func (r *RejectionError) Error() string {
	return r.message
}

func rejection(kind RejectionKind, message string) *RejectionError {
	return &RejectionError{
		Kind:    kind,
		message: message,
	}
}

// IsRejection returns true if err is a RejectionError
func IsRejection(err error) bool {
	var r *RejectionError
	return errors.As(err, &r)
}

// ErrNotPlayersTurn is returned when it's not the player's turn
var ErrNotPlayersTurn = rejection(TurnViolation, "not player's turn")

// ErrCardNotInPlayersHand happens when the player tries to play a card they don't have
var ErrCardNotInPlayersHand = rejection(IllegalMove, "card is not in player's hand")

// ErrPlayOnSuit happens when a player has a card of the lead suit and plays an off-suit card
var ErrPlayOnSuit = rejection(IllegalMove, "player has an on-suit card")

// ErrBidOutOfRange happens when the bid is negative or larger than the hand
var ErrBidOutOfRange = rejection(IllegalMove, "bid must be between zero and the number of cards")

// ErrDirtyBid happens when the last bidder tries to make the bids add up to the number of cards
var ErrDirtyBid = rejection(IllegalMove, "total bids cannot equal the number of cards")

// ErrBidAlreadySubmitted happens when a player bids twice in a round
var ErrBidAlreadySubmitted = rejection(DuplicateSubmission, "bid already submitted")

// ErrNotHost is returned when a host-only action is attempted by another player
var ErrNotHost = rejection(InvalidAction, "only the host can do that")

// ErrGameAlreadyStarted is returned when the game is started twice
var ErrGameAlreadyStarted = rejection(InvalidAction, "game has already started")

// ErrBiddingIsOver is returned when a bid is attempted outside of the bidding phase
var ErrBiddingIsOver = rejection(InvalidAction, "not accepting bids")

// ErrNotPlaying is returned when a card is played outside of the playing phase
var ErrNotPlaying = rejection(InvalidAction, "not accepting cards")

// ErrGameIsOver is an error when an action is attempted on an ended game
var ErrGameIsOver = rejection(InvalidAction, "game is over")

// ErrGameNotOver is an error when a game is replayed before it ends
var ErrGameNotOver = rejection(InvalidAction, "game is not over")

// ErrNeedMorePlayers is returned when a game is started without two present players
var ErrNeedMorePlayers = rejection(InvalidAction, "need at least two present players to start")

// ErrPlayerNotFound is returned when the player is not part of the game
var ErrPlayerNotFound = rejection(InvalidAction, "player not found")

// ErrGameNotFound is returned when the game does not exist
var ErrGameNotFound = errors.New("game not found")

// ErrNotEnoughActivePlayers is an error when there are not at least two present players to continue
var ErrNotEnoughActivePlayers = errors.New("need at least two players to continue")

// PlayerCountError is an error on the number of players in the game
type PlayerCountError int

func (p PlayerCountError) Error() string {
	return fmt.Sprintf("expected %d to %d players, got %d", MinPlayers, MaxPlayers, p)
}

// FatalError is a structural failure the game cannot recover from on its own
// e.g., too few players to deal the next round, or a dealing configuration bug
type FatalError struct {
	Err error
}

func (f *FatalError) Error() string {
	return "fatal: " + f.Err.Error()
}

func (f *FatalError) Unwrap() error {
	return f.Err
}

// IsFatal returns true if err is a FatalError
func IsFatal(err error) bool {
	var f *FatalError
	return errors.As(err, &f)
}
