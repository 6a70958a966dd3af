package game

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"upanddown-server/internal/rng"
	"upanddown-server/pkg/deck"
	"upanddown-server/pkg/rules"
)

// game is a single game loaded inside of a transaction
// All changes are made to the in-memory copy and staged on the repository at the same time.
type game struct {
	id       string
	repo     *repository
	rng      rng.Generator
	logger   logrus.FieldLogger
	settings Settings
	state    *State
	players  map[string]*Player

	// round is nil until the game starts
	round *Round
}

func loadGame(ctx context.Context, repo *repository, gen rng.Generator, logger logrus.FieldLogger) (*game, error) {
	state, err := repo.state(ctx)
	if err != nil {
		return nil, err
	}

	settings, err := repo.settings(ctx)
	if err != nil {
		return nil, err
	}

	players, err := repo.players(ctx)
	if err != nil {
		return nil, err
	}

	g := &game{
		id:       repo.gameID,
		repo:     repo,
		rng:      gen,
		logger:   logger.WithField("gameID", repo.gameID),
		settings: settings,
		state:    state,
		players:  players,
	}

	if state.RoundID != "" {
		if g.round, err = repo.round(ctx, state.RoundID); err != nil {
			return nil, err
		}
	}

	return g, nil
}

func (g *game) numPlayers() int {
	return len(g.state.PlayerOrder)
}

// isPlayersTurn returns true if the player is the one who must act
func (g *game) isPlayersTurn(playerID string) bool {
	return g.state.CurrentPlayerID() == playerID
}

func (g *game) hand(ctx context.Context, playerID string) (deck.Hand, error) {
	if g.round == nil {
		return deck.Hand{}, nil
	}

	return g.repo.hand(ctx, playerID, g.round.ID)
}

// start builds the first player order and deals the first round
func (g *game) start() error {
	order := RebuildPlayerOrder(nil, g.players)
	if len(order) < MinPlayers {
		return ErrNeedMorePlayers
	}

	g.state.PlayerOrder = order
	g.state.DealerIndex = 0
	g.state.RoundNum = 1
	g.state.NumRounds = rules.NumRounds(g.settings.NumCards)
	g.state.NumCards = g.settings.NumCards
	g.state.Descending = true

	g.logger.WithField("players", order).Info("game started")
	return g.dealRound()
}

// dealRound deals a new round to the current player order and opens bidding
func (g *game) dealRound() error {
	n := g.numPlayers()
	if n < MinPlayers {
		return &FatalError{Err: ErrNotEnoughActivePlayers}
	}

	numCards := g.state.NumCards
	if max := rules.MaxNumCards(n); numCards > max {
		g.logger.WithFields(logrus.Fields{
			"scheduled": numCards,
			"dealt":     max,
		}).Warn("too many players for the scheduled hand size")
		numCards = max
	}

	hands, trumpCard, err := DealHandsToPlayers(deck.New(g.rng), g.state.PlayerOrder, numCards)
	if err != nil {
		return &FatalError{Err: err}
	}

	round := &Round{
		ID:        uuid.New().String(),
		RoundNum:  g.state.RoundNum,
		NumCards:  numCards,
		Trump:     trumpCard.Suit,
		TrumpCard: trumpCard,
		DealerID:  g.state.PlayerOrder[g.state.DealerIndex],
		Bids:      make(map[string]int),
		Tricks:    make([]*Trick, 0, numCards),
	}

	g.repo.putRound(round)
	for playerID, hand := range hands {
		g.repo.putHand(playerID, round.ID, hand)
	}

	g.round = round
	g.state.RoundID = round.ID
	g.state.Status = StatusBid
	g.state.CurrentPlayerIndex = rules.NextPlayerIndex(g.state.DealerIndex, n)

	g.logger.WithFields(logrus.Fields{
		"roundNum":  round.RoundNum,
		"numCards":  round.NumCards,
		"trumpCard": trumpCard,
	}).Debug("dealt round")

	return nil
}

// playerDidBid records the player's bid
func (g *game) playerDidBid(playerID string, bid int) error {
	switch g.state.Status {
	case StatusBid:
	case StatusOver:
		return ErrGameIsOver
	default:
		return ErrBiddingIsOver
	}

	if _, found := g.round.Bids[playerID]; found {
		return ErrBidAlreadySubmitted
	}

	if !g.isPlayersTurn(playerID) {
		return ErrNotPlayersTurn
	}

	if bid < 0 || bid > g.round.NumCards {
		return ErrBidOutOfRange
	}

	if g.settings.Dirty && !rules.IsBidAllowed(bid, g.round.NumCards, g.round.Bids, g.numPlayers()) {
		return ErrDirtyBid
	}

	g.round.Bids[playerID] = bid
	g.repo.putBid(g.round.ID, playerID, bid)
	g.state.CurrentPlayerIndex = rules.NextPlayerIndex(g.state.CurrentPlayerIndex, g.numPlayers())

	if len(g.round.Bids) == g.numPlayers() {
		g.state.Status = StatusPlay
		g.state.CurrentPlayerIndex = rules.NextPlayerIndex(g.state.DealerIndex, g.numPlayers())
		g.openTrick()
	}

	return nil
}

func (g *game) openTrick() {
	trick := &Trick{
		ID:    uuid.New().String(),
		Num:   len(g.round.Tricks) + 1,
		Cards: make([]*deck.Card, 0, g.numPlayers()),
	}

	g.round.Tricks = append(g.round.Tricks, trick)
	g.repo.putTrick(g.round.ID, trick)
}

// playerDidPlayCard plays the card for the player
func (g *game) playerDidPlayCard(ctx context.Context, playerID, cardID string) error {
	switch g.state.Status {
	case StatusPlay:
	case StatusOver:
		return ErrGameIsOver
	default:
		return ErrNotPlaying
	}

	if !g.isPlayersTurn(playerID) {
		return ErrNotPlayersTurn
	}

	hand, err := g.hand(ctx, playerID)
	if err != nil {
		return err
	}

	card := hand.FindByID(cardID)
	if card == nil {
		return ErrCardNotInPlayersHand
	}

	trick := g.round.CurrentTrick()
	if !rules.IsLegal(hand, card, trick.LeadSuit) {
		return ErrPlayOnSuit
	}

	hand.RemoveByID(cardID)
	g.repo.removeHandCard(playerID, g.round.ID, cardID)

	card.PlayerID = playerID
	trick.Cards = append(trick.Cards, card)
	if trick.LeadSuit == "" {
		trick.LeadSuit = card.Suit
	}

	trick.Leader = rules.CalculateLeader(trick.Cards, g.round.Trump, trick.LeadSuit).PlayerID
	g.state.CurrentPlayerIndex = rules.NextPlayerIndex(g.state.CurrentPlayerIndex, g.numPlayers())

	if !trick.IsComplete(g.numPlayers()) {
		g.repo.putTrick(g.round.ID, trick)
		return nil
	}

	trick.Winner = trick.Leader
	g.repo.putTrick(g.round.ID, trick)
	g.state.CurrentPlayerIndex = g.state.indexOf(trick.Winner)

	g.logger.WithFields(logrus.Fields{
		"trick":  trick.Num,
		"winner": trick.Winner,
	}).Debug("trick complete")

	if len(hand) == 0 {
		return g.advanceRound()
	}

	g.openTrick()
	return nil
}

// advanceRound scores the round that just ended and deals the next one, or ends the game
func (g *game) advanceRound() error {
	won := g.round.TricksWon()
	for _, playerID := range g.state.PlayerOrder {
		bid := g.round.Bids[playerID]
		points := rules.CalculateScore(bid, won[playerID], g.settings.NoBidPoints)

		g.repo.incrementScore(playerID, points)
		g.repo.putRoundScore(g.round.ID, playerID, RoundScore{
			Bid:    bid,
			Won:    won[playerID],
			Points: points,
		})

		if player, ok := g.players[playerID]; ok {
			player.Score += points
		}
	}

	g.state.RoundNum++
	g.state.NumCards, g.state.Descending = rules.NextNumCards(g.state.NumCards, g.state.Descending)

	if g.state.RoundNum > g.state.NumRounds {
		g.state.Status = StatusOver
		g.state.CurrentPlayerIndex = 0
		g.logger.Info("game over")
		return nil
	}

	order := RebuildPlayerOrder(g.state.PlayerOrder, g.players)
	if len(order) < MinPlayers {
		return &FatalError{Err: ErrNotEnoughActivePlayers}
	}

	g.state.DealerIndex = NextDealerIndex(g.state.PlayerOrder, g.state.DealerIndex, order)
	g.state.PlayerOrder = order

	return g.dealRound()
}

// reset returns a finished game to its starting point with the same players
func (g *game) reset() {
	for _, player := range g.players {
		player.Score = 0
		g.repo.resetScore(player.ID)
	}

	*g.state = State{
		Status:  StatusPending,
		Version: g.state.Version,
	}
	g.round = nil
}
