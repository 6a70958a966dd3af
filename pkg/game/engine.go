package game

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"upanddown-server/internal/rng"
	"upanddown-server/internal/util"
	"upanddown-server/pkg/docstore"
	"upanddown-server/pkg/token"
)

// gameIDLength is the length of a generated game code
const gameIDLength = 8

// maxCreateAttempts is how many game codes are tried before giving up
const maxCreateAttempts = 5

// Change describes a committed change to a game
type Change struct {
	GameID   string
	State    State
	Settings Settings
	// CurrentPlayerPresent is false if the player who must act has left the game
	CurrentPlayerPresent bool
}

// Observer is notified after a game change has been committed
// Notifications for the same game may arrive out of order. Use State.Version to discard stale changes.
type Observer interface {
	GameChanged(change Change)
}

// ObserverFunc is an adapter to allow ordinary functions to be observers
type ObserverFunc func(change Change)

// GameChanged calls f(change)
func (f ObserverFunc) GameChanged(change Change) {
	f(change)
}

// Option configures an Engine
type Option func(e *Engine)

// WithGenerator sets the random source used for shuffling and auto-play
func WithGenerator(gen rng.Generator) Option {
	return func(e *Engine) {
		e.rng = gen
	}
}

// WithObserver registers an observer
func WithObserver(o Observer) Option {
	return func(e *Engine) {
		e.observers = append(e.observers, o)
	}
}

// Engine runs every game action inside of a store transaction
// The engine holds no game state of its own. Every action loads fresh state, validates, and stages its writes.
type Engine struct {
	store  docstore.Store
	logger logrus.FieldLogger
	rng    rng.Generator

	observersMutex sync.RWMutex
	observers      []Observer
}

// NewEngine returns a new engine backed by store
func NewEngine(store docstore.Store, logger logrus.FieldLogger, opts ...Option) *Engine {
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	e := &Engine{
		store:  store,
		logger: logger,
		rng:    rng.Crypto{},
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// AddObserver registers an observer after the engine has been created
func (e *Engine) AddObserver(o Observer) {
	e.observersMutex.Lock()
	defer e.observersMutex.Unlock()

	e.observers = append(e.observers, o)
}

func (e *Engine) notify(change Change) {
	e.observersMutex.RLock()
	observers := make([]Observer, len(e.observers))
	copy(observers, e.observers)
	e.observersMutex.RUnlock()

	for _, o := range observers {
		o.GameChanged(change)
	}
}

// update loads the game, runs fn, and stages the resulting state
// Nothing is written if fn returns an error. Observers are notified once the transaction commits.
func (e *Engine) update(ctx context.Context, gameID string, fn func(ctx context.Context, g *game) error) error {
	var change Change
	err := e.store.RunTransaction(ctx, gameRoot(gameID), func(ctx context.Context, tx docstore.Tx) error {
		g, err := loadGame(ctx, newRepository(tx, gameID), e.rng, e.logger)
		if err != nil {
			return err
		}

		if err := fn(ctx, g); err != nil {
			return err
		}

		g.state.Version++
		g.repo.putState(g.state)

		change = Change{
			GameID:   gameID,
			State:    *g.state,
			Settings: g.settings,
		}

		if player, ok := g.players[g.state.CurrentPlayerID()]; ok {
			change.CurrentPlayerPresent = player.Present
		}

		return nil
	})

	if err != nil {
		if IsFatal(err) {
			e.logger.WithError(err).WithField("gameID", gameID).Error("game cannot continue")
		}

		return err
	}

	e.notify(change)
	return nil
}

// NewGame creates a new game in the pending state with the host as the only player
func (e *Engine) NewGame(ctx context.Context, settings Settings, hostName string) (string, string, error) {
	if err := settings.Validate(); err != nil {
		return "", "", err
	}

	host := newPlayer(hostName, true)
	for attempt := 0; attempt < maxCreateAttempts; attempt++ {
		gameID, err := token.GameCode(gameIDLength)
		if err != nil {
			return "", "", err
		}

		var exists bool
		err = e.store.RunTransaction(ctx, gameRoot(gameID), func(ctx context.Context, tx docstore.Tx) error {
			repo := newRepository(tx, gameID)
			if _, err := repo.state(ctx); err == nil {
				exists = true
				return nil
			} else if !errors.Is(err, ErrGameNotFound) {
				return err
			}

			repo.putState(&State{Status: StatusPending})
			repo.putSettings(settings)
			repo.putPlayer(host)
			repo.resetScore(host.ID)
			return nil
		})

		if err != nil {
			return "", "", err
		}

		if exists {
			e.logger.WithField("gameID", gameID).Debug("game code collision")
			continue
		}

		e.logger.WithFields(logrus.Fields{
			"gameID":   gameID,
			"playerID": host.ID,
			"settings": settings,
		}).Info("game created")

		return gameID, host.ID, nil
	}

	return "", "", fmt.Errorf("could not generate a unique game code after %d attempts", maxCreateAttempts)
}

func newPlayer(name string, host bool) *Player {
	return &Player{
		ID:      uuid.New().String(),
		Name:    util.CleanName(name),
		Host:    host,
		Present: true,
		Joined:  time.Now(),
	}
}

// AddPlayer adds a player to the game
// Players who join after the game has started are dealt in at the next round.
func (e *Engine) AddPlayer(ctx context.Context, gameID, name string) (string, error) {
	var playerID string
	err := e.update(ctx, gameID, func(ctx context.Context, g *game) error {
		if g.state.Status == StatusOver {
			return ErrGameIsOver
		}

		if len(g.players) >= MaxPlayers {
			return rejection(InvalidAction, PlayerCountError(len(g.players)+1).Error())
		}

		player := newPlayer(name, false)
		g.repo.putPlayer(player)
		g.repo.resetScore(player.ID)
		playerID = player.ID

		g.logger.WithField("playerID", player.ID).Debug("player joined")
		return nil
	})

	if err != nil {
		return "", err
	}

	return playerID, nil
}

// StartGame deals the first round
func (e *Engine) StartGame(ctx context.Context, gameID, playerID string) error {
	return e.update(ctx, gameID, func(ctx context.Context, g *game) error {
		player, ok := g.players[playerID]
		if !ok {
			return ErrPlayerNotFound
		}

		if !player.Host {
			return ErrNotHost
		}

		if g.state.Status != StatusPending {
			return ErrGameAlreadyStarted
		}

		return g.start()
	})
}

// SubmitBid records the player's bid for the current round
func (e *Engine) SubmitBid(ctx context.Context, gameID, playerID string, bid int) error {
	return e.update(ctx, gameID, func(ctx context.Context, g *game) error {
		if _, ok := g.players[playerID]; !ok {
			return ErrPlayerNotFound
		}

		g.logger.WithFields(logrus.Fields{
			"playerID": playerID,
			"bid":      bid,
		}).Debug("bid")

		return g.playerDidBid(playerID, bid)
	})
}

// PlayCard plays the card from the player's hand
func (e *Engine) PlayCard(ctx context.Context, gameID, playerID, cardID string) error {
	return e.update(ctx, gameID, func(ctx context.Context, g *game) error {
		if _, ok := g.players[playerID]; !ok {
			return ErrPlayerNotFound
		}

		g.logger.WithFields(logrus.Fields{
			"playerID": playerID,
			"cardID":   cardID,
		}).Debug("play card")

		return g.playerDidPlayCard(ctx, playerID, cardID)
	})
}

// UpdatePlayer marks the player present or absent
// The player order only changes at the next round boundary.
func (e *Engine) UpdatePlayer(ctx context.Context, gameID, playerID string, present bool) error {
	return e.update(ctx, gameID, func(ctx context.Context, g *game) error {
		player, ok := g.players[playerID]
		if !ok {
			return ErrPlayerNotFound
		}

		if player.Present == present {
			return nil
		}

		player.Present = present
		g.repo.putPlayer(player)

		g.logger.WithFields(logrus.Fields{
			"playerID": playerID,
			"present":  present,
		}).Debug("presence changed")

		return nil
	})
}

// ReplayGame returns a finished game to the pending state with the same players
func (e *Engine) ReplayGame(ctx context.Context, gameID, playerID string) error {
	return e.update(ctx, gameID, func(ctx context.Context, g *game) error {
		player, ok := g.players[playerID]
		if !ok {
			return ErrPlayerNotFound
		}

		if !player.Host {
			return ErrNotHost
		}

		if g.state.Status != StatusOver {
			return ErrGameNotOver
		}

		g.reset()
		g.logger.Info("game reset for replay")
		return nil
	})
}
