// Package idle auto-plays for players who take too long to act or have left the game
package idle

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"upanddown-server/pkg/game"
)

// defaultActionTimeout bounds how long a single auto-play may take
const defaultActionTimeout = time.Second * 10

// minRetryDelay is the shortest wait before retrying a failed auto-play
const minRetryDelay = time.Second

// defaultForgetAfter is how long a game without a running timer is remembered after its last change
const defaultForgetAfter = time.Hour

// AutoPlayer makes a move on behalf of a player
type AutoPlayer interface {
	AutoPlay(ctx context.Context, gameID, playerID string) error
}

type turn struct {
	playerID string
	version  int64
	timer    *time.Timer
}

// seen is the newest change of a game
type seen struct {
	version int64
	at      time.Time
}

// Watcher keeps one timer per game for the player who must act
// It implements game.Observer.
type Watcher struct {
	autoPlayer AutoPlayer
	grace      time.Duration
	logger     logrus.FieldLogger

	mutex    sync.Mutex
	turns    map[string]*turn
	versions map[string]seen
	stopped  bool

	// games without a running timer are forgotten forgetAfter after their last change
	forgetAfter time.Duration
	lastSweep   time.Time
	now         func() time.Time
}

// NewWatcher returns a new watcher
// grace is how long to wait before playing for a player who has left the game.
func NewWatcher(autoPlayer AutoPlayer, grace time.Duration, logger logrus.FieldLogger) *Watcher {
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	return &Watcher{
		autoPlayer: autoPlayer,
		grace:      grace,
		logger:     logger,
		turns:      make(map[string]*turn),
		versions:   make(map[string]seen),

		forgetAfter: defaultForgetAfter,
		now:         time.Now,
	}
}

// GameChanged resets the timer for the game
func (w *Watcher) GameChanged(change game.Change) {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	if w.stopped {
		return
	}

	now := w.now()
	w.sweep(now)

	// a newer change has already been seen
	if last, ok := w.versions[change.GameID]; ok && change.State.Version <= last.version {
		return
	}

	w.versions[change.GameID] = seen{version: change.State.Version, at: now}

	if t, ok := w.turns[change.GameID]; ok {
		t.timer.Stop()
		delete(w.turns, change.GameID)
	}

	if change.State.Status == game.StatusOver {
		delete(w.versions, change.GameID)
		return
	}

	playerID := change.State.CurrentPlayerID()
	if playerID == "" {
		return
	}

	delay, ok := w.delay(change)
	if !ok {
		return
	}

	t := &turn{
		playerID: playerID,
		version:  change.State.Version,
	}

	gameID := change.GameID
	t.timer = time.AfterFunc(delay, func() {
		w.expire(gameID, t)
	})

	w.turns[gameID] = t
}

// delay returns how long the current player has to act
// The second return value is false if the player has no time limit.
func (w *Watcher) delay(change game.Change) (time.Duration, bool) {
	if !change.CurrentPlayerPresent {
		return w.grace, true
	}

	if change.Settings.TimeLimit > 0 {
		return time.Second * time.Duration(change.Settings.TimeLimit), true
	}

	return 0, false
}

func (w *Watcher) expire(gameID string, t *turn) {
	w.mutex.Lock()
	if w.turns[gameID] != t {
		w.mutex.Unlock()
		return
	}

	delete(w.turns, gameID)
	w.mutex.Unlock()

	logger := w.logger.WithFields(logrus.Fields{
		"gameID":   gameID,
		"playerID": t.playerID,
		"version":  t.version,
	})
	logger.Debug("player is idle")

	ctx, cancel := context.WithTimeout(context.Background(), defaultActionTimeout)
	defer cancel()

	if err := w.autoPlayer.AutoPlay(ctx, gameID, t.playerID); err != nil {
		switch {
		case game.IsRejection(err):
			// the player acted at the last moment
			logger.WithError(err).Debug("auto-play skipped")
		case game.IsFatal(err):
			// the engine has already logged this, wait for a presence change
		default:
			logger.WithError(err).Warn("could not auto-play, will retry")
			w.retry(gameID, t)
		}
	}
}

// retry schedules the turn again unless the game has moved on
func (w *Watcher) retry(gameID string, t *turn) {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	if w.stopped || w.turns[gameID] != nil || w.versions[gameID].version != t.version {
		return
	}

	delay := w.grace
	if delay < minRetryDelay {
		delay = minRetryDelay
	}

	next := &turn{
		playerID: t.playerID,
		version:  t.version,
	}

	next.timer = time.AfterFunc(delay, func() {
		w.expire(gameID, next)
	})

	w.turns[gameID] = next
}

// sweep forgets games that have no running timer and have not changed in a while
// NOTE: must be called with the mutex held
func (w *Watcher) sweep(now time.Time) {
	if now.Sub(w.lastSweep) < w.forgetAfter {
		return
	}

	w.lastSweep = now
	for gameID, last := range w.versions {
		if _, pending := w.turns[gameID]; pending {
			continue
		}

		if now.Sub(last.at) >= w.forgetAfter {
			delete(w.versions, gameID)
		}
	}
}

// Pending returns the player being waited on in the game, or an empty string
func (w *Watcher) Pending(gameID string) string {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	if t, ok := w.turns[gameID]; ok {
		return t.playerID
	}

	return ""
}

// Stop cancels every timer
func (w *Watcher) Stop() {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	for gameID, t := range w.turns {
		t.timer.Stop()
		delete(w.turns, gameID)
	}

	w.stopped = true
}
