package room

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"upanddown-server/pkg/game"
)

// actionTimeout bounds every engine call made on behalf of a client
const actionTimeout = time.Second * 10

// Engine is the part of the game engine a dealer needs
type Engine interface {
	StartGame(ctx context.Context, gameID, playerID string) error
	SubmitBid(ctx context.Context, gameID, playerID string, bid int) error
	PlayCard(ctx context.Context, gameID, playerID, cardID string) error
	UpdatePlayer(ctx context.Context, gameID, playerID string, present bool) error
	ReplayGame(ctx context.Context, gameID, playerID string) error
	PlayerView(ctx context.Context, gameID, playerID string) (*game.Response, error)
}

type state int

const (
	stateClientEvent state = iota
	stateGameEvent
)

// Dealer keeps every client connected to a single game up to date
type Dealer struct {
	pitBoss *PitBoss
	engine  Engine
	gameID  string
	clients map[*Client]bool
	lock    sync.RWMutex
	logger  logrus.FieldLogger

	execInRunLoop chan func()
	stateChanged  chan state
	close         chan bool
}

// NewDealer creates a new dealer object
// This is called from a blocking state, so it needs to return quickly
func NewDealer(pitBoss *PitBoss, engine Engine, gameID string) *Dealer {
	d := &Dealer{
		pitBoss:       pitBoss,
		engine:        engine,
		gameID:        gameID,
		clients:       make(map[*Client]bool),
		logger:        logrus.WithField("gameID", gameID),
		execInRunLoop: make(chan func(), 256),
		stateChanged:  make(chan state, 256),
		close:         make(chan bool),
	}

	return d
}

// Clients will return a slice of connected (at the time) clients
func (d *Dealer) Clients() []*Client {
	d.lock.RLock()
	defer d.lock.RUnlock()

	clients := make([]*Client, 0, len(d.clients))
	for client := range d.clients {
		clients = append(clients, client)
	}

	return clients
}

// StartShift starts the run loop
func (d *Dealer) StartShift() {
	go d.runLoop()
}

func (d *Dealer) runLoop() {
	d.logger.Debug("creating dealer run loop")
	for {
		select {
		case s := <-d.stateChanged:
			switch s {
			case stateClientEvent:
				d.sendClientState()
			case stateGameEvent:
				d.sendGameData()
			}
		case fn := <-d.execInRunLoop:
			fn()
		case <-d.close:
			d.logger.Debug("terminating dealer run loop")
			return
		}
	}
}

// AddClient adds a client
// This method must return quickly
func (d *Dealer) AddClient(client *Client) {
	d.lock.Lock()
	client.setDealer(d)
	d.clients[client] = true
	d.lock.Unlock()

	d.stateChanged <- stateClientEvent
	d.execInRunLoop <- func() {
		d.sendPlayerView(client)
	}
}

// RemoveClient removes a client
// This method must return quickly
func (d *Dealer) RemoveClient(client *Client) (lastClient bool) {
	d.lock.Lock()
	delete(d.clients, client)
	nClients := len(d.clients)
	d.lock.Unlock()

	if nClients > 0 {
		d.stateChanged <- stateClientEvent
		return false
	}

	return true
}

// GameChanged is called after a change to the game has been committed
// This method must return quickly
func (d *Dealer) GameChanged() {
	d.stateChanged <- stateGameEvent
}

// EndShift is called when the dealer is no longer needed
func (d *Dealer) EndShift() {
	close(d.close)
}

// NOTE: must only be called from the run loop
func (d *Dealer) sendGameData() {
	for _, client := range d.Clients() {
		d.sendPlayerView(client)
	}
}

// NOTE: must only be called from the run loop
func (d *Dealer) sendPlayerView(client *Client) {
	ctx, cancel := context.WithTimeout(context.Background(), actionTimeout)
	defer cancel()

	view, err := d.engine.PlayerView(ctx, d.gameID, client.playerID)
	if err != nil {
		d.logger.WithError(err).WithField("client", client.String()).Error("could not get player view")
		return
	}

	client.Send(newGameResponse(view))
}

// NOTE: must only be called from the run loop
func (d *Dealer) sendClientState() {
	clients := d.Clients()
	connected := make([]string, 0, len(clients))
	seen := make(map[string]bool, len(clients))
	for _, client := range clients {
		if !seen[client.playerID] {
			seen[client.playerID] = true
			connected = append(connected, client.playerID)
		}
	}

	sort.Strings(connected)
	for _, client := range clients {
		client.Send(&Response{
			Key:  "clientState",
			Data: clientState{Connected: connected},
		})
	}
}

// ReceivedMessage is called when a client sends a message to the server
// The updated game is sent to every client once the engine notifies the pit boss.
func (d *Dealer) ReceivedMessage(c *Client, msg *PayloadIn) {
	ctx, cancel := context.WithTimeout(context.Background(), actionTimeout)
	defer cancel()

	var err error
	switch msg.Action {
	case "start":
		err = d.engine.StartGame(ctx, d.gameID, c.playerID)
	case "bid":
		err = d.engine.SubmitBid(ctx, d.gameID, c.playerID, msg.Bid)
	case "play":
		err = d.engine.PlayCard(ctx, d.gameID, c.playerID, msg.CardID)
	case "presence":
		if msg.Present == nil {
			err = errors.New("present is not boolean")
			break
		}

		err = d.engine.UpdatePlayer(ctx, d.gameID, c.playerID, *msg.Present)
	case "replay":
		err = d.engine.ReplayGame(ctx, d.gameID, c.playerID)
	case "refresh":
		d.execInRunLoop <- func() {
			d.sendPlayerView(c)
		}
	default:
		d.logger.WithField("msg", msg).Warn("unknown message")
		err = errors.New("unknown action")
	}

	if err != nil {
		if !game.IsRejection(err) {
			d.logger.WithError(err).WithField("client", c.String()).Error("could not perform action")
		}

		c.Send(newErrorResponse(msg.Context, err))
		return
	}

	c.Send(OK(msg.Context))
}
