package room

import (
	"github.com/sirupsen/logrus"
	"upanddown-server/pkg/game"
)

// PitBoss is responsible for dispatching clients and game changes to dealers
// It implements game.Observer.
type PitBoss struct {
	engine     Engine
	dealers    map[string]*Dealer
	connect    chan *Client
	disconnect chan *Client
	changed    chan string
}

// NewPitBoss returns a new dispatch object
func NewPitBoss(engine Engine) *PitBoss {
	return &PitBoss{
		engine:     engine,
		dealers:    make(map[string]*Dealer),
		connect:    make(chan *Client, 256),
		disconnect: make(chan *Client, 256),
		changed:    make(chan string, 256),
	}
}

// StartShift starts the PitBoss run loop
func (p *PitBoss) StartShift() {
	go p.runLoop()
}

func (p *PitBoss) runLoop() {
	for {
		select {
		case client := <-p.connect:
			logrus.WithField("client", client.String()).Debug("client connected")
			dealer, found := p.dealers[client.gameID]
			if !found {
				dealer = NewDealer(p, p.engine, client.gameID)
				dealer.StartShift()
				p.dealers[client.gameID] = dealer
			}

			dealer.AddClient(client)
		case client := <-p.disconnect:
			logrus.WithField("client", client.String()).Debug("client disconnected")
			dealer, found := p.dealers[client.gameID]
			if !found {
				logrus.WithField("gameID", client.gameID).WithField("type", "exception").Error("dealer not found")
				continue
			}

			if dealer.RemoveClient(client) {
				dealer.EndShift()
				delete(p.dealers, client.gameID)
			}
		case gameID := <-p.changed:
			// changes to games without a connected client are dropped
			if dealer, found := p.dealers[gameID]; found {
				dealer.GameChanged()
			}
		}
	}
}

// ClientConnected is called when a client connects to the server
func (p *PitBoss) ClientConnected(client *Client) {
	p.connect <- client
}

// ClientDisconnected is called when a client disconnects from the server
func (p *PitBoss) ClientDisconnected(client *Client) {
	p.disconnect <- client
}

// GameChanged is called by the engine after a change has been committed
func (p *PitBoss) GameChanged(change game.Change) {
	p.changed <- change.GameID
}
