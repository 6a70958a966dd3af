package room

import (
	"fmt"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// Client is a player connected to a game via websockets
type Client struct {
	// Conn is the underlying websocket connection
	Conn *websocket.Conn

	// send is a channel for sending messages to the client
	send chan interface{}

	// Close is a channel for closing the client
	Close chan string

	// CloseError contains the reason why the connection was closed
	CloseError error

	dealerLock sync.RWMutex
	dealer     *Dealer

	gameID   string
	playerID string
}

// NewClient returns a new client object
func NewClient(conn *websocket.Conn, gameID, playerID string) *Client {
	return &Client{
		send:     make(chan interface{}, 256),
		Close:    make(chan string),
		Conn:     conn,
		gameID:   gameID,
		playerID: playerID,
	}
}

// Send sends a message to the web client
// Returns false if the client is not keeping up and the message was dropped
func (c *Client) Send(msg interface{}) bool {
	select {
	case c.send <- msg:
		return true
	default:
		logrus.WithField("client", c.String()).Warn("send buffer is full, dropping message")
		return false
	}
}

// SendChan returns a read-only channel
func (c *Client) SendChan() <-chan interface{} {
	return c.send
}

// PlayerID returns the ID of the connected player
func (c *Client) PlayerID() string {
	return c.playerID
}

// String returns a traceable identifier for the player and game
func (c *Client) String() string {
	return fmt.Sprintf("%s:%s", c.playerID, c.gameID)
}

// ReceivedMessage is called when the server receives a message from a connected client
func (c *Client) ReceivedMessage(msg *PayloadIn) {
	c.dealerLock.RLock()
	dealer := c.dealer
	c.dealerLock.RUnlock()

	if dealer == nil {
		logrus.WithField("msg", msg).Warn("received message, but dealer not found")
		return
	}

	dealer.ReceivedMessage(c, msg)
}

func (c *Client) setDealer(d *Dealer) {
	c.dealerLock.Lock()
	defer c.dealerLock.Unlock()

	c.dealer = d
}
