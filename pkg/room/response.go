package room

import "upanddown-server/pkg/game"

// Response is a container for every message sent to a client
type Response struct {
	Key     string      `json:"key"`
	Value   string      `json:"value"`
	Data    interface{} `json:"data"`
	Context string      `json:"context"`
}

// OK returns a generic success response
func OK(ctx ...string) *Response {
	res := &Response{
		Key:   "status",
		Value: "OK",
	}

	if len(ctx) == 1 {
		res.Context = ctx[0]
	}

	return res
}

func newErrorResponse(ctx string, err error) *Response {
	return &Response{
		Key:     "error",
		Value:   err.Error(),
		Context: ctx,
	}
}

func newGameResponse(view *game.Response) *Response {
	return &Response{
		Key:  "game",
		Data: view,
	}
}

type clientState struct {
	// Connected is the ID of every player with an open connection
	Connected []string `json:"connected"`
}

// PayloadIn is the format we expect from the JS client
type PayloadIn struct {
	Action  string `json:"action"`
	Bid     int    `json:"bid"`
	CardID  string `json:"cardId"`
	Present *bool  `json:"present"`
	// Context will be passed back on any outgoing message
	Context string `json:"context"`
}
