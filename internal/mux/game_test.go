package mux

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"upanddown-server/pkg/game"
)

func Test_postGame(t *testing.T) {
	m, _ := newTestMux(t)
	ts := httptest.NewServer(m)
	defer ts.Close()

	var created postGameResponse
	assertPost(t, ts, "/game", map[string]interface{}{"name": "Host", "dirty": true}, &created, 201)
	assert.NotEmpty(t, created.GameID)
	assert.NotEmpty(t, created.PlayerID)
	assert.NotEmpty(t, created.Token)

	var view game.Response
	assertGet(t, ts, "/game/"+created.GameID, &view, 200, created.Token)
	assert.Equal(t, created.PlayerID, view.PlayerID)
	assert.Equal(t, game.Settings{NumCards: 3, Dirty: true, TimeLimit: 30}, view.GameState.Settings, "defaults fill in the rest")
	assert.Equal(t, "Host", view.GameState.Players[0].Name)

	var errObj errorResponse
	assertPost(t, ts, "/game", map[string]interface{}{"numCards": 0}, &errObj, 409)
	assert.Equal(t, "numCards must be between 1 and 25", errObj.Message)

	assertPost(t, ts, "/game", `{"numCards":`, &errObj, 400)
	assertPost(t, ts, "/game", map[string]interface{}{"numCards": 3, "timeLimit": 0}, nil, 201)
}

func Test_postGameIDPlayer(t *testing.T) {
	m, _ := newTestMux(t)
	ts := httptest.NewServer(m)
	defer ts.Close()

	var created postGameResponse
	assertPost(t, ts, "/game", postGamePayload{Name: "Host"}, &created, 201)

	var joined postGameIDPlayerResponse
	assertPost(t, ts, "/game/"+created.GameID+"/player", postGameIDPlayerPayload{Name: "Second"}, &joined, 201)
	assert.NotEmpty(t, joined.PlayerID)
	assert.NotEqual(t, created.PlayerID, joined.PlayerID)

	var view game.Response
	assertGet(t, ts, "/game/"+created.GameID, &view, 200, joined.Token)
	assert.Equal(t, joined.PlayerID, view.PlayerID)
	assert.Len(t, view.GameState.Players, 2)

	var errObj errorResponse
	assertPost(t, ts, "/game/nosuchgame/player", postGameIDPlayerPayload{Name: "Lost"}, &errObj, 404)
	assert.Equal(t, "Not Found", errObj.Message)

	assertGet(t, ts, "/game/nosuchgame", &errObj, 403, joined.Token)
}

func Test_gameFlow(t *testing.T) {
	m, _ := newTestMux(t)
	ts := httptest.NewServer(m)
	defer ts.Close()

	var created postGameResponse
	assertPost(t, ts, "/game", map[string]interface{}{"name": "Host", "numCards": 2}, &created, 201)
	path := "/game/" + created.GameID

	var joined postGameIDPlayerResponse
	assertPost(t, ts, path+"/player", postGameIDPlayerPayload{Name: "Second"}, &joined, 201)

	tokens := map[string]string{
		created.PlayerID: created.Token,
		joined.PlayerID:  joined.Token,
	}

	var errObj errorResponse
	assertPost(t, ts, path+"/start", nil, &errObj, 409, joined.Token)
	assert.Equal(t, "only the host can do that", errObj.Message)

	var view game.Response
	assertPost(t, ts, path+"/start", nil, &view, 200, created.Token)
	assert.Equal(t, game.StatusBid, view.GameState.Status)
	assert.Len(t, view.Hand, 2)

	current := view.GameState.CurrentPlayerID
	waiting := created.PlayerID
	if current == waiting {
		waiting = joined.PlayerID
	}

	assertPost(t, ts, path+"/bid", map[string]interface{}{}, &errObj, 400, tokens[current])
	assert.Equal(t, "bid is required", errObj.Message)

	assertPost(t, ts, path+"/bid", map[string]interface{}{"bid": 1}, &errObj, 409, tokens[waiting])
	assert.Equal(t, "not player's turn", errObj.Message)

	assertPost(t, ts, path+"/bid", map[string]interface{}{"bid": 3}, &errObj, 409, tokens[current])
	assert.Equal(t, "bid must be between zero and the number of cards", errObj.Message)

	assertPost(t, ts, path+"/play", map[string]interface{}{}, &errObj, 400, tokens[current])
	assert.Equal(t, "cardId is required", errObj.Message)

	assertPost(t, ts, path+"/play", map[string]interface{}{"cardId": "nope"}, &errObj, 409, tokens[current])
	assert.Equal(t, "not accepting cards", errObj.Message)

	// play the rest of the game with the first legal move
	for i := 0; i < 100; i++ {
		view = game.Response{}
		assertGet(t, ts, path, &view, 200, tokens[current])
		if view.GameState.Status == game.StatusOver {
			break
		}

		current = view.GameState.CurrentPlayerID
		view = game.Response{}
		assertGet(t, ts, path, &view, 200, tokens[current])
		if !assert.True(t, view.IsTurn) {
			return
		}

		if view.GameState.Status == game.StatusBid {
			assertPost(t, ts, path+"/bid", map[string]interface{}{"bid": view.LegalBids[0]}, nil, 200, tokens[current])
		} else {
			assertPost(t, ts, path+"/play", map[string]interface{}{"cardId": view.LegalCards[0]}, nil, 200, tokens[current])
		}
	}

	assert.Equal(t, game.StatusOver, view.GameState.Status)
	assert.Len(t, view.GameState.RoundScores, 2)

	assertPost(t, ts, path+"/replay", nil, &errObj, 409, joined.Token)
	view = game.Response{}
	assertPost(t, ts, path+"/replay", nil, &view, 200, created.Token)
	assert.Equal(t, game.StatusPending, view.GameState.Status)
	for _, p := range view.GameState.Players {
		assert.Equal(t, 0, p.Score)
	}
}

func Test_postGameIDPresence(t *testing.T) {
	m, _ := newTestMux(t)
	ts := httptest.NewServer(m)
	defer ts.Close()

	var created postGameResponse
	assertPost(t, ts, "/game", postGamePayload{Name: "Host"}, &created, 201)
	path := "/game/" + created.GameID

	var errObj errorResponse
	assertPost(t, ts, path+"/presence", map[string]interface{}{}, &errObj, 400, created.Token)
	assert.Equal(t, "present is required", errObj.Message)

	var view game.Response
	assertPost(t, ts, path+"/presence", map[string]interface{}{"present": false}, &view, 200, created.Token)
	assert.False(t, view.GameState.Players[0].Present)

	assertPost(t, ts, path+"/presence", map[string]interface{}{"present": true}, &view, 200, created.Token)
	assert.True(t, view.GameState.Players[0].Present)
}
