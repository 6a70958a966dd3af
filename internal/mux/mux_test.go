package mux

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"upanddown-server/internal/jwt"
	"upanddown-server/pkg/game"
)

func Test_authRouter(t *testing.T) {
	m, e := newTestMux(t)

	m.authRouter.Path("/game/{id}/test").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, 200, playerFromContext(r).PlayerID)
	})

	ts := httptest.NewServer(m)
	defer ts.Close()

	gameID, playerID, err := e.NewGame(context.Background(), game.Settings{NumCards: 3}, "host")
	assert.NoError(t, err)

	var errObj errorResponse
	assertGet(t, ts, "/game/"+gameID+"/test", &errObj, 401)
	assert.Equal(t, "Unauthorized", errObj.Message)

	assertGet(t, ts, "/game/"+gameID+"/test", &errObj, 401, "not-a-jwt")

	token, _ := jwt.Sign(gameID, playerID)

	// test using auth header
	var str string
	resp := assertGet(t, ts, "/game/"+gameID+"/test", &str, 200, token)
	assert.Equal(t, playerID, str)
	if assert.NotNil(t, resp) {
		assert.Equal(t, playerID, resp.Header.Get("UpAndDown-PlayerID"))
	}

	// test using query parameter
	str = ""
	assertGet(t, ts, "/game/"+gameID+"/test?access_token="+url.QueryEscape(token), &str, 200)
	assert.Equal(t, playerID, str)

	// a token is only good for its own game
	assertGet(t, ts, "/game/othergame/test", &errObj, 403, token)
	assert.Equal(t, "Forbidden", errObj.Message)
}
