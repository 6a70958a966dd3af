package mux

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"upanddown-server/internal/jwt"
	"upanddown-server/pkg/docstore"
	"upanddown-server/pkg/game"
	"upanddown-server/pkg/room"
)

func setupJWT(t *testing.T) {
	t.Helper()

	keys := filepath.Join("..", "jwt", "testdata")
	if err := jwt.LoadKeysFromFiles(filepath.Join(keys, "public.pem"), filepath.Join(keys, "private.key")); err != nil {
		t.Fatal(err)
	}
}

func newTestMux(t *testing.T) (*Mux, *game.Engine) {
	t.Helper()
	setupJWT(t)

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	e := game.NewEngine(docstore.NewMemory(), logger)
	pitBoss := room.NewPitBoss(e)
	pitBoss.StartShift()
	e.AddObserver(pitBoss)

	return NewMux("v1.2.3", e, pitBoss, game.Settings{NumCards: 3, TimeLimit: 30}), e
}

func Test_writeEngineError(t *testing.T) {
	tests := []struct {
		err        error
		statusCode int
		message    string
	}{
		{game.ErrGameNotFound, http.StatusNotFound, "Not Found"},
		{game.ErrNotPlayersTurn, http.StatusConflict, "not player's turn"},
		{fmt.Errorf("wrapped: %w", game.ErrDirtyBid), http.StatusConflict, "wrapped: total bids cannot equal the number of cards"},
		{&game.FatalError{Err: game.ErrNotEnoughActivePlayers}, http.StatusInternalServerError, "Internal Server Error"},
		{fmt.Errorf("could not read state: %w", docstore.ErrConflict), http.StatusServiceUnavailable, "Service Unavailable"},
	}

	for _, tt := range tests {
		rec := httptest.NewRecorder()
		writeEngineError(rec, tt.err)
		assert.Equal(t, tt.statusCode, rec.Code)

		var errObj errorResponse
		assert.NoError(t, json.NewDecoder(rec.Body).Decode(&errObj))
		assert.Equal(t, tt.message, errObj.Message)
		assert.Equal(t, tt.statusCode, errObj.StatusCode)
	}
}

func Test_decodeRequest(t *testing.T) {
	var payload postGameIDPlayerPayload

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Tom"}`))
	assert.False(t, decodeRequest(rec, req, &payload))
	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":`))
	req.Header.Set("Content-Type", "application/json")
	assert.False(t, decodeRequest(rec, req, &payload))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Tom"}`))
	req.Header.Set("Content-Type", "application/json")
	assert.True(t, decodeRequest(rec, req, &payload))
	assert.Equal(t, "Tom", payload.Name)
}

func assertDo(t *testing.T, req *http.Request, respObj interface{}, statusCode int, signedJWT ...string) *http.Response {
	t.Helper()

	if len(signedJWT) > 0 {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", signedJWT[0]))
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Error(err)
		return nil
	}
	defer resp.Body.Close()

	if statusCode != resp.StatusCode {
		b, _ := io.ReadAll(resp.Body)
		t.Log(string(b))
		assert.Equal(t, statusCode, resp.StatusCode)
		return nil
	}

	if respObj != nil {
		if err := json.NewDecoder(resp.Body).Decode(respObj); err != nil {
			t.Error(err)
			return nil
		}
	}

	return resp
}

func assertGet(t *testing.T, ts *httptest.Server, path string, respObj interface{}, statusCode int, signedJWT ...string) *http.Response {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, ts.URL+path, nil)
	if err != nil {
		t.Error(err)
		return nil
	}

	return assertDo(t, req, respObj, statusCode, signedJWT...)
}

func assertPost(t *testing.T, ts *httptest.Server, path string, payload interface{}, respObj interface{}, statusCode int, signedJWT ...string) *http.Response {
	t.Helper()

	var body io.Reader
	switch val := payload.(type) {
	case string:
		body = strings.NewReader(val)
	default:
		b, err := json.Marshal(val)
		if err != nil {
			t.Error(err)
			return nil
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequest(http.MethodPost, ts.URL+path, body)
	if err != nil {
		t.Error(err)
		return nil
	}
	req.Header.Set("Content-Type", "application/json")

	return assertDo(t, req, respObj, statusCode, signedJWT...)
}
