package mux

import (
	"errors"
	"net/http"

	gmux "github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"upanddown-server/internal/jwt"
	"upanddown-server/pkg/game"
)

type postGamePayload struct {
	Name        string `json:"name"`
	NumCards    *int   `json:"numCards"`
	Dirty       *bool  `json:"dirty"`
	TimeLimit   *int   `json:"timeLimit"`
	NoBidPoints *bool  `json:"noBidPoints"`
}

// settings merges the payload with the defaults
func (p postGamePayload) settings(defaults game.Settings) game.Settings {
	settings := defaults
	if p.NumCards != nil {
		settings.NumCards = *p.NumCards
	}

	if p.Dirty != nil {
		settings.Dirty = *p.Dirty
	}

	if p.TimeLimit != nil {
		settings.TimeLimit = *p.TimeLimit
	}

	if p.NoBidPoints != nil {
		settings.NoBidPoints = *p.NoBidPoints
	}

	return settings
}

type postGameResponse struct {
	GameID   string `json:"gameId"`
	PlayerID string `json:"playerId"`
	Token    string `json:"token"`
}

func (m *Mux) postGame() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload postGamePayload
		if !decodeRequest(w, r, &payload) {
			return
		}

		gameID, playerID, err := m.engine.NewGame(r.Context(), payload.settings(m.defaults), payload.Name)
		if err != nil {
			writeEngineError(w, err)
			return
		}

		token, err := jwt.Sign(gameID, playerID)
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		writeJSON(w, http.StatusCreated, postGameResponse{
			GameID:   gameID,
			PlayerID: playerID,
			Token:    token,
		})
	}
}

type postGameIDPlayerPayload struct {
	Name string `json:"name"`
}

type postGameIDPlayerResponse struct {
	PlayerID string `json:"playerId"`
	Token    string `json:"token"`
}

func (m *Mux) postGameIDPlayer() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload postGameIDPlayerPayload
		if !decodeRequest(w, r, &payload) {
			return
		}

		gameID := gmux.Vars(r)["id"]
		playerID, err := m.engine.AddPlayer(r.Context(), gameID, payload.Name)
		if err != nil {
			writeEngineError(w, err)
			return
		}

		token, err := jwt.Sign(gameID, playerID)
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		writeJSON(w, http.StatusCreated, postGameIDPlayerResponse{
			PlayerID: playerID,
			Token:    token,
		})
	}
}

func (m *Mux) getGameID() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m.writePlayerView(w, r, http.StatusOK)
	}
}

// writePlayerView responds with the game as seen by the authorized player
func (m *Mux) writePlayerView(w http.ResponseWriter, r *http.Request, statusCode int) {
	player := playerFromContext(r)
	view, err := m.engine.PlayerView(r.Context(), player.GameID, player.PlayerID)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	writeJSON(w, statusCode, view)
}

// action runs fn for the authorized player and responds with the updated view
func (m *Mux) action(fn func(r *http.Request, player *jwt.Player) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		player := playerFromContext(r)
		if err := fn(r, player); err != nil {
			logrus.WithError(err).WithFields(logrus.Fields{
				"gameID":   player.GameID,
				"playerID": player.PlayerID,
				"path":     r.URL.Path,
			}).Debug("action failed")

			writeEngineError(w, err)
			return
		}

		m.writePlayerView(w, r, http.StatusOK)
	}
}

func (m *Mux) postGameIDStart() http.HandlerFunc {
	return m.action(func(r *http.Request, player *jwt.Player) error {
		return m.engine.StartGame(r.Context(), player.GameID, player.PlayerID)
	})
}

func (m *Mux) postGameIDReplay() http.HandlerFunc {
	return m.action(func(r *http.Request, player *jwt.Player) error {
		return m.engine.ReplayGame(r.Context(), player.GameID, player.PlayerID)
	})
}

type postGameIDBidPayload struct {
	Bid *int `json:"bid"`
}

func (m *Mux) postGameIDBid() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload postGameIDBidPayload
		if !decodeRequest(w, r, &payload) {
			return
		}

		if payload.Bid == nil {
			writeJSONError(w, http.StatusBadRequest, errors.New("bid is required"))
			return
		}

		m.action(func(r *http.Request, player *jwt.Player) error {
			return m.engine.SubmitBid(r.Context(), player.GameID, player.PlayerID, *payload.Bid)
		})(w, r)
	}
}

type postGameIDPlayPayload struct {
	CardID string `json:"cardId"`
}

func (m *Mux) postGameIDPlay() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload postGameIDPlayPayload
		if !decodeRequest(w, r, &payload) {
			return
		}

		if payload.CardID == "" {
			writeJSONError(w, http.StatusBadRequest, errors.New("cardId is required"))
			return
		}

		m.action(func(r *http.Request, player *jwt.Player) error {
			return m.engine.PlayCard(r.Context(), player.GameID, player.PlayerID, payload.CardID)
		})(w, r)
	}
}

type postGameIDPresencePayload struct {
	Present *bool `json:"present"`
}

func (m *Mux) postGameIDPresence() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload postGameIDPresencePayload
		if !decodeRequest(w, r, &payload) {
			return
		}

		if payload.Present == nil {
			writeJSONError(w, http.StatusBadRequest, errors.New("present is required"))
			return
		}

		m.action(func(r *http.Request, player *jwt.Player) error {
			return m.engine.UpdatePlayer(r.Context(), player.GameID, player.PlayerID, *payload.Present)
		})(w, r)
	}
}
