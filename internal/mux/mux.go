package mux

import (
	"context"
	"net/http"
	"strings"

	gmux "github.com/gorilla/mux"
	"upanddown-server/internal/jwt"
	"upanddown-server/pkg/game"
	"upanddown-server/pkg/room"
)

type ctxKey int

const (
	ctxPlayerKey ctxKey = iota
)

// Engine is the game engine the HTTP endpoints drive
type Engine interface {
	room.Engine
	NewGame(ctx context.Context, settings game.Settings, hostName string) (string, string, error)
	AddPlayer(ctx context.Context, gameID, name string) (string, error)
}

// Mux handles HTTP requests
type Mux struct {
	*gmux.Router
	version  string
	engine   Engine
	pitBoss  *room.PitBoss
	defaults game.Settings

	// store for testing purposes
	authRouter *gmux.Router
}

// NewMux returns a new HTTP mux
// defaults are used for any setting omitted when a game is created.
func NewMux(version string, engine Engine, pitBoss *room.PitBoss, defaults game.Settings) *Mux {
	this := &Mux{
		Router:   gmux.NewRouter(),
		version:  version,
		engine:   engine,
		pitBoss:  pitBoss,
		defaults: defaults,
	}

	this.authRouter = this.Router.NewRoute().Subrouter()
	this.authRouter.Use(this.authMiddleware)

	// unauthorized endpoints
	{
		r := this.Router
		r.Methods(http.MethodGet).Path("/health").Handler(this.getHealth())
		r.Methods(http.MethodPost).Path("/game").Handler(this.postGame())
		r.Methods(http.MethodPost).Path("/game/{id:[a-z0-9]+}/player").Handler(this.postGameIDPlayer())
	}

	// requires bearer authorization for the game in the path
	{
		r := this.authRouter.PathPrefix("/game/{id:[a-z0-9]+}").Subrouter()

		r.Methods(http.MethodGet).Path("").Handler(this.getGameID())
		r.Methods(http.MethodGet).Path("/ws").Handler(this.getGameIDWS())
		r.Methods(http.MethodPost).Path("/start").Handler(this.postGameIDStart())
		r.Methods(http.MethodPost).Path("/bid").Handler(this.postGameIDBid())
		r.Methods(http.MethodPost).Path("/play").Handler(this.postGameIDPlay())
		r.Methods(http.MethodPost).Path("/presence").Handler(this.postGameIDPresence())
		r.Methods(http.MethodPost).Path("/replay").Handler(this.postGameIDReplay())
	}

	return this
}

func (m *Mux) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := r.FormValue("access_token")
		if token == "" {
			authHeader := strings.Split(r.Header.Get("Authorization"), " ")
			if len(authHeader) != 2 || strings.ToLower(authHeader[0]) != "bearer" {
				writeJSONError(w, http.StatusUnauthorized, nil)
				return
			}

			token = authHeader[1]
		}

		player, err := jwt.ValidPlayer(token)
		if err != nil {
			writeJSONError(w, http.StatusUnauthorized, nil)
			return
		}

		if player.GameID != gmux.Vars(r)["id"] {
			writeJSONError(w, http.StatusForbidden, nil)
			return
		}

		newCtx := context.WithValue(r.Context(), ctxPlayerKey, player)
		w.Header().Set("UpAndDown-PlayerID", player.PlayerID)
		next.ServeHTTP(w, r.WithContext(newCtx))
	})
}

func playerFromContext(r *http.Request) *jwt.Player {
	return r.Context().Value(ctxPlayerKey).(*jwt.Player)
}
