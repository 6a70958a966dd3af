package main

import (
	"flag"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gorilla/handlers"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
	"upanddown-server/internal/config"
	"upanddown-server/internal/jwt"
	"upanddown-server/internal/mux"
	"upanddown-server/pkg/db"
	"upanddown-server/pkg/docstore"
	"upanddown-server/pkg/docstore/postgres"
	"upanddown-server/pkg/game"
	"upanddown-server/pkg/idle"
	"upanddown-server/pkg/room"
)

const readTimeout = time.Second * 5
const writeTimeout = time.Second * 10

// Version is the server version
var Version = "v0.0.0-dev"

var addr = flag.String("addr", ":5000", "the listen address")

func main() {
	flag.Parse()
	if err := config.Load(); err != nil {
		logrus.WithError(err).Fatal("could not load configuration")
	}

	setupLogger()
	cfg := config.Instance()

	// fail fast
	if err := jwt.LoadKeys(); err != nil {
		logrus.WithError(err).Fatal("could not load keys")
	}

	engine := game.NewEngine(openStore(cfg), logrus.StandardLogger())

	pitBoss := room.NewPitBoss(engine)
	pitBoss.StartShift()
	engine.AddObserver(pitBoss)

	watcher := idle.NewWatcher(engine, time.Duration(cfg.IdleGrace)*time.Millisecond, logrus.StandardLogger())
	defer watcher.Stop()
	engine.AddObserver(watcher)

	c := cors.New(cors.Options{
		AllowedHeaders: []string{"Origin", "Accept", "Content-Type", "X-Requested-With", "Authorization"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete},
	})

	defaults := game.Settings{
		NumCards:    cfg.Defaults.NumCards,
		Dirty:       cfg.Defaults.Dirty,
		TimeLimit:   cfg.Defaults.TimeLimit,
		NoBidPoints: cfg.Defaults.NoBidPoints,
	}

	srv := &http.Server{
		Addr:         *addr,
		Handler:      loggingHandler(c.Handler(mux.NewMux(Version, engine, pitBoss, defaults))),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}

	logrus.WithFields(logrus.Fields{"addr": srv.Addr, "store": cfg.Store}).Info("listening")
	logrus.Fatal(srv.ListenAndServe())
}

func openStore(cfg config.Config) docstore.Store {
	switch cfg.Store {
	case config.StoreMemory:
		return docstore.NewMemory()
	case config.StorePostgres:
		dbh := db.Instance()
		if err := db.Migrate(dbh, cfg.MigrationsPath); err != nil {
			logrus.WithError(err).Fatal("could not run migrations")
		}

		return postgres.New(dbh, logrus.StandardLogger())
	default:
		logrus.WithField("store", cfg.Store).Fatal("unknown store")
		return nil
	}
}

func loggingHandler(next http.Handler) http.Handler {
	if config.Instance().Log.DisableAccessLogs {
		return next
	}

	return handlers.CombinedLoggingHandler(os.Stdout, next)
}

func setupLogger() {
	if lvl := config.Instance().Log.Level; lvl != "" {
		level, err := logrus.ParseLevel(lvl)
		if err != nil {
			logrus.WithError(err).Fatal("could not parse level")
		}

		logrus.SetLevel(level)
	}

	if strings.ToLower(os.Getenv("LOG_FORMAT")) == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}
}
