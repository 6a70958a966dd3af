package main

import (
	"database/sql"
	"time"

	"github.com/sirupsen/logrus"
	"upanddown-server/internal/config"
	"upanddown-server/pkg/db"
)

const connectTimeout = time.Second * 10

func main() {
	cfg := config.Instance()
	dbh := waitForDB(cfg.PGDSN)
	defer dbh.Close()

	if err := db.Migrate(dbh, cfg.MigrationsPath); err != nil {
		logrus.WithError(err).Fatal("could not run migrations")
	}

	logrus.Info("migrations complete")
}

// waitForDB retries until PostgreSQL accepts connections or the timeout passes
func waitForDB(dsn string) *sql.DB {
	timeout := time.NewTimer(connectTimeout)
	defer timeout.Stop()

	for {
		dbh, err := db.Open(dsn)
		if err == nil {
			return dbh
		}

		logrus.WithError(err).Debug("waiting for database")
		select {
		case <-timeout.C:
			logrus.WithError(err).Fatal("could not connect to database")
		case <-time.After(time.Millisecond * 500):
		}
	}
}
