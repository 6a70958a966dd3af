package config

import (
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
	"upanddown-server/internal/util"
)

// Store backends
const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
)

// Config provides configuration for the Up-and-Down server
type Config struct {
	loaded         bool
	Store          string `yaml:"store" envconfig:"store"`
	PGDSN          string `yaml:"pgDsn" envconfig:"pg_dsn"`
	MigrationsPath string `yaml:"migrationsPath" envconfig:"migrations_path"`
	JWT            struct {
		PublicKey  string `yaml:"publicKey" envconfig:"public_key"`
		PrivateKey string `yaml:"privateKey" envconfig:"private_key"`
	} `yaml:"jwt"`
	Log struct {
		Level             string `yaml:"level" envconfig:"level"`
		DisableAccessLogs bool   `yaml:"disableAccessLogs" envconfig:"disable_access_logs"`
	} `yaml:"log"`
	// Defaults are used for any game setting omitted when a game is created
	Defaults struct {
		NumCards    int  `yaml:"numCards" envconfig:"num_cards"`
		Dirty       bool `yaml:"dirty" envconfig:"dirty"`
		TimeLimit   int  `yaml:"timeLimit" envconfig:"time_limit"`
		NoBidPoints bool `yaml:"noBidPoints" envconfig:"no_bid_points"`
	} `yaml:"defaults"`
	// IdleGrace is how long to wait before auto-playing for a player who has left the game, in milliseconds
	IdleGrace int `yaml:"idleGrace" envconfig:"idle_grace"`
}

var config Config

// DefaultConfig returns the configuration used when nothing else is specified
func DefaultConfig() Config {
	cfg := Config{
		Store:          StoreMemory,
		PGDSN:          "postgres://postgres@localhost:5432/postgres?sslmode=disable",
		MigrationsPath: "./sql",
		IdleGrace:      1000,
	}

	cfg.JWT.PublicKey = "public.pem"
	cfg.JWT.PrivateKey = "private.key"
	cfg.Log.Level = "info"
	cfg.Defaults.NumCards = 7
	cfg.Defaults.TimeLimit = 30

	return cfg
}

// Instance returns a singleton instance
// If the config hasn't been loaded, it will be loaded
func Instance() Config {
	if !config.loaded {
		if err := Load(); err != nil {
			panic(err)
		}
	}

	return config
}

// Load will load the configuration
// The configuration file is optional. Environment variables prefixed with UPD_ take precedence.
func Load() error {
	cfg := DefaultConfig()

	configFile := util.Getenv("UPD_CONFIG_FILE", "config.yaml")
	file, err := os.Open(configFile)
	if err != nil {
		if !os.IsNotExist(err) {
			return err
		}
	} else {
		defer file.Close()

		if err := yaml.NewDecoder(file).Decode(&cfg); err != nil {
			return err
		}
	}

	if err := envconfig.Process("upd", &cfg); err != nil {
		return err
	}

	cfg.loaded = true
	config = cfg
	return nil
}
