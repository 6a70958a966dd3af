package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"upanddown-server/internal/util"
)

func TestInstance(t *testing.T) {
	defer util.SetEnv("UPD_CONFIG_FILE", "testdata/config.yaml")()
	defer util.SetEnv("UPD_JWT_PRIVATE_KEY", "private2.key")()

	config.loaded = false

	a := assert.New(t)
	cfg := Instance()
	a.Equal(StorePostgres, cfg.Store)
	a.Equal("postgres://postgres@db:5432/upanddown?sslmode=disable", cfg.PGDSN)
	a.Equal("public.pem", cfg.JWT.PublicKey)
	a.Equal("private2.key", cfg.JWT.PrivateKey)
	a.Equal("debug", cfg.Log.Level)
	a.Equal(5, cfg.Defaults.NumCards)
	a.True(cfg.Defaults.Dirty)
	a.Equal(20, cfg.Defaults.TimeLimit)
	a.False(cfg.Defaults.NoBidPoints)
	a.Equal(1000, cfg.IdleGrace, "defaults survive a partial file")

	// ensure that it's only loaded once
	_ = os.Setenv("UPD_JWT_PRIVATE_KEY", "private3.key")
	// ensure we aren't using a pointer
	cfg.JWT.PrivateKey = "bad"
	cfg = Instance()
	a.Equal("private2.key", cfg.JWT.PrivateKey)
}

func TestDefaults(t *testing.T) {
	defer util.SetEnv("UPD_CONFIG_FILE", "testdata/does-not-exist.yaml")()

	assert.NoError(t, Load())
	cfg := Instance()
	assert.Equal(t, DefaultConfig().Store, cfg.Store)
	assert.Equal(t, 7, cfg.Defaults.NumCards)
	assert.Equal(t, "./sql", cfg.MigrationsPath)
}

func TestLoad_Env(t *testing.T) {
	defer util.SetEnv("UPD_CONFIG_FILE", "testdata/does-not-exist.yaml")()
	defer util.SetEnv("UPD_STORE", StorePostgres)()
	defer util.SetEnv("UPD_DEFAULTS_NUM_CARDS", "3")()

	assert.NoError(t, Load())
	cfg := Instance()
	assert.Equal(t, StorePostgres, cfg.Store)
	assert.Equal(t, 3, cfg.Defaults.NumCards)
}
