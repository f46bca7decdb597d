package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/mine/internal/config"
	mineerr "github.com/KirkDiggler/mine/internal/errors"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"MINE_DEFINITIONS", "MINE_SCENARIO", "MINE_SEED", "MINE_RUNS", "MINE_WORKERS",
		"REDIS_URL", "LOG_LEVEL", "LOG_OUTPUT", "LOG_DEVELOPMENT",
	} {
		t.Setenv(key, "")
	}

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "", cfg.Definitions)
	assert.Equal(t, "skirmish", cfg.Scenario)
	assert.Equal(t, int64(1), cfg.Seed)
	assert.Equal(t, 1, cfg.Runs)
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, "", cfg.Redis.URL)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "stderr", cfg.Log.Output)
	assert.False(t, cfg.Log.Development)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("MINE_DEFINITIONS", "testdata/units.yaml")
	t.Setenv("MINE_SCENARIO", "duel")
	t.Setenv("MINE_SEED", "42")
	t.Setenv("MINE_RUNS", "100")
	t.Setenv("MINE_WORKERS", "8")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_DEVELOPMENT", "TRUE")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "testdata/units.yaml", cfg.Definitions)
	assert.Equal(t, "duel", cfg.Scenario)
	assert.Equal(t, int64(42), cfg.Seed)
	assert.Equal(t, 100, cfg.Runs)
	assert.Equal(t, 8, cfg.Workers)
	assert.Equal(t, "redis://localhost:6379/0", cfg.Redis.URL)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Log.Development)
}

func TestLoad_BadValuesFallBack(t *testing.T) {
	t.Setenv("MINE_SEED", "lots")
	t.Setenv("LOG_DEVELOPMENT", "maybe")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, int64(1), cfg.Seed)
	assert.False(t, cfg.Log.Development)
}

func TestLoad_RejectsInvalid(t *testing.T) {
	t.Setenv("MINE_WORKERS", "0")

	_, err := config.Load()
	require.Error(t, err)
	assert.True(t, mineerr.IsConfiguration(err))
}
