package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/KirkDiggler/mine/internal/errors"
)

// Config holds all configuration for the application
type Config struct {
	Definitions string // path to a definitions file; empty uses the built-in set
	Scenario    string
	Seed        int64
	Runs        int
	Workers     int
	Redis       RedisConfig
	Log         LogConfig
}

// RedisConfig holds Redis-specific configuration
type RedisConfig struct {
	URL string // optional; results are kept in memory without it
}

// LogConfig holds logger configuration
type LogConfig struct {
	Level       string
	Output      string
	Development bool
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Definitions: os.Getenv("MINE_DEFINITIONS"),
		Scenario:    getEnvOrDefault("MINE_SCENARIO", "skirmish"),
		Seed:        int64(getEnvAsIntOrDefault("MINE_SEED", 1)),
		Runs:        getEnvAsIntOrDefault("MINE_RUNS", 1),
		Workers:     getEnvAsIntOrDefault("MINE_WORKERS", 4),
		Redis: RedisConfig{
			URL: os.Getenv("REDIS_URL"),
		},
		Log: LogConfig{
			Level:       getEnvOrDefault("LOG_LEVEL", "info"),
			Output:      getEnvOrDefault("LOG_OUTPUT", "stderr"),
			Development: getEnvAsBoolOrDefault("LOG_DEVELOPMENT", false),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks values that flags may have overridden
func (c *Config) Validate() error {
	if c.Scenario == "" {
		return errors.Configurationf("MINE_SCENARIO must not be empty")
	}
	if c.Runs < 1 {
		return errors.Configurationf("MINE_RUNS must be at least 1, got %d", c.Runs)
	}
	if c.Workers < 1 {
		return errors.Configurationf("MINE_WORKERS must be at least 1, got %d", c.Workers)
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBoolOrDefault(key string, defaultValue bool) bool {
	switch strings.ToLower(os.Getenv(key)) {
	case "true":
		return true
	case "false":
		return false
	}
	return defaultValue
}
