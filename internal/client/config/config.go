package config

import (
	"time"

	"github.com/dmitrijs2005/roomsync/internal/client/storage"
)

// Config holds runtime settings for the roomsync CLI.
//
// Durations are time.Duration values; JSON accepts "3s" or nanoseconds and
// the environment accepts Go duration strings.
type Config struct {
	BaseURL         string        `env:"ROOMSYNC_BASE_URL"`
	AnonKey         string        `env:"ROOMSYNC_ANON_KEY"`
	ProbeTimeout    time.Duration `env:"ROOMSYNC_PROBE_TIMEOUT"`
	RequestTimeout  time.Duration `env:"ROOMSYNC_REQUEST_TIMEOUT"`
	RetryMaxElapsed time.Duration `env:"ROOMSYNC_RETRY_MAX_ELAPSED"`

	StorageDriver string `env:"ROOMSYNC_STORAGE_DRIVER"`
	StoragePath   string `env:"ROOMSYNC_STORAGE_PATH"`
	RedisURL      string `env:"ROOMSYNC_REDIS_URL"`

	LogLevel  string `env:"ROOMSYNC_LOG_LEVEL"`
	LogFormat string `env:"ROOMSYNC_LOG_FORMAT"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.BaseURL = "http://127.0.0.1:8080"
	c.AnonKey = "dev-anon-key"
	c.ProbeTimeout = 3 * time.Second
	c.RequestTimeout = 10 * time.Second
	c.RetryMaxElapsed = 3 * time.Second
	c.StorageDriver = storage.DriverSQLite
	c.StoragePath = "roomsync.db"
	c.RedisURL = "redis://127.0.0.1:6379/0"
	c.LogLevel = "warn"
	c.LogFormat = "text"
}

// StorageOptions selects the device store.
func (c *Config) StorageOptions() storage.Options {
	return storage.Options{Driver: c.StorageDriver, Path: c.StoragePath, RedisURL: c.RedisURL}
}

// LoadConfig applies defaults, then JSON, then the environment, then
// command-line flags. Later sources take precedence.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
