package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/roomsync/internal/flagx"
	"github.com/dmitrijs2005/roomsync/internal/timex"
)

// JsonConfig defines a configuration structure tailored for JSON unmarshalling.
// It uses timex.Duration for the token lifetime, which allows parsing both
// string values such as "1h" and integer nanoseconds.
type JsonConfig struct {
	ListenAddr                  string         `json:"listen_addr"`
	AnonKey                     string         `json:"anon_key"`
	SecretKey                   string         `json:"secret_key"`
	AccessTokenValidityDuration timex.Duration `json:"access_token_validity_duration"`
	StoreDriver                 string         `json:"store_driver"`
	RedisURL                    string         `json:"redis_url"`
	DatabaseDSN                 string         `json:"database_dsn"`
	LogLevel                    string         `json:"log_level"`
}

// parseJson loads configuration values from the JSON file named by -c/-config
// or ROOMSYNC_CONFIG. Empty values in the file leave config untouched.
// If the file cannot be read or contains invalid JSON, the function panics.
func parseJson(config *Config) {

	// try flags
	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	err = json.Unmarshal(file, c)
	if err != nil {
		panic(err)
	}

	overlay(&config.ListenAddr, c.ListenAddr)
	overlay(&config.AnonKey, c.AnonKey)
	overlay(&config.SecretKey, c.SecretKey)
	overlay(&config.StoreDriver, c.StoreDriver)
	overlay(&config.RedisURL, c.RedisURL)
	overlay(&config.DatabaseDSN, c.DatabaseDSN)
	overlay(&config.LogLevel, c.LogLevel)
	if c.AccessTokenValidityDuration.Duration != 0 {
		config.AccessTokenValidityDuration = c.AccessTokenValidityDuration.Duration
	}
}

func overlay(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
