package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/roomsync/internal/flagx"
	"github.com/dmitrijs2005/roomsync/internal/timex"
)

// JsonConfig is the JSON file layout. Pointer fields distinguish "absent"
// from "empty" so a partial file only overrides what it names.
type JsonConfig struct {
	BaseURL         *string         `json:"base_url"`
	AnonKey         *string         `json:"anon_key"`
	ProbeTimeout    *timex.Duration `json:"probe_timeout"`
	RequestTimeout  *timex.Duration `json:"request_timeout"`
	RetryMaxElapsed *timex.Duration `json:"retry_max_elapsed"`
	StorageDriver   *string         `json:"storage_driver"`
	StoragePath     *string         `json:"storage_path"`
	RedisURL        *string         `json:"redis_url"`
	LogLevel        *string         `json:"log_level"`
	LogFormat       *string         `json:"log_format"`
}

// parseJson overlays cfg with the JSON file named by -c/-config or
// ROOMSYNC_CONFIG. It panics when the file cannot be read or decoded.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}
	jc.apply(cfg)
}

func (jc JsonConfig) apply(cfg *Config) {
	setString(&cfg.BaseURL, jc.BaseURL)
	setString(&cfg.AnonKey, jc.AnonKey)
	setString(&cfg.StorageDriver, jc.StorageDriver)
	setString(&cfg.StoragePath, jc.StoragePath)
	setString(&cfg.RedisURL, jc.RedisURL)
	setString(&cfg.LogLevel, jc.LogLevel)
	setString(&cfg.LogFormat, jc.LogFormat)

	if jc.ProbeTimeout != nil {
		cfg.ProbeTimeout = jc.ProbeTimeout.Duration
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.RetryMaxElapsed != nil {
		cfg.RetryMaxElapsed = jc.RetryMaxElapsed.Duration
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
