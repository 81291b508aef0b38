package config

import (
	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// parseEnv overlays cfg with ROOMSYNC_* variables. Variables that are not
// set leave the current value alone. It panics on malformed values.
func parseEnv(cfg *Config) {
	_ = godotenv.Load()

	if err := env.Parse(cfg); err != nil {
		panic(err)
	}
}
