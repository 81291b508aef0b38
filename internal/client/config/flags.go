package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/roomsync/internal/flagx"
)

// parseFlags populates Config fields from the flags listed in the package
// documentation. Only those flags are read from os.Args, so REPL arguments
// and other packages' flags do not interfere. It panics on malformed values.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-k", "-t", "-s", "-d", "-r", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.BaseURL, "a", cfg.BaseURL, "base URL of the remote backend")
	fs.StringVar(&cfg.AnonKey, "k", cfg.AnonKey, "anonymous key for sign-up and sign-in")
	fs.DurationVar(&cfg.ProbeTimeout, "t", cfg.ProbeTimeout, "health probe timeout")
	fs.StringVar(&cfg.StorageDriver, "s", cfg.StorageDriver, "storage driver: sqlite, memory or redis")
	fs.StringVar(&cfg.StoragePath, "d", cfg.StoragePath, "SQLite database path")
	fs.StringVar(&cfg.RedisURL, "r", cfg.RedisURL, "Redis URL")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
