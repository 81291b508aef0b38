package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/roomsync/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-k string   anonymous key
//	-s string   JWT HMAC secret key
//	-t int      access token validity, minutes
//	-b string   store driver: memory, redis or postgres
//	-r string   Redis URL
//	-d string   PostgreSQL DSN
//	-l string   log level
//
// Duration flags are accepted as integers in minutes and then converted
// to time.Duration values.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-k", "-s", "-t", "-b", "-r", "-d", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.ListenAddr, "a", config.ListenAddr, "address and port to run server")
	fs.StringVar(&config.AnonKey, "k", config.AnonKey, "anonymous key")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	accessTokenValidityDuration := fs.Int("t", int(config.AccessTokenValidityDuration.Minutes()), "access_token_validity_duration (in minutes)")

	fs.StringVar(&config.StoreDriver, "b", config.StoreDriver, "store driver")
	fs.StringVar(&config.RedisURL, "r", config.RedisURL, "redis URL")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.AccessTokenValidityDuration = time.Duration(*accessTokenValidityDuration) * time.Minute
}
