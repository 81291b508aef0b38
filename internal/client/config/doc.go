// Package config loads runtime configuration for the roomsync CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c/-config or ROOMSYNC_CONFIG.
//  3. Environment variables (ROOMSYNC_*), with a .env file in the working
//     directory loaded first when present.
//  4. Command-line flags.
//
// Supported flags
//
//	-a string     base URL of the remote backend
//	-k string     anonymous key used for sign-up and sign-in
//	-t duration   health probe timeout
//	-s string     storage driver: sqlite, memory or redis
//	-d string     SQLite database path
//	-r string     Redis URL
//	-l string     log level
//
// # JSON schema
//
//	{
//	  "base_url": "http://127.0.0.1:8080",
//	  "anon_key": "dev-anon-key",
//	  "probe_timeout": "3s",
//	  "request_timeout": "10s",
//	  "retry_max_elapsed": "3s",
//	  "storage_driver": "sqlite",
//	  "storage_path": "roomsync.db",
//	  "redis_url": "redis://127.0.0.1:6379/0",
//	  "log_level": "warn",
//	  "log_format": "text"
//	}
//
// Keys absent from the file keep their previous value.
package config
