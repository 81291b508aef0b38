package storage

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const (
	DriverSQLite = "sqlite"
	DriverMemory = "memory"
	DriverRedis  = "redis"
)

// Options selects and parameterizes a Store implementation.
type Options struct {
	Driver   string
	Path     string
	RedisURL string
}

// Open builds the store named by opts.Driver. The returned close function
// releases the underlying connection and is never nil.
func Open(ctx context.Context, opts Options) (Store, func() error, error) {
	switch opts.Driver {
	case DriverMemory:
		return NewMemoryStore(), func() error { return nil }, nil

	case DriverSQLite, "":
		s, db, err := OpenSQLite(ctx, opts.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite store: %w", err)
		}
		return s, db.Close, nil

	case DriverRedis:
		ropts, err := redis.ParseURL(opts.RedisURL)
		if err != nil {
			return nil, nil, fmt.Errorf("parse redis url: %w", err)
		}
		rdb := redis.NewClient(ropts)
		if err := rdb.Ping(ctx).Err(); err != nil {
			_ = rdb.Close()
			return nil, nil, fmt.Errorf("ping redis: %w", err)
		}
		return NewRedisStore(rdb, DefaultRedisPrefix), rdb.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", opts.Driver)
	}
}
