// Package profilestore is the key/value persistence of the development
// server. Values are JSON documents.
package profilestore

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/roomsync/internal/server/config"
	"github.com/redis/go-redis/v9"
)

// Store keeps JSON documents by key. Get reports ok=false for a missing key.
type Store interface {
	Get(ctx context.Context, key string) (json.RawMessage, bool, error)
	Set(ctx context.Context, key string, value json.RawMessage) error
	Delete(ctx context.Context, key string) error
}

// GetJSON decodes the document under key into v.
func GetJSON(ctx context.Context, s Store, key string, v any) (bool, error) {
	raw, ok, err := s.Get(ctx, key)
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

func SetJSON(ctx context.Context, s Store, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return s.Set(ctx, key, raw)
}

// Open builds the store selected by cfg.StoreDriver. The returned close
// function is never nil.
func Open(ctx context.Context, cfg *config.Config) (Store, func() error, error) {
	switch cfg.StoreDriver {
	case config.StoreMemory, "":
		return NewMemoryStore(), func() error { return nil }, nil

	case config.StoreRedis:
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, nil, fmt.Errorf("parse redis url: %w", err)
		}
		rdb := redis.NewClient(opts)
		if err := rdb.Ping(ctx).Err(); err != nil {
			_ = rdb.Close()
			return nil, nil, fmt.Errorf("redis ping: %w", err)
		}
		return NewRedisStore(rdb, DefaultRedisPrefix), rdb.Close, nil

	case config.StorePostgres:
		s, err := OpenPostgres(ctx, cfg.DatabaseDSN)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}
