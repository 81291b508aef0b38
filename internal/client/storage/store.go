// Package storage provides the device key-value store used by the session
// layer, together with typed helpers for the keys it persists.
package storage

import (
	"context"
	"encoding/json"
	"fmt"
)

// Store is the key-value capability the session layer depends on.
// Get returns (nil, nil) when key is absent.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Batcher is implemented by stores that can apply several writes atomically.
type Batcher interface {
	SetMulti(ctx context.Context, values map[string][]byte) error
	DeleteMulti(ctx context.Context, keys ...string) error
}

// SetAll writes every value, atomically when s is a Batcher.
func SetAll(ctx context.Context, s Store, values map[string][]byte) error {
	if b, ok := s.(Batcher); ok {
		return b.SetMulti(ctx, values)
	}
	for k, v := range values {
		if err := s.Set(ctx, k, v); err != nil {
			return err
		}
	}
	return nil
}

// DeleteAll removes every key, atomically when s is a Batcher. Missing keys
// are not an error.
func DeleteAll(ctx context.Context, s Store, keys ...string) error {
	if b, ok := s.(Batcher); ok {
		return b.DeleteMulti(ctx, keys...)
	}
	for _, k := range keys {
		if err := s.Delete(ctx, k); err != nil {
			return err
		}
	}
	return nil
}

// GetJSON decodes the value under key into v. It reports false when the key
// is absent, leaving v untouched.
func GetJSON(ctx context.Context, s Store, key string, v any) (bool, error) {
	data, err := s.Get(ctx, key)
	if err != nil {
		return false, err
	}
	if data == nil {
		return false, nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

// SetJSON encodes v and stores it under key.
func SetJSON(ctx context.Context, s Store, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return s.Set(ctx, key, data)
}
