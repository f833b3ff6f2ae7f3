package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/julianstephens/routine/internal/logger"
)

// ErrNotFound is returned by KV.Get when the key has never been written.
var ErrNotFound = errors.New("key not found")

// KV is the durable key-value contract every backend implements. Values are
// opaque bytes; the helpers below store JSON.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Lister is implemented by backends that can enumerate their keys.
type Lister interface {
	Keys(ctx context.Context) ([]string, error)
}

// LoadValue decodes the JSON value stored under key into a T. The boolean is
// false when the key is absent, unreadable, or unparseable; read and decode
// failures are logged, never returned.
func LoadValue[T any](ctx context.Context, kv KV, key string) (T, bool) {
	var v T
	data, err := kv.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			logger.Error("Error loading key", "key", key, "error", err)
		}
		return v, false
	}
	if err := json.Unmarshal(data, &v); err != nil {
		logger.Error("Error parsing stored value", "key", key, "error", err)
		var zero T
		return zero, false
	}
	return v, true
}

// LoadList returns the list stored under key, or an empty list when the key
// is absent or its value cannot be parsed.
func LoadList[T any](ctx context.Context, kv KV, key string) []T {
	list, ok := LoadValue[[]T](ctx, kv, key)
	if !ok || list == nil {
		return []T{}
	}
	return list
}

// SaveValue stores v under key as JSON.
func SaveValue[T any](ctx context.Context, kv KV, key string, v T) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to serialize %s: %w", key, err)
	}
	if err := kv.Set(ctx, key, data); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

// SaveList stores list under key as a JSON array. A nil list is written as [].
func SaveList[T any](ctx context.Context, kv KV, key string, list []T) error {
	if list == nil {
		list = []T{}
	}
	return SaveValue(ctx, kv, key, list)
}
