package diskv

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"strings"

	"github.com/peterbourgon/diskv/v3"

	"github.com/julianstephens/routine/internal/storage"
)

// Store is a storage.KV that keeps one file per key under a base directory.
type Store struct {
	d *diskv.Diskv
}

// Open creates the base directory if needed and returns a diskv-backed store.
func Open(basePath string) (*Store, error) {
	if err := os.MkdirAll(basePath, 0700); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &Store{
		d: diskv.New(diskv.Options{
			BasePath:     basePath,
			Transform:    flatTransform,
			CacheSizeMax: 1024 * 1024, // 1MB
			FilePerm:     0600,
			PathPerm:     0700,
		}),
	}, nil
}

// every key lives directly under the base path
func flatTransform(string) []string {
	return []string{}
}

func validKey(key string) error {
	if key == "" || strings.ContainsAny(key, `/\`) {
		return fmt.Errorf("invalid key %q", key)
	}
	return nil
}

func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	if err := validKey(key); err != nil {
		return nil, err
	}
	val, err := s.d.Read(key)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}
	return val, nil
}

func (s *Store) Set(_ context.Context, key string, value []byte) error {
	if err := validKey(key); err != nil {
		return err
	}
	return s.d.Write(key, value)
}

func (s *Store) Delete(_ context.Context, key string) error {
	if err := validKey(key); err != nil {
		return err
	}
	if err := s.d.Erase(key); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// Keys lists every stored key, sorted.
func (s *Store) Keys(ctx context.Context) ([]string, error) {
	var keys []string
	for key := range s.d.Keys(ctx.Done()) {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	return keys, ctx.Err()
}

func (s *Store) Close() error {
	return nil
}
