// Package redisstore stores records as Redis string values.
package redisstore

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"

	"github.com/etnz/tryinvest/store"
	"github.com/redis/go-redis/v9"
)

// Config holds the connection parameters.
type Config struct {
	Addr       string
	Password   string
	DB         int
	TLSEnabled bool
	// Prefix is prepended to record keys, "tryinvest:" by default.
	Prefix string
}

// Store keeps the record of key under <prefix><key>.
type Store struct {
	rdb    *redis.Client
	prefix string
}

// New connects to Redis and pings it.
func New(ctx context.Context, cfg Config) (*Store, error) {
	opts := &redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	}
	if cfg.TLSEnabled {
		opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redisstore: ping: %w", err)
	}
	return NewFromClient(rdb, cfg.Prefix), nil
}

// NewFromClient returns a Store using an existing client.
func NewFromClient(rdb *redis.Client, prefix string) *Store {
	if prefix == "" {
		prefix = "tryinvest:"
	}
	return &Store{rdb: rdb, prefix: prefix}
}

// Close closes the Redis connection.
func (s *Store) Close() error { return s.rdb.Close() }

// Key returns the Redis key of a record.
func (s *Store) Key(key string) string { return s.prefix + key }

func (s *Store) Load(ctx context.Context, key string) ([]byte, error) {
	data, err := s.rdb.Get(ctx, s.Key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("redisstore: %s: %w", key, store.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("redisstore: load %s: %w", key, err)
	}
	if data == nil {
		data = []byte{}
	}
	return data, nil
}

func (s *Store) Save(ctx context.Context, key string, data []byte) error {
	if err := store.CheckKey(key); err != nil {
		return err
	}
	if err := s.rdb.Set(ctx, s.Key(key), data, 0).Err(); err != nil {
		return fmt.Errorf("redisstore: save %s: %w", key, err)
	}
	return nil
}

var _ store.Store = (*Store)(nil)
