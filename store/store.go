// Package store persists records, the JSON documents of the portfolios and of the price cache.
//
// The backends live in sub-packages: filestore, sqlitestore, pgstore, redisstore and s3store.
package store

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"regexp"
	"sync"
)

// Record keys.
const (
	PortfoliosKey = "portfolios"
	PricesKey     = "prices"
)

// ErrNotFound is returned by Load when no record was ever saved under the key.
//
// A record saved empty is found: Load returns a non nil empty slice for it.
var ErrNotFound = errors.New("record not found")

// ErrInvalidKey is returned for keys that are not plain identifiers.
var ErrInvalidKey = errors.New("invalid record key")

// Store loads and saves records by key.
type Store interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
}

var validKey = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_.-]*$`)

// CheckKey returns an error if key cannot be used as a record key.
func CheckKey(key string) error {
	if !validKey.MatchString(key) {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return nil
}

// Nop never finds anything and discards what it saves.
type Nop struct{}

func (Nop) Load(_ context.Context, key string) ([]byte, error) {
	return nil, fmt.Errorf("%s: %w", key, ErrNotFound)
}

func (Nop) Save(context.Context, string, []byte) error { return nil }

// Memory is an in-process Store.
type Memory struct {
	mu      sync.Mutex
	records map[string][]byte
	// Saves counts the Save calls per key.
	Saves map[string]int
}

// NewMemory returns an empty Memory store.
func NewMemory() *Memory {
	return &Memory{records: make(map[string][]byte), Saves: make(map[string]int)}
}

func (m *Memory) Load(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.records[key]
	if !ok {
		return nil, fmt.Errorf("%s: %w", key, ErrNotFound)
	}
	return append([]byte{}, data...), nil
}

func (m *Memory) Save(_ context.Context, key string, data []byte) error {
	if err := CheckKey(key); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[key] = append([]byte{}, data...)
	m.Saves[key]++
	return nil
}

// Records returns a copy of the stored records.
func (m *Memory) Records() map[string][]byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return maps.Clone(m.records)
}

var (
	_ Store = Nop{}
	_ Store = (*Memory)(nil)
)
