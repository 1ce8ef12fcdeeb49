// Package pricecache stores previously fetched prices keyed by (day, symbol).
//
// The cache is a permanent historical record: entries are never evicted, and a day key is
// never reused for a different trading session, so the only "stale" entry is the one a caller
// keeps looking up after the calendar moved on. Every Store writes the whole cache through the
// injected Persister.
package pricecache

import (
	"context"
	"maps"
	"slices"

	"github.com/etnz/tryinvest/date"
	"github.com/shopspring/decimal"
)

// Entry is a cached price.
//
// Scalar entries are bare price snapshots (the intraday convention of older price files),
// the others are previous-day closes with their day change.
type Entry struct {
	Close     decimal.Decimal
	DayChange decimal.Decimal
	Scalar    bool
}

// ScalarEntry returns a bare price entry.
func ScalarEntry(price decimal.Decimal) Entry { return Entry{Close: price, Scalar: true} }

// CloseEntry returns a previous-close entry.
func CloseEntry(close, change decimal.Decimal) Entry { return Entry{Close: close, DayChange: change} }

// Snapshot is a copy of the cache content: day -> symbol -> entry.
type Snapshot map[date.Date]map[string]Entry

// Persister receives the full cache content after every change.
type Persister interface {
	PersistPrices(ctx context.Context, s Snapshot) error
}

// NopPersister discards snapshots.
type NopPersister struct{}

func (NopPersister) PersistPrices(context.Context, Snapshot) error { return nil }

// PersisterFunc adapts a function to the Persister interface.
type PersisterFunc func(ctx context.Context, s Snapshot) error

func (f PersisterFunc) PersistPrices(ctx context.Context, s Snapshot) error { return f(ctx, s) }

// Cache is a (day, symbol) keyed price store.
type Cache struct {
	days      map[date.Date]map[string]Entry
	persister Persister
}

// New returns an empty Cache writing through p. A nil p is a NopPersister.
func New(p Persister) *Cache {
	if p == nil {
		p = NopPersister{}
	}
	return &Cache{
		days:      make(map[date.Date]map[string]Entry),
		persister: p,
	}
}

// NewFromSnapshot returns a Cache pre-filled with s, typically decoded from a previous session.
// Loading does not trigger the persister.
func NewFromSnapshot(s Snapshot, p Persister) *Cache {
	c := New(p)
	for day, symbols := range s {
		c.days[day] = maps.Clone(symbols)
	}
	return c
}

// Lookup returns the entry for (symbol, day) and whether it is present.
func (c *Cache) Lookup(symbol string, day date.Date) (Entry, bool) {
	symbols, ok := c.days[day]
	if !ok {
		return Entry{}, false
	}
	e, ok := symbols[symbol]
	return e, ok
}

// Store inserts or overwrites the entry for (symbol, day), then hands the whole cache to the
// persister. The entry is kept even if the persister fails.
func (c *Cache) Store(ctx context.Context, symbol string, day date.Date, e Entry) error {
	symbols, ok := c.days[day]
	if !ok {
		symbols = make(map[string]Entry)
		c.days[day] = symbols
	}
	symbols[symbol] = e
	return c.persister.PersistPrices(ctx, c.Snapshot())
}

// Snapshot returns a deep copy of the cache content.
func (c *Cache) Snapshot() Snapshot {
	s := make(Snapshot, len(c.days))
	for day, symbols := range c.days {
		s[day] = maps.Clone(symbols)
	}
	return s
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	n := 0
	for _, symbols := range c.days {
		n += len(symbols)
	}
	return n
}

// Days returns the cached days in chronological order.
func (c *Cache) Days() []date.Date {
	days := slices.Collect(maps.Keys(c.days))
	slices.SortFunc(days, func(a, b date.Date) int { return a.Sub(b) })
	return days
}
