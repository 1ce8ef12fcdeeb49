// Package quote supplies current and historical prices to the ledger.
//
// A Source sits in front of a remote Fetcher and a price cache. Its error-returning methods
// (Latest, LastClose, Trend, CloseOn) keep the failure detail; the ledger-facing methods
// (CurrentPrice, PreviousClose, HistoricalCloses, ...) never fail: they log the error and
// return a zero price instead, so that the simulator stays usable on flaky market data.
package quote

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/etnz/tryinvest/date"
	"github.com/etnz/tryinvest/pricecache"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// recentDays is the number of daily closes fetched to compute a previous close and its change.
const recentDays = 5

var (
	// ErrUnavailable wraps any failure of the remote price provider.
	ErrUnavailable = errors.New("price unavailable")
	// ErrInsufficientHistory is returned when fewer closes than needed were returned.
	ErrInsufficientHistory = errors.New("insufficient price history")
	// ErrNoHistory is returned when the fetcher cannot look up past closes by date.
	ErrNoHistory = errors.New("historical prices not supported")
)

// Close is the closing price of a symbol on a given day.
type Close struct {
	Day   date.Date
	Price decimal.Decimal
}

// Fetcher is a remote price provider.
type Fetcher interface {
	// Latest returns the latest traded price.
	Latest(ctx context.Context, symbol string) (decimal.Decimal, error)
	// RecentCloses returns up to n daily closes of the sessions before today, most recent
	// first. Today's bar is never returned, even after the close.
	RecentCloses(ctx context.Context, symbol string, n int) ([]Close, error)
}

// HistoryFetcher is implemented by fetchers able to look up a single past close.
type HistoryFetcher interface {
	CloseOn(ctx context.Context, symbol string, day date.Date) (decimal.Decimal, error)
}

// Quote is a price and its signed change since the prior trading day's close.
type Quote struct {
	Price  decimal.Decimal
	Change decimal.Decimal
}

// Point is a close relative to today: Offset is a (negative) number of days.
type Point struct {
	Offset int
	Price  decimal.Decimal
}

// Source provides prices through a cache in front of a Fetcher.
type Source struct {
	fetcher Fetcher
	cache   *pricecache.Cache
	session date.Session
	now     func() time.Time
	timeout time.Duration
	log     zerolog.Logger
}

// Option configures a Source.
type Option func(*Source)

// WithSession sets the exchange trading session (New York by default).
func WithSession(s date.Session) Option { return func(src *Source) { src.session = s } }

// WithClock sets the clock used to decide whether the market is open and what "yesterday" is.
func WithClock(now func() time.Time) Option { return func(src *Source) { src.now = now } }

// WithTimeout bounds every remote call. Zero means no bound beyond the caller's context.
func WithTimeout(d time.Duration) Option { return func(src *Source) { src.timeout = d } }

// WithLogger sets the logger used to report collapsed failures.
func WithLogger(l zerolog.Logger) Option {
	return func(src *Source) { src.log = l.With().Str("component", "quote").Logger() }
}

// NewSource returns a Source reading through cache. A nil cache is a fresh, non persisted one.
func NewSource(f Fetcher, cache *pricecache.Cache, opts ...Option) *Source {
	if cache == nil {
		cache = pricecache.New(nil)
	}
	s := &Source{
		fetcher: f,
		cache:   cache,
		session: date.NewYorkSession(),
		now:     time.Now,
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Cache returns the price cache of s.
func (s *Source) Cache() *pricecache.Cache { return s.cache }

// MarketOpen reports whether the exchange is in its continuous trading session right now.
func (s *Source) MarketOpen() bool { return s.session.IsOpen(s.now()) }

// Today returns the exchange-local date.
func (s *Source) Today() date.Date { return s.session.Today(s.now()) }

// yesterday is recomputed on every call: the cache key must roll with the calendar.
func (s *Source) yesterday() date.Date { return s.Today().Add(-1) }

func (s *Source) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}

func (s *Source) fetchLatest(ctx context.Context, symbol string) (decimal.Decimal, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	price, err := s.fetcher.Latest(ctx, symbol)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: latest %s: %v", ErrUnavailable, symbol, err)
	}
	return price, nil
}

func (s *Source) fetchCloses(ctx context.Context, symbol string, n int) ([]Close, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	closes, err := s.fetcher.RecentCloses(ctx, symbol, n)
	if err != nil {
		return nil, fmt.Errorf("%w: closes %s: %v", ErrUnavailable, symbol, err)
	}
	return closes, nil
}

// LastClose returns the close of the most recently completed trading day and its change from
// the close before it.
//
// The result is cached under yesterday's date. On a miss the last five closes are fetched in a
// single call. Failed fetches are not cached, so the next call tries again.
func (s *Source) LastClose(ctx context.Context, symbol string) (Quote, error) {
	key := s.yesterday()
	if e, ok := s.cache.Lookup(symbol, key); ok {
		// scalar entries carry no change.
		return Quote{Price: e.Close, Change: e.DayChange}, nil
	}

	closes, err := s.fetchCloses(ctx, symbol, recentDays)
	if err != nil {
		return Quote{}, err
	}
	if len(closes) < 2 {
		return Quote{}, fmt.Errorf("%w: %s: got %d closes, need 2", ErrInsufficientHistory, symbol, len(closes))
	}
	q := Quote{Price: closes[0].Price, Change: closes[0].Price.Sub(closes[1].Price)}

	if err := s.cache.Store(ctx, symbol, key, pricecache.CloseEntry(q.Price, q.Change)); err != nil {
		// the price is good, only its persistence failed.
		s.log.Error().Err(err).Str("symbol", symbol).Stringer("day", key).Msg("cannot persist price cache")
	}
	return q, nil
}

// Latest returns the current price and its change since the previous close.
//
// When the market is open the live price is fetched, otherwise it is the previous close.
func (s *Source) Latest(ctx context.Context, symbol string) (Quote, error) {
	if !s.MarketOpen() {
		return s.LastClose(ctx, symbol)
	}
	price, err := s.fetchLatest(ctx, symbol)
	if err != nil {
		return Quote{}, err
	}
	prev, err := s.LastClose(ctx, symbol)
	if err != nil {
		// the live price is still worth returning.
		s.log.Warn().Err(err).Str("symbol", symbol).Msg("no previous close, day change unknown")
		return Quote{Price: price}, nil
	}
	return Quote{Price: price, Change: price.Sub(prev.Price)}, nil
}

// Trend returns the last n closes as offsets in days from today, most recent last.
func (s *Source) Trend(ctx context.Context, symbol string, n int) ([]Point, error) {
	if n <= 0 {
		return nil, nil
	}
	closes, err := s.fetchCloses(ctx, symbol, n)
	if err != nil {
		return nil, err
	}
	today := s.Today()
	points := make([]Point, 0, len(closes))
	for i := len(closes) - 1; i >= 0; i-- {
		points = append(points, Point{Offset: closes[i].Day.Sub(today), Price: closes[i].Price})
	}
	return points, nil
}

// CloseOn returns the close of symbol on day, cached as a bare price under that day.
func (s *Source) CloseOn(ctx context.Context, symbol string, day date.Date) (decimal.Decimal, error) {
	if e, ok := s.cache.Lookup(symbol, day); ok {
		return e.Close, nil
	}
	h, ok := s.fetcher.(HistoryFetcher)
	if !ok {
		return decimal.Decimal{}, ErrNoHistory
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	price, err := h.CloseOn(ctx, symbol, day)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: close of %s on %v: %v", ErrUnavailable, symbol, day, err)
	}
	if err := s.cache.Store(ctx, symbol, day, pricecache.ScalarEntry(price)); err != nil {
		s.log.Error().Err(err).Str("symbol", symbol).Stringer("day", day).Msg("cannot persist price cache")
	}
	return price, nil
}
