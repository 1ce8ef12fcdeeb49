// Package session ties a Book of portfolios, the price source and a store together.
//
// A Session is what the command line works with: it loads both records on Open, falls back to
// fresh state when they are missing or corrupt, and saves the book after every trade.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/etnz/tryinvest"
	"github.com/etnz/tryinvest/pricecache"
	"github.com/etnz/tryinvest/quote"
	"github.com/etnz/tryinvest/store"
	"github.com/rs/zerolog"
)

// Directory tells which symbols can be traded.
type Directory interface {
	Has(symbol string) bool
}

// Session is an open book of portfolios.
type Session struct {
	store   store.Store
	book    *tryinvest.Book
	prices  *quote.Source
	symbols Directory
	log     zerolog.Logger
}

type options struct {
	log     zerolog.Logger
	symbols Directory
	source  []quote.Option
}

// Option configures Open.
type Option func(*options)

// WithLogger sets the logger of the session and of its price source.
func WithLogger(l zerolog.Logger) Option { return func(o *options) { o.log = l } }

// WithSymbols rejects buying symbols missing from d.
func WithSymbols(d Directory) Option { return func(o *options) { o.symbols = d } }

// WithSourceOptions configures the price source.
func WithSourceOptions(opts ...quote.Option) Option {
	return func(o *options) { o.source = append(o.source, opts...) }
}

// Open loads the prices and portfolios records from st.
//
// Missing records are a first run: the default book and an empty price record are saved
// right away. Corrupt records are logged and replaced by fresh state in memory, the stored
// record is only overwritten by the next save.
func Open(ctx context.Context, st store.Store, f quote.Fetcher, opts ...Option) (*Session, error) {
	o := options{log: zerolog.Nop()}
	for _, opt := range opts {
		opt(&o)
	}
	s := &Session{
		store:   st,
		symbols: o.symbols,
		log:     o.log.With().Str("component", "session").Logger(),
	}

	cache, err := s.loadPrices(ctx)
	if err != nil {
		return nil, err
	}
	s.prices = quote.NewSource(f, cache, append([]quote.Option{quote.WithLogger(o.log)}, o.source...)...)

	if s.book, err = s.loadBook(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Session) loadPrices(ctx context.Context) (*pricecache.Cache, error) {
	persister := pricecache.PersisterFunc(s.savePrices)
	data, err := s.store.Load(ctx, store.PricesKey)
	switch {
	case errors.Is(err, store.ErrNotFound):
		s.log.Info().Str("key", store.PricesKey).Msg("no price record, starting an empty one")
		cache := pricecache.New(persister)
		if err := s.savePrices(ctx, cache.Snapshot()); err != nil {
			return nil, err
		}
		return cache, nil
	case err != nil:
		return nil, fmt.Errorf("loading prices: %w", err)
	}

	snapshot, err := pricecache.Decode(data)
	if err != nil {
		s.log.Error().Err(err).Str("key", store.PricesKey).Msg("ignoring corrupt price record")
		return pricecache.New(persister), nil
	}
	return pricecache.NewFromSnapshot(snapshot, persister), nil
}

func (s *Session) savePrices(ctx context.Context, snapshot pricecache.Snapshot) error {
	data, err := pricecache.Encode(snapshot)
	if err != nil {
		return fmt.Errorf("encoding prices: %w", err)
	}
	if err := s.store.Save(ctx, store.PricesKey, data); err != nil {
		return fmt.Errorf("saving prices: %w", err)
	}
	return nil
}

func (s *Session) loadBook(ctx context.Context) (*tryinvest.Book, error) {
	data, err := s.store.Load(ctx, store.PortfoliosKey)
	switch {
	case errors.Is(err, store.ErrNotFound):
		s.log.Info().Str("key", store.PortfoliosKey).Msg("first run, creating the default portfolio")
		s.book = tryinvest.DefaultBook()
		if err := s.Save(ctx); err != nil {
			return nil, err
		}
		return s.book, nil
	case err != nil:
		return nil, fmt.Errorf("loading portfolios: %w", err)
	}

	book, err := tryinvest.DecodeBook(data)
	if err != nil {
		s.log.Error().Err(err).Str("key", store.PortfoliosKey).Msg("ignoring corrupt portfolios record")
		return tryinvest.DefaultBook(), nil
	}
	return book, nil
}

// Book returns the portfolios.
func (s *Session) Book() *tryinvest.Book { return s.book }

// Current returns the current portfolio.
func (s *Session) Current() *tryinvest.Portfolio { return s.book.Current() }

// Prices returns the price source.
func (s *Session) Prices() *quote.Source { return s.prices }

// Save persists the book.
func (s *Session) Save(ctx context.Context) error {
	data, err := json.Marshal(s.book)
	if err != nil {
		return fmt.Errorf("encoding portfolios: %w", err)
	}
	if err := s.store.Save(ctx, store.PortfoliosKey, data); err != nil {
		return fmt.Errorf("saving portfolios: %w", err)
	}
	return nil
}

// Refresh refreshes the prices of the current portfolio and revalues it.
func (s *Session) Refresh(ctx context.Context) { s.book.Current().Refresh(ctx, s.prices) }

// Buy buys quantity shares of symbol in the current portfolio, then saves.
func (s *Session) Buy(ctx context.Context, symbol string, quantity int) error {
	symbol = tryinvest.NormalizeSymbol(symbol)
	if s.symbols != nil && !s.symbols.Has(symbol) {
		return fmt.Errorf("buying %s: %w", symbol, tryinvest.ErrUnknownSymbol)
	}
	p := s.book.Current()
	if err := p.Buy(ctx, s.prices, symbol, quantity); err != nil {
		return err
	}
	s.log.Info().Str("portfolio", p.Name()).Str("symbol", symbol).Int("quantity", quantity).
		Stringer("cash", p.Cash()).Msg("bought")
	return s.Save(ctx)
}

// Sell sells the quantity oldest shares of symbol from the current portfolio, then saves.
func (s *Session) Sell(ctx context.Context, symbol string, quantity int) ([]tryinvest.Share, error) {
	p := s.book.Current()
	sold, err := p.Sell(ctx, s.prices, symbol, quantity)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("portfolio", p.Name()).Str("symbol", tryinvest.NormalizeSymbol(symbol)).
		Int("quantity", quantity).Stringer("cash", p.Cash()).Msg("sold")
	return sold, s.Save(ctx)
}

// Create adds a portfolio, makes it current, then saves.
func (s *Session) Create(ctx context.Context, name string, cash tryinvest.Money) (*tryinvest.Portfolio, error) {
	p, err := s.book.Create(name, cash)
	if err != nil {
		return nil, err
	}
	return p, s.Save(ctx)
}

// Delete removes the portfolio designated by ref (name or 1-based index), then saves.
func (s *Session) Delete(ctx context.Context, ref string) error {
	i, err := s.book.Find(ref)
	if err != nil {
		return err
	}
	if err := s.book.Delete(i); err != nil {
		return err
	}
	return s.Save(ctx)
}

// Select makes the portfolio designated by ref current, then saves.
func (s *Session) Select(ctx context.Context, ref string) error {
	i, err := s.book.Find(ref)
	if err != nil {
		return err
	}
	if err := s.book.Select(i); err != nil {
		return err
	}
	return s.Save(ctx)
}
