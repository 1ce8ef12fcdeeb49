// Package quotetest provides an in-memory quote.Fetcher for tests.
package quotetest

import (
	"context"
	"errors"
	"fmt"

	"github.com/etnz/tryinvest/date"
	"github.com/etnz/tryinvest/quote"
	"github.com/shopspring/decimal"
)

// ErrUnknownSymbol is returned for symbols the Fetcher has no data for.
var ErrUnknownSymbol = errors.New("unknown symbol")

// Fetcher serves fixed prices and counts remote calls.
type Fetcher struct {
	latest  map[string]decimal.Decimal
	closes  map[string][]quote.Close // most recent first
	Fail    error                    // when set every call fails with it
	Calls   int
	History int // number of RecentCloses calls
}

// New returns an empty Fetcher.
func New() *Fetcher {
	return &Fetcher{
		latest: make(map[string]decimal.Decimal),
		closes: make(map[string][]quote.Close),
	}
}

// SetLatest sets the live price of symbol.
func (f *Fetcher) SetLatest(symbol string, price float64) *Fetcher {
	f.latest[symbol] = decimal.NewFromFloat(price)
	return f
}

// SetCloses sets the daily closes of symbol, the first one being on last, then one day before
// each, most recent first.
func (f *Fetcher) SetCloses(symbol string, last date.Date, prices ...float64) *Fetcher {
	closes := make([]quote.Close, 0, len(prices))
	for i, p := range prices {
		closes = append(closes, quote.Close{Day: last.Add(-i), Price: decimal.NewFromFloat(p)})
	}
	f.closes[symbol] = closes
	return f
}

func (f *Fetcher) Latest(ctx context.Context, symbol string) (decimal.Decimal, error) {
	f.Calls++
	if err := f.check(ctx); err != nil {
		return decimal.Decimal{}, err
	}
	p, ok := f.latest[symbol]
	if !ok {
		return decimal.Decimal{}, fmt.Errorf("%w %q", ErrUnknownSymbol, symbol)
	}
	return p, nil
}

func (f *Fetcher) RecentCloses(ctx context.Context, symbol string, n int) ([]quote.Close, error) {
	f.Calls++
	f.History++
	if err := f.check(ctx); err != nil {
		return nil, err
	}
	closes, ok := f.closes[symbol]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownSymbol, symbol)
	}
	if len(closes) > n {
		closes = closes[:n]
	}
	return append([]quote.Close(nil), closes...), nil
}

func (f *Fetcher) CloseOn(ctx context.Context, symbol string, day date.Date) (decimal.Decimal, error) {
	f.Calls++
	if err := f.check(ctx); err != nil {
		return decimal.Decimal{}, err
	}
	for _, c := range f.closes[symbol] {
		if c.Day == day {
			return c.Price, nil
		}
	}
	return decimal.Decimal{}, fmt.Errorf("%w %q on %v", ErrUnknownSymbol, symbol, day)
}

func (f *Fetcher) check(ctx context.Context) error {
	if f.Fail != nil {
		return f.Fail
	}
	return ctx.Err()
}

var _ quote.Fetcher = (*Fetcher)(nil)
var _ quote.HistoryFetcher = (*Fetcher)(nil)
