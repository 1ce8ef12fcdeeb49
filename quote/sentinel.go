package quote

import (
	"context"

	"github.com/etnz/tryinvest/date"
	"github.com/shopspring/decimal"
)

// The methods below are what the ledger calls. They never fail: an unavailable price is zero.

func (s *Source) collapse(err error, symbol, what string) {
	s.log.Warn().Err(err).Str("symbol", symbol).Msgf("%s unavailable, using 0", what)
}

// CurrentPrice returns the current price of symbol, or 0.
func (s *Source) CurrentPrice(ctx context.Context, symbol string) decimal.Decimal {
	return s.CurrentPriceWithChange(ctx, symbol).Price
}

// CurrentPriceWithChange returns the current price of symbol and its day change, or (0, 0).
func (s *Source) CurrentPriceWithChange(ctx context.Context, symbol string) Quote {
	q, err := s.Latest(ctx, symbol)
	if err != nil {
		s.collapse(err, symbol, "current price")
		return Quote{}
	}
	return q
}

// PreviousClose returns the last close of symbol, or 0.
func (s *Source) PreviousClose(ctx context.Context, symbol string) decimal.Decimal {
	return s.PreviousCloseWithChange(ctx, symbol).Price
}

// PreviousCloseWithChange returns the last close of symbol and its day change, or (0, 0).
func (s *Source) PreviousCloseWithChange(ctx context.Context, symbol string) Quote {
	q, err := s.LastClose(ctx, symbol)
	if err != nil {
		s.collapse(err, symbol, "previous close")
		return Quote{}
	}
	return q
}

// HistoricalCloses returns the last n closes of symbol, most recent last, or nothing.
func (s *Source) HistoricalCloses(ctx context.Context, symbol string, n int) []Point {
	points, err := s.Trend(ctx, symbol, n)
	if err != nil {
		s.collapse(err, symbol, "price history")
		return nil
	}
	return points
}

// PriceOn returns the close of symbol on day, or 0.
func (s *Source) PriceOn(ctx context.Context, symbol string, day date.Date) decimal.Decimal {
	price, err := s.CloseOn(ctx, symbol, day)
	if err != nil {
		s.collapse(err, symbol, "close on "+day.String())
		return decimal.Decimal{}
	}
	return price
}
