package tryinvest

import (
	"context"
	"testing"

	"github.com/etnz/tryinvest/date"
	"github.com/etnz/tryinvest/quote"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

var (
	day1 = date.New(2024, 3, 1)
	day3 = date.New(2024, 3, 3)
)

// fakePricer serves fixed prices and counts requests. Unknown symbols are priced 0.
type fakePricer struct {
	prices  map[string]float64
	changes map[string]float64
	today   date.Date
	calls   int
}

func newPricer(prices map[string]float64) *fakePricer {
	return &fakePricer{prices: prices, changes: map[string]float64{}, today: day1}
}

func (f *fakePricer) CurrentPriceWithChange(_ context.Context, symbol string) quote.Quote {
	f.calls++
	return quote.Quote{
		Price:  decimal.NewFromFloat(f.prices[symbol]),
		Change: decimal.NewFromFloat(f.changes[symbol]),
	}
}

func (f *fakePricer) HistoricalCloses(_ context.Context, symbol string, n int) []quote.Point {
	p, ok := f.prices[symbol]
	if !ok {
		return nil
	}
	points := make([]quote.Point, 0, n)
	for i := n; i >= 1; i-- {
		points = append(points, quote.Point{Offset: -i, Price: decimal.NewFromFloat(p)})
	}
	return points
}

func (f *fakePricer) Today() date.Date { return f.today }

// assertMoney checks m is want USD.
func assertMoney(t *testing.T, want float64, m Money, msgAndArgs ...any) {
	t.Helper()
	assert.True(t, USD(want).Equal(m), append([]any{"want %v got %v", USD(want), m}, msgAndArgs...)...)
}

// position returns a position of tag with one share per cost, all bought on day.
func position(t *testing.T, tag string, day date.Date, costs ...float64) *Position {
	t.Helper()
	p := NewPosition(tag)
	for _, c := range costs {
		if err := p.AddShares(USD(c), day, 1); err != nil {
			t.Fatal(err)
		}
	}
	return p
}
