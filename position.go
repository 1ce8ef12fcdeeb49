package tryinvest

import (
	"context"
	"fmt"
	"strings"

	"github.com/etnz/tryinvest/date"
	"github.com/etnz/tryinvest/quote"
)

// Pricer provides market prices to the ledger. It never fails: an unknown price is zero.
//
// *quote.Source is the production Pricer.
type Pricer interface {
	// CurrentPriceWithChange returns the current price and its change since the previous close.
	CurrentPriceWithChange(ctx context.Context, symbol string) quote.Quote
	// HistoricalCloses returns the last n closes, most recent last.
	HistoricalCloses(ctx context.Context, symbol string, n int) []quote.Point
	// Today returns the current date on the exchange.
	Today() date.Date
}

// Position is the ordered collection of shares held for one symbol, oldest first.
//
// Its price fields are only updated by Refresh: Value, GainLoss and DayChange read the price
// of the last refresh and never hit the network.
type Position struct {
	tag       string
	shares    []Share
	costBasis Money // sum of the shares' cost basis
	next      int   // index of the next share id

	price  Money
	change Money // per share, since the previous close
}

// NewPosition returns an empty position for symbol tag.
func NewPosition(tag string) *Position {
	tag = NormalizeSymbol(tag)
	return &Position{tag: tag, costBasis: USD(0), price: USD(0), change: USD(0)}
}

// NormalizeSymbol returns the canonical form of a ticker symbol.
func NormalizeSymbol(symbol string) string { return strings.ToUpper(strings.TrimSpace(symbol)) }

func (p *Position) Tag() string           { return p.tag }
func (p *Position) NumShares() int        { return len(p.shares) }
func (p *Position) TotalCostBasis() Money { return p.costBasis }
func (p *Position) CurrentPrice() Money   { return p.price }

// DayChange returns the price change of one share since the previous close.
func (p *Position) DayChange() Money { return p.change }

// Shares returns a copy of the shares, oldest first.
func (p *Position) Shares() []Share { return append([]Share(nil), p.shares...) }

// AddShares appends count new shares bought at cost on day. A zero day is today.
func (p *Position) AddShares(cost Money, day date.Date, count int) error {
	if count <= 0 {
		return fmt.Errorf("adding %d shares of %s: %w", count, p.tag, ErrInvalidQuantity)
	}
	if day.IsZero() {
		day = date.Today()
	}
	for range count {
		p.append(Share{costBasis: cost, buyDate: day})
	}
	return nil
}

// AddSharesAtMarket refreshes the price then appends count shares bought at it.
func (p *Position) AddSharesAtMarket(ctx context.Context, pricer Pricer, count int) error {
	if count <= 0 {
		return fmt.Errorf("adding %d shares of %s: %w", count, p.tag, ErrInvalidQuantity)
	}
	p.Refresh(ctx, pricer)
	if p.price.IsZero() {
		return fmt.Errorf("buying %s: %w", p.tag, ErrPriceUnavailable)
	}
	return p.AddShares(p.price, pricer.Today(), count)
}

// append takes ownership of s, giving it a new id in this position.
func (p *Position) append(s Share) {
	s.id = shareID(p.tag, p.next)
	p.next++
	p.shares = append(p.shares, s)
	p.costBasis = p.costBasis.Add(s.costBasis)
}

// Merge moves the shares of other at the end of p if both hold the same symbol, and reports
// whether it did. Merged shares are given new ids; other is left empty.
func (p *Position) Merge(other *Position) bool {
	if other == nil || other.tag != p.tag {
		return false
	}
	if other == p {
		return true
	}
	for _, s := range other.shares {
		p.append(s)
	}
	if p.price.IsZero() {
		p.price, p.change = other.price, other.change
	}
	other.shares = nil
	other.costBasis = USD(0)
	return true
}

// RemoveOldestShare removes the first bought share and returns it.
func (p *Position) RemoveOldestShare() (Share, error) {
	if len(p.shares) == 0 {
		return Share{}, fmt.Errorf("selling %s: %w", p.tag, ErrEmptyPosition)
	}
	s := p.shares[0]
	p.shares[0] = Share{}
	p.shares = p.shares[1:]
	p.costBasis = p.costBasis.Sub(s.costBasis)
	return s, nil
}

// Refresh updates the current price and day change from pricer.
func (p *Position) Refresh(ctx context.Context, pricer Pricer) {
	q := pricer.CurrentPriceWithChange(ctx, p.tag)
	p.price, p.change = USD(q.Price), USD(q.Change)
}

// Value returns the market value of the position at the last refreshed price.
func (p *Position) Value() Money { return p.price.Times(len(p.shares)) }

// DayChangeValue returns the change of Value since the previous close.
func (p *Position) DayChangeValue() Money { return p.change.Times(len(p.shares)) }

// GainLoss returns the unrealized gain of the position.
func (p *Position) GainLoss() Money { return p.Value().Sub(p.costBasis) }

// HistoricalTrend returns the last n closes of the symbol, most recent last.
func (p *Position) HistoricalTrend(ctx context.Context, pricer Pricer, n int) []quote.Point {
	return pricer.HistoricalCloses(ctx, p.tag, n)
}
