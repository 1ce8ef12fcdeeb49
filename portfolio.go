package tryinvest

import (
	"context"
	"fmt"
	"slices"
)

// Portfolio is a named collection of positions plus uninvested cash.
//
// It holds at most one Position per symbol, in the order they were first bought.
type Portfolio struct {
	name         string
	positions    []*Position
	cash         Money
	initialValue Money
	currentValue Money
}

// NewPortfolio returns an empty portfolio funded with cash.
func NewPortfolio(name string, cash Money) *Portfolio {
	p := &Portfolio{name: name, cash: cash, initialValue: cash}
	p.Revalue()
	return p
}

func (p *Portfolio) Name() string         { return p.name }
func (p *Portfolio) Cash() Money          { return p.cash }
func (p *Portfolio) InitialValue() Money  { return p.initialValue }
func (p *Portfolio) CurrentValue() Money  { return p.currentValue }
func (p *Portfolio) TotalGainLoss() Money { return p.currentValue.Sub(p.initialValue) }

// Positions returns the positions in the order they were first bought.
func (p *Portfolio) Positions() []*Position { return slices.Clone(p.positions) }

// Lookup returns the position of symbol, or nil.
func (p *Portfolio) Lookup(symbol string) *Position {
	if i := p.index(symbol); i >= 0 {
		return p.positions[i]
	}
	return nil
}

func (p *Portfolio) index(symbol string) int {
	symbol = NormalizeSymbol(symbol)
	return slices.IndexFunc(p.positions, func(pos *Position) bool { return pos.tag == symbol })
}

// AddPositions merges each position into the one holding the same symbol, or appends it.
// Empty positions are ignored.
func (p *Portfolio) AddPositions(positions ...*Position) {
	for _, pos := range positions {
		if pos == nil || pos.NumShares() == 0 {
			continue
		}
		if existing := p.Lookup(pos.tag); existing != nil && existing.Merge(pos) {
			continue
		}
		p.positions = append(p.positions, pos)
	}
}

// DayChange returns the change of the invested value since the previous close, at the last
// refreshed prices.
func (p *Portfolio) DayChange() Money {
	total := USD(0)
	for _, pos := range p.positions {
		total = total.Add(pos.DayChangeValue())
	}
	return total
}

// Revalue recomputes the current value from the cash and the last refreshed prices.
func (p *Portfolio) Revalue() {
	value := p.cash
	for _, pos := range p.positions {
		value = value.Add(pos.Value())
	}
	p.currentValue = value
}

// Refresh refreshes every position price, then revalues.
func (p *Portfolio) Refresh(ctx context.Context, pricer Pricer) {
	for _, pos := range p.positions {
		pos.Refresh(ctx, pricer)
	}
	p.Revalue()
}

// Buy buys quantity shares of symbol at the current price.
//
// The price is fetched once and applies to every share of the batch.
func (p *Portfolio) Buy(ctx context.Context, pricer Pricer, symbol string, quantity int) error {
	if quantity <= 0 {
		return fmt.Errorf("buying %d %s: %w", quantity, symbol, ErrInvalidQuantity)
	}
	pos := NewPosition(symbol)
	pos.Refresh(ctx, pricer)
	if pos.price.IsZero() {
		return fmt.Errorf("buying %s: %w", pos.tag, ErrPriceUnavailable)
	}
	cost := pos.price.Times(quantity)
	if cost.GreaterThan(p.cash) {
		return fmt.Errorf("buying %d %s for %v with %v: %w", quantity, pos.tag, cost, p.cash, ErrInsufficientFunds)
	}
	if err := pos.AddShares(pos.price, pricer.Today(), quantity); err != nil {
		return err
	}
	p.cash = p.cash.Sub(cost)
	if existing := p.Lookup(pos.tag); existing != nil {
		// the existing position gets the fresh price too.
		existing.price, existing.change = pos.price, pos.change
	}
	p.AddPositions(pos)
	p.Revalue()
	return nil
}

// Sell sells the quantity oldest shares of symbol at the current price, and returns them.
//
// An emptied position is removed from the portfolio.
func (p *Portfolio) Sell(ctx context.Context, pricer Pricer, symbol string, quantity int) ([]Share, error) {
	if quantity <= 0 {
		return nil, fmt.Errorf("selling %d %s: %w", quantity, symbol, ErrInvalidQuantity)
	}
	i := p.index(symbol)
	if i < 0 {
		return nil, fmt.Errorf("selling %s: %w", symbol, ErrUnknownSymbol)
	}
	pos := p.positions[i]
	if pos.NumShares() < quantity {
		return nil, fmt.Errorf("selling %d %s, holding %d: %w", quantity, pos.tag, pos.NumShares(), ErrInsufficientShares)
	}
	pos.Refresh(ctx, pricer)
	if pos.price.IsZero() {
		return nil, fmt.Errorf("selling %s: %w", pos.tag, ErrPriceUnavailable)
	}

	sold := make([]Share, 0, quantity)
	for range quantity {
		s, err := pos.RemoveOldestShare()
		if err != nil {
			return sold, err // unreachable: the count was checked
		}
		sold = append(sold, s)
	}
	p.cash = p.cash.Add(pos.price.Times(quantity))
	if pos.NumShares() == 0 {
		p.positions = slices.Delete(p.positions, i, i+1)
	}
	p.Revalue()
	return sold, nil
}
