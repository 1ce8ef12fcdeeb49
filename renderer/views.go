package renderer

import (
	"github.com/etnz/tryinvest"
	"github.com/etnz/tryinvest/date"
	"github.com/etnz/tryinvest/quote"
	"github.com/etnz/tryinvest/symbols"
)

// The views below hold preformatted values, so that templates never compute.

// Holdings is the view of a portfolio.
type Holdings struct {
	Name         string
	AsOf         string
	Cash         string
	InitialValue string
	CurrentValue string
	GainLoss     string
	DayChange    string
	Positions    []PositionRow
}

// PositionRow is the view of a position in Holdings.
type PositionRow struct {
	Symbol    string
	Shares    int
	Price     string
	DayChange string
	Value     string
	CostBasis string
	GainLoss  string
}

// NewHoldings returns the view of p at its last refreshed prices. A zero asOf is not shown.
func NewHoldings(p *tryinvest.Portfolio, asOf date.Date) *Holdings {
	h := &Holdings{
		Name:         p.Name(),
		Cash:         p.Cash().String(),
		InitialValue: p.InitialValue().String(),
		CurrentValue: p.CurrentValue().String(),
		GainLoss:     p.TotalGainLoss().SignedString(),
		DayChange:    p.DayChange().SignedString(),
	}
	if !asOf.IsZero() {
		h.AsOf = asOf.String()
	}
	for _, pos := range p.Positions() {
		h.Positions = append(h.Positions, PositionRow{
			Symbol:    pos.Tag(),
			Shares:    pos.NumShares(),
			Price:     pos.CurrentPrice().String(),
			DayChange: pos.DayChange().SignedString(),
			Value:     pos.Value().String(),
			CostBasis: pos.TotalCostBasis().String(),
			GainLoss:  pos.GainLoss().SignedString(),
		})
	}
	return h
}

// Lots is the view of the shares of a position.
type Lots struct {
	Symbol string
	Price  string
	Lots   []LotRow
}

// LotRow is the view of a share.
type LotRow struct {
	ID        string
	BuyDate   string
	CostBasis string
	GainLoss  string
}

// NewLots returns the view of the shares of pos, oldest first. pos may be nil.
func NewLots(symbol string, pos *tryinvest.Position) *Lots {
	l := &Lots{Symbol: tryinvest.NormalizeSymbol(symbol)}
	if pos == nil {
		return l
	}
	l.Price = pos.CurrentPrice().String()
	for _, s := range pos.Shares() {
		l.Lots = append(l.Lots, LotRow{
			ID:        s.ID(),
			BuyDate:   s.BuyDate().String(),
			CostBasis: s.CostBasis().String(),
			GainLoss:  s.GainLoss(pos.CurrentPrice()).SignedString(),
		})
	}
	return l
}

// Trend is the view of recent closes.
type Trend struct {
	Symbol string
	Points []TrendRow
}

// TrendRow is a close, Offset days from today.
type TrendRow struct {
	Offset int
	Price  string
}

// NewTrend returns the view of points, most recent last.
func NewTrend(symbol string, points []quote.Point) *Trend {
	t := &Trend{Symbol: tryinvest.NormalizeSymbol(symbol)}
	for _, p := range points {
		t.Points = append(t.Points, TrendRow{Offset: p.Offset, Price: tryinvest.USD(p.Price).String()})
	}
	return t
}

// Book is the view of the portfolios.
type Book struct {
	Portfolios []BookRow
}

// BookRow is a portfolio in Book. Index is 1-based.
type BookRow struct {
	Index    int
	Name     string
	Value    string
	GainLoss string
	Current  bool
}

// NewBook returns the view of b.
func NewBook(b *tryinvest.Book) *Book {
	v := &Book{}
	for i, p := range b.Portfolios() {
		v.Portfolios = append(v.Portfolios, BookRow{
			Index:    i + 1,
			Name:     p.Name(),
			Value:    p.CurrentValue().String(),
			GainLoss: p.TotalGainLoss().SignedString(),
			Current:  i == b.CurrentIndex(),
		})
	}
	return v
}

// Quote is the view of a symbol price.
type Quote struct {
	Symbol     string
	Name       string
	Price      string
	Change     string
	Available  bool
	MarketOpen bool
}

// NewQuote returns the view of q. A zero price is unavailable.
func NewQuote(symbol, name string, q quote.Quote, marketOpen bool) *Quote {
	return &Quote{
		Symbol:     tryinvest.NormalizeSymbol(symbol),
		Name:       name,
		Price:      tryinvest.USD(q.Price).String(),
		Change:     tryinvest.USD(q.Change).SignedString(),
		Available:  !q.Price.IsZero(),
		MarketOpen: marketOpen,
	}
}

// Search is the view of symbol search results.
type Search struct {
	Prefix  string
	Results []symbols.Symbol
}

// NewSearch returns the view of results.
func NewSearch(prefix string, results []symbols.Symbol) *Search {
	return &Search{Prefix: prefix, Results: results}
}
