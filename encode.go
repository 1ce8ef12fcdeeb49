package tryinvest

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/etnz/tryinvest/date"
)

// Persisted records. Field names are the ones of existing data files.

type shareRecord struct {
	CostBasis *Money     `json:"COST_BASIS"`
	BuyDate   *date.Date `json:"BUY_DATE"`
}

type positionRecord struct {
	Tag            string        `json:"TAG"`
	TotalCostBasis Money         `json:"TOTAL_COST_BASIS"`
	Shares         []shareRecord `json:"SHARES"`
}

type portfolioRecord struct {
	Name         string           `json:"NAME"`
	Cash         *Money           `json:"CASH"`
	InitialValue *Money           `json:"INITIAL_VALUE"`
	CurrentValue *Money           `json:"CURRENT_VALUE,omitempty"`
	Positions    []positionRecord `json:"POSITIONS"`
}

func corrupt(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrCorruptState, fmt.Sprintf(format, args...))
}

func (p *Portfolio) record() portfolioRecord {
	cash, initial, current := p.cash, p.initialValue, p.currentValue
	r := portfolioRecord{
		Name:         p.name,
		Cash:         &cash,
		InitialValue: &initial,
		CurrentValue: &current,
		Positions:    make([]positionRecord, 0, len(p.positions)),
	}
	for _, pos := range p.positions {
		pr := positionRecord{
			Tag:            pos.tag,
			TotalCostBasis: pos.costBasis,
			Shares:         make([]shareRecord, 0, len(pos.shares)),
		}
		for _, s := range pos.shares {
			cost, day := s.costBasis, s.buyDate
			pr.Shares = append(pr.Shares, shareRecord{CostBasis: &cost, BuyDate: &day})
		}
		r.Positions = append(r.Positions, pr)
	}
	return r
}

// portfolioFrom validates r and builds the portfolio it describes.
func portfolioFrom(r portfolioRecord) (*Portfolio, error) {
	if r.Name == "" {
		return nil, corrupt("portfolio without NAME")
	}
	if r.Cash == nil {
		return nil, corrupt("portfolio %q without CASH", r.Name)
	}
	p := &Portfolio{name: r.Name, cash: *r.Cash, initialValue: *r.Cash}
	if r.InitialValue != nil {
		p.initialValue = *r.InitialValue
	}
	for _, pr := range r.Positions {
		if NormalizeSymbol(pr.Tag) == "" {
			return nil, corrupt("portfolio %q: position without TAG", r.Name)
		}
		pos := NewPosition(pr.Tag)
		for i, sr := range pr.Shares {
			if sr.CostBasis == nil || sr.CostBasis.IsNegative() {
				return nil, corrupt("portfolio %q: %s share %d: invalid COST_BASIS", r.Name, pos.tag, i)
			}
			if sr.BuyDate == nil || sr.BuyDate.IsZero() {
				return nil, corrupt("portfolio %q: %s share %d: invalid BUY_DATE", r.Name, pos.tag, i)
			}
			pos.append(Share{costBasis: *sr.CostBasis, buyDate: *sr.BuyDate})
		}
		// TOTAL_COST_BASIS is derived from the shares.
		p.AddPositions(pos)
	}
	if r.CurrentValue != nil {
		p.currentValue = *r.CurrentValue
	} else {
		p.Revalue()
	}
	return p, nil
}

// MarshalJSON writes the portfolio record.
func (p *Portfolio) MarshalJSON() ([]byte, error) { return json.Marshal(p.record()) }

// UnmarshalJSON reads a portfolio record. Malformed records fail with ErrCorruptState.
func (p *Portfolio) UnmarshalJSON(data []byte) error {
	var r portfolioRecord
	if err := json.Unmarshal(data, &r); err != nil {
		return fmt.Errorf("%w: %v", ErrCorruptState, err)
	}
	q, err := portfolioFrom(r)
	if err != nil {
		return err
	}
	*p = *q
	return nil
}

// DecodePortfolio decodes a portfolio record.
func DecodePortfolio(data []byte) (*Portfolio, error) {
	p := new(Portfolio)
	if err := p.UnmarshalJSON(data); err != nil {
		return nil, err
	}
	return p, nil
}

type bookRecord struct {
	Portfolios []json.RawMessage `json:"PORTFOLIOS"`
	Current    int               `json:"CURRENT"`
}

// MarshalJSON writes the book record.
func (b *Book) MarshalJSON() ([]byte, error) {
	r := bookRecord{Current: b.current, Portfolios: make([]json.RawMessage, 0, len(b.portfolios))}
	for _, p := range b.portfolios {
		data, err := p.MarshalJSON()
		if err != nil {
			return nil, err
		}
		r.Portfolios = append(r.Portfolios, data)
	}
	return json.Marshal(r)
}

// UnmarshalJSON reads a book record. A missing CURRENT selects the first portfolio.
func (b *Book) UnmarshalJSON(data []byte) error {
	var r bookRecord
	if err := json.Unmarshal(data, &r); err != nil {
		return fmt.Errorf("%w: %v", ErrCorruptState, err)
	}
	if len(r.Portfolios) == 0 {
		return corrupt("no portfolio")
	}
	if len(r.Portfolios) > MaxPortfolios {
		return corrupt("%d portfolios, at most %d", len(r.Portfolios), MaxPortfolios)
	}
	if r.Current < 0 || r.Current >= len(r.Portfolios) {
		return corrupt("current portfolio %d out of range", r.Current)
	}
	portfolios := make([]*Portfolio, 0, len(r.Portfolios))
	for _, raw := range r.Portfolios {
		p, err := DecodePortfolio(raw)
		if err != nil {
			return err
		}
		portfolios = append(portfolios, p)
	}
	b.portfolios, b.current = portfolios, r.Current
	return nil
}

// DecodeBook decodes a book record.
func DecodeBook(data []byte) (*Book, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, corrupt("empty record")
	}
	b := new(Book)
	if err := b.UnmarshalJSON(data); err != nil {
		return nil, err
	}
	return b, nil
}
