package tryinvest

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// MaxPortfolios is the maximum number of portfolios in a Book.
const MaxPortfolios = 5

// DefaultPortfolioName is the name of the portfolio of a new Book.
const DefaultPortfolioName = "My First Portfolio"

// DefaultCash is the cash of the portfolio of a new Book.
var DefaultCash = USD(10000)

// Book is the ordered collection of a user's portfolios, one of them being current.
//
// A Book is never empty.
type Book struct {
	portfolios []*Portfolio
	current    int
}

// DefaultBook returns the book of a first run.
func DefaultBook() *Book {
	return &Book{portfolios: []*Portfolio{NewPortfolio(DefaultPortfolioName, DefaultCash)}}
}

func (b *Book) Len() int                 { return len(b.portfolios) }
func (b *Book) Current() *Portfolio      { return b.portfolios[b.current] }
func (b *Book) CurrentIndex() int        { return b.current }
func (b *Book) Portfolios() []*Portfolio { return slices.Clone(b.portfolios) }

// Find returns the index of the portfolio designated by ref: a name, or a 1-based position.
func (b *Book) Find(ref string) (int, error) {
	ref = strings.TrimSpace(ref)
	for i, p := range b.portfolios {
		if p.name == ref {
			return i, nil
		}
	}
	if n, err := strconv.Atoi(ref); err == nil && n >= 1 && n <= len(b.portfolios) {
		return n - 1, nil
	}
	return -1, fmt.Errorf("%q: %w", ref, ErrNoSuchPortfolio)
}

// Create adds a new portfolio funded with cash and makes it current.
func (b *Book) Create(name string, cash Money) (*Portfolio, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidName
	}
	for _, p := range b.portfolios {
		if p.name == name {
			return nil, fmt.Errorf("%q is already used: %w", name, ErrInvalidName)
		}
	}
	if cash.IsNegative() {
		return nil, fmt.Errorf("creating %q with %v: %w", name, cash, ErrInsufficientFunds)
	}
	if len(b.portfolios) >= MaxPortfolios {
		return nil, fmt.Errorf("creating %q: %w (max %d)", name, ErrTooManyPortfolios, MaxPortfolios)
	}
	p := NewPortfolio(name, cash)
	b.portfolios = append(b.portfolios, p)
	b.current = len(b.portfolios) - 1
	return p, nil
}

// Select makes the i-th portfolio current.
func (b *Book) Select(i int) error {
	if i < 0 || i >= len(b.portfolios) {
		return fmt.Errorf("portfolio %d: %w", i+1, ErrNoSuchPortfolio)
	}
	b.current = i
	return nil
}

// Delete removes the i-th portfolio. The first portfolio becomes current.
func (b *Book) Delete(i int) error {
	if i < 0 || i >= len(b.portfolios) {
		return fmt.Errorf("portfolio %d: %w", i+1, ErrNoSuchPortfolio)
	}
	if len(b.portfolios) == 1 {
		return ErrLastPortfolio
	}
	b.portfolios = slices.Delete(b.portfolios, i, i+1)
	b.current = 0
	return nil
}
