package tryinvest

import (
	"fmt"

	"github.com/etnz/tryinvest/date"
)

// Share is a single purchased unit of a security: a lot of one share.
//
// Shares are immutable. They belong to one Position at a time; RemoveOldestShare hands them
// over to the caller.
type Share struct {
	id        string
	costBasis Money
	buyDate   date.Date
}

// shareID returns the id of the n-th share ever added to the position tag.
func shareID(tag string, n int) string { return fmt.Sprintf("%s:%d", tag, n) }

// ID returns the share identifier, unique within its position.
func (s Share) ID() string { return s.id }

// CostBasis returns the price paid for the share.
func (s Share) CostBasis() Money { return s.costBasis }

// BuyDate returns the day the share was bought.
func (s Share) BuyDate() date.Date { return s.buyDate }

// GainLoss returns the unrealized gain of the share at price.
func (s Share) GainLoss(price Money) Money { return price.Sub(s.costBasis) }
