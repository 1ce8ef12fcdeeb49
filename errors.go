package tryinvest

import "errors"

var (
	// ErrInvalidQuantity is returned when trading zero or a negative number of shares.
	ErrInvalidQuantity = errors.New("quantity must be a positive integer")
	// ErrUnknownSymbol is returned when selling a symbol the portfolio does not hold.
	ErrUnknownSymbol = errors.New("unknown symbol")
	// ErrInsufficientShares is returned when selling more shares than held.
	ErrInsufficientShares = errors.New("insufficient shares")
	// ErrInsufficientFunds is returned when a buy costs more than the available cash.
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrPriceUnavailable is returned when a trade cannot be priced.
	ErrPriceUnavailable = errors.New("price unavailable")
	// ErrEmptyPosition is returned when removing a share from an empty position.
	ErrEmptyPosition = errors.New("empty position")
	// ErrCorruptState is returned when a persisted record cannot be decoded.
	ErrCorruptState = errors.New("corrupt state")

	// ErrTooManyPortfolios is returned when creating a portfolio in a full book.
	ErrTooManyPortfolios = errors.New("too many portfolios")
	// ErrLastPortfolio is returned when deleting the only portfolio of a book.
	ErrLastPortfolio = errors.New("cannot delete the last portfolio")
	// ErrNoSuchPortfolio is returned for an unknown portfolio name or index.
	ErrNoSuchPortfolio = errors.New("no such portfolio")
	// ErrInvalidName is returned for an empty or already used portfolio name.
	ErrInvalidName = errors.New("invalid portfolio name")
)
