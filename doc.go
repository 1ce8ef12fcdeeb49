// Package tryinvest simulates stock trading portfolios.
//
// A Portfolio holds cash and one Position per symbol. A Position is the list of Shares bought
// for that symbol, oldest first, each with its own cost basis and buy date: buying appends
// shares, selling removes the oldest ones (FIFO).
//
// Prices come from a Pricer, usually a *quote.Source. The ledger pulls them explicitly with
// Refresh: the accessors (Value, CurrentValue, GainLoss, ...) read the last refreshed prices and
// never hit the network. An unavailable price is zero; trades refuse to execute at zero.
//
// A Book groups up to MaxPortfolios portfolios, one of them current. Books and portfolios
// are persisted as JSON records:
//
//	{"PORTFOLIOS": [{"NAME": "My First Portfolio", "CASH": 8294.7, "INITIAL_VALUE": 10000,
//	  "CURRENT_VALUE": 10012.5, "POSITIONS": [{"TAG": "AAPL", "TOTAL_COST_BASIS": 1705.3,
//	  "SHARES": [{"COST_BASIS": 170.53, "BUY_DATE": "2024/03/01"}, ...]}]}], "CURRENT": 0}
//
// This package is the foundation of the tryinvest command line tool.
package tryinvest
