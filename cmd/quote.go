package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/tryinvest"
	"github.com/etnz/tryinvest/renderer"
	"github.com/google/subcommands"
)

type quoteCmd struct{}

func (*quoteCmd) Name() string     { return "quote" }
func (*quoteCmd) Synopsis() string { return "show the price of a symbol" }
func (*quoteCmd) Usage() string {
	return `tryinvest quote <symbol>

  Shows the current price of the symbol and its change since the previous close.
  When the market is closed, the price is the previous close.
`
}

func (*quoteCmd) SetFlags(*flag.FlagSet) {}

func (c *quoteCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprint(stderr, c.Usage())
		return subcommands.ExitUsageError
	}
	symbol := tryinvest.NormalizeSymbol(f.Arg(0))
	a, s, err := open(ctx)
	if err != nil {
		return failf("%v", err)
	}
	defer a.Close()

	q := s.Prices().CurrentPriceWithChange(ctx, symbol)
	return printMarkdown(renderer.RenderQuote(renderer.NewQuote(symbol, a.symbols.Name(symbol), q, s.Prices().MarketOpen())))
}
