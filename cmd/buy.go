package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/tryinvest"
	"github.com/etnz/tryinvest/renderer"
	"github.com/google/subcommands"
)

type buyCmd struct {
	quantity int
}

func (*buyCmd) Name() string     { return "buy" }
func (*buyCmd) Synopsis() string { return "buy shares at the market price" }
func (*buyCmd) Usage() string {
	return `tryinvest buy [-n <quantity>] <symbol>

  Buys shares of the symbol in the current portfolio at the current market price.
  The symbol must be in the directory, see 'tryinvest search'.
`
}

func (c *buyCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.quantity, "n", 1, "number of shares to buy")
}

func (c *buyCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	p := s.Current()
	before := p.Cash()
	if err := s.Buy(ctx, symbol, c.quantity); err != nil {
		return failf("%v", err)
	}
	fmt.Fprintf(stdout, "Bought %d %s for %v.\n\n", c.quantity, symbol, before.Sub(p.Cash()))
	return printMarkdown(renderer.RenderHoldings(renderer.NewHoldings(p, s.Prices().Today())))
}
