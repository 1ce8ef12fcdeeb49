package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/tryinvest"
	"github.com/etnz/tryinvest/renderer"
	"github.com/google/subcommands"
)

type sellCmd struct {
	quantity int
}

func (*sellCmd) Name() string     { return "sell" }
func (*sellCmd) Synopsis() string { return "sell the oldest shares at the market price" }
func (*sellCmd) Usage() string {
	return `tryinvest sell [-n <quantity>] <symbol>

  Sells the oldest shares of the symbol in the current portfolio at the current market price.
`
}

func (c *sellCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.quantity, "n", 1, "number of shares to sell")
}

func (c *sellCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
	sold, err := s.Sell(ctx, symbol, c.quantity)
	if err != nil {
		return failf("%v", err)
	}
	proceeds := p.Cash().Sub(before)
	cost := tryinvest.USD(0)
	for _, share := range sold {
		cost = cost.Add(share.CostBasis())
	}
	fmt.Fprintf(stdout, "Sold %d %s for %v, realized %s.\n\n", len(sold), symbol, proceeds, proceeds.Sub(cost).SignedString())
	return printMarkdown(renderer.RenderHoldings(renderer.NewHoldings(p, s.Prices().Today())))
}
