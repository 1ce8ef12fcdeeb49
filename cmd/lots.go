package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/tryinvest/renderer"
	"github.com/google/subcommands"
)

type lotsCmd struct{}

func (*lotsCmd) Name() string     { return "lots" }
func (*lotsCmd) Synopsis() string { return "show the shares held for a symbol" }
func (*lotsCmd) Usage() string {
	return `tryinvest lots <symbol>

  Shows every share of the symbol in the current portfolio, oldest first,
  with its buy date, cost basis and gain at the current price.
`
}

func (*lotsCmd) SetFlags(*flag.FlagSet) {}

func (c *lotsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprint(stderr, c.Usage())
		return subcommands.ExitUsageError
	}
	symbol := f.Arg(0)
	a, s, err := open(ctx)
	if err != nil {
		return failf("%v", err)
	}
	defer a.Close()

	pos := s.Current().Lookup(symbol)
	if pos != nil {
		pos.Refresh(ctx, s.Prices())
	}
	return printMarkdown(renderer.RenderLots(renderer.NewLots(symbol, pos)))
}
