package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/tryinvest"
	"github.com/etnz/tryinvest/renderer"
	"github.com/google/subcommands"
)

type trendCmd struct {
	days int
}

func (*trendCmd) Name() string     { return "trend" }
func (*trendCmd) Synopsis() string { return "show the recent closes of a symbol" }
func (*trendCmd) Usage() string {
	return `tryinvest trend [-n <days>] <symbol>

  Shows the last closes of the symbol, most recent last.
`
}

func (c *trendCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.days, "n", 7, "number of closes")
}

func (c *trendCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprint(stderr, c.Usage())
		return subcommands.ExitUsageError
	}
	a, s, err := open(ctx)
	if err != nil {
		return failf("%v", err)
	}
	defer a.Close()

	pos := tryinvest.NewPosition(f.Arg(0))
	points := pos.HistoricalTrend(ctx, s.Prices(), c.days)
	return printMarkdown(renderer.RenderTrend(renderer.NewTrend(pos.Tag(), points)))
}
