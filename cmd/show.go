package cmd

import (
	"context"
	"flag"

	"github.com/etnz/tryinvest/renderer"
	"github.com/google/subcommands"
)

type showCmd struct {
	portfolio string
}

func (*showCmd) Name() string     { return "show" }
func (*showCmd) Synopsis() string { return "show the holdings of a portfolio" }
func (*showCmd) Usage() string {
	return `tryinvest show [-p <name|number>]

  Refreshes the prices of the portfolio, then shows its cash, value and positions.
  Defaults to the current portfolio.
`
}

func (c *showCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.portfolio, "p", "", "name or number of the portfolio to show instead of the current one")
}

func (c *showCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, s, err := open(ctx)
	if err != nil {
		return failf("%v", err)
	}
	defer a.Close()

	p := s.Current()
	if c.portfolio != "" {
		i, err := s.Book().Find(c.portfolio)
		if err != nil {
			return failf("%v", err)
		}
		p = s.Book().Portfolios()[i]
	}
	p.Refresh(ctx, s.Prices())
	if err := s.Save(ctx); err != nil {
		return failf("%v", err)
	}
	return printMarkdown(renderer.RenderHoldings(renderer.NewHoldings(p, s.Prices().Today())))
}
