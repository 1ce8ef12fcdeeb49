package cmd

import (
	"context"
	"flag"

	"github.com/etnz/tryinvest/renderer"
	"github.com/google/subcommands"
)

type listCmd struct {
	refresh bool
}

func (*listCmd) Name() string     { return "list" }
func (*listCmd) Synopsis() string { return "list the portfolios" }
func (*listCmd) Usage() string {
	return `tryinvest list [-r]

  Lists the portfolios with their value, the current one in bold.
  Values are the ones of the last refresh unless -r is given.
`
}

func (c *listCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.refresh, "r", false, "refresh the prices of every portfolio")
}

func (c *listCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, s, err := open(ctx)
	if err != nil {
		return failf("%v", err)
	}
	defer a.Close()

	if c.refresh {
		for _, p := range s.Book().Portfolios() {
			p.Refresh(ctx, s.Prices())
		}
		if err := s.Save(ctx); err != nil {
			return failf("%v", err)
		}
	}
	return printMarkdown(renderer.RenderBook(renderer.NewBook(s.Book())))
}
