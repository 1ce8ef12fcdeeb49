package cmd

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/etnz/tryinvest"
	"github.com/google/subcommands"
)

type newCmd struct {
	cash float64
}

func (*newCmd) Name() string     { return "new" }
func (*newCmd) Synopsis() string { return "create a portfolio and make it current" }
func (*newCmd) Usage() string {
	return fmt.Sprintf(`tryinvest new [-cash <amount>] <name>

  Creates a new portfolio funded with cash, and makes it the current one.
  There can be at most %d portfolios.
`, tryinvest.MaxPortfolios)
}

func (c *newCmd) SetFlags(f *flag.FlagSet) {
	f.Float64Var(&c.cash, "cash", tryinvest.DefaultCash.Decimal().InexactFloat64(), "initial cash of the portfolio")
}

func (c *newCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	name := strings.Join(f.Args(), " ")
	if name == "" {
		fmt.Fprint(stderr, c.Usage())
		return subcommands.ExitUsageError
	}
	a, s, err := open(ctx)
	if err != nil {
		return failf("%v", err)
	}
	defer a.Close()

	p, err := s.Create(ctx, name, tryinvest.USD(c.cash))
	if err != nil {
		return failf("%v", err)
	}
	fmt.Fprintf(stdout, "Created portfolio %q with %v.\n", p.Name(), p.Cash())
	return subcommands.ExitSuccess
}
