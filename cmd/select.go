package cmd

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/google/subcommands"
)

type selectCmd struct{}

func (*selectCmd) Name() string     { return "select" }
func (*selectCmd) Synopsis() string { return "make a portfolio the current one" }
func (*selectCmd) Usage() string {
	return `tryinvest select <name|number>

  Makes the portfolio designated by its name, or by its number in 'tryinvest list', current.
`
}

func (*selectCmd) SetFlags(*flag.FlagSet) {}

func (c *selectCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ref := strings.Join(f.Args(), " ")
	if ref == "" {
		fmt.Fprint(stderr, c.Usage())
		return subcommands.ExitUsageError
	}
	a, s, err := open(ctx)
	if err != nil {
		return failf("%v", err)
	}
	defer a.Close()

	if err := s.Select(ctx, ref); err != nil {
		return failf("%v", err)
	}
	fmt.Fprintf(stdout, "Current portfolio is %q.\n", s.Current().Name())
	return subcommands.ExitSuccess
}
