package cmd

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/google/subcommands"
)

type deleteCmd struct{}

func (*deleteCmd) Name() string     { return "delete" }
func (*deleteCmd) Synopsis() string { return "delete a portfolio" }
func (*deleteCmd) Usage() string {
	return `tryinvest delete <name|number>

  Deletes the portfolio designated by its name, or by its number in 'tryinvest list'.
  The first portfolio becomes the current one. The last portfolio cannot be deleted.
`
}

func (*deleteCmd) SetFlags(*flag.FlagSet) {}

func (c *deleteCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	if err := s.Delete(ctx, ref); err != nil {
		return failf("%v", err)
	}
	fmt.Fprintf(stdout, "Deleted %q, current portfolio is %q.\n", ref, s.Current().Name())
	return subcommands.ExitSuccess
}
