package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"

	"github.com/etnz/tryinvest/date"
	"github.com/etnz/tryinvest/eodhd"
	"github.com/etnz/tryinvest/netutil"
	"github.com/etnz/tryinvest/renderer"
	"github.com/etnz/tryinvest/symbols"
	"github.com/google/subcommands"
)

type searchCmd struct {
	limit  int
	remote bool
}

func (*searchCmd) Name() string     { return "search" }
func (*searchCmd) Synopsis() string { return "search the symbol directory" }
func (*searchCmd) Usage() string {
	return `tryinvest search [-n <limit>] [-remote] <prefix>

  Lists the symbols starting with prefix.
  With -remote, the eodhd search API is queried by name, ticker or ISIN instead.
`
}

func (c *searchCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.limit, "n", 10, "maximum number of results, 0 for all")
	f.BoolVar(&c.remote, "remote", false, "search with the eodhd API")
}

func (c *searchCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprint(stderr, c.Usage())
		return subcommands.ExitUsageError
	}
	prefix := f.Arg(0)
	a, err := newApp()
	if err != nil {
		return failf("%v", err)
	}
	defer a.Close()

	results := a.symbols.Search(prefix, c.limit)
	if c.remote {
		if results, err = a.searchRemote(ctx, prefix, c.limit); err != nil {
			return failf("%v", err)
		}
	}
	return printMarkdown(renderer.RenderSearch(renderer.NewSearch(prefix, results)))
}

// searchRemote queries the eodhd search API.
func (a *app) searchRemote(ctx context.Context, term string, limit int) ([]symbols.Symbol, error) {
	cfg := a.cfg.Prices
	if cfg.APIKey == "" {
		return nil, errors.New("remote search needs an eodhd api key")
	}
	exchange, err := cfg.Session()
	if err != nil {
		return nil, err
	}
	today := func() date.Date { return date.TodayIn(exchange.Location) }
	opts := []eodhd.Option{
		eodhd.WithHTTPClient(netutil.NewClient(cfg.Timeout.Duration, ""),
			netutil.NewClient(cfg.Timeout.Duration, cfg.CacheDir, netutil.WithLogger(a.log), netutil.WithToday(today))),
		eodhd.WithToday(today),
	}
	if cfg.Provider == "eodhd" && cfg.BaseURL != "" {
		opts = append(opts, eodhd.WithBaseURL(cfg.BaseURL))
	}
	found, err := eodhd.New(cfg.APIKey, opts...).Search(ctx, term)
	if err != nil {
		return nil, fmt.Errorf("searching %q: %w", term, err)
	}
	var results []symbols.Symbol
	for _, r := range found {
		if limit > 0 && len(results) == limit {
			break
		}
		results = append(results, symbols.Symbol{Symbol: r.Code, Name: fmt.Sprintf("%s (%s)", r.Name, r.Exchange)})
	}
	return results, nil
}
