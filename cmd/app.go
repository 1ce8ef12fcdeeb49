// Package cmd implements the tryinvest command line: one subcommand per file, sharing the
// configuration, store and price source opened by the app.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"

	"github.com/etnz/tryinvest/config"
	"github.com/etnz/tryinvest/date"
	"github.com/etnz/tryinvest/eodhd"
	"github.com/etnz/tryinvest/logger"
	"github.com/etnz/tryinvest/netutil"
	"github.com/etnz/tryinvest/quote"
	"github.com/etnz/tryinvest/renderer"
	"github.com/etnz/tryinvest/session"
	"github.com/etnz/tryinvest/store"
	"github.com/etnz/tryinvest/store/filestore"
	"github.com/etnz/tryinvest/store/pgstore"
	"github.com/etnz/tryinvest/store/redisstore"
	"github.com/etnz/tryinvest/store/s3store"
	"github.com/etnz/tryinvest/store/sqlitestore"
	"github.com/etnz/tryinvest/symbols"
	"github.com/etnz/tryinvest/yahoo"
	"github.com/google/subcommands"
	"github.com/rs/zerolog"
)

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var configPath = flag.String("config", "", "Path to the TOML configuration file. Defaults to "+config.DefaultPath())
var styleFlag = flag.String("style", renderer.StyleAuto, "Output style: auto, dark, light, notty, or raw for plain markdown")
var widthFlag = flag.Int("width", 100, "Output width in columns")

// stdout receives the reports, stderr the errors.
var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// Commands are the tryinvest subcommands, by group.
var Commands = map[string][]subcommands.Command{
	"portfolios": {&listCmd{}, &newCmd{}, &selectCmd{}, &deleteCmd{}},
	"holdings":   {&showCmd{}, &lotsCmd{}},
	"trading":    {&buyCmd{}, &sellCmd{}},
	"market":     {&quoteCmd{}, &trendCmd{}, &searchCmd{}},
	"help":       {&topicCmd{}},
}

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	for _, group := range slices.Sorted(maps.Keys(Commands)) {
		for _, cmd := range Commands[group] {
			c.Register(cmd, group)
		}
	}
}

// app holds what every command needs.
type app struct {
	cfg     *config.Config
	log     zerolog.Logger
	symbols *symbols.Directory
	closers []func() error
}

// newApp loads the configuration.
func newApp() (*app, error) {
	cfg, err := config.Load(*configPath)
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	a := &app{
		cfg: cfg,
		log: logger.New(logger.Config{Level: cfg.Log.Level, Pretty: cfg.Log.Pretty, Out: stderr}),
	}
	a.symbols = symbols.Default()
	if cfg.Symbols.File != "" {
		if a.symbols, err = symbols.Load(cfg.Symbols.File); err != nil {
			return nil, err
		}
	}
	return a, nil
}

// Close releases the store connections.
func (a *app) Close() {
	for _, closer := range a.closers {
		if err := closer(); err != nil {
			a.log.Warn().Err(err).Msg("closing store")
		}
	}
}

// openSession opens the configured store and price provider.
func (a *app) openSession(ctx context.Context) (*session.Session, error) {
	st, closer, err := openStore(ctx, a.cfg.Storage)
	if err != nil {
		return nil, err
	}
	if closer != nil {
		a.closers = append(a.closers, closer)
	}
	fetcher, err := newFetcher(a.cfg.Prices, a.log)
	if err != nil {
		return nil, err
	}
	exchange, err := a.cfg.Prices.Session()
	if err != nil {
		return nil, err
	}
	return session.Open(ctx, st, fetcher,
		session.WithLogger(a.log),
		session.WithSymbols(a.symbols),
		session.WithSourceOptions(
			quote.WithSession(exchange),
			quote.WithTimeout(a.cfg.Prices.Timeout.Duration),
		),
	)
}

// openStore returns the configured store and the function closing it, if any.
func openStore(ctx context.Context, cfg config.StorageConfig) (store.Store, func() error, error) {
	switch cfg.Backend {
	case "memory":
		return store.NewMemory(), nil, nil
	case "file":
		return filestore.New(cfg.Dir), nil, nil
	case "sqlite":
		s, err := sqlitestore.Open(ctx, cfg.SQLite.Path)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	case "postgres":
		s, err := pgstore.New(ctx, cfg.Postgres.DSN)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	case "redis":
		s, err := redisstore.New(ctx, redisstore.Config{
			Addr:       cfg.Redis.Addr,
			Password:   cfg.Redis.Password,
			DB:         cfg.Redis.DB,
			TLSEnabled: cfg.Redis.TLSEnabled,
			Prefix:     cfg.Redis.Prefix,
		})
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	case "s3":
		s, err := s3store.New(ctx, s3store.Config{
			Endpoint:       cfg.S3.Endpoint,
			Region:         cfg.S3.Region,
			Bucket:         cfg.S3.Bucket,
			Prefix:         cfg.S3.Prefix,
			AccessKey:      cfg.S3.AccessKey,
			SecretKey:      cfg.S3.SecretKey,
			UseSSL:         cfg.S3.UseSSL,
			ForcePathStyle: cfg.S3.ForcePathStyle,
		})
		if err != nil {
			return nil, nil, err
		}
		return s, nil, nil
	}
	return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
}

// newFetcher returns the configured price provider.
func newFetcher(cfg config.PricesConfig, log zerolog.Logger) (quote.Fetcher, error) {
	exchange, err := cfg.Session()
	if err != nil {
		return nil, err
	}
	today := func() date.Date { return date.TodayIn(exchange.Location) }
	live := netutil.NewClient(cfg.Timeout.Duration, "")

	switch cfg.Provider {
	case "eodhd":
		history := netutil.NewClient(cfg.Timeout.Duration, cfg.CacheDir, netutil.WithLogger(log), netutil.WithToday(today))
		opts := []eodhd.Option{
			eodhd.WithExchange(cfg.Exchange),
			eodhd.WithHTTPClient(live, history),
			eodhd.WithToday(today),
		}
		if cfg.BaseURL != "" {
			opts = append(opts, eodhd.WithBaseURL(cfg.BaseURL))
		}
		return eodhd.New(cfg.APIKey, opts...), nil
	case "yahoo":
		// chart responses mix live and past prices, they cannot be kept for the day.
		opts := []yahoo.Option{yahoo.WithHTTPClient(live), yahoo.WithLocation(exchange.Location)}
		if cfg.BaseURL != "" {
			opts = append(opts, yahoo.WithBaseURL(cfg.BaseURL))
		}
		return yahoo.New(opts...), nil
	}
	return nil, fmt.Errorf("unknown price provider %q", cfg.Provider)
}

// open is the common prologue of the commands working on the portfolios.
func open(ctx context.Context) (*app, *session.Session, error) {
	a, err := newApp()
	if err != nil {
		return nil, nil, err
	}
	s, err := a.openSession(ctx)
	if err != nil {
		a.Close()
		return nil, nil, err
	}
	return a, s, nil
}

// printMarkdown writes md to stdout in the selected style.
func printMarkdown(md string) subcommands.ExitStatus {
	out, err := renderer.Terminal(md, *styleFlag, *widthFlag)
	if err != nil {
		fmt.Fprintf(stderr, "Error rendering output: %v\n", err)
		fmt.Fprint(stdout, md)
		return subcommands.ExitFailure
	}
	fmt.Fprint(stdout, out)
	return subcommands.ExitSuccess
}

// failf reports an error and returns ExitFailure.
func failf(format string, args ...any) subcommands.ExitStatus {
	fmt.Fprintf(stderr, "Error: "+format+"\n", args...)
	return subcommands.ExitFailure
}
