// Package eodhd fetches prices from the EOD Historical Data API (https://eodhd.com).
package eodhd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/etnz/tryinvest/date"
	"github.com/etnz/tryinvest/netutil"
	"github.com/etnz/tryinvest/quote"
	"github.com/shopspring/decimal"
)

// DefaultBaseURL is the root of the eodhd API.
const DefaultBaseURL = "https://eodhd.com/api"

// DemoKey is accepted by eodhd for a handful of US tickers (AAPL, MCD, ...).
const DemoKey = "demo"

// ErrNoData is returned when eodhd answers with no price for the requested period.
var ErrNoData = errors.New("no data")

// Client is a quote.Fetcher for eodhd.
type Client struct {
	apiKey   string
	exchange string
	baseURL  string
	live     *http.Client // never cached
	history  *http.Client
	today    func() date.Date
}

// Option configures a Client.
type Option func(*Client)

// WithExchange sets the eodhd exchange code appended to symbols ("US" by default).
func WithExchange(code string) Option { return func(c *Client) { c.exchange = code } }

// WithBaseURL points the client to another server.
func WithBaseURL(u string) Option { return func(c *Client) { c.baseURL = strings.TrimSuffix(u, "/") } }

// WithHTTPClient sets the http clients used for live prices and for daily history.
// History responses do not change during the day, so history is typically a caching client.
func WithHTTPClient(live, history *http.Client) Option {
	return func(c *Client) { c.live, c.history = live, history }
}

// WithToday sets the clock used to bound history requests.
func WithToday(today func() date.Date) Option { return func(c *Client) { c.today = today } }

// New returns a Client using apiKey.
func New(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:   apiKey,
		exchange: "US",
		baseURL:  DefaultBaseURL,
		live:     &http.Client{Timeout: 10 * time.Second},
		today:    date.Today,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.history == nil {
		c.history = c.live
	}
	return c
}

// Ticker returns the eodhd ticker of symbol, e.g. "AAPL.US". Symbols that already carry an
// exchange are returned as is.
func (c *Client) Ticker(symbol string) string {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if strings.Contains(symbol, ".") {
		return symbol
	}
	return symbol + "." + c.exchange
}

func (c *Client) addr(endpoint, symbol string, query url.Values) string {
	if query == nil {
		query = url.Values{}
	}
	query.Set("api_token", c.apiKey)
	query.Set("fmt", "json")
	return fmt.Sprintf("%s/%s/%s?%s", c.baseURL, endpoint, url.PathEscape(c.Ticker(symbol)), query.Encode())
}

// isoDate formats d the way eodhd expects dates.
func isoDate(d date.Date) string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year(), d.Month(), d.Day())
}

// Latest returns the last traded price of symbol (delayed by up to 15 minutes).
func (c *Client) Latest(ctx context.Context, symbol string) (decimal.Decimal, error) {
	// https://eodhd.com/api/real-time/AAPL.US?api_token=demo&fmt=json
	// {"code":"AAPL.US","timestamp":1709326800,"gmtoffset":0,"open":179.55,"high":180.53,
	//  "low":177.38,"close":179.66,"volume":73563082,"previousClose":180.75,"change":-1.09,...}
	var content struct {
		Code  string          `json:"code"`
		Close decimal.Decimal `json:"close"`
	}
	if err := netutil.GetJSON(ctx, c.live, c.addr("real-time", symbol, nil), &content); err != nil {
		return decimal.Decimal{}, err
	}
	if content.Close.IsZero() {
		return decimal.Decimal{}, fmt.Errorf("%w: real-time %s", ErrNoData, c.Ticker(symbol))
	}
	return content.Close, nil
}

// eod is an item of the eod endpoint.
//
//	{"date": "2024-02-13", "open": 675.066, "high": 684.219, "low": 648.659,
//	 "close": 668.445, "adjusted_close": 67.705, "volume": 0}
type eod struct {
	Date  date.Date       `json:"date"`
	Close decimal.Decimal `json:"close"`
}

// daily returns the closes between from and to included, most recent first.
func (c *Client) daily(ctx context.Context, symbol string, from, to date.Date) ([]eod, error) {
	query := url.Values{}
	query.Set("from", isoDate(from))
	query.Set("to", isoDate(to))
	query.Set("order", "d")
	content := make([]eod, 0)
	if err := netutil.GetJSON(ctx, c.history, c.addr("eod", symbol, query), &content); err != nil {
		return nil, err
	}
	return content, nil
}

// RecentCloses returns the closes of the last n sessions before today, most recent first.
func (c *Client) RecentCloses(ctx context.Context, symbol string, n int) ([]quote.Close, error) {
	if n <= 0 {
		return nil, nil
	}
	today := c.today()
	// weekends and holidays: two calendar days per trading day and a week of margin.
	from := today.Add(-2*n - 7)
	content, err := c.daily(ctx, symbol, from, today.Add(-1))
	if err != nil {
		return nil, err
	}
	closes := make([]quote.Close, 0, n)
	for _, info := range content {
		if len(closes) == n {
			break
		}
		// after the close, today's bar is already published.
		if !info.Date.Before(today) {
			continue
		}
		closes = append(closes, quote.Close{Day: info.Date, Price: info.Close})
	}
	return closes, nil
}

// CloseOn returns the close of symbol on day.
func (c *Client) CloseOn(ctx context.Context, symbol string, day date.Date) (decimal.Decimal, error) {
	content, err := c.daily(ctx, symbol, day, day)
	if err != nil {
		return decimal.Decimal{}, err
	}
	for _, info := range content {
		if info.Date == day {
			return info.Close, nil
		}
	}
	return decimal.Decimal{}, fmt.Errorf("%w: %s on %v", ErrNoData, c.Ticker(symbol), day)
}

var (
	_ quote.Fetcher        = (*Client)(nil)
	_ quote.HistoryFetcher = (*Client)(nil)
)
