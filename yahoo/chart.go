// Package yahoo fetches prices from the Yahoo Finance chart API.
//
// The API is unofficial, so the response is navigated with json paths rather than decoded
// into fixed structs: only the few fields below are relied upon.
//
//	{"chart": {"result": [{
//	    "meta": {"symbol": "AAPL", "regularMarketPrice": 179.66, "exchangeTimezoneName": "America/New_York", ...},
//	    "timestamp": [1709044200, 1709130600, ...],
//	    "indicators": {"quote": [{"close": [182.63, null, ...], ...}]}
//	}], "error": null}}
package yahoo

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/tryinvest/date"
	"github.com/etnz/tryinvest/netutil"
	"github.com/etnz/tryinvest/quote"
	"github.com/shopspring/decimal"
)

// DefaultBaseURL is the root of the chart API.
const DefaultBaseURL = "https://query1.finance.yahoo.com/v8/finance/chart"

const (
	pricePath     = "$.chart.result[0].meta.regularMarketPrice"
	timezonePath  = "$.chart.result[0].meta.exchangeTimezoneName"
	timestampPath = "$.chart.result[0].timestamp"
	closePath     = "$.chart.result[0].indicators.quote[0].close"
	errorPath     = "$.chart.error.description"
)

// ErrNoData is returned when the chart has no usable price.
var ErrNoData = errors.New("no data")

// Client is a quote.Fetcher for Yahoo Finance.
type Client struct {
	baseURL  string
	http     *http.Client
	location *time.Location
	now      func() time.Time
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client to another server.
func WithBaseURL(u string) Option { return func(c *Client) { c.baseURL = strings.TrimSuffix(u, "/") } }

// WithHTTPClient sets the http client.
func WithHTTPClient(h *http.Client) Option { return func(c *Client) { c.http = h } }

// WithLocation sets the time zone used to date the daily bars when the response does not
// carry the exchange's one (New York by default).
func WithLocation(loc *time.Location) Option { return func(c *Client) { c.location = loc } }

// WithClock sets the clock used to tell completed sessions from today's.
func WithClock(now func() time.Time) Option { return func(c *Client) { c.now = now } }

// New returns a Client.
func New(opts ...Option) *Client {
	c := &Client{
		baseURL:  DefaultBaseURL,
		http:     &http.Client{Timeout: 10 * time.Second},
		location: date.NewYorkSession().Location,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// chart gets the chart of symbol.
func (c *Client) chart(ctx context.Context, symbol string, query url.Values) (any, error) {
	query.Set("interval", "1d")
	addr := fmt.Sprintf("%s/%s?%s", c.baseURL, url.PathEscape(strings.ToUpper(symbol)), query.Encode())
	var jobj any
	if err := netutil.GetJSON(ctx, c.http, addr, &jobj); err != nil {
		return nil, fmt.Errorf("error retrieving %q: %w", symbol, err)
	}
	if desc, err := jsonpath.Get(errorPath, jobj); err == nil && desc != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrNoData, symbol, desc)
	}
	return jobj, nil
}

// first unwraps single element lists: jsonpath is not consistent about returning a list of one
// answer or the answer itself.
func first(jval any) any {
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		return jlist[0]
	}
	return jval
}

func toDecimal(jval any) (decimal.Decimal, bool) {
	switch v := jval.(type) {
	case float64:
		return decimal.NewFromFloat(v), true
	case string:
		d, err := decimal.NewFromString(v)
		return d, err == nil
	}
	return decimal.Decimal{}, false
}

// Latest returns the regular market price of symbol.
func (c *Client) Latest(ctx context.Context, symbol string) (decimal.Decimal, error) {
	jobj, err := c.chart(ctx, symbol, url.Values{"range": {"1d"}})
	if err != nil {
		return decimal.Decimal{}, err
	}
	jval, err := jsonpath.Get(pricePath, jobj)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("error parsing %q: %q %w", symbol, pricePath, err)
	}
	price, ok := toDecimal(first(jval))
	if !ok || price.IsZero() {
		return decimal.Decimal{}, fmt.Errorf("%w: %s: market price %v", ErrNoData, symbol, jval)
	}
	return price, nil
}

// bars returns the daily closes of the chart, oldest first. Null closes are skipped.
func (c *Client) bars(symbol string, jobj any) ([]quote.Close, error) {
	loc := c.location
	if tz, err := jsonpath.Get(timezonePath, jobj); err == nil {
		if name, ok := tz.(string); ok {
			if l, err := time.LoadLocation(name); err == nil {
				loc = l
			}
		}
	}

	jts, err := jsonpath.Get(timestampPath, jobj)
	if err != nil {
		// no trading in the range
		return nil, nil
	}
	jcloses, err := jsonpath.Get(closePath, jobj)
	if err != nil {
		return nil, fmt.Errorf("error parsing %q: %q %w", symbol, closePath, err)
	}
	timestamps, ok1 := jts.([]any)
	closes, ok2 := jcloses.([]any)
	if !ok1 || !ok2 || len(timestamps) != len(closes) {
		return nil, fmt.Errorf("%w: %s: malformed chart", ErrNoData, symbol)
	}

	bars := make([]quote.Close, 0, len(closes))
	for i, jts := range timestamps {
		ts, ok := jts.(float64)
		if !ok {
			continue
		}
		price, ok := toDecimal(closes[i])
		if !ok {
			continue
		}
		day := date.Of(time.Unix(int64(ts), 0).In(loc))
		bars = append(bars, quote.Close{Day: day, Price: price})
	}
	return bars, nil
}

// chartRange returns the smallest chart range holding n trading days.
func chartRange(n int) string {
	switch {
	case n <= 15:
		return "1mo"
	case n <= 55:
		return "3mo"
	case n <= 240:
		return "1y"
	default:
		return "5y"
	}
}

// RecentCloses returns the closes of the last n sessions before today, most recent first.
func (c *Client) RecentCloses(ctx context.Context, symbol string, n int) ([]quote.Close, error) {
	if n <= 0 {
		return nil, nil
	}
	jobj, err := c.chart(ctx, symbol, url.Values{"range": {chartRange(n)}})
	if err != nil {
		return nil, err
	}
	bars, err := c.bars(symbol, jobj)
	if err != nil {
		return nil, err
	}
	today := date.Of(c.now().In(c.location))
	closes := make([]quote.Close, 0, n)
	for i := len(bars) - 1; i >= 0 && len(closes) < n; i-- {
		// today's bar is a live price, not a close.
		if !bars[i].Day.Before(today) {
			continue
		}
		closes = append(closes, bars[i])
	}
	return closes, nil
}

// CloseOn returns the close of symbol on day.
func (c *Client) CloseOn(ctx context.Context, symbol string, day date.Date) (decimal.Decimal, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, c.location)
	query := url.Values{
		"period1": {strconv.FormatInt(start.Unix(), 10)},
		"period2": {strconv.FormatInt(start.AddDate(0, 0, 1).Unix(), 10)},
	}
	jobj, err := c.chart(ctx, symbol, query)
	if err != nil {
		return decimal.Decimal{}, err
	}
	bars, err := c.bars(symbol, jobj)
	if err != nil {
		return decimal.Decimal{}, err
	}
	for _, b := range bars {
		if b.Day == day {
			return b.Price, nil
		}
	}
	return decimal.Decimal{}, fmt.Errorf("%w: %s on %v", ErrNoData, symbol, day)
}

var (
	_ quote.Fetcher        = (*Client)(nil)
	_ quote.HistoryFetcher = (*Client)(nil)
)
