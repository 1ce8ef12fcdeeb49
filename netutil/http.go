// Package netutil contains the http helpers shared by the price fetchers.
package netutil

import (
	"bufio"
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httputil"
	"os"
	"path/filepath"
	"time"

	"github.com/etnz/tryinvest/date"
	"github.com/rs/zerolog"
)

// ErrStatus is returned by GetJSON for non 200 responses.
var ErrStatus = errors.New("unexpected http status")

// diskCache is an http.RoundTripper keeping successful responses on disk for the day.
type diskCache struct {
	base  http.RoundTripper
	dir   string
	today func() date.Date
	log   zerolog.Logger
}

// RoundTrip returns the response cached today for the same method and URL, or performs the
// request and caches it when successful.
func (c *diskCache) RoundTrip(req *http.Request) (*http.Response, error) {
	// the day is part of the key, so entries expire every day.
	key := fmt.Sprintf("%s %s %s", c.today(), req.Method, req.URL.String())
	key = fmt.Sprintf("%x", sha1.Sum([]byte(key)))

	if cached, err := c.get(key, req); err == nil {
		c.log.Debug().Str("url", req.URL.Path).Msg("http cache hit")
		return cached, nil
	}

	resp, err := c.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	c.log.Debug().Str("method", req.Method).Str("host", req.URL.Host).Str("path", req.URL.Path).Str("status", resp.Status).Msg("http")
	if resp.StatusCode >= 300 {
		return resp, nil
	}
	if err := c.put(key, resp); err != nil {
		c.log.Warn().Err(err).Msg("http cache write ignored")
	}
	return resp, nil
}

func (c *diskCache) get(key string, req *http.Request) (*http.Response, error) {
	content, err := os.ReadFile(filepath.Join(c.dir, key))
	if err != nil {
		return nil, err
	}
	return http.ReadResponse(bufio.NewReader(bytes.NewReader(content)), req)
}

// put dumps resp to disk. DumpResponse leaves resp.Body readable.
func (c *diskCache) put(key string, resp *http.Response) error {
	content, err := httputil.DumpResponse(resp, true)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(c.dir, key), content, 0o644)
}

// ClientOption configures NewClient.
type ClientOption func(*diskCache)

// WithLogger logs requests and cache activity.
func WithLogger(l zerolog.Logger) ClientOption { return func(c *diskCache) { c.log = l } }

// WithToday sets the day used to expire cached responses.
func WithToday(today func() date.Date) ClientOption { return func(c *diskCache) { c.today = today } }

// WithTransport sets the underlying transport (http.DefaultTransport by default).
func WithTransport(rt http.RoundTripper) ClientOption { return func(c *diskCache) { c.base = rt } }

// NewClient returns an http client with the given timeout. When cacheDir is not empty successful
// responses are kept in it for the rest of the day.
func NewClient(timeout time.Duration, cacheDir string, opts ...ClientOption) *http.Client {
	c := &diskCache{
		base:  http.DefaultTransport,
		dir:   cacheDir,
		today: date.Today,
		log:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	client := &http.Client{Timeout: timeout, Transport: c.base}
	if cacheDir != "" {
		client.Transport = c
	}
	return client
}

// GetJSON performs an http GET of addr and decodes the JSON body into data.
func GetJSON(ctx context.Context, client *http.Client, addr string, data any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	// some quote servers reject the default go user agent.
	req.Header.Set("User-Agent", "tryinvest/1")
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: GET %v%v: %v", ErrStatus, resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	return json.Unmarshal(body, data)
}
