package eodhd

import (
	"context"
	"fmt"
	"net/url"

	"github.com/etnz/tryinvest/date"
	"github.com/etnz/tryinvest/netutil"
	"github.com/shopspring/decimal"
)

// SearchResult is an item of the eodhd search API response.
type SearchResult struct {
	Code              string          `json:"Code"`
	Exchange          string          `json:"Exchange"`
	Name              string          `json:"Name"`
	Type              string          `json:"Type"`
	Country           string          `json:"Country"`
	Currency          string          `json:"Currency"`
	ISIN              string          `json:"ISIN"`
	PreviousClose     decimal.Decimal `json:"previousClose"`
	PreviousCloseDate date.Date       `json:"previousCloseDate"`
}

// Search looks up securities by name, ticker or ISIN.
func (c *Client) Search(ctx context.Context, term string) ([]SearchResult, error) {
	query := url.Values{}
	query.Set("api_token", c.apiKey)
	query.Set("fmt", "json")
	addr := fmt.Sprintf("%s/search/%s?%s", c.baseURL, url.PathEscape(term), query.Encode())

	var results []SearchResult
	if err := netutil.GetJSON(ctx, c.history, addr, &results); err != nil {
		return nil, err
	}
	return results, nil
}
