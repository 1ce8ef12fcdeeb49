package pricecache

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/etnz/tryinvest/date"
	"github.com/shopspring/decimal"
)

// ErrCorrupt is returned when a persisted price record cannot be decoded.
var ErrCorrupt = errors.New("corrupt price record")

// closeRecord is the persisted shape of a previous-close entry.
type closeRecord struct {
	ClosePrice *json.RawMessage `json:"CLOSE_PRICE"`
	DayChange  *json.RawMessage `json:"DAY_CHANGE,omitempty"`
}

// number encodes d as a bare json number.
func number(d decimal.Decimal) json.RawMessage { return json.RawMessage(d.String()) }

// parseNumber accepts json numbers and numeric strings.
func parseNumber(raw json.RawMessage) (decimal.Decimal, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return decimal.Decimal{}, fmt.Errorf("missing number")
	}
	var d decimal.Decimal
	if err := d.UnmarshalJSON(raw); err != nil {
		return decimal.Decimal{}, err
	}
	return d, nil
}

// MarshalJSON encodes the snapshot as
//
//	{"2024/03/01": {"DIS": 105.3, "AAPL": {"CLOSE_PRICE": 170.1, "DAY_CHANGE": -1.2}}}
//
// where each entry keeps its own shape.
func (s Snapshot) MarshalJSON() ([]byte, error) {
	out := make(map[string]map[string]any, len(s))
	for day, symbols := range s {
		jsymbols := make(map[string]any, len(symbols))
		for symbol, e := range symbols {
			if e.Scalar {
				jsymbols[symbol] = number(e.Close)
				continue
			}
			jsymbols[symbol] = struct {
				ClosePrice json.RawMessage `json:"CLOSE_PRICE"`
				DayChange  json.RawMessage `json:"DAY_CHANGE"`
			}{number(e.Close), number(e.DayChange)}
		}
		out[day.String()] = jsymbols
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes both entry shapes. Any malformed day, symbol or price makes the whole
// record corrupt.
func (s *Snapshot) UnmarshalJSON(data []byte) error {
	var jdays map[string]map[string]json.RawMessage
	if err := json.Unmarshal(data, &jdays); err != nil {
		return fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	out := make(Snapshot, len(jdays))
	for jday, jsymbols := range jdays {
		day, err := date.Parse(jday)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrCorrupt, err)
		}
		symbols, ok := out[day]
		if !ok {
			symbols = make(map[string]Entry, len(jsymbols))
			out[day] = symbols
		}
		for symbol, raw := range jsymbols {
			e, err := decodeEntry(raw)
			if err != nil {
				return fmt.Errorf("%w: %s %s: %v", ErrCorrupt, jday, symbol, err)
			}
			symbols[symbol] = e
		}
	}
	*s = out
	return nil
}

func decodeEntry(raw json.RawMessage) (Entry, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) > 0 && raw[0] == '{' {
		var rec closeRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			return Entry{}, err
		}
		if rec.ClosePrice == nil {
			return Entry{}, fmt.Errorf("missing CLOSE_PRICE")
		}
		closePrice, err := parseNumber(*rec.ClosePrice)
		if err != nil {
			return Entry{}, fmt.Errorf("CLOSE_PRICE: %w", err)
		}
		var change decimal.Decimal
		if rec.DayChange != nil {
			if change, err = parseNumber(*rec.DayChange); err != nil {
				return Entry{}, fmt.Errorf("DAY_CHANGE: %w", err)
			}
		}
		return CloseEntry(closePrice, change), nil
	}
	price, err := parseNumber(raw)
	if err != nil {
		return Entry{}, err
	}
	return ScalarEntry(price), nil
}

// Decode parses a persisted price record. An empty record is an empty snapshot.
func Decode(data []byte) (Snapshot, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Snapshot{}, nil
	}
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		if errors.Is(err, ErrCorrupt) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return s, nil
}

// Encode returns the persisted form of s.
func Encode(s Snapshot) ([]byte, error) { return json.Marshal(s) }
