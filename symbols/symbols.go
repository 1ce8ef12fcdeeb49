// Package symbols is the directory of tradable ticker symbols and their company names.
package symbols

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"slices"
	"sort"
	"strings"
)

//go:embed symbols.json
var defaultData []byte

// ErrCorrupt is returned for symbol files that cannot be decoded.
var ErrCorrupt = errors.New("corrupt symbol directory")

// Symbol is a directory entry.
type Symbol struct {
	Symbol string
	Name   string
}

type record struct {
	Name string `json:"NAME"`
}

// Directory is a read-only set of symbols sorted for prefix lookups.
type Directory struct {
	sorted []string
	names  map[string]string
}

// Default returns the built-in directory.
func Default() *Directory {
	d, err := Decode(defaultData)
	if err != nil {
		panic(err) // the embedded file is part of the build
	}
	return d
}

// Decode parses a directory file: {"AAPL": {"NAME": "Apple Inc."}, ...}.
func Decode(data []byte) (*Directory, error) {
	var records map[string]record
	if err := json.NewDecoder(bytes.NewReader(data)).Decode(&records); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	d := &Directory{names: make(map[string]string, len(records))}
	for symbol, r := range records {
		symbol = normalize(symbol)
		if symbol == "" {
			return nil, fmt.Errorf("%w: empty symbol", ErrCorrupt)
		}
		d.names[symbol] = r.Name
	}
	d.sort()
	return d, nil
}

// Load returns the built-in directory extended (and overridden) by the file at path.
func Load(path string) (*Directory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading symbols: %w", err)
	}
	extra, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	d := Default()
	for symbol, name := range extra.names {
		d.names[symbol] = name
	}
	d.sort()
	return d, nil
}

func (d *Directory) sort() {
	d.sorted = d.sorted[:0]
	for symbol := range d.names {
		d.sorted = append(d.sorted, symbol)
	}
	slices.Sort(d.sorted)
}

func normalize(symbol string) string { return strings.ToUpper(strings.TrimSpace(symbol)) }

// Len returns the number of symbols.
func (d *Directory) Len() int { return len(d.sorted) }

// Has reports whether symbol is in the directory.
func (d *Directory) Has(symbol string) bool {
	_, ok := d.names[normalize(symbol)]
	return ok
}

// Name returns the company name of symbol, or "".
func (d *Directory) Name(symbol string) string { return d.names[normalize(symbol)] }

// Search returns up to n symbols starting with prefix, in alphabetical order. n <= 0 means all.
func (d *Directory) Search(prefix string, n int) []Symbol {
	prefix = normalize(prefix)
	i := sort.SearchStrings(d.sorted, prefix)
	var found []Symbol
	for ; i < len(d.sorted) && strings.HasPrefix(d.sorted[i], prefix); i++ {
		if n > 0 && len(found) == n {
			break
		}
		found = append(found, Symbol{Symbol: d.sorted[i], Name: d.names[d.sorted[i]]})
	}
	return found
}

// Symbols returns all symbols in alphabetical order.
func (d *Directory) Symbols() []string { return slices.Clone(d.sorted) }
