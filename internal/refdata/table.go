// Package refdata supplies the read-only price and sector lookup consumed
// by the aggregation engine. The table is static by design: quotes come
// from the built-in set or from a symbol,price,sector CSV file, never a
// live feed. Unknown-symbol defaults belong to the engine; the table only
// answers found or not-found.
package refdata

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/foliotrack/folio/internal/common"
)

// Entry is one symbol's quote and classification.
type Entry struct {
	Symbol string
	Price  float64
	Sector string
}

// Table implements interfaces.ReferenceData over an in-memory symbol map.
// Lookups take a read lock so a running server can swap contents with
// ReloadFromFile while engine calls are in flight.
type Table struct {
	mu      sync.RWMutex
	entries map[string]Entry
	source  string
	logger  *common.Logger
}

// TableOption configures the table
type TableOption func(*Table)

// WithLogger sets the logger
func WithLogger(logger *common.Logger) TableOption {
	return func(t *Table) {
		t.logger = logger
	}
}

// NewTable creates an empty table
func NewTable(opts ...TableOption) *Table {
	t := &Table{
		entries: make(map[string]Entry),
		source:  "empty",
		logger:  common.NewDefaultLogger(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// LoadCSV builds a table from a symbol,price,sector file.
func LoadCSV(path string, opts ...TableOption) (*Table, error) {
	t := NewTable(opts...)
	if err := t.ReloadFromFile(path); err != nil {
		return nil, err
	}
	return t, nil
}

// Price returns the quoted per-share price for a symbol.
func (t *Table) Price(symbol string) (float64, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	e, ok := t.entries[normalizeSymbol(symbol)]
	if !ok || e.Price <= 0 {
		return 0, false
	}
	return e.Price, true
}

// Sector returns the sector classification for a symbol.
func (t *Table) Sector(symbol string) (string, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	e, ok := t.entries[normalizeSymbol(symbol)]
	if !ok || e.Sector == "" {
		return "", false
	}
	return e.Sector, true
}

// Len returns the number of mapped symbols.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.entries)
}

// Source identifies where the current contents came from ("builtin",
// "empty", or a file path).
func (t *Table) Source() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.source
}

// Symbols returns the mapped symbols in sorted order.
func (t *Table) Symbols() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	symbols := make([]string, 0, len(t.entries))
	for s := range t.entries {
		symbols = append(symbols, s)
	}
	sort.Strings(symbols)
	return symbols
}

// ReloadFromFile re-reads the quote file and atomically swaps the table
// contents. The previous contents stay in place when the file cannot be
// read or parsed.
func (t *Table) ReloadFromFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open quote file %s: %w", path, err)
	}
	defer f.Close()

	entries, err := parseQuoteFile(f)
	if err != nil {
		return fmt.Errorf("failed to load quote file %s: %w", path, err)
	}

	t.mu.Lock()
	t.entries = entries
	t.source = path
	t.mu.Unlock()

	t.logger.Info().
		Str("path", path).
		Int("symbols", len(entries)).
		Msg("Reference data reloaded")
	return nil
}

// parseQuoteFile reads a header-rowed symbol,price,sector document. Rows
// with a blank symbol are skipped; a malformed price fails the whole file
// so a bad edit never half-applies.
func parseQuoteFile(r io.Reader) (map[string]Entry, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse quote file: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("quote file is empty")
	}

	columns := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}
	symbolIdx, ok := columns["symbol"]
	if !ok {
		return nil, fmt.Errorf("quote file header must include a symbol column")
	}
	priceIdx, hasPrice := columns["price"]
	sectorIdx, hasSector := columns["sector"]

	entries := make(map[string]Entry, len(records)-1)
	for line, record := range records[1:] {
		if symbolIdx >= len(record) {
			continue
		}
		symbol := strings.ToUpper(strings.TrimSpace(record[symbolIdx]))
		if symbol == "" {
			continue
		}

		e := Entry{Symbol: symbol}
		if hasPrice && priceIdx < len(record) {
			raw := strings.TrimSpace(record[priceIdx])
			if raw != "" {
				p, err := strconv.ParseFloat(raw, 64)
				if err != nil {
					return nil, fmt.Errorf("bad price for %s on line %d: %w", symbol, line+2, err)
				}
				e.Price = p
			}
		}
		if hasSector && sectorIdx < len(record) {
			e.Sector = strings.TrimSpace(record[sectorIdx])
		}
		entries[symbol] = e
	}

	return entries, nil
}

func normalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}
