package refdata

import (
	"os"
	"path/filepath"
	"sort"
	"testing"
)

func writeQuoteFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "quotes.csv")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write quote file: %v", err)
	}
	return path
}

func TestBuiltinTableLookups(t *testing.T) {
	table := BuiltinTable()

	price, ok := table.Price("AAPL")
	if !ok {
		t.Fatal("expected AAPL price in builtin table")
	}
	if price != 178.25 {
		t.Errorf("AAPL price = %v, want 178.25", price)
	}

	sector, ok := table.Sector("AAPL")
	if !ok || sector != "Technology" {
		t.Errorf("AAPL sector = %q, %v, want Technology, true", sector, ok)
	}

	if _, ok := table.Price("ZZZZ"); ok {
		t.Error("expected ZZZZ to be unmapped")
	}
	if _, ok := table.Sector("ZZZZ"); ok {
		t.Error("expected ZZZZ sector to be unmapped")
	}

	if table.Source() != "builtin" {
		t.Errorf("Source() = %q, want builtin", table.Source())
	}
}

func TestLookupNormalizesSymbol(t *testing.T) {
	table := BuiltinTable()

	for _, symbol := range []string{"aapl", " AAPL ", "Aapl"} {
		if _, ok := table.Price(symbol); !ok {
			t.Errorf("Price(%q) not found, want found", symbol)
		}
	}
}

func TestLoadCSV(t *testing.T) {
	path := writeQuoteFile(t, "symbol,price,sector\nAAPL,180.50,Technology\nko,61.00,Consumer Defensive\nXYZ,12.00,\n")

	table, err := LoadCSV(path)
	if err != nil {
		t.Fatalf("LoadCSV: %v", err)
	}

	if table.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", table.Len())
	}
	if price, ok := table.Price("AAPL"); !ok || price != 180.50 {
		t.Errorf("AAPL price = %v, %v, want 180.50, true", price, ok)
	}

	// Symbols are uppercased on load.
	if price, ok := table.Price("KO"); !ok || price != 61.00 {
		t.Errorf("KO price = %v, %v, want 61.00, true", price, ok)
	}

	// A blank sector cell means no classification.
	if _, ok := table.Sector("XYZ"); ok {
		t.Error("expected XYZ sector to be unmapped")
	}
	if _, ok := table.Price("XYZ"); !ok {
		t.Error("expected XYZ price to be mapped")
	}

	if table.Source() != path {
		t.Errorf("Source() = %q, want %q", table.Source(), path)
	}
}

func TestLoadCSVColumnVariants(t *testing.T) {
	tests := []struct {
		name     string
		contents string
	}{
		{"uppercase header", "SYMBOL,PRICE,SECTOR\nAAPL,180.50,Technology\n"},
		{"reordered columns", "sector,symbol,price\nTechnology,AAPL,180.50\n"},
		{"bom prefix", "\uFEFFsymbol,price,sector\nAAPL,180.50,Technology\n"},
		{"extra columns", "symbol,currency,price,sector\nAAPL,USD,180.50,Technology\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := LoadCSV(writeQuoteFile(t, tt.contents))
			if err != nil {
				t.Fatalf("LoadCSV: %v", err)
			}
			if price, ok := table.Price("AAPL"); !ok || price != 180.50 {
				t.Errorf("AAPL price = %v, %v, want 180.50, true", price, ok)
			}
			if sector, ok := table.Sector("AAPL"); !ok || sector != "Technology" {
				t.Errorf("AAPL sector = %q, %v, want Technology, true", sector, ok)
			}
		})
	}
}

func TestLoadCSVRejectsBadFiles(t *testing.T) {
	tests := []struct {
		name     string
		contents string
	}{
		{"empty file", ""},
		{"missing symbol column", "ticker,price\nAAPL,180.50\n"},
		{"malformed price", "symbol,price\nAAPL,not-a-number\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadCSV(writeQuoteFile(t, tt.contents)); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}

	if _, err := LoadCSV(filepath.Join(t.TempDir(), "missing.csv")); err == nil {
		t.Error("expected error for missing file, got nil")
	}
}

func TestReloadSwapsContents(t *testing.T) {
	table := BuiltinTable()
	path := writeQuoteFile(t, "symbol,price,sector\nAAPL,200.00,Technology\n")

	if err := table.ReloadFromFile(path); err != nil {
		t.Fatalf("ReloadFromFile: %v", err)
	}

	if price, _ := table.Price("AAPL"); price != 200.00 {
		t.Errorf("AAPL price after reload = %v, want 200.00", price)
	}

	// Builtin entries not present in the file are gone after the swap.
	if _, ok := table.Price("MSFT"); ok {
		t.Error("expected MSFT to be unmapped after reload")
	}
	if table.Len() != 1 {
		t.Errorf("Len() after reload = %d, want 1", table.Len())
	}
}

func TestReloadFailureKeepsContents(t *testing.T) {
	table := BuiltinTable()
	before := table.Len()

	path := writeQuoteFile(t, "symbol,price\nAAPL,not-a-number\n")
	if err := table.ReloadFromFile(path); err == nil {
		t.Fatal("expected reload error, got nil")
	}

	if table.Len() != before {
		t.Errorf("Len() after failed reload = %d, want %d", table.Len(), before)
	}
	if price, _ := table.Price("AAPL"); price != 178.25 {
		t.Errorf("AAPL price after failed reload = %v, want 178.25", price)
	}
	if table.Source() != "builtin" {
		t.Errorf("Source() after failed reload = %q, want builtin", table.Source())
	}
}

func TestSymbolsSorted(t *testing.T) {
	table := BuiltinTable()

	symbols := table.Symbols()
	if len(symbols) != table.Len() {
		t.Fatalf("Symbols() returned %d entries, want %d", len(symbols), table.Len())
	}
	if !sort.StringsAreSorted(symbols) {
		t.Errorf("Symbols() not sorted: %v", symbols)
	}
}

func TestEmptyTable(t *testing.T) {
	table := NewTable()

	if table.Len() != 0 {
		t.Errorf("Len() = %d, want 0", table.Len())
	}
	if _, ok := table.Price("AAPL"); ok {
		t.Error("expected empty table to miss every symbol")
	}
	if table.Source() != "empty" {
		t.Errorf("Source() = %q, want empty", table.Source())
	}
}
