package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/foliotrack/folio/internal/models"
)

// recognizedColumns are the header names validation binds to. Other
// columns are carried through and ignored.
var recognizedColumns = []string{"symbol", "shares", "price", "date"}

// ParseCSV reads a header-rowed CSV document and validates every data row.
// Header names are matched case-insensitively after trimming, with a UTF-8
// BOM tolerated on the first cell. A document that cannot be tokenized at
// all, or whose header contains none of the recognized columns, yields a
// single row-0 "file" error and zero trades.
func ParseCSV(r io.Reader) models.ValidationResult {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // a short row is a row problem, not a file problem
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return fileError(fmt.Sprintf("Unable to parse CSV: %v", err))
	}
	if len(records) == 0 {
		return fileError("File is empty")
	}

	columns := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		if i == 0 {
			name = strings.TrimPrefix(name, "\uFEFF")
		}
		name = strings.ToLower(strings.TrimSpace(name))
		if _, exists := columns[name]; !exists {
			columns[name] = i
		}
	}

	known := 0
	for _, name := range recognizedColumns {
		if _, ok := columns[name]; ok {
			known++
		}
	}
	if known == 0 {
		return fileError("No recognized columns in header (expected symbol, shares, price, date)")
	}

	rows := make([]map[string]string, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make(map[string]string, len(columns))
		for name, idx := range columns {
			if idx < len(record) {
				row[name] = record[idx]
			}
		}
		rows = append(rows, row)
	}

	return ValidateRows(rows)
}

func fileError(message string) models.ValidationResult {
	return models.ValidationResult{
		Trades: []models.Trade{},
		Errors: []models.ValidationError{{Row: 0, Field: "file", Message: message}},
	}
}
