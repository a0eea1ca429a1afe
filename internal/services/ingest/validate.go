// Package ingest parses raw trade documents into typed trades with
// field-level diagnostics. Validation problems are returned as data so a
// caller can show every problem at once; nothing here panics or returns a
// Go error for bad input rows.
package ingest

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/foliotrack/folio/internal/models"
)

// symbolPattern bounds tickers to 1-15 characters of A-Z, 0-9 and "&"
// after trimming and upper-casing ("BRK&B" style class shares included).
var symbolPattern = regexp.MustCompile(`^[A-Z0-9&]{1,15}$`)

// dateLayouts are the accepted input date formats, tried in order. The
// single-digit variants take "2024-1-5" and "1/5/2024" style rows that
// spreadsheets commonly emit.
var dateLayouts = []string{
	"2006-01-02",
	"2006-1-2",
	"01/02/2006",
	"1/2/2006",
}

// ValidateRow evaluates every field rule on one raw row independently,
// producing either a valid Trade or the accumulated field errors, never
// both. rowNum is 1-based counting from the first data row. Recognized
// keys are symbol, shares, price and date; anything else in the row map is
// ignored.
func ValidateRow(row map[string]string, rowNum int) (models.Trade, []models.ValidationError) {
	var errs []models.ValidationError

	symbol := strings.ToUpper(strings.TrimSpace(row["symbol"]))
	if symbol == "" {
		errs = append(errs, fieldError(rowNum, "symbol", "Symbol is required"))
	} else if !symbolPattern.MatchString(symbol) {
		errs = append(errs, fieldError(rowNum, "symbol", "Symbol must be 1-15 characters of A-Z, 0-9 or &"))
	}

	var shares float64
	if raw := strings.TrimSpace(row["shares"]); raw == "" {
		errs = append(errs, fieldError(rowNum, "shares", "Shares is required"))
	} else if v, err := strconv.ParseFloat(raw, 64); err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		errs = append(errs, fieldError(rowNum, "shares", "Shares must be a number"))
	} else if v == 0 {
		errs = append(errs, fieldError(rowNum, "shares", "Shares must be nonzero (positive = buy, negative = sell)"))
	} else {
		shares = v
	}

	var price float64
	if raw := strings.TrimSpace(row["price"]); raw == "" {
		errs = append(errs, fieldError(rowNum, "price", "Price is required"))
	} else if v, err := strconv.ParseFloat(raw, 64); err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		errs = append(errs, fieldError(rowNum, "price", "Price must be a number"))
	} else if v <= 0 {
		errs = append(errs, fieldError(rowNum, "price", "Price must be greater than zero"))
	} else {
		price = v
	}

	var date string
	if raw := strings.TrimSpace(row["date"]); raw == "" {
		errs = append(errs, fieldError(rowNum, "date", "Date is required"))
	} else if parsed, ok := parseDate(raw); !ok {
		errs = append(errs, fieldError(rowNum, "date", "Date must be a valid calendar date (YYYY-MM-DD or MM/DD/YYYY)"))
	} else if parsed.After(today()) {
		errs = append(errs, fieldError(rowNum, "date", "Date cannot be in the future"))
	} else {
		date = parsed.Format("2006-01-02")
	}

	if len(errs) > 0 {
		return models.Trade{}, errs
	}

	return models.Trade{
		Symbol: symbol,
		Shares: shares,
		Price:  price,
		Date:   date,
	}, nil
}

// ValidateRows validates pre-split rows, numbered from 1 in slice order.
// Rows fail independently: one bad row never blocks the others, but any
// error anywhere leaves the whole result invalid.
func ValidateRows(rows []map[string]string) models.ValidationResult {
	result := models.ValidationResult{
		Trades: []models.Trade{},
		Errors: []models.ValidationError{},
	}

	for i, row := range rows {
		trade, errs := ValidateRow(row, i+1)
		if len(errs) > 0 {
			result.Errors = append(result.Errors, errs...)
			continue
		}
		result.Trades = append(result.Trades, trade)
	}

	return result
}

func fieldError(row int, field, message string) models.ValidationError {
	return models.ValidationError{Row: row, Field: field, Message: message}
}

func parseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// today returns the current date with no time component. A trade dated
// today is acceptable; only strictly later dates are rejected.
func today() time.Time {
	y, m, d := time.Now().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
