// Package interfaces defines service contracts for Folio
package interfaces

import (
	"context"
	"io"

	"github.com/foliotrack/folio/internal/models"
)

// ReferenceData answers read-only price and sector lookups for the
// aggregation engine. Implementations must be safe for concurrent readers;
// callers treat the table as frozen for the duration of one engine call.
type ReferenceData interface {
	// Price returns the current per-share price for a symbol.
	Price(symbol string) (float64, bool)

	// Sector returns the sector classification for a symbol.
	Sector(symbol string) (string, bool)
}

// IngestService turns raw trade documents into typed trades with
// field-level diagnostics. Validation problems are data, not errors.
type IngestService interface {
	// ParseCSV validates an entire CSV document with a header row.
	ParseCSV(r io.Reader) models.ValidationResult

	// ValidateRows validates pre-split rows (column name → raw value),
	// numbered from 1 in slice order.
	ValidateRows(rows []map[string]string) models.ValidationResult

	// SampleCSV returns the canonical example document.
	SampleCSV() string
}

// PortfolioService derives portfolio views from the stored trade book.
type PortfolioService interface {
	// Holdings aggregates the current trade book into per-symbol positions.
	Holdings(ctx context.Context) ([]models.Holding, error)

	// Metrics reduces current holdings into portfolio-wide statistics.
	Metrics(ctx context.Context) (models.PortfolioMetrics, error)

	// History replays the trade book into a value-over-time series.
	History(ctx context.Context) ([]models.HistoryPoint, error)

	// Overview computes holdings, metrics and history in one pass.
	Overview(ctx context.Context) (*models.PortfolioView, error)
}
