// Package interfaces defines service contracts for Folio
package interfaces

import (
	"context"

	"github.com/foliotrack/folio/internal/models"
)

// StorageManager coordinates the storage areas and their lifecycle.
type StorageManager interface {
	// TradeStore returns the trade book store.
	TradeStore() TradeStore

	// DataPath returns the base data directory path.
	DataPath() string

	// ArchiveCSV writes an accepted upload to the imports archive and
	// returns the archived filename. Key is sanitized for safe filenames.
	ArchiveCSV(key string, data []byte) (string, error)

	// Lifecycle
	Close() error
}

// TradeStore persists the trade book, import history, and the most recent
// computed portfolio view. Reads return trades in insertion order so that
// same-date replay stays deterministic across restarts.
type TradeStore interface {
	// Trade book
	ReplaceTrades(ctx context.Context, trades []models.Trade, importID string) error
	AppendTrades(ctx context.Context, trades []models.Trade, importID string) error
	ListTrades(ctx context.Context) ([]models.Trade, error)
	CountTrades(ctx context.Context) (int, error)
	ClearTrades(ctx context.Context) (int, error)

	// Import history
	SaveImport(ctx context.Context, rec *models.ImportRecord) error
	ListImports(ctx context.Context) ([]*models.ImportRecord, error)

	// Snapshot of the latest computed view for fast first render
	SaveSnapshot(ctx context.Context, view *models.PortfolioView) error
	GetSnapshot(ctx context.Context) (*models.PortfolioView, error)

	Close() error
}
