// Package tradedb implements TradeStore using BadgerHold.
// It persists the trade book as sequenced TradeRecord entries alongside
// import history and the cached portfolio view.
package tradedb

import (
	"context"
	"fmt"
	"os"
	"sort"
	"sync/atomic"
	"time"

	"github.com/foliotrack/folio/internal/common"
	"github.com/foliotrack/folio/internal/interfaces"
	"github.com/foliotrack/folio/internal/models"
	"github.com/timshannon/badgerhold/v4"
)

// keySep is the composite key separator. A null byte keeps record kinds
// apart even when identifiers contain ":" characters.
const keySep = "\x00"

// snapshotKey is the fixed key of the single cached portfolio view.
const snapshotKey = "snapshot" + keySep + "latest"

// snapshotRecord wraps the cached view for persistence.
type snapshotRecord struct {
	Key     string
	View    models.PortfolioView
	SavedAt time.Time
}

// Store implements interfaces.TradeStore using BadgerHold.
type Store struct {
	db     *badgerhold.Store
	logger *common.Logger
	seq    atomic.Uint64
}

// NewStore opens the trade book at path, creating it when absent.
func NewStore(logger *common.Logger, path string) (*Store, error) {
	if err := os.MkdirAll(path, 0755); err != nil {
		return nil, fmt.Errorf("failed to create tradedb path %s: %w", path, err)
	}
	opts := badgerhold.DefaultOptions
	opts.Dir = path
	opts.ValueDir = path
	opts.Logger = nil
	db, err := badgerhold.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open tradedb at %s: %w", path, err)
	}

	s := &Store{db: db, logger: logger}
	if err := s.seedSequence(); err != nil {
		db.Close()
		return nil, err
	}

	logger.Info().Str("path", path).Msg("TradeDB opened")
	return s, nil
}

// seedSequence resumes the insert counter from the highest stored Seq so
// appends after a restart keep extending insertion order.
func (s *Store) seedSequence() error {
	var all []models.TradeRecord
	if err := s.db.Find(&all, nil); err != nil {
		return fmt.Errorf("failed to scan trade book: %w", err)
	}
	var max uint64
	for i := range all {
		if all[i].Seq > max {
			max = all[i].Seq
		}
	}
	s.seq.Store(max)
	return nil
}

// tradeKey builds the storage key: "trade" + \x00 + zero-padded sequence.
func tradeKey(seq uint64) string {
	return fmt.Sprintf("trade%s%012d", keySep, seq)
}

func importKey(id string) string {
	return "import" + keySep + id
}

// ReplaceTrades clears the book and stores the batch as the new contents.
func (s *Store) ReplaceTrades(ctx context.Context, trades []models.Trade, importID string) error {
	cleared, err := s.ClearTrades(ctx)
	if err != nil {
		return err
	}
	if err := s.AppendTrades(ctx, trades, importID); err != nil {
		return err
	}
	s.logger.Debug().
		Int("cleared", cleared).
		Int("stored", len(trades)).
		Str("import_id", importID).
		Msg("Trade book replaced")
	return nil
}

// AppendTrades adds the batch to the end of the book.
func (s *Store) AppendTrades(_ context.Context, trades []models.Trade, importID string) error {
	now := time.Now().UTC()
	for _, t := range trades {
		seq := s.seq.Add(1)
		rec := models.TradeRecord{
			Seq:      seq,
			Trade:    t,
			ImportID: importID,
			AddedAt:  now,
		}
		if err := s.db.Upsert(tradeKey(seq), &rec); err != nil {
			return fmt.Errorf("failed to store trade %s: %w", t.Symbol, err)
		}
	}
	return nil
}

// ListTrades returns the whole book in insertion order.
func (s *Store) ListTrades(_ context.Context) ([]models.Trade, error) {
	var all []models.TradeRecord
	if err := s.db.Find(&all, nil); err != nil {
		return nil, fmt.Errorf("failed to list trades: %w", err)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Seq < all[j].Seq })

	trades := make([]models.Trade, len(all))
	for i := range all {
		trades[i] = all[i].Trade
	}
	return trades, nil
}

func (s *Store) CountTrades(_ context.Context) (int, error) {
	var all []models.TradeRecord
	if err := s.db.Find(&all, nil); err != nil {
		return 0, fmt.Errorf("failed to count trades: %w", err)
	}
	return len(all), nil
}

// ClearTrades deletes every trade record and returns how many were removed.
func (s *Store) ClearTrades(_ context.Context) (int, error) {
	var all []models.TradeRecord
	if err := s.db.Find(&all, nil); err != nil {
		return 0, fmt.Errorf("failed to scan trade book: %w", err)
	}
	for i := range all {
		if err := s.db.Delete(tradeKey(all[i].Seq), models.TradeRecord{}); err != nil && err != badgerhold.ErrNotFound {
			return 0, fmt.Errorf("failed to delete trade %d: %w", all[i].Seq, err)
		}
	}
	return len(all), nil
}

func (s *Store) SaveImport(_ context.Context, rec *models.ImportRecord) error {
	if err := s.db.Upsert(importKey(rec.ID), rec); err != nil {
		return fmt.Errorf("failed to save import %s: %w", rec.ID, err)
	}
	return nil
}

// ListImports returns import history, newest first.
func (s *Store) ListImports(_ context.Context) ([]*models.ImportRecord, error) {
	var all []models.ImportRecord
	if err := s.db.Find(&all, nil); err != nil {
		return nil, fmt.Errorf("failed to list imports: %w", err)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ImportedAt.After(all[j].ImportedAt) })

	result := make([]*models.ImportRecord, 0, len(all))
	for i := range all {
		rec := all[i]
		result = append(result, &rec)
	}
	return result, nil
}

func (s *Store) SaveSnapshot(_ context.Context, view *models.PortfolioView) error {
	rec := snapshotRecord{
		Key:     snapshotKey,
		View:    *view,
		SavedAt: time.Now().UTC(),
	}
	if err := s.db.Upsert(snapshotKey, &rec); err != nil {
		return fmt.Errorf("failed to save portfolio snapshot: %w", err)
	}
	return nil
}

// GetSnapshot returns the cached view, or nil when none has been saved.
func (s *Store) GetSnapshot(_ context.Context) (*models.PortfolioView, error) {
	var rec snapshotRecord
	if err := s.db.Get(snapshotKey, &rec); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get portfolio snapshot: %w", err)
	}
	view := rec.View
	return &view, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Compile-time check
var _ interfaces.TradeStore = (*Store)(nil)
