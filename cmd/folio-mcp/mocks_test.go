package main

import (
	"context"
	"sync"

	"github.com/foliotrack/folio/internal/interfaces"
	"github.com/foliotrack/folio/internal/models"
)

// --- mockPortfolioService ---

type mockPortfolioService struct {
	holdingsFn func(ctx context.Context) ([]models.Holding, error)
	metricsFn  func(ctx context.Context) (models.PortfolioMetrics, error)
	historyFn  func(ctx context.Context) ([]models.HistoryPoint, error)
	overviewFn func(ctx context.Context) (*models.PortfolioView, error)
}

func (m *mockPortfolioService) Holdings(ctx context.Context) ([]models.Holding, error) {
	if m.holdingsFn != nil {
		return m.holdingsFn(ctx)
	}
	return nil, nil
}

func (m *mockPortfolioService) Metrics(ctx context.Context) (models.PortfolioMetrics, error) {
	if m.metricsFn != nil {
		return m.metricsFn(ctx)
	}
	return models.PortfolioMetrics{}, nil
}

func (m *mockPortfolioService) History(ctx context.Context) ([]models.HistoryPoint, error) {
	if m.historyFn != nil {
		return m.historyFn(ctx)
	}
	return nil, nil
}

func (m *mockPortfolioService) Overview(ctx context.Context) (*models.PortfolioView, error) {
	if m.overviewFn != nil {
		return m.overviewFn(ctx)
	}
	return nil, nil
}

// --- mockTradeStore ---

// mockTradeStore keeps the trade book in memory so import-then-read
// scenarios behave like the real store. Function fields override individual
// operations for error injection.
type mockTradeStore struct {
	mu      sync.Mutex
	trades  []models.Trade
	imports []*models.ImportRecord

	replaceFn func(ctx context.Context, trades []models.Trade, importID string) error
	appendFn  func(ctx context.Context, trades []models.Trade, importID string) error
}

func (m *mockTradeStore) ReplaceTrades(ctx context.Context, trades []models.Trade, importID string) error {
	if m.replaceFn != nil {
		return m.replaceFn(ctx, trades, importID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.trades = append([]models.Trade(nil), trades...)
	return nil
}

func (m *mockTradeStore) AppendTrades(ctx context.Context, trades []models.Trade, importID string) error {
	if m.appendFn != nil {
		return m.appendFn(ctx, trades, importID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.trades = append(m.trades, trades...)
	return nil
}

func (m *mockTradeStore) ListTrades(ctx context.Context) ([]models.Trade, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.Trade(nil), m.trades...), nil
}

func (m *mockTradeStore) CountTrades(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.trades), nil
}

func (m *mockTradeStore) ClearTrades(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := len(m.trades)
	m.trades = nil
	return n, nil
}

func (m *mockTradeStore) SaveImport(ctx context.Context, rec *models.ImportRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.imports = append(m.imports, rec)
	return nil
}

func (m *mockTradeStore) ListImports(ctx context.Context) ([]*models.ImportRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*models.ImportRecord(nil), m.imports...), nil
}

func (m *mockTradeStore) SaveSnapshot(ctx context.Context, view *models.PortfolioView) error {
	return nil
}

func (m *mockTradeStore) GetSnapshot(ctx context.Context) (*models.PortfolioView, error) {
	return nil, nil
}

func (m *mockTradeStore) Close() error { return nil }

// --- mockStorageManager ---

type mockStorageManager struct {
	store     *mockTradeStore
	archiveFn func(key string, data []byte) (string, error)
}

func newMockStorageManager() *mockStorageManager {
	return &mockStorageManager{store: &mockTradeStore{}}
}

func (m *mockStorageManager) TradeStore() interfaces.TradeStore { return m.store }
func (m *mockStorageManager) DataPath() string                  { return "" }

func (m *mockStorageManager) ArchiveCSV(key string, data []byte) (string, error) {
	if m.archiveFn != nil {
		return m.archiveFn(key, data)
	}
	return key + ".csv", nil
}

func (m *mockStorageManager) Close() error { return nil }
