package portfolio

import (
	"context"
	"errors"
	"testing"

	"github.com/foliotrack/folio/internal/common"
	"github.com/foliotrack/folio/internal/interfaces"
	"github.com/foliotrack/folio/internal/models"
)

// --- Mock storage ---

type mockTradeStore struct {
	trades  []models.Trade
	listErr error
}

func (m *mockTradeStore) ReplaceTrades(_ context.Context, trades []models.Trade, _ string) error {
	m.trades = trades
	return nil
}

func (m *mockTradeStore) AppendTrades(_ context.Context, trades []models.Trade, _ string) error {
	m.trades = append(m.trades, trades...)
	return nil
}

func (m *mockTradeStore) ListTrades(_ context.Context) ([]models.Trade, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.trades, nil
}

func (m *mockTradeStore) CountTrades(_ context.Context) (int, error) { return len(m.trades), nil }

func (m *mockTradeStore) ClearTrades(_ context.Context) (int, error) {
	n := len(m.trades)
	m.trades = nil
	return n, nil
}

func (m *mockTradeStore) SaveImport(_ context.Context, _ *models.ImportRecord) error { return nil }
func (m *mockTradeStore) ListImports(_ context.Context) ([]*models.ImportRecord, error) {
	return nil, nil
}
func (m *mockTradeStore) SaveSnapshot(_ context.Context, _ *models.PortfolioView) error { return nil }
func (m *mockTradeStore) GetSnapshot(_ context.Context) (*models.PortfolioView, error) {
	return nil, nil
}
func (m *mockTradeStore) Close() error { return nil }

type mockStorageManager struct {
	store *mockTradeStore
}

func (m *mockStorageManager) TradeStore() interfaces.TradeStore         { return m.store }
func (m *mockStorageManager) DataPath() string                          { return "" }
func (m *mockStorageManager) ArchiveCSV(string, []byte) (string, error) { return "", nil }
func (m *mockStorageManager) Close() error                              { return nil }

func newTestService(trades []models.Trade) *Service {
	storage := &mockStorageManager{store: &mockTradeStore{trades: trades}}
	return NewService(storage, testRef(), common.NewSilentLogger())
}

func TestServiceHoldings(t *testing.T) {
	svc := newTestService([]models.Trade{
		{Symbol: "AAPL", Shares: 10, Price: 150.00, Date: "2024-01-10"},
		{Symbol: "AAPL", Shares: -4, Price: 160.00, Date: "2024-02-01"},
	})

	holdings, err := svc.Holdings(context.Background())
	if err != nil {
		t.Fatalf("Holdings() error = %v", err)
	}
	if len(holdings) != 1 {
		t.Fatalf("len(holdings) = %d, want 1", len(holdings))
	}
	if !approxEqual(holdings[0].SharesHeld, 6, 0.01) {
		t.Errorf("SharesHeld = %.2f, want 6", holdings[0].SharesHeld)
	}
}

func TestServiceOverviewConsistency(t *testing.T) {
	svc := newTestService([]models.Trade{
		{Symbol: "AAPL", Shares: 10, Price: 150.00, Date: "2024-01-10"},
		{Symbol: "MSFT", Shares: 2, Price: 380.00, Date: "2024-02-10"},
	})

	view, err := svc.Overview(context.Background())
	if err != nil {
		t.Fatalf("Overview() error = %v", err)
	}

	if view.TradeCount != 2 {
		t.Errorf("TradeCount = %d, want 2", view.TradeCount)
	}
	if view.ComputedAt.IsZero() {
		t.Error("ComputedAt not set")
	}

	var total float64
	for _, h := range view.Holdings {
		total += h.CurrentValue
	}
	if !approxEqual(view.Metrics.TotalValue, total, 0.01) {
		t.Errorf("Metrics.TotalValue = %.2f, want %.2f from holdings", view.Metrics.TotalValue, total)
	}
	if len(view.History) == 0 {
		t.Fatal("no history points")
	}
	last := view.History[len(view.History)-1]
	if !approxEqual(last.Value, total, 0.01) {
		t.Errorf("last history Value = %.2f, want %.2f", last.Value, total)
	}
}

func TestServiceEmptyBook(t *testing.T) {
	svc := newTestService(nil)

	view, err := svc.Overview(context.Background())
	if err != nil {
		t.Fatalf("Overview() error = %v", err)
	}
	if len(view.Holdings) != 0 || len(view.History) != 0 {
		t.Errorf("holdings/history = %d/%d, want 0/0", len(view.Holdings), len(view.History))
	}
	if view.Metrics.TopPerformer != nil {
		t.Errorf("TopPerformer = %v, want nil", view.Metrics.TopPerformer)
	}
}

func TestServiceStorageErrorPropagates(t *testing.T) {
	storage := &mockStorageManager{store: &mockTradeStore{listErr: errors.New("boom")}}
	svc := NewService(storage, testRef(), common.NewSilentLogger())

	if _, err := svc.Holdings(context.Background()); err == nil {
		t.Error("Holdings() error = nil, want wrapped store error")
	}
	if _, err := svc.Metrics(context.Background()); err == nil {
		t.Error("Metrics() error = nil, want wrapped store error")
	}
	if _, err := svc.History(context.Background()); err == nil {
		t.Error("History() error = nil, want wrapped store error")
	}
	if _, err := svc.Overview(context.Background()); err == nil {
		t.Error("Overview() error = nil, want wrapped store error")
	}
}
