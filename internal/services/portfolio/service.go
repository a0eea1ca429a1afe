package portfolio

import (
	"context"
	"fmt"
	"time"

	"github.com/foliotrack/folio/internal/common"
	"github.com/foliotrack/folio/internal/interfaces"
	"github.com/foliotrack/folio/internal/models"
)

// Service implements PortfolioService over the stored trade book.
type Service struct {
	storage interfaces.StorageManager
	refdata interfaces.ReferenceData
	logger  *common.Logger
}

// NewService creates a new portfolio service
func NewService(storage interfaces.StorageManager, refdata interfaces.ReferenceData, logger *common.Logger) *Service {
	return &Service{
		storage: storage,
		refdata: refdata,
		logger:  logger,
	}
}

func (s *Service) loadTrades(ctx context.Context) ([]models.Trade, error) {
	trades, err := s.storage.TradeStore().ListTrades(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load trade book: %w", err)
	}
	return trades, nil
}

// Holdings aggregates the current trade book into per-symbol positions.
func (s *Service) Holdings(ctx context.Context) ([]models.Holding, error) {
	trades, err := s.loadTrades(ctx)
	if err != nil {
		return nil, err
	}

	holdings := AggregateHoldings(trades, s.refdata)
	s.logger.Debug().
		Int("trades", len(trades)).
		Int("holdings", len(holdings)).
		Msg("Holdings aggregated")
	return holdings, nil
}

// Metrics reduces current holdings into portfolio-wide statistics.
func (s *Service) Metrics(ctx context.Context) (models.PortfolioMetrics, error) {
	holdings, err := s.Holdings(ctx)
	if err != nil {
		return models.PortfolioMetrics{}, err
	}
	return ComputeMetrics(holdings), nil
}

// History replays the trade book into a value-over-time series.
func (s *Service) History(ctx context.Context) ([]models.HistoryPoint, error) {
	trades, err := s.loadTrades(ctx)
	if err != nil {
		return nil, err
	}

	points := BuildHistory(trades, s.refdata)
	s.logger.Debug().
		Int("trades", len(trades)).
		Int("points", len(points)).
		Msg("History built")
	return points, nil
}

// Overview computes holdings, metrics and history from one read of the
// trade book so the three views are consistent with each other.
func (s *Service) Overview(ctx context.Context) (*models.PortfolioView, error) {
	trades, err := s.loadTrades(ctx)
	if err != nil {
		return nil, err
	}

	holdings := AggregateHoldings(trades, s.refdata)
	view := &models.PortfolioView{
		Holdings:   holdings,
		Metrics:    ComputeMetrics(holdings),
		History:    BuildHistory(trades, s.refdata),
		TradeCount: len(trades),
		ComputedAt: time.Now().UTC(),
	}

	s.logger.Info().
		Int("trades", view.TradeCount).
		Int("holdings", len(holdings)).
		Float64("total_value", view.Metrics.TotalValue).
		Msg("Portfolio overview computed")
	return view, nil
}
