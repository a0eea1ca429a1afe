package app

import (
	"context"
	"os"
	"time"

	"github.com/foliotrack/folio/internal/common"
	"github.com/foliotrack/folio/internal/interfaces"
)

// warmSnapshot recomputes the portfolio view on startup so the first query
// is served from a fresh snapshot rather than a full replay.
func warmSnapshot(ctx context.Context, portfolioService interfaces.PortfolioService, storage interfaces.StorageManager, logger *common.Logger) {
	// Check env var override
	if os.Getenv("FOLIO_WARM_SNAPSHOT") == "off" {
		logger.Info().Msg("Warm snapshot: disabled via FOLIO_WARM_SNAPSHOT=off")
		return
	}

	start := time.Now()

	count, err := storage.TradeStore().CountTrades(ctx)
	if err != nil {
		logger.Warn().Err(err).Msg("Warm snapshot: trade count failed")
		return
	}
	if count == 0 {
		logger.Info().Msg("Warm snapshot: empty trade book, skipping")
		return
	}

	view, err := portfolioService.Overview(ctx)
	if err != nil {
		logger.Warn().Err(err).Msg("Warm snapshot: aggregation failed")
		return
	}

	if err := storage.TradeStore().SaveSnapshot(ctx, view); err != nil {
		logger.Warn().Err(err).Msg("Warm snapshot: save failed")
		return
	}

	logger.Info().
		Int("trades", view.TradeCount).
		Int("holdings", len(view.Holdings)).
		Dur("elapsed", time.Since(start)).
		Msg("Warm snapshot: complete")
}
