package portfolio

import (
	"sort"

	"github.com/foliotrack/folio/internal/models"
)

// ComputeMetrics reduces a holdings set into portfolio-wide totals plus
// best and worst performer references. Performers are picked by stable
// descending sort on unrealized gain/loss percent: first element takes the
// top slot, last takes the bottom, so ties resolve by input position and a
// single holding occupies both. Empty input yields zero totals and nil
// performers. The input slice is not reordered.
func ComputeMetrics(holdings []models.Holding) models.PortfolioMetrics {
	metrics := models.PortfolioMetrics{
		UniqueSymbols: len(holdings),
	}
	if len(holdings) == 0 {
		return metrics
	}

	for _, h := range holdings {
		metrics.TotalValue += h.CurrentValue
		metrics.TotalCost += h.SharesHeld * h.AvgCostBasis
	}
	metrics.TotalGainLoss = metrics.TotalValue - metrics.TotalCost
	if metrics.TotalCost > 0 {
		metrics.TotalGainLossPercent = (metrics.TotalGainLoss / metrics.TotalCost) * 100
	}

	ranked := make([]models.Holding, len(holdings))
	copy(ranked, holdings)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].UnrealizedGainLossPercent > ranked[j].UnrealizedGainLossPercent
	})

	top := ranked[0]
	worst := ranked[len(ranked)-1]
	metrics.TopPerformer = &models.PerformerRef{
		Symbol:          top.Symbol,
		GainLossPercent: top.UnrealizedGainLossPercent,
	}
	metrics.WorstPerformer = &models.PerformerRef{
		Symbol:          worst.Symbol,
		GainLossPercent: worst.UnrealizedGainLossPercent,
	}

	return metrics
}
