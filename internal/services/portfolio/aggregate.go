// Package portfolio implements the aggregation engine that turns dated
// buy/sell trades into holdings, portfolio metrics, and a value time series.
// Every exported computation is a pure function of its inputs plus the
// injected reference lookup; caller-supplied slices are never mutated.
package portfolio

import (
	"sort"

	"github.com/foliotrack/folio/internal/interfaces"
	"github.com/foliotrack/folio/internal/models"
)

// PriceFallbackMultiplier values a position with no quoted price at its
// average cost plus 5%.
const PriceFallbackMultiplier = 1.05

// DefaultSector labels symbols missing a sector classification.
const DefaultSector = "Other"

// position is the running replay state for one symbol.
type position struct {
	totalShares float64
	totalCost   float64
}

// apply replays one trade into the position. Buys add shares at cost.
// Sells remove cost at the current average per share, clamp the remaining
// cost at zero, and always reduce the share count, so an over-sold
// position goes negative rather than sticking at its last positive state.
func (p *position) apply(t models.Trade) {
	if t.Shares > 0 {
		p.totalCost += t.Shares * t.Price
		p.totalShares += t.Shares
		return
	}

	var avgCost float64
	if p.totalShares > 0 {
		avgCost = p.totalCost / p.totalShares
	}
	p.totalCost -= -t.Shares * avgCost
	if p.totalCost < 0 {
		p.totalCost = 0
	}
	p.totalShares += t.Shares
}

// AggregateHoldings reduces a trade list into current per-symbol holdings
// using the average-cost method: each sale removes cost at the average cost
// per share at the time of the sale, not at per-lot FIFO cost. Trades are
// grouped by symbol and replayed in ascending date order, with same-date
// trades kept in input order so results are reproducible. Symbols whose net
// position ends at or below zero are dropped entirely. Output is sorted
// descending by current value.
func AggregateHoldings(trades []models.Trade, ref interfaces.ReferenceData) []models.Holding {
	if len(trades) == 0 {
		return []models.Holding{}
	}

	groups := make(map[string][]models.Trade)
	var symbols []string
	for _, t := range trades {
		if _, seen := groups[t.Symbol]; !seen {
			symbols = append(symbols, t.Symbol)
		}
		groups[t.Symbol] = append(groups[t.Symbol], t)
	}

	holdings := make([]models.Holding, 0, len(symbols))
	for _, symbol := range symbols {
		group := groups[symbol]
		sort.SliceStable(group, func(i, j int) bool {
			return group[i].Date < group[j].Date
		})

		var pos position
		for _, t := range group {
			pos.apply(t)
		}
		if pos.totalShares <= 0 {
			continue
		}

		h := models.Holding{
			Symbol:       symbol,
			SharesHeld:   pos.totalShares,
			AvgCostBasis: pos.totalCost / pos.totalShares,
			CostBasis:    pos.totalCost,
			Sector:       DefaultSector,
		}
		if sector, ok := ref.Sector(symbol); ok {
			h.Sector = sector
		}
		price, ok := ref.Price(symbol)
		if !ok {
			price = h.AvgCostBasis * PriceFallbackMultiplier
		}
		h.CurrentPrice = price
		h.CurrentValue = h.SharesHeld * price
		h.UnrealizedGainLoss = h.CurrentValue - pos.totalCost
		if pos.totalCost > 0 {
			h.UnrealizedGainLossPercent = (h.UnrealizedGainLoss / pos.totalCost) * 100
		}

		holdings = append(holdings, h)
	}

	sort.SliceStable(holdings, func(i, j int) bool {
		return holdings[i].CurrentValue > holdings[j].CurrentValue
	})

	return holdings
}
