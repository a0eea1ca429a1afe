package portfolio

import (
	"sort"

	"github.com/foliotrack/folio/internal/interfaces"
	"github.com/foliotrack/folio/internal/models"
)

// BuildHistory replays the trade list into one point per distinct trade
// date: the portfolio value over every trade dated on or before that date,
// plus the count of trades executed on the date itself. Points are ordered
// by ascending date. Each point reruns the full aggregation over the date
// prefix, so every point matches what AggregateHoldings reports for the
// same cutoff; D distinct dates over T trades costs O(D×T), which holds up
// fine at interactive dataset sizes.
func BuildHistory(trades []models.Trade, ref interfaces.ReferenceData) []models.HistoryPoint {
	if len(trades) == 0 {
		return []models.HistoryPoint{}
	}

	ordered := make([]models.Trade, len(trades))
	copy(ordered, trades)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Date < ordered[j].Date
	})

	var points []models.HistoryPoint
	start := 0
	for start < len(ordered) {
		date := ordered[start].Date
		end := start + 1
		for end < len(ordered) && ordered[end].Date == date {
			end++
		}

		var value float64
		for _, h := range AggregateHoldings(ordered[:end], ref) {
			value += h.CurrentValue
		}

		points = append(points, models.HistoryPoint{
			Date:   date,
			Value:  value,
			Trades: end - start,
		})
		start = end
	}

	return points
}
