package models

import "time"

// Holding is a derived per-symbol position as of a trade cutoff. Holdings
// are recomputed from scratch on every aggregation call, never mutated in
// place. Every emitted Holding has SharesHeld > 0; symbols whose net
// position reaches zero or goes negative are dropped entirely.
type Holding struct {
	Symbol                    string  `json:"symbol"`
	SharesHeld                float64 `json:"shares_held"`
	AvgCostBasis              float64 `json:"avg_cost_basis"`
	CostBasis                 float64 `json:"cost_basis"` // remaining total cost (shares held × avg cost)
	CurrentPrice              float64 `json:"current_price"`
	CurrentValue              float64 `json:"current_value"`
	UnrealizedGainLoss        float64 `json:"unrealized_gain_loss"`
	UnrealizedGainLossPercent float64 `json:"unrealized_gain_loss_pct"`
	Sector                    string  `json:"sector"`
}

// PerformerRef identifies the holding occupying a performer slot in
// PortfolioMetrics.
type PerformerRef struct {
	Symbol          string  `json:"symbol"`
	GainLossPercent float64 `json:"gain_loss_pct"`
}

// PortfolioMetrics is a single aggregate snapshot over a Holdings set.
// Performer fields are nil when there are no holdings.
type PortfolioMetrics struct {
	TotalValue           float64       `json:"total_value"`
	TotalCost            float64       `json:"total_cost"`
	TotalGainLoss        float64       `json:"total_gain_loss"`
	TotalGainLossPercent float64       `json:"total_gain_loss_pct"`
	UniqueSymbols        int           `json:"unique_symbols"`
	TopPerformer         *PerformerRef `json:"top_performer"`
	WorstPerformer       *PerformerRef `json:"worst_performer"`
}

// HistoryPoint is one step in the portfolio value time series: the value of
// the portfolio after every trade dated on or before Date, plus the count
// of trades executed on Date itself. Points are ordered by ascending date.
type HistoryPoint struct {
	Date   string  `json:"date"`
	Value  float64 `json:"value"`
	Trades int     `json:"trades"`
}

// PortfolioView is the combined dashboard payload: holdings, metrics and
// history derived from the same trade list in one computation.
type PortfolioView struct {
	Holdings   []Holding        `json:"holdings"`
	Metrics    PortfolioMetrics `json:"metrics"`
	History    []HistoryPoint   `json:"history"`
	TradeCount int              `json:"trade_count"`
	ComputedAt time.Time        `json:"computed_at"`
}
