package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/foliotrack/folio/internal/common"
	"github.com/foliotrack/folio/internal/models"
)

// Delegate to common format helpers
func formatMoney(v float64) string       { return common.FormatMoney(v) }
func formatSignedMoney(v float64) string { return common.FormatSignedMoney(v) }
func formatSignedPct(v float64) string   { return common.FormatSignedPct(v) }

// formatShares renders a share count without trailing zeros, so fractional
// positions stay readable.
func formatShares(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// formatHoldings formats aggregated holdings as a markdown table.
func formatHoldings(holdings []models.Holding) string {
	var sb strings.Builder

	sb.WriteString("# Portfolio Holdings\n\n")

	if len(holdings) == 0 {
		sb.WriteString("No open positions. Import trades with the import_trades tool.\n")
		return sb.String()
	}

	sb.WriteString("| Symbol | Shares | Avg Cost | Price | Value | Gain/Loss | Gain/Loss % | Sector |\n")
	sb.WriteString("|--------|--------|----------|-------|-------|-----------|-------------|--------|\n")

	totalValue := 0.0
	totalGain := 0.0
	for _, h := range holdings {
		totalValue += h.CurrentValue
		totalGain += h.UnrealizedGainLoss
		sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %s | %s | %s | %s |\n",
			h.Symbol, formatShares(h.SharesHeld),
			formatMoney(h.AvgCostBasis), formatMoney(h.CurrentPrice),
			formatMoney(h.CurrentValue),
			formatSignedMoney(h.UnrealizedGainLoss), formatSignedPct(h.UnrealizedGainLossPercent),
			h.Sector))
	}
	sb.WriteString(fmt.Sprintf("| **Total** | | | | **%s** | **%s** | | |\n",
		formatMoney(totalValue), formatSignedMoney(totalGain)))

	return sb.String()
}

// formatMetrics formats portfolio metrics as a markdown summary.
func formatMetrics(m models.PortfolioMetrics) string {
	var sb strings.Builder

	sb.WriteString("# Portfolio Metrics\n\n")

	if m.UniqueSymbols == 0 {
		sb.WriteString("No open positions in the trade book.\n")
		return sb.String()
	}

	sb.WriteString(fmt.Sprintf("**Total Value:** %s\n", formatMoney(m.TotalValue)))
	sb.WriteString(fmt.Sprintf("**Total Cost:** %s\n", formatMoney(m.TotalCost)))
	sb.WriteString(fmt.Sprintf("**Total Gain/Loss:** %s (%s)\n",
		formatSignedMoney(m.TotalGainLoss), formatSignedPct(m.TotalGainLossPercent)))
	sb.WriteString(fmt.Sprintf("**Unique Symbols:** %d\n", m.UniqueSymbols))
	if m.TopPerformer != nil {
		sb.WriteString(fmt.Sprintf("**Top Performer:** %s (%s)\n",
			m.TopPerformer.Symbol, formatSignedPct(m.TopPerformer.GainLossPercent)))
	}
	if m.WorstPerformer != nil {
		sb.WriteString(fmt.Sprintf("**Worst Performer:** %s (%s)\n",
			m.WorstPerformer.Symbol, formatSignedPct(m.WorstPerformer.GainLossPercent)))
	}

	return sb.String()
}

// formatHistory formats the portfolio value time series as a markdown table.
func formatHistory(points []models.HistoryPoint) string {
	var sb strings.Builder

	sb.WriteString("# Portfolio History\n\n")

	if len(points) == 0 {
		sb.WriteString("No trade dates in the book. Import trades with the import_trades tool.\n")
		return sb.String()
	}

	sb.WriteString(fmt.Sprintf("**Range:** %s to %s (%d points)\n\n",
		points[0].Date, points[len(points)-1].Date, len(points)))
	sb.WriteString("| Date | Value | Trades |\n")
	sb.WriteString("|------|-------|--------|\n")
	for _, p := range points {
		sb.WriteString(fmt.Sprintf("| %s | %s | %d |\n", p.Date, formatMoney(p.Value), p.Trades))
	}

	return sb.String()
}

// formatValidationResult formats a dry-run validation outcome. Clean
// documents get a short confirmation; dirty ones get the full error table.
func formatValidationResult(result models.ValidationResult) string {
	var sb strings.Builder

	sb.WriteString("# Validation Result\n\n")

	if result.IsValid() {
		sb.WriteString("**Valid:** yes\n")
		sb.WriteString(fmt.Sprintf("**Trades parsed:** %d\n", len(result.Trades)))
		sb.WriteString("**Errors:** 0\n")
		return sb.String()
	}

	sb.WriteString("**Valid:** no\n")
	sb.WriteString(fmt.Sprintf("**Trades parsed cleanly:** %d\n", len(result.Trades)))
	sb.WriteString(fmt.Sprintf("**Errors:** %d\n\n", len(result.Errors)))
	sb.WriteString("| Row | Field | Problem |\n")
	sb.WriteString("|-----|-------|---------|\n")
	for _, e := range result.Errors {
		sb.WriteString(fmt.Sprintf("| %d | %s | %s |\n", e.Row, e.Field, e.Message))
	}

	return sb.String()
}

// formatImportSummary formats an accepted import confirmation.
func formatImportSummary(rec *models.ImportRecord, bookTotal int, archivedAs string) string {
	var sb strings.Builder

	sb.WriteString("# Trade Import Accepted\n\n")
	sb.WriteString(fmt.Sprintf("**Import ID:** %s\n", rec.ID))
	sb.WriteString(fmt.Sprintf("**Mode:** %s\n", rec.Mode))
	sb.WriteString(fmt.Sprintf("**Imported:** %d trades\n", rec.TradeCount))
	sb.WriteString(fmt.Sprintf("**Book total:** %d trades\n", bookTotal))
	if archivedAs != "" {
		sb.WriteString(fmt.Sprintf("**Archived as:** %s\n", archivedAs))
	}

	return sb.String()
}

// formatSampleCSV wraps the canonical example document in a fenced block
// with a short format reminder.
func formatSampleCSV(doc string) string {
	var sb strings.Builder

	sb.WriteString("# Sample Trade Document\n\n")
	sb.WriteString("Columns: symbol, shares, price, date. Shares are signed: positive = buy, negative = sell. Dates are YYYY-MM-DD.\n\n")
	sb.WriteString("```csv\n")
	sb.WriteString(doc)
	if !strings.HasSuffix(doc, "\n") {
		sb.WriteString("\n")
	}
	sb.WriteString("```\n")

	return sb.String()
}
