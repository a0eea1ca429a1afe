package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/foliotrack/folio/internal/common"
	"github.com/foliotrack/folio/internal/models"
)

func writeJSON(w io.Writer, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// validationPayload mirrors the REST API's validation response shape.
func validationPayload(result models.ValidationResult) map[string]interface{} {
	errs := result.Errors
	if errs == nil {
		errs = []models.ValidationError{}
	}
	return map[string]interface{}{
		"valid":       result.IsValid(),
		"trade_count": len(result.Trades),
		"errors":      errs,
		"error_count": len(errs),
	}
}

func renderValidation(w io.Writer, result models.ValidationResult) {
	if result.IsValid() {
		fmt.Fprintf(w, "Valid: %d trades, no errors.\n", len(result.Trades))
		return
	}

	fmt.Fprintf(w, "Invalid: %d error(s) in document (%d rows parsed cleanly).\n",
		len(result.Errors), len(result.Trades))
	for _, e := range result.Errors {
		fmt.Fprintf(w, "  %s\n", e.String())
	}
}

// formatShares trims trailing zeros so whole-share counts print as integers.
func formatShares(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func renderHoldings(w io.Writer, holdings []models.Holding) {
	if len(holdings) == 0 {
		fmt.Fprintln(w, "No open positions.")
		return
	}

	fmt.Fprintf(w, "%-8s %10s %12s %12s %14s %14s %10s  %s\n",
		"SYMBOL", "SHARES", "AVG COST", "PRICE", "VALUE", "GAIN/LOSS", "GL%", "SECTOR")

	totalValue := 0.0
	totalGain := 0.0
	for _, h := range holdings {
		totalValue += h.CurrentValue
		totalGain += h.UnrealizedGainLoss
		fmt.Fprintf(w, "%-8s %10s %12s %12s %14s %14s %10s  %s\n",
			h.Symbol,
			formatShares(h.SharesHeld),
			common.FormatMoney(h.AvgCostBasis),
			common.FormatMoney(h.CurrentPrice),
			common.FormatMoney(h.CurrentValue),
			common.FormatSignedMoney(h.UnrealizedGainLoss),
			common.FormatSignedPct(h.UnrealizedGainLossPercent),
			h.Sector,
		)
	}

	fmt.Fprintf(w, "%-8s %10s %12s %12s %14s %14s\n",
		"TOTAL", "", "", "",
		common.FormatMoney(totalValue),
		common.FormatSignedMoney(totalGain),
	)
}

func renderMetrics(w io.Writer, m models.PortfolioMetrics) {
	fmt.Fprintf(w, "Total Value:      %s\n", common.FormatMoney(m.TotalValue))
	fmt.Fprintf(w, "Total Cost:       %s\n", common.FormatMoney(m.TotalCost))
	fmt.Fprintf(w, "Total Gain/Loss:  %s (%s)\n",
		common.FormatSignedMoney(m.TotalGainLoss),
		common.FormatSignedPct(m.TotalGainLossPercent))
	fmt.Fprintf(w, "Unique Symbols:   %d\n", m.UniqueSymbols)

	if m.TopPerformer != nil {
		fmt.Fprintf(w, "Top Performer:    %s (%s)\n",
			m.TopPerformer.Symbol, common.FormatSignedPct(m.TopPerformer.GainLossPercent))
	}
	if m.WorstPerformer != nil {
		fmt.Fprintf(w, "Worst Performer:  %s (%s)\n",
			m.WorstPerformer.Symbol, common.FormatSignedPct(m.WorstPerformer.GainLossPercent))
	}
}

func renderHistory(w io.Writer, points []models.HistoryPoint) {
	if len(points) == 0 {
		fmt.Fprintln(w, "No trade dates in document.")
		return
	}

	fmt.Fprintf(w, "%-12s %16s %8s\n", "DATE", "VALUE", "TRADES")
	for _, p := range points {
		fmt.Fprintf(w, "%-12s %16s %8d\n", p.Date, common.FormatMoney(p.Value), p.Trades)
	}
}
