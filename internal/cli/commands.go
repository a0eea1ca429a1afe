// Package cli implements the offline folio command line: it validates and
// aggregates trade documents directly, without a running server or data dir.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/foliotrack/folio/internal/common"
	"github.com/foliotrack/folio/internal/models"
	"github.com/foliotrack/folio/internal/refdata"
	"github.com/foliotrack/folio/internal/services/ingest"
	"github.com/foliotrack/folio/internal/services/portfolio"
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "folio",
		Short: "Folio - portfolio aggregation from trade history",
		Long: `Folio reads a CSV trade document and derives portfolio views from it:
per-symbol holdings, portfolio metrics and a value-over-time series.
All commands run offline against the document; nothing is stored.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().Bool("json", false, "Emit JSON instead of text output")

	rootCmd.AddCommand(newValidateCmd())
	rootCmd.AddCommand(newHoldingsCmd())
	rootCmd.AddCommand(newMetricsCmd())
	rootCmd.AddCommand(newHistoryCmd())
	rootCmd.AddCommand(newSampleCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>",
		Short: "Validate a trade document",
		Long: `Validate every row of a CSV trade document and report all field errors.
Exits nonzero when the document has any error.
Example: folio validate trades.csv`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, args[0])
		},
	}
}

func newHoldingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "holdings <file>",
		Short: "Aggregate a trade document into current holdings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHoldings(cmd, args[0])
		},
	}
	cmd.Flags().String("refdata", "", "Price/sector quote file (CSV); built-in table if omitted")
	return cmd
}

func newMetricsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "metrics <file>",
		Short: "Compute portfolio metrics from a trade document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMetrics(cmd, args[0])
		},
	}
	cmd.Flags().String("refdata", "", "Price/sector quote file (CSV); built-in table if omitted")
	return cmd
}

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history <file>",
		Short: "Replay a trade document into a value-over-time series",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(cmd, args[0])
		},
	}
	cmd.Flags().String("refdata", "", "Price/sector quote file (CSV); built-in table if omitted")
	return cmd
}

func newSampleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sample",
		Short: "Print the canonical example trade document",
		Long: `Print a small CSV trade document that always validates.
Example: folio sample > trades.csv`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprint(cmd.OutOrStdout(), ingest.SampleCSV())
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if asJSON(cmd) {
				return writeJSON(cmd.OutOrStdout(), common.GetVersionInfo())
			}
			fmt.Fprintf(cmd.OutOrStdout(), "folio %s\n", common.GetFullVersion())
			return nil
		},
	}
}

func asJSON(cmd *cobra.Command) bool {
	v, _ := cmd.Flags().GetBool("json")
	return v
}

// parseDocument reads and validates a trade document from disk.
func parseDocument(path string) (models.ValidationResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return models.ValidationResult{}, fmt.Errorf("cannot open %s: %w", path, err)
	}
	defer f.Close()

	return ingest.ParseCSV(f), nil
}

// lookupTable resolves the reference data table for a command: the quote
// file named by --refdata, or the built-in table.
func lookupTable(cmd *cobra.Command) (*refdata.Table, error) {
	path, _ := cmd.Flags().GetString("refdata")
	if path == "" {
		return refdata.BuiltinTable(refdata.WithLogger(common.NewSilentLogger())), nil
	}
	return refdata.LoadCSV(path, refdata.WithLogger(common.NewSilentLogger()))
}

// parseForAggregation runs the all-or-nothing gate: an invalid document is
// reported in full and never aggregated.
func parseForAggregation(cmd *cobra.Command, path string) ([]models.Trade, *refdata.Table, error) {
	result, err := parseDocument(path)
	if err != nil {
		return nil, nil, err
	}
	if !result.IsValid() {
		out := cmd.OutOrStdout()
		if asJSON(cmd) {
			writeJSON(out, validationPayload(result))
		} else {
			renderValidation(out, result)
		}
		return nil, nil, fmt.Errorf("validation failed: %d error(s)", len(result.Errors))
	}

	table, err := lookupTable(cmd)
	if err != nil {
		return nil, nil, err
	}
	return result.Trades, table, nil
}

func runValidate(cmd *cobra.Command, path string) error {
	result, err := parseDocument(path)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if asJSON(cmd) {
		if err := writeJSON(out, validationPayload(result)); err != nil {
			return err
		}
	} else {
		renderValidation(out, result)
	}

	if !result.IsValid() {
		return fmt.Errorf("validation failed: %d error(s)", len(result.Errors))
	}
	return nil
}

func runHoldings(cmd *cobra.Command, path string) error {
	trades, table, err := parseForAggregation(cmd, path)
	if err != nil {
		return err
	}

	holdings := portfolio.AggregateHoldings(trades, table)
	out := cmd.OutOrStdout()
	if asJSON(cmd) {
		return writeJSON(out, map[string]interface{}{
			"holdings": holdings,
			"count":    len(holdings),
		})
	}
	renderHoldings(out, holdings)
	return nil
}

func runMetrics(cmd *cobra.Command, path string) error {
	trades, table, err := parseForAggregation(cmd, path)
	if err != nil {
		return err
	}

	metrics := portfolio.ComputeMetrics(portfolio.AggregateHoldings(trades, table))
	out := cmd.OutOrStdout()
	if asJSON(cmd) {
		return writeJSON(out, metrics)
	}
	renderMetrics(out, metrics)
	return nil
}

func runHistory(cmd *cobra.Command, path string) error {
	trades, table, err := parseForAggregation(cmd, path)
	if err != nil {
		return err
	}

	history := portfolio.BuildHistory(trades, table)
	out := cmd.OutOrStdout()
	if asJSON(cmd) {
		return writeJSON(out, map[string]interface{}{
			"history": history,
			"count":   len(history),
		})
	}
	renderHistory(out, history)
	return nil
}
