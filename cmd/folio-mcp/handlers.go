package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/foliotrack/folio/internal/common"
	"github.com/foliotrack/folio/internal/interfaces"
	"github.com/foliotrack/folio/internal/models"
)

// handleGetVersion implements the get_version tool
func handleGetVersion() server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		info := common.GetVersionInfo()
		result := fmt.Sprintf("Folio MCP Server\nVersion: %s\nBuild: %s\nCommit: %s\nStatus: OK",
			info.Version, info.Build, info.GitCommit)
		return textResult(result), nil
	}
}

// handleGetHoldings implements the get_holdings tool
func handleGetHoldings(portfolioService interfaces.PortfolioService, logger *common.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		holdings, err := portfolioService.Holdings(ctx)
		if err != nil {
			logger.Error().Err(err).Msg("Holdings aggregation failed")
			return errorResult(fmt.Sprintf("Holdings error: %v", err)), nil
		}
		return textResult(formatHoldings(holdings)), nil
	}
}

// handleGetMetrics implements the get_metrics tool
func handleGetMetrics(portfolioService interfaces.PortfolioService, logger *common.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		metrics, err := portfolioService.Metrics(ctx)
		if err != nil {
			logger.Error().Err(err).Msg("Metrics computation failed")
			return errorResult(fmt.Sprintf("Metrics error: %v", err)), nil
		}
		return textResult(formatMetrics(metrics)), nil
	}
}

// handleGetHistory implements the get_history tool
func handleGetHistory(portfolioService interfaces.PortfolioService, logger *common.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		history, err := portfolioService.History(ctx)
		if err != nil {
			logger.Error().Err(err).Msg("History replay failed")
			return errorResult(fmt.Sprintf("History error: %v", err)), nil
		}

		last := request.GetInt("last", 0)
		if last > 0 && last < len(history) {
			history = history[len(history)-last:]
		}

		return textResult(formatHistory(history)), nil
	}
}

// handleGetSampleCSV implements the get_sample_csv tool
func handleGetSampleCSV(ingestService interfaces.IngestService) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return textResult(formatSampleCSV(ingestService.SampleCSV())), nil
	}
}

// handleImportTrades implements the import_trades tool. The batch is
// all-or-nothing: any validation error rejects the whole document and
// nothing is stored.
func handleImportTrades(ingestService interfaces.IngestService, storage interfaces.StorageManager, notify func(), logger *common.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		doc, err := request.RequireString("csv")
		if err != nil || strings.TrimSpace(doc) == "" {
			return errorResult("Error: csv parameter is required"), nil
		}

		mode := request.GetString("mode", models.ImportModeReplace)
		if mode != models.ImportModeReplace && mode != models.ImportModeAppend {
			return errorResult(fmt.Sprintf("Invalid mode '%s' — use replace or append", mode)), nil
		}

		result := ingestService.ParseCSV(strings.NewReader(doc))
		if !result.IsValid() {
			return errorResult("Import rejected — the document failed validation and nothing was stored.\n\n" +
				formatValidationResult(result)), nil
		}

		store := storage.TradeStore()
		importID := uuid.New().String()

		if mode == models.ImportModeReplace {
			err = store.ReplaceTrades(ctx, result.Trades, importID)
		} else {
			err = store.AppendTrades(ctx, result.Trades, importID)
		}
		if err != nil {
			logger.Error().Err(err).Str("mode", mode).Msg("Trade import failed")
			return errorResult(fmt.Sprintf("Import error: %v", err)), nil
		}

		// Archive the accepted document. A failed archive never fails the import.
		archiveKey := fmt.Sprintf("%s-%s", time.Now().UTC().Format("20060102-150405"), importID[:8])
		archived, archiveErr := storage.ArchiveCSV(archiveKey, []byte(doc))
		if archiveErr != nil {
			logger.Warn().Err(archiveErr).Msg("Upload archive failed")
			archived = ""
		}

		rec := &models.ImportRecord{
			ID:         importID,
			Source:     "mcp",
			Mode:       mode,
			TradeCount: len(result.Trades),
			ImportedAt: time.Now().UTC(),
		}
		if err := store.SaveImport(ctx, rec); err != nil {
			logger.Warn().Err(err).Msg("Import record save failed")
		}

		total, err := store.CountTrades(ctx)
		if err != nil {
			total = len(result.Trades)
		}

		if notify != nil {
			notify()
		}

		logger.Info().
			Str("import_id", importID).
			Str("mode", mode).
			Int("trades", len(result.Trades)).
			Int("book_total", total).
			Msg("Trade import accepted")

		return textResult(formatImportSummary(rec, total, archived)), nil
	}
}

// handleValidateTrades implements the validate_trades tool. Dry run:
// nothing is stored whether or not the document is clean.
func handleValidateTrades(ingestService interfaces.IngestService) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		doc, err := request.RequireString("csv")
		if err != nil || strings.TrimSpace(doc) == "" {
			return errorResult("Error: csv parameter is required"), nil
		}

		result := ingestService.ParseCSV(strings.NewReader(doc))
		return textResult(formatValidationResult(result)), nil
	}
}

// Helper functions

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(text),
		},
	}
}

func errorResult(message string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(message),
		},
		IsError: true,
	}
}
