// Folio MCP server exposes the portfolio tools over the Model Context
// Protocol on stdio. All logging goes to stderr; stdout carries only
// JSON-RPC frames.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mark3labs/mcp-go/server"

	"github.com/foliotrack/folio/internal/app"
	"github.com/foliotrack/folio/internal/common"
)

func main() {
	a, err := app.NewApp("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer a.Close()

	logger := a.Logger

	mcpServer := server.NewMCPServer(
		"folio",
		common.Version,
		server.WithToolCapabilities(true),
	)
	registerTools(mcpServer, a)

	// Quote-file reloads keep prices current across a long MCP session.
	a.StartScheduler()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info().Str("version", common.Version).Msg("Folio MCP server listening on stdio")

	stdio := server.NewStdioServer(mcpServer)
	if err := stdio.Listen(ctx, os.Stdin, os.Stdout); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error().Err(err).Msg("MCP server exited with error")
		a.Close()
		os.Exit(1)
	}

	logger.Info().Msg("Folio MCP server stopped")
}

// registerTools registers every Folio tool on the MCP server.
func registerTools(s *server.MCPServer, a *app.App) {
	logger := a.Logger

	s.AddTool(createGetVersionTool(), handleGetVersion())
	s.AddTool(createGetHoldingsTool(), handleGetHoldings(a.PortfolioService, logger))
	s.AddTool(createGetMetricsTool(), handleGetMetrics(a.PortfolioService, logger))
	s.AddTool(createGetHistoryTool(), handleGetHistory(a.PortfolioService, logger))
	s.AddTool(createGetSampleCSVTool(), handleGetSampleCSV(a.IngestService))
	s.AddTool(createImportTradesTool(), handleImportTrades(a.IngestService, a.Storage, a.NotifyTradesChanged, logger))
	s.AddTool(createValidateTradesTool(), handleValidateTrades(a.IngestService))
}
