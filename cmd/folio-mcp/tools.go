package main

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// createGetVersionTool returns the get_version tool definition
func createGetVersionTool() mcp.Tool {
	return mcp.NewTool("get_version",
		mcp.WithDescription("Get the Folio MCP server version and status. Use this to verify connectivity."),
	)
}

// createGetHoldingsTool returns the get_holdings tool definition
func createGetHoldingsTool() mcp.Tool {
	return mcp.NewTool("get_holdings",
		mcp.WithDescription("Get current portfolio holdings aggregated from the stored trade book. Returns a markdown table of per-symbol positions with shares held, average cost basis, current value, and unrealized gain/loss."),
	)
}

// createGetMetricsTool returns the get_metrics tool definition
func createGetMetricsTool() mcp.Tool {
	return mcp.NewTool("get_metrics",
		mcp.WithDescription("Get portfolio-wide metrics: total value, total cost, overall gain/loss, and the best and worst performing holdings."),
	)
}

// createGetHistoryTool returns the get_history tool definition
func createGetHistoryTool() mcp.Tool {
	return mcp.NewTool("get_history",
		mcp.WithDescription("Get the portfolio value time series, one point per trade date, replayed from the stored trade book."),
		mcp.WithNumber("last",
			mcp.Description("Return only the most recent N points (default: all)"),
		),
	)
}

// createGetSampleCSVTool returns the get_sample_csv tool definition
func createGetSampleCSVTool() mcp.Tool {
	return mcp.NewTool("get_sample_csv",
		mcp.WithDescription("Get a sample trade CSV document demonstrating the expected format. Use it as a template for import_trades."),
	)
}

// createImportTradesTool returns the import_trades tool definition
func createImportTradesTool() mcp.Tool {
	return mcp.NewTool("import_trades",
		mcp.WithDescription("Import a CSV trade document into the trade book. The document is validated first; any validation error rejects the whole batch and nothing is stored."),
		mcp.WithString("csv",
			mcp.Required(),
			mcp.Description("CSV document with a symbol,shares,price,date header row. Shares are signed: positive = buy, negative = sell."),
		),
		mcp.WithString("mode",
			mcp.Description("Import mode: 'replace' clears the book first, 'append' adds to it (default: replace)"),
		),
	)
}

// createValidateTradesTool returns the validate_trades tool definition
func createValidateTradesTool() mcp.Tool {
	return mcp.NewTool("validate_trades",
		mcp.WithDescription("Validate a CSV trade document without storing anything. Returns every field-level problem found, or confirms the document is clean."),
		mcp.WithString("csv",
			mcp.Required(),
			mcp.Description("CSV document with a symbol,shares,price,date header row"),
		),
	)
}
