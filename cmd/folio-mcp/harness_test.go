package main

import (
	"context"
	"testing"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/foliotrack/folio/internal/common"
	"github.com/foliotrack/folio/internal/refdata"
	"github.com/foliotrack/folio/internal/services/ingest"
	"github.com/foliotrack/folio/internal/services/portfolio"
)

// testHarness provides an in-process MCP client connected to a Folio tool
// server. Ingest and portfolio services are real and run over an in-memory
// trade store, so import-then-read scenarios exercise the actual
// aggregation engine. Tests can swap mock behavior before calling tools.
type testHarness struct {
	t           *testing.T
	client      *client.Client
	mcpServer   *server.MCPServer
	mockStorage *mockStorageManager
	notifyCount int
	logger      *common.Logger
}

// newTestHarness creates a Folio MCP server with an in-process client.
// The client is already initialized and ready to call tools.
func newTestHarness(t *testing.T) *testHarness {
	t.Helper()

	logger := common.NewSilentLogger()
	mockSM := newMockStorageManager()
	table := refdata.BuiltinTable(refdata.WithLogger(logger))
	ingestSvc := ingest.NewService(logger)
	portfolioSvc := portfolio.NewService(mockSM, table, logger)

	mcpServer := server.NewMCPServer(
		"folio-test",
		"test",
		server.WithToolCapabilities(true),
	)

	h := &testHarness{
		t:           t,
		mcpServer:   mcpServer,
		mockStorage: mockSM,
		logger:      logger,
	}

	mcpServer.AddTool(createGetVersionTool(), handleGetVersion())
	mcpServer.AddTool(createGetHoldingsTool(), handleGetHoldings(portfolioSvc, logger))
	mcpServer.AddTool(createGetMetricsTool(), handleGetMetrics(portfolioSvc, logger))
	mcpServer.AddTool(createGetHistoryTool(), handleGetHistory(portfolioSvc, logger))
	mcpServer.AddTool(createGetSampleCSVTool(), handleGetSampleCSV(ingestSvc))
	mcpServer.AddTool(createImportTradesTool(), handleImportTrades(ingestSvc, mockSM, h.noteTradesChanged, logger))
	mcpServer.AddTool(createValidateTradesTool(), handleValidateTrades(ingestSvc))

	c, err := client.NewInProcessClient(mcpServer)
	if err != nil {
		t.Fatalf("Failed to create in-process client: %v", err)
	}

	ctx := context.Background()
	if err := c.Start(ctx); err != nil {
		t.Fatalf("Failed to start client: %v", err)
	}

	// Initialize MCP protocol handshake
	initReq := mcp.InitializeRequest{}
	initReq.Params.ProtocolVersion = mcp.LATEST_PROTOCOL_VERSION
	initReq.Params.ClientInfo = mcp.Implementation{
		Name:    "folio-harness-test",
		Version: "1.0.0",
	}
	if _, err := c.Initialize(ctx, initReq); err != nil {
		c.Close()
		t.Fatalf("Failed to initialize MCP: %v", err)
	}

	h.client = c
	t.Cleanup(h.close)
	return h
}

func (h *testHarness) noteTradesChanged() {
	h.notifyCount++
}

// callTool invokes an MCP tool by name with the given arguments.
func (h *testHarness) callTool(name string, args map[string]any) (*mcp.CallToolResult, error) {
	h.t.Helper()
	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args
	return h.client.CallTool(context.Background(), req)
}

// getTextContent extracts text from a content block at the given index.
// Fails the test if index is out of range or content is not text.
func (h *testHarness) getTextContent(result *mcp.CallToolResult, index int) string {
	h.t.Helper()
	if index >= len(result.Content) {
		h.t.Fatalf("Content index %d out of range (have %d blocks)", index, len(result.Content))
	}
	tc, ok := result.Content[index].(mcp.TextContent)
	if !ok {
		h.t.Fatalf("Content[%d] is %T, not TextContent", index, result.Content[index])
	}
	return tc.Text
}

func (h *testHarness) close() {
	if h.client != nil {
		h.client.Close()
	}
}
