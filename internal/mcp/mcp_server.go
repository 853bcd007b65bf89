// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/huangsam/acqscore/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the acqscore MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.CacheManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Acquisition Scoring Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
	}

	// --- 1. Tool: score_target ---
	s.AddTool(mcp.NewTool("score_target",
		mcp.WithDescription("Score one small-business acquisition target and explain the score with signals."),
		mcp.WithString("company_json", mcp.Description("The company as a JSON object with snake_case fields, e.g. {\"company_name\": \"Acme\", \"owner_age\": 62, \"revenue\": 5000000}."), mcp.Required()),
		mcp.WithBoolean("merge_enrichment", mcp.Description("Fill absent fields from the configured data source. Defaults to the server setting.")),
	), h.handleScoreTarget)

	// --- 2. Tool: rank_targets ---
	s.AddTool(mcp.NewTool("rank_targets",
		mcp.WithDescription("Score every target in a JSON, YAML or CSV file and return the most attractive ones."),
		mcp.WithString("path", mcp.Description("Path to the targets file. Uses the built-in sample targets when omitted.")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of results returned.")),
		mcp.WithNumber("min_score", mcp.Description("Drop targets scoring below this total (0-100).")),
	), h.handleRankTargets)

	// --- 3. Tool: get_weights ---
	s.AddTool(mcp.NewTool("get_weights",
		mcp.WithDescription("Describe the five scoring components and the weights in effect."),
	), h.handleGetWeights)

	return s
}

// StartMCPServer starts the acqscore MCP server on stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.CacheManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}
