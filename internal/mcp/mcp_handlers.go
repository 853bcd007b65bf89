package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/huangsam/acqscore/core"
	"github.com/huangsam/acqscore/internal/contract"
	"github.com/huangsam/acqscore/internal/outwriter"
	"github.com/huangsam/acqscore/internal/source"
	"github.com/huangsam/acqscore/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.CacheManager
}

func (h *toolHandler) handleScoreTarget(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	raw := request.GetString("company_json", "")
	if raw == "" {
		return mcp.NewToolResultError("company_json is required"), nil
	}
	cfg.MergeEnrichment = request.GetBool("merge_enrichment", cfg.MergeEnrichment)

	company, err := source.ParseCompanyJSON([]byte(raw))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid company: %v", err)), nil
	}

	result, err := core.ScoreCompany(ctx, cfg, h.mgr, company)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("scoring failed: %v", err)), nil
	}

	return jsonResult(schema.EnrichTargets([]schema.TargetResult{result})[0])
}

func (h *toolHandler) handleRankTargets(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	cfg.InputPath = request.GetString("path", "")
	if l := request.GetInt("limit", 0); l > 0 {
		cfg.ResultLimit = min(l, contract.MaxResultLimit)
	}
	if m := request.GetInt("min_score", -1); m >= 0 {
		if m > 100 {
			return mcp.NewToolResultError(fmt.Sprintf("min_score must be between 0 and 100 (received %d)", m)), nil
		}
		cfg.MinScore = m
	}

	ranked, err := core.RunRanking(ctx, cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("ranking failed: %v", err)), nil
	}

	return jsonResult(schema.EnrichTargets(ranked))
}

func (h *toolHandler) handleGetWeights(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(outwriter.BuildWeightsRenderModel(h.baseCfg.Weights))
}

// jsonResult renders data as an indented JSON text result.
func jsonResult(data any) (*mcp.CallToolResult, error) {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encoding result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}
