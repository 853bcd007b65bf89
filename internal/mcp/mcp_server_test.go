package mcp_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/huangsam/acqscore/internal/contract"
	"github.com/huangsam/acqscore/internal/iocache"
	mcp_internal "github.com/huangsam/acqscore/internal/mcp"
	"github.com/huangsam/acqscore/schema"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseConfig() *contract.Config {
	return &contract.Config{
		ResultLimit:     5,
		SignalCount:     3,
		Workers:         2,
		CurrentYear:     2024,
		Weights:         schema.DefaultWeights(),
		Source:          schema.StubSource,
		MergeEnrichment: true,
	}
}

func callTool(t *testing.T, mgr contract.CacheManager, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	s := mcp_internal.NewMCPServer(baseConfig(), mgr)
	tool := s.GetTool(name)
	require.NotNil(t, tool, "Tool %s should exist", name)

	req := mcp.CallToolRequest{
		Params: mcp.CallToolParams{Name: name, Arguments: args},
	}
	res, err := tool.Handler(context.Background(), req)
	require.NoError(t, err, "The MCP handler should not return a raw error for tool logic failures")
	require.NotNil(t, res)
	return res
}

func resultText(res *mcp.CallToolResult) string {
	return res.Content[0].(mcp.TextContent).Text
}

func TestScoreTargetTool(t *testing.T) {
	company := `{
		"company_name": "TechFlow Solutions",
		"owner_age": 58, "years_owned": 8, "actively_selling": true,
		"revenue": 8500000, "ebitda": 2125000, "recurring_revenue_pct": 85,
		"revenue_growth_rate": 25, "asking_price": 10000000,
		"top_customer_concentration": 15, "year_founded": 2015,
		"has_management_team": true, "documented_processes": true, "seller_will_stay": true
	}`

	res := callTool(t, nil, "score_target", map[string]any{"company_json": company})
	require.False(t, res.IsError, resultText(res))

	var got schema.EnrichedTargetResult
	require.NoError(t, json.Unmarshal([]byte(resultText(res)), &got))
	assert.Equal(t, 74, got.Total)
	assert.Equal(t, "Strong", got.Label)
	assert.NotEmpty(t, got.Signals)
}

func TestScoreTargetToolZeroEBITDA(t *testing.T) {
	company := `{"company_name": "Break Even Co", "revenue": 1000000, "ebitda": 0, "asking_price": 3000000}`

	res := callTool(t, nil, "score_target", map[string]any{"company_json": company})
	require.False(t, res.IsError, resultText(res))

	var got schema.EnrichedTargetResult
	require.NoError(t, json.Unmarshal([]byte(resultText(res)), &got))
	assert.Zero(t, got.Company.EBITDA)
	assert.Contains(t, resultText(res), "Valuation multiple undefined")
}

func TestScoreTargetToolErrors(t *testing.T) {
	t.Run("missing company_json", func(t *testing.T) {
		res := callTool(t, nil, "score_target", map[string]any{})
		assert.True(t, res.IsError, "The response should indicate an error state")
		assert.Contains(t, resultText(res), "company_json is required")
	})

	t.Run("malformed JSON", func(t *testing.T) {
		res := callTool(t, nil, "score_target", map[string]any{"company_json": "{not json"})
		assert.True(t, res.IsError)
		assert.Contains(t, resultText(res), "invalid company")
	})

	t.Run("wrong field type", func(t *testing.T) {
		res := callTool(t, nil, "score_target", map[string]any{"company_json": `{"owner_age": "sixty"}`})
		assert.True(t, res.IsError)
		assert.Contains(t, resultText(res), "owner_age")
	})
}

func TestRankTargetsTool(t *testing.T) {
	mgr := &iocache.MockCacheManager{}
	mgr.On("GetAnalysisStore").Return(nil)

	res := callTool(t, mgr, "rank_targets", map[string]any{"limit": 2.0})
	require.False(t, res.IsError, resultText(res))

	var got []schema.EnrichedTargetResult
	require.NoError(t, json.Unmarshal([]byte(resultText(res)), &got))
	require.Len(t, got, 2)
	assert.Equal(t, 1, got[0].Rank)
	assert.GreaterOrEqual(t, got[0].Total, got[1].Total)
}

func TestRankTargetsToolFromFile(t *testing.T) {
	mgr := &iocache.MockCacheManager{}
	mgr.On("GetAnalysisStore").Return(nil)

	path := filepath.Join(t.TempDir(), "targets.yaml")
	content := "- company_name: Alpha\n  owner_age: 66\n  actively_selling: true\n- company_name: Beta\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	res := callTool(t, mgr, "rank_targets", map[string]any{"path": path, "min_score": 0.0})
	require.False(t, res.IsError, resultText(res))

	var got []schema.EnrichedTargetResult
	require.NoError(t, json.Unmarshal([]byte(resultText(res)), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "Alpha", got[0].Company.CompanyName)
}

func TestRankTargetsToolErrors(t *testing.T) {
	t.Run("min_score out of range", func(t *testing.T) {
		res := callTool(t, nil, "rank_targets", map[string]any{"min_score": 150.0})
		assert.True(t, res.IsError)
		assert.Contains(t, resultText(res), "min_score must be between 0 and 100")
	})

	t.Run("unsupported file", func(t *testing.T) {
		res := callTool(t, nil, "rank_targets", map[string]any{"path": "targets.txt"})
		assert.True(t, res.IsError)
		assert.Contains(t, resultText(res), "ranking failed")
	})
}

func TestGetWeightsTool(t *testing.T) {
	res := callTool(t, nil, "get_weights", nil)
	require.False(t, res.IsError)

	var got schema.WeightsRenderModel
	require.NoError(t, json.Unmarshal([]byte(resultText(res)), &got))
	require.Len(t, got.Components, 5)
	assert.Equal(t, schema.OwnerReadiness, got.Components[0].Key)
	assert.InDelta(t, 0.30, got.Components[0].Weight, 1e-9)
}
