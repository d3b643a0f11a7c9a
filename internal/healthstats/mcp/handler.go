package mcp

import (
	"context"
	"encoding/json"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Handler handles MCP tool requests and responses: parses input, calls the service, formats MCP result.
type Handler struct {
	service contextService
}

func NewHandler(service contextService) *Handler {
	return &Handler{
		service: service,
	}
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

func errorResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
		IsError: true,
	}
}

func jsonResult(v any) *mcp.CallToolResult {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errorResult("Error encoding response: " + err.Error())
	}
	return textResult(string(raw))
}

// GetPersonsTool returns the MCP tool handler for get_persons.
func (h *Handler) GetPersonsTool() func(context.Context, *mcp.CallToolRequest, any) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ any) (*mcp.CallToolResult, any, error) {
		return jsonResult(h.service.Persons(ctx)), nil, nil
	}
}

// TimelineInput is the input for get_timeline.
type TimelineInput struct {
	Person    string `json:"person" jsonschema:"Person name as written in the measurement sheet"`
	Indicator string `json:"indicator,omitempty" jsonschema:"Optional indicator (weight, bmi, body_fat, muscle, metabolic_rate, age, visceral); when set only that series is returned"`
}

// GetTimelineTool returns the MCP tool handler for get_timeline.
func (h *Handler) GetTimelineTool() func(context.Context, *mcp.CallToolRequest, TimelineInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in TimelineInput) (*mcp.CallToolResult, any, error) {
		if in.Person == "" {
			return errorResult("Missing person"), nil, nil
		}
		result, err := h.service.Timeline(ctx, in.Person, in.Indicator)
		if err != nil {
			return errorResult("Error fetching timeline: " + err.Error()), nil, nil
		}
		return jsonResult(result), nil, nil
	}
}

// RankingInput is the input for get_ranking.
type RankingInput struct {
	Window string `json:"window,omitempty" jsonschema:"all (default), or a trailing window like 30d"`
	Metric string `json:"metric,omitempty" jsonschema:"muscle_gain (default), fat_loss or current_weight"`
}

// GetRankingTool returns the MCP tool handler for get_ranking.
func (h *Handler) GetRankingTool() func(context.Context, *mcp.CallToolRequest, RankingInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in RankingInput) (*mcp.CallToolResult, any, error) {
		resp, err := h.service.Ranking(ctx, in.Window, in.Metric)
		if err != nil {
			return errorResult("Error ranking: " + err.Error()), nil, nil
		}
		return jsonResult(resp), nil, nil
	}
}

// GetCompositeScoresTool returns the MCP tool handler for get_composite_scores.
func (h *Handler) GetCompositeScoresTool() func(context.Context, *mcp.CallToolRequest, any) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ any) (*mcp.CallToolResult, any, error) {
		return jsonResult(h.service.CompositeScores(ctx)), nil, nil
	}
}

// GetScoringRulesTool returns the MCP tool handler for get_scoring_rules.
func (h *Handler) GetScoringRulesTool() func(context.Context, *mcp.CallToolRequest, any) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ any) (*mcp.CallToolResult, any, error) {
		return textResult(h.service.ScoringRules(ctx)), nil, nil
	}
}
