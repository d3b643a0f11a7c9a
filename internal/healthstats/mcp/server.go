package mcp

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// NewServer builds an MCP server with health stats tools: persons, timeline, ranking,
// composite scores, scoring rules.
// Used by the main backend when mounting MCP at /mcp (internal/server) and by cmd/healthstats_mcp.
func NewServer(source MeasurementsSource, trailingDays int) *mcp.Server {
	h := NewHandler(NewContextService(source, trailingDays))
	s := mcp.NewServer(&mcp.Implementation{
		Name:    "healthstats-context",
		Version: "1.0.0",
	}, nil)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_persons",
		Description: "Returns the names of everyone with measurements, in the order they first appear in the sheet.",
	}, h.GetPersonsTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_timeline",
		Description: "Returns a person's bioimpedance measurements sorted by date. Arg: person; optional: indicator to get a single date/value series. Use when you need someone's progression.",
	}, h.GetTimelineTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_ranking",
		Description: "Returns the leaderboard: muscle gain, fat loss and current weight per person for a window. Args: window (all or e.g. 30d), metric (muscle_gain, fat_loss, current_weight).",
	}, h.GetRankingTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_composite_scores",
		Description: "Returns the weighted composite score per person (first vs latest measurement), best first, with the contribution of each indicator.",
	}, h.GetCompositeScoresTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_scoring_rules",
		Description: "Returns the competition scoring rules: weights, directions, formula and a worked example.",
	}, h.GetScoringRulesTool())

	return s
}
