package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/2beens/healthtracker/internal/healthstats/evolution"
	"github.com/2beens/healthtracker/internal/healthstats/measurements"
	"github.com/2beens/healthtracker/internal/healthstats/ranking"
	"github.com/2beens/healthtracker/internal/healthstats/timeline"
)

var ErrUnknownIndicator = errors.New("unknown indicator")

// MeasurementsSource provides the in-memory measurement set.
type MeasurementsSource interface {
	All() []measurements.Measurement
}

// contextService provides health stats context data (persons, timelines, ranking, scores, rules).
// Used by Handler for testability.
type contextService interface {
	Persons(ctx context.Context) []string
	Timeline(ctx context.Context, person string, indicator string) (*TimelineResult, error)
	Ranking(ctx context.Context, window, metric string) (*ranking.Response, error)
	CompositeScores(ctx context.Context) []ranking.Score
	ScoringRules(ctx context.Context) string
}

// TimelineResult is a person's measurements in date order, or a single
// indicator series when one is asked for.
type TimelineResult struct {
	Person    string                     `json:"person"`
	Indicator string                     `json:"indicator,omitempty"`
	Rows      []measurements.Measurement `json:"rows,omitempty"`
	Series    []timeline.Point           `json:"series,omitempty"`
}

// ContextService computes tool results from the current measurement set.
type ContextService struct {
	source       MeasurementsSource
	trailingDays int
}

func NewContextService(source MeasurementsSource, trailingDays int) *ContextService {
	if trailingDays <= 0 {
		trailingDays = evolution.DefaultTrailingDays
	}
	return &ContextService{
		source:       source,
		trailingDays: trailingDays,
	}
}

func (s *ContextService) Persons(_ context.Context) []string {
	persons := measurements.PersonsOf(s.source.All())
	if persons == nil {
		persons = []string{}
	}
	return persons
}

func (s *ContextService) Timeline(_ context.Context, person string, indicator string) (*TimelineResult, error) {
	t := timeline.For(person, s.source.All())
	if t.Empty() {
		return nil, fmt.Errorf("person [%s]: %w", person, timeline.ErrEmptyTimeline)
	}

	if indicator == "" {
		return &TimelineResult{Person: person, Rows: t.Rows()}, nil
	}
	ind := measurements.Indicator(indicator)
	if !ind.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrUnknownIndicator, indicator)
	}
	return &TimelineResult{
		Person:    person,
		Indicator: indicator,
		Series:    t.Series(ind),
	}, nil
}

func (s *ContextService) Ranking(_ context.Context, window, metric string) (*ranking.Response, error) {
	w, err := evolution.ParseWindow(window, s.trailingDays)
	if err != nil {
		return nil, err
	}
	m, err := ranking.ParseMetric(metric)
	if err != nil {
		return nil, err
	}
	resp := ranking.NewResponse(s.source.All(), w, m)
	return &resp, nil
}

func (s *ContextService) CompositeScores(_ context.Context) []ranking.Score {
	scores := ranking.CompositeScores(s.source.All())
	if scores == nil {
		scores = []ranking.Score{}
	}
	return scores
}

// ScoringRules renders the composite score rules as markdown.
func (s *ContextService) ScoringRules(_ context.Context) string {
	return formatRules(ranking.Rules())
}

func formatRules(rules ranking.ScoringRules) string {
	var b strings.Builder
	b.WriteString("# Composite Score Rules\n\n")
	b.WriteString(rules.Objective)
	b.WriteString(".\n\n")
	b.WriteString("- ")
	b.WriteString(rules.NormalizedFormula)
	b.WriteString("\n- ")
	b.WriteString(rules.ScoreFormula)
	b.WriteString("\n\n| Indicator | Weight | Direction |\n|-----------|--------|-----------|\n")
	for _, term := range rules.Terms {
		b.WriteString(fmt.Sprintf("| %s | %.2f | %s |\n", term.Label, term.Weight, term.Direction))
	}

	b.WriteString("\n## Example\n\n| Indicator | From | To | Evolution | Partial |\n|-----------|------|----|-----------|---------|\n")
	for _, step := range rules.Example {
		b.WriteString(fmt.Sprintf("| %s | %g | %g | %+.2f | %.3f |\n", step.Indicator, step.From, step.To, step.Evolution, step.Partial))
	}
	b.WriteString(fmt.Sprintf("\nScore = %.3f\n", rules.ExampleScore))

	b.WriteString("\n## Measuring\n\n")
	for _, p := range rules.Practices {
		b.WriteString("- ")
		b.WriteString(p)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(rules.Warning)
	b.WriteString("\n")

	return b.String()
}
