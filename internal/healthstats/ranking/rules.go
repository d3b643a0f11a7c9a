package ranking

import (
	"github.com/2beens/healthtracker/internal/healthstats/measurements"
	"github.com/2beens/healthtracker/pkg"
)

type RuleTerm struct {
	Indicator measurements.Indicator `json:"indicator"`
	Label     string                 `json:"label"`
	Weight    float64                `json:"weight"`
	Direction string                 `json:"direction"`
}

type ExampleStep struct {
	Indicator measurements.Indicator `json:"indicator"`
	From      float64                `json:"from"`
	To        float64                `json:"to"`
	Evolution float64                `json:"evolution"`
	Partial   float64                `json:"partial"`
}

type ScoringRules struct {
	Objective         string        `json:"objective"`
	NormalizedFormula string        `json:"normalized_formula"`
	ScoreFormula      string        `json:"score_formula"`
	Terms             []RuleTerm    `json:"terms"`
	Example           []ExampleStep `json:"example"`
	ExampleScore      float64       `json:"example_score"`
	Practices         []string      `json:"practices"`
	Warning           string        `json:"warning"`
}

var ruleLabels = map[measurements.Indicator]string{
	measurements.Muscle:   "muscle mass",
	measurements.BodyFat:  "body fat %",
	measurements.Visceral: "visceral fat",
	measurements.Weight:   "body weight",
}

// the worked example: +5% muscle, -10% fat, -10% visceral, -5% weight
var exampleFirst = measurements.Measurement{
	Person:      "example",
	MusclePct:   pkg.Float64Ptr(30),
	BodyFatPct:  pkg.Float64Ptr(20),
	VisceralFat: pkg.Float64Ptr(10),
	WeightKg:    pkg.Float64Ptr(80),
}

var exampleLatest = measurements.Measurement{
	Person:      "example",
	MusclePct:   pkg.Float64Ptr(31.5),
	BodyFatPct:  pkg.Float64Ptr(18),
	VisceralFat: pkg.Float64Ptr(9),
	WeightKg:    pkg.Float64Ptr(76),
}

// Rules describes the composite score. The example is computed with the
// same code that scores real persons.
func Rules() ScoringRules {
	rules := ScoringRules{
		Objective: "a single final score per participant, weighing the evolution of body weight, " +
			"body fat, muscle mass and visceral fat by the physiological difficulty of each indicator",
		NormalizedFormula: "evolution = (final value - initial value) / initial value",
		ScoreFormula:      "score = 0.40 x Δmuscle - 0.30 x Δfat - 0.20 x Δvisceral - 0.10 x Δweight",
		Practices: []string{
			"measure fasting and at the same time of day",
			"avoid training in the 12 hours before",
			"avoid alcohol in the 24 hours before",
		},
		Warning: "bioimpedance is sensitive to hydration, sleep and food intake",
	}

	s, _ := score(exampleFirst.Person, exampleFirst, exampleLatest)
	for _, term := range ScoreTerms {
		direction := "increase is positive"
		weight := term.Coefficient
		if term.Coefficient < 0 {
			direction = "reduction is positive"
			weight = -weight
		}
		rules.Terms = append(rules.Terms, RuleTerm{
			Indicator: term.Indicator,
			Label:     ruleLabels[term.Indicator],
			Weight:    weight,
			Direction: direction,
		})

		from, _ := exampleFirst.Value(term.Indicator)
		to, _ := exampleLatest.Value(term.Indicator)
		rules.Example = append(rules.Example, ExampleStep{
			Indicator: term.Indicator,
			From:      from,
			To:        to,
			Evolution: (to - from) / from,
			Partial:   s.Terms[term.Indicator],
		})
	}
	rules.ExampleScore = s.Score

	return rules
}
