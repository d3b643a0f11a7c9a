package ranking

import (
	"github.com/2beens/healthtracker/internal/healthstats/evolution"
	"github.com/2beens/healthtracker/internal/healthstats/measurements"
	"github.com/2beens/healthtracker/internal/healthstats/timeline"
	"github.com/2beens/healthtracker/pkg"
)

const (
	WeightTargetKg      = 70.0
	MetabolicRatePoints = 8
)

var dashboardDeltas = []measurements.Indicator{
	measurements.Weight,
	measurements.BodyFat,
	measurements.Muscle,
	measurements.Visceral,
	measurements.Age,
}

var dashboardSeries = []measurements.Indicator{
	measurements.Weight,
	measurements.BodyFat,
	measurements.Muscle,
}

// IndicatorDelta is latest - first, rounded for display.
type IndicatorDelta struct {
	Indicator measurements.Indicator `json:"indicator"`
	Value     float64                `json:"value"`
	Improved  bool                   `json:"improved"`
}

type PersonDashboard struct {
	Person         string                                      `json:"person"`
	First          measurements.Measurement                    `json:"first"`
	Latest         measurements.Measurement                    `json:"latest"`
	Deltas         []IndicatorDelta                            `json:"deltas"`
	WeightTargetKg float64                                     `json:"weight_target_kg"`
	Series         map[measurements.Indicator][]timeline.Point `json:"series"`
	MetabolicRate  []timeline.Point                            `json:"metabolic_rate"`
}

// Dashboard gathers a person's individual view. A single-row timeline has
// first == latest and therefore zero deltas.
func Dashboard(all []measurements.Measurement, person string) (PersonDashboard, error) {
	t := timeline.For(person, all)
	first, err := t.First()
	if err != nil {
		return PersonDashboard{}, err
	}
	latest, err := t.Latest()
	if err != nil {
		return PersonDashboard{}, err
	}

	d := PersonDashboard{
		Person:         person,
		First:          first,
		Latest:         latest,
		Deltas:         []IndicatorDelta{},
		WeightTargetKg: WeightTargetKg,
		Series:         make(map[measurements.Indicator][]timeline.Point, len(dashboardSeries)),
		MetabolicRate:  t.Tail(measurements.MetabolicRate, MetabolicRatePoints),
	}

	for _, ind := range dashboardDeltas {
		raw, err := evolution.RawDelta(ind, first, latest)
		if err != nil {
			continue
		}
		improved, _ := evolution.Delta(ind, first, latest, evolution.ConventionFor(ind))
		d.Deltas = append(d.Deltas, IndicatorDelta{
			Indicator: ind,
			Value:     pkg.Round(raw, 2),
			Improved:  improved > 0,
		})
	}
	for _, ind := range dashboardSeries {
		d.Series[ind] = t.Series(ind)
	}

	return d, nil
}
