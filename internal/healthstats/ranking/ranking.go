package ranking

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/2beens/healthtracker/internal/healthstats/evolution"
	"github.com/2beens/healthtracker/internal/healthstats/measurements"
	"github.com/2beens/healthtracker/internal/healthstats/timeline"
)

var ErrUnknownMetric = errors.New("unknown ranking metric")

const PodiumSize = 3

type Metric string

const (
	MuscleGain    Metric = "muscle_gain"
	FatLoss       Metric = "fat_loss"
	CurrentWeight Metric = "current_weight"
)

var Metrics = []Metric{MuscleGain, FatLoss, CurrentWeight}

func ParseMetric(s string) (Metric, error) {
	if s == "" {
		return MuscleGain, nil
	}
	for _, m := range Metrics {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMetric, s)
}

// Descending is true for metrics where a bigger value ranks first.
func (m Metric) Descending() bool {
	return m != CurrentWeight
}

// Row is one person's leaderboard entry for a window.
type Row struct {
	Person       string    `json:"person"`
	BaselineDate time.Time `json:"baseline_date"`
	LatestDate   time.Time `json:"latest_date"`
	// percentage points, latest - baseline
	MuscleGainPct *float64 `json:"muscle_gain_pct"`
	// percentage points, baseline - latest
	FatLossPct    *float64 `json:"fat_loss_pct"`
	CurrentWeight *float64 `json:"current_weight_kg"`
}

func (r Row) Value(m Metric) (float64, bool) {
	var v *float64
	switch m {
	case MuscleGain:
		v = r.MuscleGainPct
	case FatLoss:
		v = r.FatLossPct
	case CurrentWeight:
		v = r.CurrentWeight
	}
	if v == nil {
		return 0, false
	}
	return *v, true
}

// Rows builds one row per person with at least one dated measurement, in
// person insertion order.
func Rows(all []measurements.Measurement, w evolution.Window) []Row {
	var rows []Row
	for _, t := range timeline.All(all) {
		row, ok := rowFor(t, w)
		if !ok {
			continue
		}
		rows = append(rows, row)
	}
	return rows
}

func rowFor(t timeline.Timeline, w evolution.Window) (Row, bool) {
	latest, err := t.Latest()
	if err != nil {
		return Row{}, false
	}
	baseline, err := evolution.Baseline(t, w)
	if err != nil {
		return Row{}, false
	}

	row := Row{
		Person:        t.Person,
		BaselineDate:  baseline.Date,
		LatestDate:    latest.Date,
		CurrentWeight: latest.WeightKg,
	}
	if gain, err := evolution.RawDelta(measurements.Muscle, baseline, latest); err == nil {
		row.MuscleGainPct = &gain
	}
	if loss, err := evolution.Delta(measurements.BodyFat, baseline, latest, evolution.LowerIsBetter); err == nil {
		row.FatLossPct = &loss
	}
	return row, true
}

// Rank orders the rows by the metric. Rows lacking the metric are left out
// and ties keep person insertion order.
func Rank(all []measurements.Measurement, w evolution.Window, metric Metric) []Row {
	var ranked []Row
	for _, row := range Rows(all, w) {
		if _, ok := row.Value(metric); ok {
			ranked = append(ranked, row)
		}
	}

	desc := metric.Descending()
	sort.SliceStable(ranked, func(i, j int) bool {
		vi, _ := ranked[i].Value(metric)
		vj, _ := ranked[j].Value(metric)
		if desc {
			return vi > vj
		}
		return vi < vj
	})
	return ranked
}

func Top(rows []Row, k int) []Row {
	if k < 0 {
		k = 0
	}
	if k > len(rows) {
		k = len(rows)
	}
	return rows[:k]
}

// GainBadge is the displayed gain, never below zero.
func GainBadge(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}

// EarliestBaseline is the oldest baseline date among the rows, used in the
// "comparing with data since" caption.
func EarliestBaseline(rows []Row) (time.Time, bool) {
	var earliest time.Time
	for i, row := range rows {
		if i == 0 || row.BaselineDate.Before(earliest) {
			earliest = row.BaselineDate
		}
	}
	return earliest, len(rows) > 0
}
