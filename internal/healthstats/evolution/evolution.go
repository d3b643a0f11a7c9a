package evolution

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/2beens/healthtracker/internal/healthstats/measurements"
	"github.com/2beens/healthtracker/internal/healthstats/timeline"
)

var (
	ErrDivisionByZero   = errors.New("division by zero")
	ErrMissingIndicator = errors.New("missing indicator value")
	ErrInvalidWindow    = errors.New("invalid window")
)

const DefaultTrailingDays = 30

type WindowKind int

const (
	KindAllTime WindowKind = iota
	KindTrailing
)

// Window selects the baseline compared against the latest measurement.
type Window struct {
	Kind WindowKind
	Days int
}

func AllTime() Window {
	return Window{Kind: KindAllTime}
}

func Trailing(days int) Window {
	return Window{Kind: KindTrailing, Days: days}
}

func (w Window) String() string {
	if w.Kind == KindTrailing {
		return fmt.Sprintf("%dd", w.Days)
	}
	return "all"
}

// ParseWindow accepts "all" (or empty), "30d" and a bare day count.
func ParseWindow(s string, defaultDays int) (Window, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "", "all", "all-time":
		return AllTime(), nil
	case "trailing":
		return Trailing(defaultDays), nil
	}

	days, err := strconv.Atoi(strings.TrimSuffix(s, "d"))
	if err != nil || days <= 0 {
		return Window{}, fmt.Errorf("%w: %q", ErrInvalidWindow, s)
	}
	return Trailing(days), nil
}

// Baseline picks the comparison row of the window.
// Trailing: the earliest row dated on or after latest - N days. When none
// qualifies the first row is used, which can be older than N days.
func Baseline(t timeline.Timeline, w Window) (measurements.Measurement, error) {
	first, err := t.First()
	if err != nil {
		return measurements.Measurement{}, err
	}
	if w.Kind != KindTrailing {
		return first, nil
	}

	latest, err := t.Latest()
	if err != nil {
		return measurements.Measurement{}, err
	}

	cutoff := latest.Date.AddDate(0, 0, -w.Days)
	recent := t.Since(cutoff)
	if len(recent) == 0 {
		return first, nil
	}
	return recent[0], nil
}

type SignConvention int

const (
	HigherIsBetter SignConvention = iota
	LowerIsBetter
)

// ConventionFor tells which direction counts as improvement for the indicator.
func ConventionFor(ind measurements.Indicator) SignConvention {
	switch ind {
	case measurements.Muscle, measurements.MetabolicRate:
		return HigherIsBetter
	default:
		return LowerIsBetter
	}
}

// Delta returns the change from baseline to latest, positive meaning improvement.
func Delta(ind measurements.Indicator, baseline, latest measurements.Measurement, conv SignConvention) (float64, error) {
	b, l, err := values(ind, baseline, latest)
	if err != nil {
		return 0, err
	}
	if b == l {
		return 0, nil
	}
	if conv == LowerIsBetter {
		return b - l, nil
	}
	return l - b, nil
}

// RawDelta is latest - baseline, without any sign flip.
func RawDelta(ind measurements.Indicator, baseline, latest measurements.Measurement) (float64, error) {
	b, l, err := values(ind, baseline, latest)
	if err != nil {
		return 0, err
	}
	if b == l {
		return 0, nil
	}
	return l - b, nil
}

// NormalizedDelta is (latest - first) / first. Unchanged values yield 0,
// including a 0 that never moved.
func NormalizedDelta(ind measurements.Indicator, first, latest measurements.Measurement) (float64, error) {
	f, l, err := values(ind, first, latest)
	if err != nil {
		return 0, err
	}
	if f == l {
		return 0, nil
	}
	if f == 0 {
		return 0, fmt.Errorf("%w: first %s is 0", ErrDivisionByZero, ind)
	}
	return (l - f) / f, nil
}

func values(ind measurements.Indicator, from, to measurements.Measurement) (float64, float64, error) {
	f, ok := from.Value(ind)
	if !ok {
		return 0, 0, fmt.Errorf("%w: %s", ErrMissingIndicator, ind)
	}
	t, ok := to.Value(ind)
	if !ok {
		return 0, 0, fmt.Errorf("%w: %s", ErrMissingIndicator, ind)
	}
	return f, t, nil
}
