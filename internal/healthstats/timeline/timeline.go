package timeline

import (
	"errors"
	"sort"
	"time"

	"github.com/2beens/healthtracker/internal/healthstats/measurements"
)

var ErrEmptyTimeline = errors.New("empty timeline")

// Timeline holds one person's dated measurements, ascending by date.
// Rows without a valid date are not part of it, they stay in the raw data set only.
type Timeline struct {
	Person string
	rows   []measurements.Measurement
}

type Point struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}

// For builds the person's timeline. Equal dates keep insertion order.
func For(person string, all []measurements.Measurement) Timeline {
	var rows []measurements.Measurement
	for _, m := range all {
		if m.Person == person && m.HasDate() {
			rows = append(rows, m)
		}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Date.Before(rows[j].Date)
	})
	return Timeline{
		Person: person,
		rows:   rows,
	}
}

// All builds one timeline per person, in person insertion order.
func All(all []measurements.Measurement) []Timeline {
	persons := measurements.PersonsOf(all)
	timelines := make([]Timeline, 0, len(persons))
	for _, p := range persons {
		timelines = append(timelines, For(p, all))
	}
	return timelines
}

func (t Timeline) Len() int {
	return len(t.rows)
}

func (t Timeline) Empty() bool {
	return len(t.rows) == 0
}

func (t Timeline) Rows() []measurements.Measurement {
	out := make([]measurements.Measurement, len(t.rows))
	copy(out, t.rows)
	return out
}

func (t Timeline) First() (measurements.Measurement, error) {
	if t.Empty() {
		return measurements.Measurement{}, ErrEmptyTimeline
	}
	return t.rows[0], nil
}

// Latest is the last row, the one inserted last among equal max dates.
func (t Timeline) Latest() (measurements.Measurement, error) {
	if t.Empty() {
		return measurements.Measurement{}, ErrEmptyTimeline
	}
	return t.rows[len(t.rows)-1], nil
}

// Since returns the rows dated on or after from.
func (t Timeline) Since(from time.Time) []measurements.Measurement {
	i := sort.Search(len(t.rows), func(i int) bool {
		return !t.rows[i].Date.Before(from)
	})
	out := make([]measurements.Measurement, len(t.rows)-i)
	copy(out, t.rows[i:])
	return out
}

// Series returns the indicator values over time, rows lacking the value are skipped.
func (t Timeline) Series(ind measurements.Indicator) []Point {
	points := make([]Point, 0, len(t.rows))
	for _, m := range t.rows {
		if v, ok := m.Value(ind); ok {
			points = append(points, Point{Date: m.Date, Value: v})
		}
	}
	return points
}

// Tail returns the last n rows' series of the indicator.
func (t Timeline) Tail(ind measurements.Indicator, n int) []Point {
	start := len(t.rows) - n
	if start < 0 {
		start = 0
	}
	tail := Timeline{Person: t.Person, rows: t.rows[start:]}
	return tail.Series(ind)
}
