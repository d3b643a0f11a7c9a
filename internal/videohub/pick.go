package videohub

import (
	"math/rand"
	"time"
	"unicode/utf8"
)

const (
	DailyPickSize = 4

	HydrationLitersPerKg = 0.035
	HydrationMinWeightKg = 40.0
	HydrationMaxWeightKg = 160.0
	// the daily goal gauge is full at 4 liters
	HydrationGaugeLiters = 4.0
)

// ordinal of 1970-01-01 counting 0001-01-01 as day 1
const unixEpochOrdinal = 719163

// DayOrdinal numbers calendar days, 0001-01-01 being 1.
func DayOrdinal(day time.Time) int64 {
	d := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	return d.Unix()/(24*60*60) + unixEpochOrdinal
}

// DailyPick samples up to DailyPickSize links. The sample only changes with
// the day and the category name.
func DailyPick(links []string, categoryName string, day time.Time) []string {
	if len(links) == 0 {
		return []string{}
	}

	seed := DayOrdinal(day) + int64(utf8.RuneCountInString(categoryName))
	rnd := rand.New(rand.NewSource(seed))

	n := min(len(links), DailyPickSize)
	picked := make([]string, 0, n)
	for _, i := range rnd.Perm(len(links))[:n] {
		picked = append(picked, links[i])
	}
	return picked
}

type Hydration struct {
	WeightKg float64 `json:"weight_kg"`
	Liters   float64 `json:"liters"`
	Progress float64 `json:"progress"`
}

// HydrationGoalLiters is 35 ml per kg, weight clamped to [40, 160].
func HydrationGoalLiters(weightKg float64) float64 {
	return clampWeight(weightKg) * HydrationLitersPerKg
}

func HydrationGoal(weightKg float64) Hydration {
	liters := HydrationGoalLiters(weightKg)
	return Hydration{
		WeightKg: clampWeight(weightKg),
		Liters:   liters,
		Progress: min(1.0, liters/HydrationGaugeLiters),
	}
}

func clampWeight(w float64) float64 {
	return max(HydrationMinWeightKg, min(HydrationMaxWeightKg, w))
}
