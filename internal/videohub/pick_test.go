package videohub

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDayOrdinal(t *testing.T) {
	assert.Equal(t, int64(1), DayOrdinal(time.Date(1, 1, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, int64(719163), DayOrdinal(time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, int64(739252), DayOrdinal(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)))
	// time of day does not matter
	assert.Equal(t,
		DayOrdinal(time.Date(2025, 5, 3, 0, 0, 0, 0, time.UTC)),
		DayOrdinal(time.Date(2025, 5, 3, 23, 59, 0, 0, time.UTC)),
	)
}

func TestDailyPick(t *testing.T) {
	links := []string{"a", "b", "c", "d", "e", "f", "g", "h"}
	day := time.Date(2025, 5, 3, 9, 0, 0, 0, time.UTC)

	picked := DailyPick(links, "💪 Musculação", day)
	require.Len(t, picked, DailyPickSize)
	assert.Equal(t, picked, DailyPick(links, "💪 Musculação", day.Add(10*time.Hour)))

	seen := make(map[string]bool)
	for _, p := range picked {
		assert.Contains(t, links, p)
		assert.False(t, seen[p], "duplicate %s", p)
		seen[p] = true
	}

	assert.Len(t, DailyPick(links[:2], "Yoga", day), 2)
	assert.Empty(t, DailyPick(nil, "Yoga", day))
	assert.NotNil(t, DailyPick(nil, "Yoga", day))
}

func TestDailyPick_ChangesAcrossDays(t *testing.T) {
	links := []string{"a", "b", "c", "d", "e", "f", "g", "h"}
	start := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)

	first := DailyPick(links, "Cardio", start)
	changed := false
	for i := 1; i < 30; i++ {
		if !assert.ObjectsAreEqual(first, DailyPick(links, "Cardio", start.AddDate(0, 0, i))) {
			changed = true
			break
		}
	}
	assert.True(t, changed)
}

func TestHydrationGoal(t *testing.T) {
	assert.InDelta(t, 2.45, HydrationGoalLiters(70), 1e-9)
	assert.InDelta(t, 1.4, HydrationGoalLiters(10), 1e-9)
	assert.InDelta(t, 5.6, HydrationGoalLiters(300), 1e-9)

	h := HydrationGoal(70)
	assert.Equal(t, 70.0, h.WeightKg)
	assert.InDelta(t, 2.45/4, h.Progress, 1e-9)
	assert.Equal(t, 1.0, HydrationGoal(150).Progress)
}
