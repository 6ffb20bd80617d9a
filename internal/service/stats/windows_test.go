package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestComputeWindows_MidMonth(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	w := ComputeWindows(now)

	assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), w.StartOfCurrentMonth)
	assert.Equal(t, time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC), w.StartOfLastMonth)
	assert.Equal(t, time.Date(2025, 6, 8, 12, 0, 0, 0, time.UTC), w.OneWeekAgo)
	assert.Equal(t, time.Date(2025, 5, 16, 12, 0, 0, 0, time.UTC), w.OneMonthAgo)
}

func TestComputeWindows_JanuaryRollsIntoPreviousYear(t *testing.T) {
	now := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)
	w := ComputeWindows(now)

	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), w.StartOfCurrentMonth)
	assert.Equal(t, time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC), w.StartOfLastMonth)
}

func TestWindows_CalendarMonthBoundaries(t *testing.T) {
	w := ComputeWindows(time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC))

	monthStart := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	assert.True(t, w.InCurrentMonth(monthStart))
	assert.False(t, w.InLastMonth(monthStart))

	justBefore := monthStart.Add(-time.Second)
	assert.False(t, w.InCurrentMonth(justBefore))
	assert.True(t, w.InLastMonth(justBefore))

	assert.False(t, w.InLastMonth(time.Date(2025, 4, 30, 0, 0, 0, 0, time.UTC)))
}

func TestWindows_RollingBoundariesAreDistinctFromCalendar(t *testing.T) {
	w := ComputeWindows(time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC))

	// May 20th is inside the rolling 30-day window but belongs to the
	// previous calendar month.
	may20 := time.Date(2025, 5, 20, 0, 0, 0, 0, time.UTC)
	assert.True(t, w.InTrailingMonth(may20))
	assert.True(t, w.InLastMonth(may20))
	assert.False(t, w.InCurrentMonth(may20))

	// Exactly on the rolling boundary is excluded.
	assert.False(t, w.InTrailingWeek(w.OneWeekAgo))
	assert.False(t, w.InTrailingMonth(w.OneMonthAgo))
	assert.True(t, w.InTrailingWeek(w.OneWeekAgo.Add(time.Second)))
}
