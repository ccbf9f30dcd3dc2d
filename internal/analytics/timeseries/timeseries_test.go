package timeseries

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonthsOldestFirst(t *testing.T) {
	now := time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC)

	months := Months(now, 3)
	require.Len(t, months, 3)

	assert.Equal(t, "2026-01", months[0].Label)
	assert.Equal(t, "2026-02", months[1].Label)
	assert.Equal(t, "2026-03", months[2].Label)

	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), months[0].Start)
	assert.Equal(t, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC).Add(-time.Nanosecond), months[0].End)
}

func TestMonthsCrossYearBoundary(t *testing.T) {
	now := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	months := Months(now, 4)
	require.Len(t, months, 4)
	assert.Equal(t, "2025-11", months[0].Label)
	assert.Equal(t, "2025-12", months[1].Label)
	assert.Equal(t, "2026-01", months[2].Label)
	assert.Equal(t, "2026-02", months[3].Label)
}

func TestMonthsZeroCount(t *testing.T) {
	assert.Empty(t, Months(time.Now(), 0))
	assert.Empty(t, Months(time.Now(), -1))
}

func TestActiveDuring(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC).Add(-time.Nanosecond)

	before := start.AddDate(0, -2, 0)
	inside := start.AddDate(0, 0, 10)
	after := end.AddDate(0, 0, 5)

	// Created before the window, never expires.
	assert.True(t, ActiveDuring(before, nil, start, end))

	// Created before the window, expires inside it.
	assert.True(t, ActiveDuring(before, &inside, start, end))

	// Expired before the window opened.
	expired := start.Add(-time.Hour)
	assert.False(t, ActiveDuring(before, &expired, start, end))

	// Created after the window closed.
	assert.False(t, ActiveDuring(after, nil, start, end))

	// Boundary: expires exactly at window start still counts.
	assert.True(t, ActiveDuring(before, &start, start, end))

	// Boundary: created exactly at window end still counts.
	assert.True(t, ActiveDuring(end, nil, start, end))
}

func TestDaysCrossMonthBoundary(t *testing.T) {
	now := time.Date(2026, 3, 2, 18, 0, 0, 0, time.UTC)

	days := Days(now, 3)
	require.Len(t, days, 3)
	assert.Equal(t, "2026-02-28", days[0].Label)
	assert.Equal(t, "2026-03-01", days[1].Label)
	assert.Equal(t, "2026-03-02", days[2].Label)
	assert.Equal(t, days[1].Start.AddDate(0, 0, 1).Add(-time.Nanosecond), days[1].End)
}

func TestWindow(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	start, end := Window(now, 30)
	assert.Equal(t, now, end)
	assert.Equal(t, now.AddDate(0, 0, -30), start)
}

func TestWithinBoundsInclusive(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)

	assert.True(t, Within(start, start, end))
	assert.True(t, Within(end, start, end))
	assert.False(t, Within(start.Add(-time.Nanosecond), start, end))
	assert.False(t, Within(end.Add(time.Nanosecond), start, end))
}
