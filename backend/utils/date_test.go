package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestToLocalDateKey(t *testing.T) {
	loc := time.Local

	key := ToLocalDateKey(time.Date(2025, time.March, 7, 23, 59, 0, 0, loc))
	assert.Equal(t, "2025-03-07", key)

	// Однозначные месяц и день дополняются нулями
	key = ToLocalDateKey(time.Date(2025, time.January, 2, 0, 0, 1, 0, loc))
	assert.Equal(t, "2025-01-02", key)
}

func TestToLocalDateKeyZeroTime(t *testing.T) {
	assert.Equal(t, "", ToLocalDateKey(time.Time{}))
}

func TestStartOfWeekMondayOnSunday(t *testing.T) {
	// 2025-03-09 — воскресенье, понедельник был 2025-03-03
	sunday := time.Date(2025, time.March, 9, 15, 30, 0, 0, time.Local)
	start := StartOfWeekMonday(sunday)

	assert.Equal(t, time.Monday, start.Weekday())
	assert.Equal(t, 2025, start.Year())
	assert.Equal(t, time.March, start.Month())
	assert.Equal(t, 3, start.Day())
	assert.Equal(t, 0, start.Hour())
	assert.Equal(t, 0, start.Minute())
}

func TestStartOfWeekMondayOnWednesday(t *testing.T) {
	// 2025-03-05 — среда той же недели
	wednesday := time.Date(2025, time.March, 5, 8, 0, 0, 0, time.Local)
	start := StartOfWeekMonday(wednesday)

	assert.Equal(t, time.Monday, start.Weekday())
	assert.Equal(t, 3, start.Day())
}

func TestStartOfWeekMondayOnMonday(t *testing.T) {
	monday := time.Date(2025, time.March, 3, 23, 0, 0, 0, time.Local)
	start := StartOfWeekMonday(monday)

	assert.Equal(t, 3, start.Day())
	assert.Equal(t, 0, start.Hour())
}
