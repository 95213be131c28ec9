package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSemesterDerivedFields(t *testing.T) {
	semester := Semester{
		StartDate:      time.Date(2025, time.January, 1, 0, 0, 0, 0, time.Local),
		EndDate:        time.Date(2025, time.January, 10, 0, 0, 0, 0, time.Local),
		TotalGoalHours: 100,
	}

	require.NoError(t, semester.BeforeSave(nil))

	// Обе граничные даты входят в окно
	assert.Equal(t, 10, semester.TotalStudyDays)
	assert.InDelta(t, 10.0, semester.DailyRequiredHours, 1e-9)
	assert.InDelta(t, 70.0, semester.WeeklyRequiredHours, 1e-9)
}

func TestSemesterRejectsInvertedDates(t *testing.T) {
	semester := Semester{
		StartDate:      time.Date(2025, time.June, 1, 0, 0, 0, 0, time.Local),
		EndDate:        time.Date(2025, time.January, 1, 0, 0, 0, 0, time.Local),
		TotalGoalHours: 100,
	}

	assert.ErrorIs(t, semester.BeforeSave(nil), ErrInvalidSemesterDates)
}

func TestSemesterRejectsZeroGoal(t *testing.T) {
	semester := Semester{
		StartDate: time.Date(2025, time.January, 1, 0, 0, 0, 0, time.Local),
		EndDate:   time.Date(2025, time.June, 1, 0, 0, 0, 0, time.Local),
	}

	assert.Error(t, semester.BeforeSave(nil))
}
