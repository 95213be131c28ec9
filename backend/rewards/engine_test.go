package rewards

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studytracker/backend/models"
	"studytracker/backend/utils"
)

const testUserID uint = 42

// Среда, 2025-03-05, полдень локального времени
var now = time.Date(2025, time.March, 5, 12, 0, 0, 0, time.Local)

func at(hour, minute int) time.Time {
	return time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, time.Local)
}

func session(sessionType string, start, end time.Time, minutes float64) models.Session {
	return models.Session{
		UserID:          testUserID,
		SemesterID:      1,
		Type:            sessionType,
		StartTime:       start,
		EndTime:         end,
		DurationMinutes: minutes,
	}
}

func findBadge(t *testing.T, badges []Badge, key string) Badge {
	t.Helper()
	for _, b := range badges {
		if b.Key == key {
			return b
		}
	}
	t.Fatalf("badge %s not found", key)
	return Badge{}
}

func TestEmptyInput(t *testing.T) {
	result := Compute(now, testUserID, nil, nil)

	all := append(append(result.Timing, result.Time...), result.Streak...)
	require.Len(t, all, 11)
	for _, badge := range all {
		assert.False(t, badge.Unlocked, badge.Key)
		assert.Equal(t, 0, badge.UnlockCount, badge.Key)
	}
	assert.Empty(t, result.Mutations)
}

func TestThresholdBoundary(t *testing.T) {
	sessions := []models.Session{
		session(models.SessionTypeStopwatch, at(9, 0), at(11, 0), 120),
	}
	result := Compute(now, testUserID, sessions, nil)
	assert.True(t, findBadge(t, result.Time, "2_hours").Unlocked)
	assert.False(t, findBadge(t, result.Time, "4_hours").Unlocked)

	sessions[0].DurationMinutes = 119.999
	result = Compute(now, testUserID, sessions, nil)
	assert.False(t, findBadge(t, result.Time, "2_hours").Unlocked)
}

func TestTodayMinutesAreAdditive(t *testing.T) {
	sessions := []models.Session{
		session(models.SessionTypeStopwatch, at(9, 0), at(10, 0), 60),
		session(models.SessionTypeManual, at(14, 0), at(15, 0), 60),
	}
	result := Compute(now, testUserID, sessions, nil)
	assert.True(t, findBadge(t, result.Time, "2_hours").Unlocked)
}

func TestEarlyBirdBoundary(t *testing.T) {
	early := []models.Session{
		session(models.SessionTypePomodoro, at(6, 59), at(7, 24), 25),
	}
	result := Compute(now, testUserID, early, nil)
	assert.True(t, findBadge(t, result.Timing, "early_bird").Unlocked)

	late := []models.Session{
		session(models.SessionTypePomodoro, at(7, 0), at(7, 25), 25),
	}
	result = Compute(now, testUserID, late, nil)
	assert.False(t, findBadge(t, result.Timing, "early_bird").Unlocked)
}

func TestEarlyBirdUsesFirstStartOfDay(t *testing.T) {
	// Порядок в срезе не важен: берётся самый ранний старт дня
	sessions := []models.Session{
		session(models.SessionTypeStopwatch, at(10, 0), at(11, 0), 60),
		session(models.SessionTypeStopwatch, at(6, 0), at(6, 30), 30),
	}
	result := Compute(now, testUserID, sessions, nil)
	assert.True(t, findBadge(t, result.Timing, "early_bird").Unlocked)
}

func TestNightOwlBoundary(t *testing.T) {
	night := []models.Session{
		session(models.SessionTypeStopwatch, at(23, 0), at(23, 30), 30),
	}
	result := Compute(now, testUserID, night, nil)
	assert.True(t, findBadge(t, result.Timing, "night_owl").Unlocked)

	evening := []models.Session{
		session(models.SessionTypeStopwatch, at(22, 59), at(23, 30), 30),
	}
	result = Compute(now, testUserID, evening, nil)
	assert.False(t, findBadge(t, result.Timing, "night_owl").Unlocked)
}

func TestStreakComputation(t *testing.T) {
	var sessions []models.Session
	// Помодоро завершались сегодня, вчера и позавчера
	for offset := 0; offset < 3; offset++ {
		day := now.AddDate(0, 0, -offset)
		sessions = append(sessions, session(models.SessionTypePomodoro, day.Add(-25*time.Minute), day, 25))
	}

	result := Compute(now, testUserID, sessions, nil)
	for _, badge := range result.Streak {
		assert.False(t, badge.Unlocked, badge.Key)
	}

	// Семь подряд — первая разблокировка 7_day_streak
	sessions = nil
	for offset := 0; offset < 7; offset++ {
		day := now.AddDate(0, 0, -offset)
		sessions = append(sessions, session(models.SessionTypePomodoro, day.Add(-25*time.Minute), day, 25))
	}
	result = Compute(now, testUserID, sessions, nil)

	badge := findBadge(t, result.Streak, "7_day_streak")
	assert.True(t, badge.Unlocked)
	assert.Equal(t, 1, badge.UnlockCount)
	assert.False(t, findBadge(t, result.Streak, "30_day_streak").Unlocked)

	var streakMutations []Mutation
	for _, m := range result.Mutations {
		if m.RewardKey == "7_day_streak" {
			streakMutations = append(streakMutations, m)
		}
	}
	require.Len(t, streakMutations, 1)
	assert.Equal(t, 1, streakMutations[0].UnlockCount)
	assert.Equal(t, utils.ToLocalDateKey(now), streakMutations[0].LastUnlockedDate)
}

func TestStreakBrokenByGap(t *testing.T) {
	// Пропущен вчерашний день: серия обрывается на сегодняшнем дне
	sessions := []models.Session{
		session(models.SessionTypePomodoro, now.Add(-25*time.Minute), now, 25),
		session(models.SessionTypePomodoro, now.AddDate(0, 0, -2), now.AddDate(0, 0, -2), 25),
	}
	result := Compute(now, testUserID, sessions, nil)
	assert.False(t, findBadge(t, result.Streak, "7_day_streak").Unlocked)
}

func TestStreakBucketsByEndTime(t *testing.T) {
	// Помодоро стартовал до полуночи, а закончился сегодня: день серии —
	// сегодня, при этом в сегодняшние минуты он не попадает (корзина
	// минут считается по времени старта)
	crossMidnight := session(models.SessionTypePomodoro,
		at(23, 45).AddDate(0, 0, -1), at(0, 10), 25)

	sessions := []models.Session{crossMidnight}
	for offset := 1; offset < 7; offset++ {
		day := now.AddDate(0, 0, -offset)
		sessions = append(sessions, session(models.SessionTypePomodoro, day.Add(-25*time.Minute), day, 25))
	}

	result := Compute(now, testUserID, sessions, nil)

	assert.True(t, findBadge(t, result.Streak, "7_day_streak").Unlocked)
	assert.False(t, findBadge(t, result.Time, "2_hours").Unlocked)
	assert.False(t, findBadge(t, result.Timing, "night_owl").Unlocked)
}

func TestStreakNeverRelocks(t *testing.T) {
	existing := []models.UserReward{
		{UserID: testUserID, RewardKey: "7_day_streak", UnlockCount: 1, LastUnlockedDate: "2025-01-15"},
	}

	// Сессий нет вообще, условие серии сейчас ложно
	result := Compute(now, testUserID, nil, existing)

	badge := findBadge(t, result.Streak, "7_day_streak")
	assert.True(t, badge.Unlocked)
	assert.Equal(t, 1, badge.UnlockCount)
	assert.Empty(t, result.Mutations)
}

func TestDailyReset(t *testing.T) {
	yesterdayKey := utils.ToLocalDateKey(now.AddDate(0, 0, -1))
	existing := []models.UserReward{
		{UserID: testUserID, RewardKey: "2_hours", UnlockCount: 3, LastUnlockedDate: yesterdayKey},
	}
	sessions := []models.Session{
		session(models.SessionTypeStopwatch, at(9, 0), at(12, 0), 180),
	}

	result := Compute(now, testUserID, sessions, existing)

	badge := findBadge(t, result.Time, "2_hours")
	assert.True(t, badge.Unlocked)
	assert.Equal(t, 4, badge.UnlockCount)

	var mutations []Mutation
	for _, m := range result.Mutations {
		if m.RewardKey == "2_hours" {
			mutations = append(mutations, m)
		}
	}
	require.Len(t, mutations, 1)
	assert.Equal(t, 4, mutations[0].UnlockCount)
	assert.Equal(t, utils.ToLocalDateKey(now), mutations[0].LastUnlockedDate)
}

func TestDailyAlreadyCountedToday(t *testing.T) {
	todayKey := utils.ToLocalDateKey(now)
	existing := []models.UserReward{
		{UserID: testUserID, RewardKey: "2_hours", UnlockCount: 4, LastUnlockedDate: todayKey},
	}
	sessions := []models.Session{
		session(models.SessionTypeStopwatch, at(9, 0), at(12, 0), 180),
	}

	result := Compute(now, testUserID, sessions, existing)

	badge := findBadge(t, result.Time, "2_hours")
	assert.True(t, badge.Unlocked)
	assert.Equal(t, 4, badge.UnlockCount)
	assert.Empty(t, result.Mutations)
}

func TestDailyConditionFalseKeepsCount(t *testing.T) {
	existing := []models.UserReward{
		{UserID: testUserID, RewardKey: "night_owl", UnlockCount: 2, LastUnlockedDate: "2025-02-01"},
	}

	result := Compute(now, testUserID, nil, existing)

	badge := findBadge(t, result.Timing, "night_owl")
	assert.False(t, badge.Unlocked)
	assert.Equal(t, 2, badge.UnlockCount)
	assert.Empty(t, result.Mutations)
}

func TestIdempotence(t *testing.T) {
	var sessions []models.Session
	for offset := 0; offset < 7; offset++ {
		day := now.AddDate(0, 0, -offset)
		sessions = append(sessions, session(models.SessionTypePomodoro, day.Add(-25*time.Minute), day, 150))
	}

	first := Compute(now, testUserID, sessions, nil)
	require.NotEmpty(t, first.Mutations)

	// Применяем мутации так, как это сделала бы вызывающая сторона
	var records []models.UserReward
	for _, m := range first.Mutations {
		records = append(records, models.UserReward{
			UserID:           m.UserID,
			RewardKey:        m.RewardKey,
			UnlockCount:      m.UnlockCount,
			LastUnlockedDate: m.LastUnlockedDate,
		})
	}

	second := Compute(now, testUserID, sessions, records)

	assert.Empty(t, second.Mutations)
	assert.Equal(t, first.Timing, second.Timing)
	assert.Equal(t, first.Time, second.Time)
	assert.Equal(t, first.Streak, second.Streak)
}

func TestZeroStartTimeExcluded(t *testing.T) {
	// Запись с нулевым временем не должна попасть ни в одну корзину
	sessions := []models.Session{
		{UserID: testUserID, Type: models.SessionTypePomodoro, DurationMinutes: 500},
	}
	result := Compute(now, testUserID, sessions, nil)

	assert.False(t, findBadge(t, result.Time, "2_hours").Unlocked)
	for _, badge := range result.Streak {
		assert.False(t, badge.Unlocked)
	}
	assert.Empty(t, result.Mutations)
}
