package controllers

import (
	"math"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"studytracker/backend/config"
	"studytracker/backend/models"
	"studytracker/backend/utils"
)

type AnalyticsController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewAnalyticsController(db *gorm.DB, cfg *config.Config) *AnalyticsController {
	return &AnalyticsController{DB: db, Cfg: cfg}
}

// StudySummary — сводка для дашборда
type StudySummary struct {
	TodayMinutes    float64    `json:"today_minutes"`
	WeekMinutes     float64    `json:"week_minutes"`
	MonthMinutes    float64    `json:"month_minutes"`
	TotalSessions   int        `json:"total_sessions"`
	StreakDays      int        `json:"streak_days"`
	ActiveDays      int        `json:"active_days"`
	AboveTargetDays int        `json:"above_target_days"`
	DailyAvgMinutes int        `json:"daily_avg_minutes"`
	ThisWeek        [7]float64 `json:"this_week"`
	LastWeek        [7]float64 `json:"last_week"`
	WeekdayAvg      [7]int     `json:"weekday_avg"`
}

// GetSummary godoc
// @Summary Dashboard summary for the active semester
// @Description Aggregates today/week/month totals, streak and weekly trends
// @Tags analytics
// @Produce json
// @Success 200 {object} StudySummary
// @Failure 401 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /analytics/summary [get]
func (ac *AnalyticsController) GetSummary(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, ac.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	semesterID := c.Query("semester_id")
	if semesterID == "" {
		return utils.BadRequest(c, "semester_id query parameter is required")
	}

	var semester models.Semester
	if err := ac.DB.Where("id = ? AND user_id = ?", semesterID, userID).
		First(&semester).Error; err != nil {
		return utils.NotFound(c, "Semester not found")
	}

	var sessions []models.Session
	if err := ac.DB.Where("user_id = ? AND semester_id = ?", userID, semester.ID).
		Order("start_time").Limit(sessionFetchLimit).
		Find(&sessions).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	return c.JSON(Summarize(time.Now(), &semester, sessions))
}

// Summarize агрегирует историю сессий в сводку дашборда.
// Дневные корзины считаются по времени старта; дни серии — по времени
// окончания помодоро, как в движке наград.
func Summarize(now time.Time, semester *models.Semester, sessions []models.Session) StudySummary {
	todayKey := utils.ToLocalDateKey(now)
	startOfWeek := utils.StartOfWeekMonday(now)
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	summary := StudySummary{TotalSessions: len(sessions)}

	pomodoroDayKeys := make(map[string]struct{})
	dayTotals := make(map[string]float64)
	var weekdayTotals [7]float64
	var weekdayCounts [7]int

	for _, session := range sessions {
		duration := session.DurationMinutes
		key := utils.ToLocalDateKey(session.StartTime)
		if key == "" {
			continue
		}

		if key == todayKey {
			summary.TodayMinutes += duration
		}
		if !session.StartTime.Before(startOfWeek) {
			summary.WeekMinutes += duration
		}
		if !session.StartTime.Before(startOfMonth) {
			summary.MonthMinutes += duration
		}

		if session.Type == models.SessionTypePomodoro {
			end := session.EndTime
			if end.IsZero() {
				end = session.StartTime
			}
			if streakKey := utils.ToLocalDateKey(end); streakKey != "" {
				pomodoroDayKeys[streakKey] = struct{}{}
			}
		}

		dayTotals[key] += duration
		mondayIndex := int(session.StartTime.Local().Weekday()) - 1
		if mondayIndex < 0 {
			mondayIndex = 6
		}
		weekdayTotals[mondayIndex] += duration
		weekdayCounts[mondayIndex]++
	}

	for cursor := now; ; cursor = cursor.AddDate(0, 0, -1) {
		if _, ok := pomodoroDayKeys[utils.ToLocalDateKey(cursor)]; !ok {
			break
		}
		summary.StreakDays++
	}

	summary.ActiveDays = len(dayTotals)
	if summary.ActiveDays > 0 {
		var sum float64
		for _, v := range dayTotals {
			sum += v
		}
		summary.DailyAvgMinutes = int(math.Round(sum / float64(summary.ActiveDays)))
	}

	dailyTargetMin := semester.DailyRequiredHours * 60
	if dailyTargetMin > 0 {
		for _, v := range dayTotals {
			if v >= dailyTargetMin {
				summary.AboveTargetDays++
			}
		}
	}

	lastWeekStart := startOfWeek.AddDate(0, 0, -7)
	for i := 0; i < 7; i++ {
		summary.ThisWeek[i] = dayTotals[utils.ToLocalDateKey(startOfWeek.AddDate(0, 0, i))]
		summary.LastWeek[i] = dayTotals[utils.ToLocalDateKey(lastWeekStart.AddDate(0, 0, i))]
	}

	for i := 0; i < 7; i++ {
		if weekdayCounts[i] > 0 {
			summary.WeekdayAvg[i] = int(math.Round(weekdayTotals[i] / float64(weekdayCounts[i])))
		}
	}

	return summary
}
