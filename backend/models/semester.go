package models

import (
	"errors"
	"math"
	"time"

	"gorm.io/gorm"
)

var ErrInvalidSemesterDates = errors.New("semester end date must be after start date")

// Semester — окно цели, относительно которого считается прогресс.
// Производные поля (TotalStudyDays, DailyRequiredHours, WeeklyRequiredHours)
// всегда пересчитываются из дат и общей цели, их нельзя править напрямую.
type Semester struct {
	gorm.Model
	UserID              uint      `gorm:"index;not null" json:"user_id"`
	Name                string    `json:"name"`
	StartDate           time.Time `gorm:"not null" json:"start_date"`
	EndDate             time.Time `gorm:"not null" json:"end_date"`
	TotalGoalHours      float64   `gorm:"not null" json:"total_goal_hours"`
	TotalStudyDays      int       `json:"total_study_days"`
	DailyRequiredHours  float64   `json:"daily_required_hours"`
	WeeklyRequiredHours float64   `json:"weekly_required_hours"`
}

type Subject struct {
	gorm.Model
	SemesterID  uint     `gorm:"index;not null" json:"semester_id"`
	Name        string   `gorm:"not null" json:"name"`
	TargetHours float64  `json:"target_hours"`
	Weight      *float64 `json:"weight"`
}

// BeforeSave пересчитывает производные поля семестра
func (s *Semester) BeforeSave(tx *gorm.DB) error {
	if !s.EndDate.After(s.StartDate) {
		return ErrInvalidSemesterDates
	}
	if s.TotalGoalHours <= 0 {
		return errors.New("total goal hours must be positive")
	}

	// Количество дней включает обе граничные даты
	days := int(math.Round(s.EndDate.Sub(s.StartDate).Hours()/24)) + 1
	s.TotalStudyDays = days
	s.DailyRequiredHours = s.TotalGoalHours / float64(days)
	s.WeeklyRequiredHours = s.DailyRequiredHours * 7

	return nil
}
