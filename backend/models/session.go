package models

import (
	"time"

	"gorm.io/gorm"
)

// Типы учебных сессий
const (
	SessionTypePomodoro  = "pomodoro"
	SessionTypeStopwatch = "stopwatch"
	SessionTypeManual    = "manual"
)

// Session — завершённый отрезок учёбы. Запись неизменяема после
// создания, владелец может только удалить её.
type Session struct {
	gorm.Model
	UserID          uint      `gorm:"index;not null" json:"user_id"`
	SemesterID      uint      `gorm:"index;not null" json:"semester_id"`
	SubjectID       *uint     `json:"subject_id"`
	Name            string    `json:"name"`
	Type            string    `gorm:"not null" json:"type"`
	StartTime       time.Time `gorm:"not null" json:"start_time"`
	EndTime         time.Time `json:"end_time"`
	DurationMinutes float64   `gorm:"not null" json:"duration_minutes"`
	Notes           *string   `json:"notes"`
}

func ValidSessionType(t string) bool {
	switch t {
	case SessionTypePomodoro, SessionTypeStopwatch, SessionTypeManual:
		return true
	}
	return false
}
