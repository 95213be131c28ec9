package rewards

import "fmt"

// Family определяет семейство бейджа и правило его разблокировки
type Family int

const (
	// FamilyTiming — дневные бейджи по времени старта сессии
	FamilyTiming Family = iota
	// FamilyTimeThreshold — дневные бейджи по сумме минут за день
	FamilyTimeThreshold
	// FamilyStreak — одноразовые бейджи за серию дней с помодоро
	FamilyStreak
)

// Definition — статическое описание бейджа из каталога.
// Threshold: минуты для FamilyTimeThreshold, дни для FamilyStreak.
type Definition struct {
	Key       string
	Title     string
	Family    Family
	Threshold int
	subtitle  string
}

// Subtitle возвращает подпись бейджа; для пороговых семейств она
// собирается из порога
func (d Definition) Subtitle() string {
	switch d.Family {
	case FamilyTimeThreshold:
		return fmt.Sprintf("%d+ minutes today", d.Threshold)
	case FamilyStreak:
		return fmt.Sprintf("%d consecutive pomodoro days", d.Threshold)
	default:
		return d.subtitle
	}
}

// Daily сообщает, сбрасывается ли бейдж каждый день
func (d Definition) Daily() bool {
	return d.Family != FamilyStreak
}

// Catalog — полный набор бейджей приложения. Порядок внутри
// семейства определяет порядок отображения.
var Catalog = []Definition{
	{Key: "early_bird", Title: "Early Bird", Family: FamilyTiming,
		subtitle: "First session starts before 7:00 AM"},
	{Key: "night_owl", Title: "Night Owl", Family: FamilyTiming,
		subtitle: "Any session starts after 11:00 PM"},

	{Key: "2_hours", Title: "2 Hours", Family: FamilyTimeThreshold, Threshold: 120},
	{Key: "4_hours", Title: "4 Hours", Family: FamilyTimeThreshold, Threshold: 240},
	{Key: "6_hours", Title: "6 Hours", Family: FamilyTimeThreshold, Threshold: 360},
	{Key: "8_hours", Title: "8 Hours", Family: FamilyTimeThreshold, Threshold: 480},
	{Key: "10_hours", Title: "10 Hours", Family: FamilyTimeThreshold, Threshold: 600},
	{Key: "12_hours", Title: "12 Hours", Family: FamilyTimeThreshold, Threshold: 720},

	{Key: "7_day_streak", Title: "7 Day Streak", Family: FamilyStreak, Threshold: 7},
	{Key: "30_day_streak", Title: "30 Day Streak", Family: FamilyStreak, Threshold: 30},
	{Key: "100_day_streak", Title: "100 Day Streak", Family: FamilyStreak, Threshold: 100},
}
