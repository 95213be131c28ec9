package rewards

import (
	"time"

	"studytracker/backend/models"
	"studytracker/backend/utils"
)

// Badge — отображаемое состояние одного бейджа
type Badge struct {
	Key         string `json:"key"`
	Title       string `json:"title"`
	Subtitle    string `json:"subtitle"`
	Unlocked    bool   `json:"unlocked"`
	UnlockCount int    `json:"unlock_count"`
}

// Mutation — отложенный upsert записи user_rewards. Движок только
// формирует мутации, выполняет их вызывающая сторона.
type Mutation struct {
	UserID           uint
	RewardKey        string
	UnlockCount      int
	LastUnlockedDate string
}

// Result — результат одного прогона движка: бейджи по семействам
// плюс мутации, которые нужно применить к хранилищу
type Result struct {
	Timing    []Badge    `json:"timing"`
	Time      []Badge    `json:"time"`
	Streak    []Badge    `json:"streak"`
	Mutations []Mutation `json:"-"`
}

// Compute считает состояние всех бейджей из полной истории сессий
// пользователя и сохранённых записей разблокировок. Функция чистая:
// время передаётся параметром, записи не читаются и не пишутся.
//
// Дневные итоги корзинуются по времени СТАРТА сессии, а дни серии —
// по времени ОКОНЧАНИЯ помодоро. Сессия, начатая до полуночи и
// законченная после, кредитует серию уже следующим днём. Это
// поведение намеренное: день серии засчитывается только когда
// помодоро полностью завершился.
func Compute(now time.Time, userID uint, sessions []models.Session, existing []models.UserReward) Result {
	todayKey := utils.ToLocalDateKey(now)

	var (
		todayMinutes  float64
		nightOwlToday bool
		todayStarts   []time.Time
	)
	pomodoroDayKeys := make(map[string]struct{})

	for _, session := range sessions {
		start := session.StartTime
		end := session.EndTime
		if end.IsZero() {
			end = start
		}

		if utils.ToLocalDateKey(start) == todayKey {
			todayMinutes += session.DurationMinutes
			todayStarts = append(todayStarts, start)
			if start.Local().Hour() >= 23 {
				nightOwlToday = true
			}
		}

		if session.Type == models.SessionTypePomodoro {
			key := utils.ToLocalDateKey(end)
			if key != "" {
				pomodoroDayKeys[key] = struct{}{}
			}
		}
	}

	var firstTodayStart *time.Time
	for i := range todayStarts {
		if firstTodayStart == nil || todayStarts[i].Before(*firstTodayStart) {
			firstTodayStart = &todayStarts[i]
		}
	}

	streakDays := 0
	for cursor := now; ; cursor = cursor.AddDate(0, 0, -1) {
		if _, ok := pomodoroDayKeys[utils.ToLocalDateKey(cursor)]; !ok {
			break
		}
		streakDays++
	}

	byKey := make(map[string]models.UserReward, len(existing))
	for _, record := range existing {
		byKey[record.RewardKey] = record
	}

	result := Result{}
	for _, def := range Catalog {
		var condition bool
		switch def.Family {
		case FamilyTiming:
			if def.Key == "early_bird" {
				condition = firstTodayStart != nil && firstTodayStart.Local().Hour() < 7
			} else {
				condition = nightOwlToday
			}
		case FamilyTimeThreshold:
			condition = todayMinutes >= float64(def.Threshold)
		case FamilyStreak:
			condition = streakDays >= def.Threshold
		}

		record, hasRecord := byKey[def.Key]
		badge := Badge{
			Key:      def.Key,
			Title:    def.Title,
			Subtitle: def.Subtitle(),
		}

		if def.Daily() {
			badge.Unlocked = condition
			badge.UnlockCount = record.UnlockCount
			if condition && record.LastUnlockedDate != todayKey {
				badge.UnlockCount = record.UnlockCount + 1
				result.Mutations = append(result.Mutations, Mutation{
					UserID:           userID,
					RewardKey:        def.Key,
					UnlockCount:      badge.UnlockCount,
					LastUnlockedDate: todayKey,
				})
			}
		} else {
			// Серийные бейджи разблокируются один раз и навсегда
			switch {
			case hasRecord && record.UnlockCount > 0:
				badge.Unlocked = true
				badge.UnlockCount = record.UnlockCount
			case !hasRecord && condition:
				badge.Unlocked = true
				badge.UnlockCount = 1
				result.Mutations = append(result.Mutations, Mutation{
					UserID:           userID,
					RewardKey:        def.Key,
					UnlockCount:      1,
					LastUnlockedDate: todayKey,
				})
			}
		}

		switch def.Family {
		case FamilyTiming:
			result.Timing = append(result.Timing, badge)
		case FamilyTimeThreshold:
			result.Time = append(result.Time, badge)
		case FamilyStreak:
			result.Streak = append(result.Streak, badge)
		}
	}

	return result
}
