package utils

import (
	"fmt"
	"time"
)

// ToLocalDateKey возвращает ключ локального календарного дня в формате
// YYYY-MM-DD. Для нулевого времени возвращает пустую строку, чтобы
// некорректные записи не попадали в дневные корзины.
func ToLocalDateKey(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	t = t.Local()
	return fmt.Sprintf("%04d-%02d-%02d", t.Year(), int(t.Month()), t.Day())
}

// StartOfWeekMonday возвращает локальную полночь понедельника той недели,
// к которой относится t. Воскресенье считается концом недели: шаг назад
// на 6 дней, иначе на (день недели - 1).
func StartOfWeekMonday(t time.Time) time.Time {
	t = t.Local()
	midnight := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())

	offset := int(midnight.Weekday()) - 1
	if midnight.Weekday() == time.Sunday {
		offset = 6
	}
	return midnight.AddDate(0, 0, -offset)
}
