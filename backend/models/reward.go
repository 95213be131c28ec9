package models

import "gorm.io/gorm"

// UserReward — сохранённое состояние бейджа пользователя.
// Пара (user_id, reward_key) уникальна; счётчик только растёт.
type UserReward struct {
	gorm.Model
	UserID           uint   `gorm:"uniqueIndex:idx_user_reward;not null" json:"user_id"`
	RewardKey        string `gorm:"uniqueIndex:idx_user_reward;not null" json:"reward_key"`
	UnlockCount      int    `gorm:"default:0" json:"unlock_count"`
	LastUnlockedDate string `json:"last_unlocked_date"` // локальный ключ дня YYYY-MM-DD
}
