package controllers

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"studytracker/backend/config"
	"studytracker/backend/models"
	"studytracker/backend/rewards"
	"studytracker/backend/utils"
)

type RewardsController struct {
	DB     *gorm.DB
	Cfg    *config.Config
	Logger *log.Logger
}

func NewRewardsController(db *gorm.DB, cfg *config.Config, logger *log.Logger) *RewardsController {
	return &RewardsController{DB: db, Cfg: cfg, Logger: logger}
}

// GetRewards godoc
// @Summary Compute and return badge state
// @Description Recomputes badges from full session history and persists new unlocks
// @Tags rewards
// @Produce json
// @Success 200 {object} rewards.Result
// @Failure 401 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /rewards [get]
func (rc *RewardsController) GetRewards(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, rc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	semesterID := c.Query("semester_id")
	if semesterID == "" {
		return utils.BadRequest(c, "semester_id query parameter is required")
	}

	// При сбое выборки движок не вызывается с частичными данными:
	// отдаём безопасное пустое состояние (всё заблокировано, без
	// мутаций), чтобы клиент мог отрисоваться
	var sessions []models.Session
	if err := rc.DB.Where("user_id = ? AND semester_id = ?", userID, semesterID).
		Order("start_time").Limit(sessionFetchLimit).
		Find(&sessions).Error; err != nil {
		rc.logf("session fetch failed for user %d: %v", userID, err)
		return c.JSON(rewards.Compute(time.Now(), userID, nil, nil))
	}

	// Записи разблокировок глобальны для пользователя, семестр не важен
	var existing []models.UserReward
	if err := rc.DB.Where("user_id = ?", userID).Find(&existing).Error; err != nil {
		rc.logf("reward fetch failed for user %d: %v", userID, err)
		return c.JSON(rewards.Compute(time.Now(), userID, nil, nil))
	}

	result := rewards.Compute(time.Now(), userID, sessions, existing)

	// Сбой записи не блокирует ответ: движок идемпотентен и найдёт
	// разблокировку заново на следующем прогоне
	for _, m := range result.Mutations {
		rc.applyMutation(m)
	}

	return c.JSON(result)
}

func (rc *RewardsController) applyMutation(m rewards.Mutation) {
	record := models.UserReward{
		UserID:           m.UserID,
		RewardKey:        m.RewardKey,
		UnlockCount:      m.UnlockCount,
		LastUnlockedDate: m.LastUnlockedDate,
	}

	err := rc.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "reward_key"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"unlock_count", "last_unlocked_date", "updated_at",
		}),
	}).Create(&record).Error

	if err != nil {
		rc.logf("reward upsert failed for user %d key %s: %v",
			m.UserID, m.RewardKey, err)
	}
}

func (rc *RewardsController) logf(format string, args ...interface{}) {
	if rc.Logger != nil {
		rc.Logger.Printf(format, args...)
	}
}
