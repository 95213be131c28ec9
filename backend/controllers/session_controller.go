package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"studytracker/backend/config"
	"studytracker/backend/models"
	"studytracker/backend/utils"
)

// Практический потолок выборки сессий, как в исходном клиенте
const sessionFetchLimit = 5000

type SessionController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewSessionController(db *gorm.DB, cfg *config.Config) *SessionController {
	return &SessionController{DB: db, Cfg: cfg}
}

// ListSessions godoc
// @Summary List sessions of the active semester
// @Description Returns sessions most-recent-first, capped at 5000
// @Tags sessions
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /sessions [get]
func (sc *SessionController) ListSessions(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, sc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	semesterID := c.Query("semester_id")
	if semesterID == "" {
		return utils.BadRequest(c, "semester_id query parameter is required")
	}

	var sessions []models.Session
	if err := sc.DB.Where("user_id = ? AND semester_id = ?", userID, semesterID).
		Order("start_time DESC").Limit(sessionFetchLimit).
		Find(&sessions).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	return c.JSON(fiber.Map{"sessions": sessions})
}

// CreateSession godoc
// @Summary Record a completed study session
// @Description Saves a finished timer run or a manual entry
// @Tags sessions
// @Accept json
// @Produce json
// @Success 201 {object} models.Session
// @Failure 400 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /sessions [post]
func (sc *SessionController) CreateSession(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, sc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	type SessionInput struct {
		SemesterID      uint      `json:"semester_id"`
		SubjectID       *uint     `json:"subject_id"`
		Name            string    `json:"name"`
		Type            string    `json:"type"`
		StartTime       time.Time `json:"start_time"`
		EndTime         time.Time `json:"end_time"`
		DurationMinutes float64   `json:"duration_minutes"`
		Notes           *string   `json:"notes"`
	}

	var input SessionInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	if !models.ValidSessionType(input.Type) {
		return utils.BadRequest(c, "Type must be pomodoro, stopwatch or manual")
	}
	if input.DurationMinutes < 0 {
		return utils.BadRequest(c, "Duration must be non-negative")
	}
	if input.StartTime.IsZero() {
		return utils.BadRequest(c, "start_time is required")
	}
	if !input.EndTime.IsZero() && input.EndTime.Before(input.StartTime) {
		return utils.BadRequest(c, "end_time must not precede start_time")
	}

	// Семестр должен принадлежать пользователю
	var semester models.Semester
	if err := sc.DB.Where("id = ? AND user_id = ?", input.SemesterID, userID).
		First(&semester).Error; err != nil {
		return utils.NotFound(c, "Semester not found")
	}

	name := input.Name
	if name == "" {
		name = "Focus session"
	}

	session := models.Session{
		UserID:          userID,
		SemesterID:      input.SemesterID,
		SubjectID:       input.SubjectID,
		Name:            name,
		Type:            input.Type,
		StartTime:       input.StartTime,
		EndTime:         input.EndTime,
		DurationMinutes: input.DurationMinutes,
		Notes:           input.Notes,
	}

	if err := sc.DB.Create(&session).Error; err != nil {
		return utils.InternalServerError(c, "Could not create session")
	}

	return utils.Created(c, session)
}

// DeleteSession godoc
// @Summary Delete an own session
// @Tags sessions
// @Produce json
// @Success 204
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /sessions/:id [delete]
func (sc *SessionController) DeleteSession(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, sc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	result := sc.DB.Where("id = ? AND user_id = ?", c.Params("id"), userID).
		Delete(&models.Session{})
	if result.Error != nil {
		return utils.InternalServerError(c, "Could not delete session")
	}
	if result.RowsAffected == 0 {
		return utils.NotFound(c, "Session not found")
	}

	return utils.NoContent(c)
}
