package controllers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"studytracker/backend/config"
	"studytracker/backend/models"
	"studytracker/backend/utils"
)

type SemesterController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewSemesterController(db *gorm.DB, cfg *config.Config) *SemesterController {
	return &SemesterController{DB: db, Cfg: cfg}
}

type semesterInput struct {
	Name           string  `json:"name"`
	StartDate      string  `json:"start_date"` // YYYY-MM-DD
	EndDate        string  `json:"end_date"`
	TotalGoalHours float64 `json:"total_goal_hours"`
}

func parseDateField(value string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", value, time.Local)
}

// CreateSemester godoc
// @Summary Create a semester goal
// @Description Creates the goal window the user tracks against
// @Tags semesters
// @Accept json
// @Produce json
// @Success 201 {object} models.Semester
// @Failure 400 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /semesters [post]
func (sc *SemesterController) CreateSemester(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, sc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var input semesterInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	start, err := parseDateField(input.StartDate)
	if err != nil {
		return utils.BadRequest(c, "Invalid start_date format. Use YYYY-MM-DD")
	}
	end, err := parseDateField(input.EndDate)
	if err != nil {
		return utils.BadRequest(c, "Invalid end_date format. Use YYYY-MM-DD")
	}

	semester := models.Semester{
		UserID:         userID,
		Name:           input.Name,
		StartDate:      start,
		EndDate:        end,
		TotalGoalHours: input.TotalGoalHours,
	}

	// Производные поля считает BeforeSave
	if err := sc.DB.Create(&semester).Error; err != nil {
		if errors.Is(err, models.ErrInvalidSemesterDates) {
			return utils.BadRequest(c, err.Error())
		}
		return utils.InternalServerError(c, "Could not create semester")
	}

	return utils.Created(c, semester)
}

// GetActiveSemester godoc
// @Summary Get the active semester
// @Description Returns the latest semester by start date
// @Tags semesters
// @Produce json
// @Success 200 {object} models.Semester
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /semesters/active [get]
func (sc *SemesterController) GetActiveSemester(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, sc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var semester models.Semester
	if err := sc.DB.Where("user_id = ?", userID).
		Order("start_date DESC").First(&semester).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "No semester configured")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	return c.JSON(semester)
}

// UpdateSemester godoc
// @Summary Update semester goal parameters
// @Description Derived daily/weekly hours are recomputed on save
// @Tags semesters
// @Accept json
// @Produce json
// @Success 200 {object} models.Semester
// @Failure 400 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /semesters/:id [put]
func (sc *SemesterController) UpdateSemester(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, sc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var semester models.Semester
	if err := sc.DB.Where("id = ? AND user_id = ?", c.Params("id"), userID).
		First(&semester).Error; err != nil {
		return utils.NotFound(c, "Semester not found")
	}

	var input semesterInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	if input.Name != "" {
		semester.Name = input.Name
	}
	if input.StartDate != "" {
		start, err := parseDateField(input.StartDate)
		if err != nil {
			return utils.BadRequest(c, "Invalid start_date format. Use YYYY-MM-DD")
		}
		semester.StartDate = start
	}
	if input.EndDate != "" {
		end, err := parseDateField(input.EndDate)
		if err != nil {
			return utils.BadRequest(c, "Invalid end_date format. Use YYYY-MM-DD")
		}
		semester.EndDate = end
	}
	if input.TotalGoalHours > 0 {
		semester.TotalGoalHours = input.TotalGoalHours
	}

	if err := sc.DB.Save(&semester).Error; err != nil {
		if errors.Is(err, models.ErrInvalidSemesterDates) {
			return utils.BadRequest(c, err.Error())
		}
		return utils.InternalServerError(c, "Could not update semester")
	}

	return c.JSON(semester)
}

// ListSubjects godoc
// @Summary List subjects of a semester
// @Tags subjects
// @Produce json
// @Success 200 {array} models.Subject
// @Security ApiKeyAuth
// @Router /semesters/:id/subjects [get]
func (sc *SemesterController) ListSubjects(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, sc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var semester models.Semester
	if err := sc.DB.Where("id = ? AND user_id = ?", c.Params("id"), userID).
		First(&semester).Error; err != nil {
		return utils.NotFound(c, "Semester not found")
	}

	var subjects []models.Subject
	if err := sc.DB.Where("semester_id = ?", semester.ID).
		Order("name").Find(&subjects).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	return c.JSON(fiber.Map{"subjects": subjects})
}

// CreateSubject godoc
// @Summary Add a subject to a semester
// @Tags subjects
// @Accept json
// @Produce json
// @Success 201 {object} models.Subject
// @Security ApiKeyAuth
// @Router /semesters/:id/subjects [post]
func (sc *SemesterController) CreateSubject(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, sc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var semester models.Semester
	if err := sc.DB.Where("id = ? AND user_id = ?", c.Params("id"), userID).
		First(&semester).Error; err != nil {
		return utils.NotFound(c, "Semester not found")
	}

	var subject models.Subject
	if err := c.BodyParser(&subject); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if subject.Name == "" {
		return utils.BadRequest(c, "Subject name is required")
	}
	subject.SemesterID = semester.ID

	if err := sc.DB.Create(&subject).Error; err != nil {
		return utils.InternalServerError(c, "Could not create subject")
	}

	return utils.Created(c, subject)
}

// UpdateSubject godoc
// @Summary Update a subject
// @Tags subjects
// @Accept json
// @Produce json
// @Success 200 {object} models.Subject
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /subjects/:id [put]
func (sc *SemesterController) UpdateSubject(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, sc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var subject models.Subject
	if err := sc.DB.Joins("JOIN semesters ON semesters.id = subjects.semester_id").
		Where("subjects.id = ? AND semesters.user_id = ?", c.Params("id"), userID).
		First(&subject).Error; err != nil {
		return utils.NotFound(c, "Subject not found")
	}

	type SubjectInput struct {
		Name        string   `json:"name"`
		TargetHours *float64 `json:"target_hours"`
		Weight      *float64 `json:"weight"`
	}

	var input SubjectInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	if input.Name != "" {
		subject.Name = input.Name
	}
	if input.TargetHours != nil {
		subject.TargetHours = *input.TargetHours
	}
	if input.Weight != nil {
		subject.Weight = input.Weight
	}

	if err := sc.DB.Save(&subject).Error; err != nil {
		return utils.InternalServerError(c, "Could not update subject")
	}

	return c.JSON(subject)
}

// DeleteSubject godoc
// @Summary Delete a subject
// @Description Fails while sessions still reference the subject
// @Tags subjects
// @Produce json
// @Success 204
// @Failure 409 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /subjects/:id [delete]
func (sc *SemesterController) DeleteSubject(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, sc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var subject models.Subject
	if err := sc.DB.Joins("JOIN semesters ON semesters.id = subjects.semester_id").
		Where("subjects.id = ? AND semesters.user_id = ?", c.Params("id"), userID).
		First(&subject).Error; err != nil {
		return utils.NotFound(c, "Subject not found")
	}

	var inUse int64
	sc.DB.Model(&models.Session{}).Where("subject_id = ?", subject.ID).Count(&inUse)
	if inUse > 0 {
		return utils.Error(c, fiber.StatusConflict,
			fiber.NewError(fiber.StatusConflict, "Subject has sessions; remove them first"))
	}

	if err := sc.DB.Delete(&subject).Error; err != nil {
		return utils.InternalServerError(c, "Could not delete subject")
	}

	return utils.NoContent(c)
}
