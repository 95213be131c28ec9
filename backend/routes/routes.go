package routes

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"studytracker/backend/config"
	"studytracker/backend/controllers"
	"studytracker/backend/middleware"
)

func SetupRoutes(app *fiber.App, db *gorm.DB, cfg *config.Config, logger *log.Logger) {
	// Auth routes
	authController := controllers.NewAuthController(db, cfg)
	app.Post("/api/auth/register", authController.Register)
	app.Post("/api/auth/login", authController.Login)
	app.Post("/api/auth/reset/request", authController.RequestPasswordReset)
	app.Post("/api/auth/reset", authController.ResetPassword)

	// Middleware
	authMiddleware := middleware.AuthMiddleware(cfg)

	// User routes
	userController := controllers.NewUserController(db, cfg)
	app.Get("/api/user/profile", authMiddleware, userController.GetProfile)
	app.Put("/api/user/profile", authMiddleware, userController.UpdateProfile)

	// Semester and subject routes
	semesterController := controllers.NewSemesterController(db, cfg)
	semesters := app.Group("/api/semesters", authMiddleware)
	semesters.Post("/", semesterController.CreateSemester)
	semesters.Get("/active", semesterController.GetActiveSemester)
	semesters.Put("/:id", semesterController.UpdateSemester)
	semesters.Get("/:id/subjects", semesterController.ListSubjects)
	semesters.Post("/:id/subjects", semesterController.CreateSubject)
	app.Put("/api/subjects/:id", authMiddleware, semesterController.UpdateSubject)
	app.Delete("/api/subjects/:id", authMiddleware, semesterController.DeleteSubject)

	// Session routes
	sessionController := controllers.NewSessionController(db, cfg)
	sessions := app.Group("/api/sessions", authMiddleware)
	sessions.Get("/", sessionController.ListSessions)
	sessions.Post("/", sessionController.CreateSession)
	sessions.Delete("/:id", sessionController.DeleteSession)

	// Rewards routes
	rewardsController := controllers.NewRewardsController(db, cfg, logger)
	app.Get("/api/rewards", authMiddleware, rewardsController.GetRewards)

	// Analytics routes
	analyticsController := controllers.NewAnalyticsController(db, cfg)
	app.Get("/api/analytics/summary", authMiddleware, analyticsController.GetSummary)
}
