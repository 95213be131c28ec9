package utils

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"studytracker/backend/config"
	"studytracker/backend/models"
)

// InitDB открывает соединение с Postgres и мигрирует схему
func InitDB(cfg *config.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.PasswordReset{},
		&models.Semester{},
		&models.Subject{},
		&models.Session{},
		&models.UserReward{},
	); err != nil {
		return nil, err
	}

	return db, nil
}
