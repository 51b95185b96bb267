package database

import (
	"fmt"
	"log"

	"github.com/omkar-107/opine-bot-sub000/internal/config"
	"github.com/omkar-107/opine-bot-sub000/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Connect(cfg *config.Config) *gorm.DB {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName,
	)

	// TranslateError so a unique-index violation surfaces as
	// gorm.ErrDuplicatedKey instead of a driver-specific error
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	log.Println("database connected")
	return db
}

func AutoMigrate(db *gorm.DB) {
	err := db.AutoMigrate(
		&models.User{},
		&models.Faculty{},
		&models.Student{},
		&models.Course{},
		&models.Quiz{},
		&models.Question{},
		&models.Option{},
		&models.QuizResponse{},
		&models.ResponseAnswer{},
		&models.FeedbackTask{},
		&models.CourseFeedback{},
	)
	if err != nil {
		log.Fatalf("failed to auto-migrate: %v", err)
	}
	log.Println("database migrated")
}
