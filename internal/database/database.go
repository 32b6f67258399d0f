package database

import (
	"fmt"

	"github.com/LksLvnt/studymate/internal/config"
	logging "github.com/LksLvnt/studymate/internal/logging"
	"github.com/LksLvnt/studymate/internal/models"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func Init(log *zap.Logger) {
	var err error
	dbConf := config.Conf.Database
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
		dbConf.Host, dbConf.User, dbConf.Password, dbConf.DBName, dbConf.Port)

	// Create our custom GORM logger
	gormLogger := logging.NewGormZapLogger(log)
	gormLogger.LogLevel = logger.Warn

	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormLogger,
	})

	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}

	log.Info("Database connection established successfully.")
	runMigrations(log)
}

func runMigrations(log *zap.Logger) {
	// GORM's AutoMigrate will create tables, columns, and foreign keys.
	// It will NOT create custom indexes, so we handle that separately.
	err := DB.AutoMigrate(
		&models.User{},
		&models.Document{},
		&models.DocumentChunk{},
		&models.StudyGuide{},
		&models.Flashcard{},
		&models.ReviewEvent{},
		&models.Quiz{},
		&models.QuizAttempt{},
	)
	if err != nil {
		log.Fatal("Failed to run database migrations", zap.Error(err))
	}
	log.Info("Database migrations completed successfully.")

	// The due-card query orders by next_review then repetitions; give it a
	// composite index scoped to the owning user.
	dueIndex := `CREATE INDEX IF NOT EXISTS idx_flashcards_due ON flashcards (user_id, next_review, repetitions);`
	if err := DB.Exec(dueIndex).Error; err != nil {
		log.Fatal("Failed to create due-card index", zap.Error(err))
	}

	// Review events are always read per card or per user in time order.
	eventIndex := `CREATE INDEX IF NOT EXISTS idx_review_events_card_time ON review_events (flashcard_id, created_at);`
	if err := DB.Exec(eventIndex).Error; err != nil {
		log.Fatal("Failed to create review event index", zap.Error(err))
	}
	log.Info("Custom indexes ensured successfully.")
}
