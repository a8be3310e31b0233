package db

import (
	"careertalk/internal/config"
	"careertalk/internal/logger"
	"careertalk/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init() {
	dsn := config.Get().DatabaseURL

	var err error
	// TranslateError so unique violations surface as
	// gorm.ErrDuplicatedKey regardless of driver.
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		logger.L().Fatalf("Failed to connect to database: %v", err)
	}

	logger.L().Info("Database connection established")

	if err := Migrate(DB); err != nil {
		logger.L().Fatalf("Failed to migrate database: %v", err)
	}
	logger.L().Info("Database migration completed")
}

// Migrate runs AutoMigrate for every model. Shared with the sqlite
// test harness so tests exercise the same schema and constraints.
func Migrate(g *gorm.DB) error {
	return g.AutoMigrate(
		&models.User{},
		&models.Question{},
		&models.Feedback{},
		&models.QuestionVote{},
		&models.QuestionLike{},
		&models.QuestionStats{},
		&models.CouponLog{},
		&models.JournalEntry{},
	)
}
