package database

import (
	"fmt"

	"trivia-coffee-backend/internal/config"
	"trivia-coffee-backend/internal/logger"
	"trivia-coffee-backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// DefaultCategories is the seed set the trivia frontend expects, in id order.
var DefaultCategories = []string{"Science", "Art", "Geography", "History", "Entertainment", "Sports"}

func Connect(cfg *config.Config, log *logger.Logger) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case "sqlite":
		dialector = sqlite.Open(cfg.SQLitePath)
	case "postgres", "":
		dsn := fmt.Sprintf(
			"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBSSLMode,
		)
		dialector = postgres.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", cfg.DBDriver, err)
	}

	log.Info("database connected", "driver", cfg.DBDriver)
	return db, nil
}

// OpenMemory opens a private in-memory sqlite database. The pool is pinned
// to one connection since every sqlite memory connection is its own database.
func OpenMemory() (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	return db, nil
}

func MigrateTrivia(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.Category{}, &models.Question{}); err != nil {
		return fmt.Errorf("migrate trivia: %w", err)
	}
	return nil
}

// SeedCategories inserts DefaultCategories when the table is empty.
func SeedCategories(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Category{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	cats := make([]models.Category, 0, len(DefaultCategories))
	for _, label := range DefaultCategories {
		cats = append(cats, models.Category{Type: label})
	}
	return db.Create(&cats).Error
}

// MigrateCoffee creates the drinks table. With reset, the table is dropped
// first and a single sample drink is inserted.
func MigrateCoffee(db *gorm.DB, reset bool) error {
	if reset {
		if err := db.Migrator().DropTable(&models.Drink{}); err != nil {
			return fmt.Errorf("drop drinks: %w", err)
		}
	}
	if err := db.AutoMigrate(&models.Drink{}); err != nil {
		return fmt.Errorf("migrate coffee: %w", err)
	}
	if reset {
		water := models.Drink{
			Title:  "water",
			Recipe: []models.Ingredient{{Name: "water", Color: "blue", Parts: 1}},
		}
		if err := db.Create(&water).Error; err != nil {
			return fmt.Errorf("seed drinks: %w", err)
		}
	}
	return nil
}
