package db

import (
	"fmt"
	"log/slog"

	"ideaforge/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// Init connects to Postgres and migrates the schema into the global handle.
func Init(dsn string) error {
	conn, err := Open(postgres.Open(dsn))
	if err != nil {
		return err
	}
	DB = conn
	slog.Info("Database connection established")
	return nil
}

// Open connects through any dialector and runs the migrations. Tests pass an in-memory sqlite dialector.
func Open(dialector gorm.Dialector) (*gorm.DB, error) {
	conn, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	if err := Migrate(conn); err != nil {
		return nil, err
	}
	return conn, nil
}

func Migrate(conn *gorm.DB) error {
	err := conn.AutoMigrate(
		&models.User{},
		&models.Idea{},
		&models.IdeaVote{},
		&models.Comment{},
		&models.CommentVote{},
		&models.CreditLog{},
		&models.Ad{},
	)
	if err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}
	slog.Info("Database migration completed")
	return nil
}
