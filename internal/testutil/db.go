// Package testutil wires an in-memory database for package tests.
package testutil

import (
	"testing"

	"ideaforge/internal/db"
	"ideaforge/internal/models"
	"ideaforge/internal/utils"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// SetupDB swaps db.DB for a fresh in-memory sqlite database for the duration of the test.
func SetupDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := db.Open(sqlite.Open(":memory:"))
	require.NoError(t, err)

	// every connection to ":memory:" is a separate database
	sqlDB, err := conn.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	prev := db.DB
	db.DB = conn
	t.Cleanup(func() {
		db.DB = prev
		_ = sqlDB.Close()
	})
	return conn
}

// CreateUser inserts a user with a hashed "password123" password.
func CreateUser(t *testing.T, name string, credits int) *models.User {
	t.Helper()

	hash, err := utils.HashPassword("password123")
	require.NoError(t, err)

	user := &models.User{
		Name:     name,
		Email:    name + "@example.com",
		Password: hash,
		Credits:  credits,
	}
	require.NoError(t, db.DB.Create(user).Error)
	return user
}

func CreateIdea(t *testing.T, authorID uint, title string) *models.Idea {
	t.Helper()

	idea := &models.Idea{
		Title:       title,
		Description: "An idea worth building",
		Tags:        []string{"go", "web", "tools"},
		AuthorID:    authorID,
	}
	require.NoError(t, db.DB.Create(idea).Error)
	return idea
}

func Reload[T any](t *testing.T, id uint) *T {
	t.Helper()

	var out T
	require.NoError(t, db.DB.First(&out, id).Error)
	return &out
}
