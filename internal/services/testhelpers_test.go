package services

import (
	"testing"

	"github.com/lexcontract/lexcontract-api/internal/config"
	"github.com/lexcontract/lexcontract-api/internal/database"
	"github.com/lexcontract/lexcontract-api/internal/models"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.Role{},
		&models.User{},
		&models.Client{},
		&models.Contract{},
		&models.Payment{},
	)
	require.NoError(t, err)

	database.SetDB(db)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return db
}

func newTestConfig() *config.Config {
	return &config.Config{
		JWTSecret:          "test-secret",
		TokenExpireMinutes: 60,
		ResetURLBase:       "http://localhost:5173/reset-password",
	}
}

// stubNotifier records notification calls instead of sending mail.
type stubNotifier struct {
	welcomes   []string
	resetLinks []string
}

func (s *stubNotifier) SendWelcome(email, fullName string) {
	s.welcomes = append(s.welcomes, email)
}

func (s *stubNotifier) SendPasswordReset(email, fullName, resetLink string) {
	s.resetLinks = append(s.resetLinks, resetLink)
}

func mustHash(t *testing.T, password string) string {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	require.NoError(t, err)
	return string(hashed)
}
