package db

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/opencourses/backend/internal/types"
)

const (
	demoUserEmail    = "test@demo.com"
	demoUserPassword = "Test123$"
)

// SeedDemoUser creates the demo login if it does not exist yet. Safe to run
// on every boot.
func SeedDemoUser(database *gorm.DB) error {
	var count int64
	if err := database.Model(&types.User{}).
		Where("email = ?", demoUserEmail).
		Count(&count).Error; err != nil {
		return fmt.Errorf("check demo user: %w", err)
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(demoUserPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash demo password: %w", err)
	}

	now := time.Now().UTC()
	user := &types.User{
		ID:           uuid.New(),
		Email:        demoUserEmail,
		PasswordHash: string(hash),
		FullName:     "Demo User",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := database.Create(user).Error; err != nil {
		return fmt.Errorf("create demo user: %w", err)
	}
	return nil
}
