package database

import (
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt"

	"github.com/georef/geo-reference-api/internal/config"
	"github.com/georef/geo-reference-api/internal/constants"
	"github.com/georef/geo-reference-api/internal/models"
)

// Seed creates the bootstrap admin account when the users table is empty,
// so the authenticated write surface is reachable on a fresh database.
// Seeded data carries no author: a nil author marks system-seeded records.
func Seed(cfg *config.Config) error {
	var count int64
	if err := DB.Model(&models.User{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count users: %w", err)
	}
	if count > 0 {
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin := &models.User{
		Username:     cfg.AdminUsername,
		PasswordHash: string(hashed),
		FullName:     "Administrator",
		Phone:        "+0 000 000 000",
		Email:        "admin@localhost",
		Roles:        models.Roles{constants.RoleAdmin},
		IsActive:     true,
	}
	if err := DB.Create(admin).Error; err != nil {
		return fmt.Errorf("failed to seed admin user: %w", err)
	}

	log.Printf("Seeded admin user %q", admin.Username)
	return nil
}
