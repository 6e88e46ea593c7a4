package services

import (
	"encoding/json"

	"github.com/signingconnect/signingconnect-api/internal/models"
	"github.com/signingconnect/signingconnect-api/internal/types"
	"github.com/signingconnect/signingconnect-api/internal/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// EnsureAdminAccount creates the bootstrap admin when none exists with
// the given email. No-op when email or password is empty, or when the
// account is already present.
func EnsureAdminAccount(db *gorm.DB, email, password string) error {
	if email == "" || password == "" {
		return nil
	}

	var count int64
	if err := db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return err
	}

	profile, err := json.Marshal(map[string]interface{}{
		"name": "Platform Administrator",
		"role": "admin",
	})
	if err != nil {
		return err
	}

	admin := models.User{
		Email:        email,
		PasswordHash: hash,
		UserType:     types.UserAdmin,
		Status:       types.UserActive,
	}
	if err := admin.Profile.Scan(profile); err != nil {
		return err
	}

	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	zap.L().Info("bootstrap admin account created", zap.String("email", email))
	return nil
}
