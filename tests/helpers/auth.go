package helpers

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/signingconnect/signingconnect-api/internal/models"
	"github.com/signingconnect/signingconnect-api/internal/types"
	"github.com/signingconnect/signingconnect-api/internal/utils"
	"gorm.io/gorm"
)

// TestPassword is the known-good password all seeded accounts share.
const TestPassword = "test-password-123"

// CreateTestUser inserts an active account of the given type and
// returns it with TestPassword as its credential.
func CreateTestUser(t *testing.T, db *gorm.DB, email string, userType types.UserType) *models.User {
	t.Helper()

	hash, err := utils.HashPassword(TestPassword)
	if err != nil {
		t.Fatalf("Failed to hash test password: %v", err)
	}

	profile, _ := json.Marshal(map[string]interface{}{"name": "Test " + string(userType)})

	user := &models.User{
		Email:        email,
		PasswordHash: hash,
		UserType:     userType,
		Status:       types.UserActive,
	}
	if err := user.Profile.Scan(profile); err != nil {
		t.Fatalf("Failed to build profile: %v", err)
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("Failed to create test user %s: %v", email, err)
	}
	return user
}

// BearerToken issues a short-lived token for a seeded account.
func BearerToken(t *testing.T, user *models.User) string {
	t.Helper()
	token, err := utils.GenerateToken(user.ID, user.Email, string(user.UserType), time.Hour)
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}
	return "Bearer " + token
}
