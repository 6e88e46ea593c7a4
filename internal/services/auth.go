package services

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/signingconnect/signingconnect-api/internal/models"
	"github.com/signingconnect/signingconnect-api/internal/types"
	"github.com/signingconnect/signingconnect-api/internal/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// RegisterCompanyInput is the company registration payload.
type RegisterCompanyInput struct {
	UserType    string `json:"userType"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	CompanyName string `json:"companyName"`
	ContactName string `json:"contactName"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
}

// RegisterCompany creates an active company user with a hashed password
// and a JSON profile. Returns ErrDuplicateEmail when the email is taken.
func RegisterCompany(db *gorm.DB, in RegisterCompanyInput) (*models.User, error) {
	if in.UserType != "" && in.UserType != string(types.UserCompany) {
		return nil, fmt.Errorf("%w: only company self-registration is supported", ErrValidation)
	}
	if in.Email == "" || in.Password == "" || in.CompanyName == "" || in.ContactName == "" || in.Phone == "" {
		return nil, fmt.Errorf("%w: all required fields must be provided", ErrValidation)
	}

	hash, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	profile, err := json.Marshal(map[string]interface{}{
		"companyName": in.CompanyName,
		"contactName": in.ContactName,
		"phone":       in.Phone,
		"address":     in.Address,
		"verified":    false,
		"createdAt":   time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return nil, err
	}

	user := models.User{
		Email:        in.Email,
		PasswordHash: hash,
		UserType:     types.UserCompany,
		Status:       types.UserActive,
	}
	if err := user.Profile.Scan(profile); err != nil {
		return nil, err
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.User{}).Where("email = ?", in.Email).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrDuplicateEmail
		}
		// A concurrent registration can slip past the count check and
		// land on the users.email unique index instead.
		if err := tx.Create(&user).Error; err != nil {
			if isUniqueViolation(err) {
				return ErrDuplicateEmail
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	zap.L().Info("new company registered", zap.String("email", in.Email))
	return &user, nil
}

// Login authenticates a user by the (email, userType) tuple. Missing
// user and bad password both come back as ErrInvalidCredentials so the
// response stays generic; an inactive account is disclosed separately.
func Login(db *gorm.DB, email, password string, userType types.UserType) (*models.User, error) {
	var user models.User
	err := db.Where("email = ? AND user_type = ?", email, userType).First(&user).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if user.Status != types.UserActive {
		return nil, ErrAccountInactive
	}

	if !utils.CheckPassword(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	now := time.Now()
	if err := db.Model(&user).Update("last_login", now).Error; err != nil {
		return nil, err
	}
	user.LastLogin = &now

	zap.L().Info("user logged in", zap.String("email", email), zap.String("type", string(userType)))
	return &user, nil
}

// GetActiveUser re-fetches a user by id, rejecting inactive accounts.
// Backs the token verification middleware.
func GetActiveUser(db *gorm.DB, id uint64) (*models.User, error) {
	var user models.User
	err := db.Where("id = ? AND status = ?", id, types.UserActive).First(&user).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// ForgotPassword generates and persists a reset token with a 1-hour
// expiry when the email exists. The caller always reports success to
// avoid email enumeration; the returned bool is for logging only.
func ForgotPassword(db *gorm.DB, email string) (bool, error) {
	var user models.User
	err := db.Where("email = ?", email).First(&user).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return false, nil
		}
		return false, err
	}

	token := uuid.NewString()
	expiry := time.Now().Add(time.Hour)

	err = db.Model(&user).Updates(map[string]interface{}{
		"reset_token":        token,
		"reset_token_expiry": expiry,
	}).Error
	if err != nil {
		return false, err
	}

	// Delivery stub until an email provider is wired.
	zap.L().Info("[EMAIL] password reset token issued",
		zap.String("email", email), zap.String("token", token))
	return true, nil
}

// ResetPassword validates a reset token against the stored value and
// expiry, rehashes, and clears the token.
func ResetPassword(db *gorm.DB, token, newPassword string) error {
	if token == "" || newPassword == "" {
		return fmt.Errorf("%w: reset token and new password are required", ErrValidation)
	}
	if len(newPassword) < 8 {
		return fmt.Errorf("%w: password must be at least 8 characters long", ErrValidation)
	}

	var user models.User
	err := db.Where("reset_token = ? AND reset_token_expiry > ?", token, time.Now()).First(&user).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return fmt.Errorf("%w: invalid or expired reset token", ErrValidation)
		}
		return err
	}

	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		return err
	}

	err = db.Model(&user).Updates(map[string]interface{}{
		"password_hash":      hash,
		"reset_token":        "",
		"reset_token_expiry": nil,
	}).Error
	if err != nil {
		return err
	}

	zap.L().Info("password reset completed", zap.String("email", user.Email))
	return nil
}

// ChangePassword verifies the current hash before replacing it.
func ChangePassword(db *gorm.DB, user *models.User, currentPassword, newPassword string) error {
	if currentPassword == "" || newPassword == "" {
		return fmt.Errorf("%w: current password and new password are required", ErrValidation)
	}
	if len(newPassword) < 8 {
		return fmt.Errorf("%w: new password must be at least 8 characters long", ErrValidation)
	}

	if !utils.CheckPassword(user.PasswordHash, currentPassword) {
		return ErrInvalidCredentials
	}

	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		return err
	}

	return db.Model(user).Update("password_hash", hash).Error
}

// UpdateProfile replaces the user's profile JSON document.
func UpdateProfile(db *gorm.DB, user *models.User, profile map[string]interface{}) error {
	if len(profile) == 0 {
		return fmt.Errorf("%w: profile body is required", ErrValidation)
	}

	data, err := json.Marshal(profile)
	if err != nil {
		return err
	}
	if err := user.Profile.Scan(data); err != nil {
		return err
	}
	return db.Model(user).Update("profile", user.Profile).Error
}
