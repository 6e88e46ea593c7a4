package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/signingconnect/signingconnect-api/internal/config"
	"github.com/signingconnect/signingconnect-api/internal/services"
	"github.com/signingconnect/signingconnect-api/internal/types"
	"github.com/signingconnect/signingconnect-api/internal/utils"
	"gorm.io/gorm"
)

// AuthHandler handles authentication and account routes
type AuthHandler struct {
	DB  *gorm.DB
	Cfg *config.Config
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	UserType string `json:"userType"`
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

type resetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"newPassword"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

func (h *AuthHandler) issueToken(userID uint64, email, userType string) (string, error) {
	ttl := time.Duration(h.Cfg.TokenTTLHours) * time.Hour
	return utils.GenerateToken(userID, email, userType, ttl)
}

// Register handles POST /api/auth/register
// @Summary Register a company account
// @Description Create a company account and return a signed session token
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body services.RegisterCompanyInput true "Company registration"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in services.RegisterCompanyInput
	if err := c.BodyParser(&in); err != nil {
		return utils.ValidationErrorResponse(c, "Invalid request body")
	}

	user, err := services.RegisterCompany(h.DB, in)
	if err != nil {
		return handleServiceError(c, err, h.Cfg.IsProduction())
	}

	token, err := h.issueToken(user.ID, user.Email, string(user.UserType))
	if err != nil {
		return handleServiceError(c, err, h.Cfg.IsProduction())
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, "Company registered successfully", fiber.Map{
		"token": token,
		"user":  user,
	})
}

// Login handles POST /api/auth/login
// @Summary Log in
// @Description Authenticate by email, password and account type
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body loginRequest true "Credentials"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in loginRequest
	if err := c.BodyParser(&in); err != nil {
		return utils.ValidationErrorResponse(c, "Invalid request body")
	}
	if in.Email == "" || in.Password == "" || in.UserType == "" {
		return utils.ValidationErrorResponse(c, "email, password and userType are required")
	}
	userType := types.UserType(in.UserType)
	if !userType.Valid() {
		return utils.ValidationErrorResponse(c, "userType must be agent, company or admin")
	}

	user, err := services.Login(h.DB, in.Email, in.Password, userType)
	if err != nil {
		return handleServiceError(c, err, h.Cfg.IsProduction())
	}

	token, err := h.issueToken(user.ID, user.Email, string(user.UserType))
	if err != nil {
		return handleServiceError(c, err, h.Cfg.IsProduction())
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Login successful", fiber.Map{
		"token": token,
		"user":  user,
	})
}

// Verify handles GET /api/auth/verify
// @Summary Verify token
// @Description Confirm the bearer token maps to an active account
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponseStruct
// @Router /auth/verify [get]
func (h *AuthHandler) Verify(c *fiber.Ctx) error {
	user := utils.CurrentUser(c)
	return utils.SuccessResponse(c, fiber.StatusOK, "", fiber.Map{
		"user": user,
	})
}

// ForgotPassword handles POST /api/auth/forgot-password
// @Summary Request a password reset
// @Description Always responds success to avoid email enumeration
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body forgotPasswordRequest true "Account email"
// @Success 200 {object} map[string]interface{}
// @Router /auth/forgot-password [post]
func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	var in forgotPasswordRequest
	if err := c.BodyParser(&in); err != nil || in.Email == "" {
		return utils.ValidationErrorResponse(c, "email is required")
	}

	if _, err := services.ForgotPassword(h.DB, in.Email); err != nil {
		return handleServiceError(c, err, h.Cfg.IsProduction())
	}

	return utils.SuccessResponse(c, fiber.StatusOK,
		"If an account exists for this email, reset instructions have been sent", nil)
}

// ResetPassword handles POST /api/auth/reset-password
// @Summary Reset password with a token
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body resetPasswordRequest true "Reset token and new password"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /auth/reset-password [post]
func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var in resetPasswordRequest
	if err := c.BodyParser(&in); err != nil {
		return utils.ValidationErrorResponse(c, "Invalid request body")
	}

	if err := services.ResetPassword(h.DB, in.Token, in.NewPassword); err != nil {
		return handleServiceError(c, err, h.Cfg.IsProduction())
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Password reset successfully", nil)
}

// GetProfile handles GET /api/auth/profile
// @Summary Get the authenticated account
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponseStruct
// @Router /auth/profile [get]
func (h *AuthHandler) GetProfile(c *fiber.Ctx) error {
	user := utils.CurrentUser(c)
	return utils.SuccessResponse(c, fiber.StatusOK, "", fiber.Map{
		"user": user,
	})
}

// UpdateProfile handles PATCH /api/auth/profile
// @Summary Update the profile document
// @Tags Auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body map[string]interface{} true "Profile fields"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /auth/profile [patch]
func (h *AuthHandler) UpdateProfile(c *fiber.Ctx) error {
	user := utils.CurrentUser(c)

	var profile map[string]interface{}
	if err := c.BodyParser(&profile); err != nil {
		return utils.ValidationErrorResponse(c, "Invalid request body")
	}

	if err := services.UpdateProfile(h.DB, user, profile); err != nil {
		return handleServiceError(c, err, h.Cfg.IsProduction())
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Profile updated successfully", fiber.Map{
		"user": user,
	})
}

// ChangePassword handles POST /api/auth/change-password
// @Summary Change password
// @Tags Auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body changePasswordRequest true "Current and new password"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Router /auth/change-password [post]
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	user := utils.CurrentUser(c)

	var in changePasswordRequest
	if err := c.BodyParser(&in); err != nil {
		return utils.ValidationErrorResponse(c, "Invalid request body")
	}

	if err := services.ChangePassword(h.DB, user, in.CurrentPassword, in.NewPassword); err != nil {
		return handleServiceError(c, err, h.Cfg.IsProduction())
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Password changed successfully", nil)
}
