package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/signingconnect/signingconnect-api/internal/config"
	"github.com/signingconnect/signingconnect-api/internal/services"
	"github.com/signingconnect/signingconnect-api/internal/utils"
	"gorm.io/gorm"
)

// NotificationHandler handles in-app notification routes
type NotificationHandler struct {
	DB  *gorm.DB
	Cfg *config.Config
}

// List handles GET /api/notifications
// @Summary List notifications for the authenticated account
// @Tags Notifications
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Maximum rows" default(50)
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponseStruct
// @Router /notifications [get]
func (h *NotificationHandler) List(c *fiber.Ctx) error {
	user := utils.CurrentUser(c)

	notifications, err := services.ListNotifications(h.DB, user.ID, c.QueryInt("limit", 50))
	if err != nil {
		return handleServiceError(c, err, h.Cfg.IsProduction())
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "", fiber.Map{
		"notifications": notifications,
	})
}

// MarkRead handles PATCH /api/notifications/:id/read
// @Summary Mark a notification as read
// @Tags Notifications
// @Produce json
// @Security BearerAuth
// @Param id path int true "Notification id"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /notifications/{id}/read [patch]
func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.ValidationErrorResponse(c, "Invalid notification id")
	}

	user := utils.CurrentUser(c)
	if err := services.MarkNotificationRead(h.DB, user.ID, id); err != nil {
		return handleServiceError(c, err, h.Cfg.IsProduction())
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Notification marked as read", nil)
}
