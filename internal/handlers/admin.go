package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/signingconnect/signingconnect-api/internal/config"
	"github.com/signingconnect/signingconnect-api/internal/services"
	"github.com/signingconnect/signingconnect-api/internal/types"
	"github.com/signingconnect/signingconnect-api/internal/utils"
	"gorm.io/gorm"
)

// AdminHandler handles the application review routes
type AdminHandler struct {
	DB  *gorm.DB
	Cfg *config.Config
}

type updateStatusRequest struct {
	Status          string `json:"status"`
	RejectionReason string `json:"rejectionReason"`
	Notes           string `json:"notes"`
}

// ListApplications handles GET /api/admin/applications
// @Summary List agent applications
// @Description Paginated review queue, newest first, optionally filtered by status
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status (pending, under_review, approved, rejected)"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(20)
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Router /admin/applications [get]
func (h *AdminHandler) ListApplications(c *fiber.Ctx) error {
	page, limit := parsePagination(c)
	status := c.Query("status")

	applications, pagination, err := services.ListApplications(h.DB, status, page, limit)
	if err != nil {
		return handleServiceError(c, err, h.Cfg.IsProduction())
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "", fiber.Map{
		"applications": applications,
		"pagination":   pagination,
	})
}

// GetApplication handles GET /api/admin/applications/:id
// @Summary Get full application detail
// @Description Complete application record with fees in major currency units
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Application row id"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /admin/applications/{id} [get]
func (h *AdminHandler) GetApplication(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.ValidationErrorResponse(c, "Invalid application id")
	}

	detail, err := services.GetApplicationDetail(h.DB, id)
	if err != nil {
		return handleServiceError(c, err, h.Cfg.IsProduction())
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "", fiber.Map{
		"application": detail,
	})
}

// UpdateApplicationStatus handles PATCH /api/admin/applications/:id/status
// @Summary Review an application
// @Description Move an application through the review pipeline; approval provisions the agent account
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Application row id"
// @Param body body updateStatusRequest true "New status with optional reason and notes"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /admin/applications/{id}/status [patch]
func (h *AdminHandler) UpdateApplicationStatus(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.ValidationErrorResponse(c, "Invalid application id")
	}

	var in updateStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return utils.ValidationErrorResponse(c, "Invalid request body")
	}

	reviewer := utils.CurrentUser(c)
	app, err := services.UpdateApplicationStatus(h.DB, id,
		types.ApplicationStatus(in.Status), in.RejectionReason, in.Notes, reviewer)
	if err != nil {
		return handleServiceError(c, err, h.Cfg.IsProduction())
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Application status updated", fiber.Map{
		"application": fiber.Map{
			"id":     app.ApplicationID,
			"status": app.Status,
		},
	})
}
