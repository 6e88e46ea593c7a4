package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/signingconnect/signingconnect-api/internal/config"
	"github.com/signingconnect/signingconnect-api/internal/services"
	"github.com/signingconnect/signingconnect-api/internal/utils"
	"gorm.io/gorm"
)

// ApplicationHandler handles the public agent application routes
type ApplicationHandler struct {
	DB  *gorm.DB
	Cfg *config.Config
}

// Submit handles POST /api/applications/submit
// @Summary Submit an agent application
// @Description Accept a completed intake wizard payload and return the tracking id
// @Tags Applications
// @Accept json
// @Produce json
// @Param body body services.SubmitApplicationInput true "Application payload"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /applications/submit [post]
func (h *ApplicationHandler) Submit(c *fiber.Ctx) error {
	var in services.SubmitApplicationInput
	if err := c.BodyParser(&in); err != nil {
		return utils.ValidationErrorResponse(c, "Invalid request body")
	}

	applicationID, err := services.SubmitApplication(h.DB, in)
	if err != nil {
		return handleServiceError(c, err, h.Cfg.IsProduction())
	}

	services.SendApplicationConfirmation(in.PersonalInfo.Email, applicationID)

	return utils.SuccessResponse(c, fiber.StatusCreated, "Application submitted successfully", fiber.Map{
		"applicationId": applicationID,
	})
}

// Status handles GET /api/applications/status/:applicationId
// @Summary Check application status
// @Description Public status lookup by tracking id, no authentication required
// @Tags Applications
// @Produce json
// @Param applicationId path string true "Tracking id (SC followed by 8 digits)"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /applications/status/{applicationId} [get]
func (h *ApplicationHandler) Status(c *fiber.Ctx) error {
	applicationID := c.Params("applicationId")

	status, err := services.GetApplicationStatus(h.DB, applicationID)
	if err != nil {
		return handleServiceError(c, err, h.Cfg.IsProduction())
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "", fiber.Map{
		"application": status,
	})
}
