package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/signingconnect/signingconnect-api/internal/config"
	"github.com/signingconnect/signingconnect-api/internal/services"
	"gorm.io/gorm"
)

// HealthHandler handles the liveness endpoint
type HealthHandler struct {
	DB  *gorm.DB
	Cfg *config.Config
}

// Check handles GET /api/health
// @Summary Service health
// @Description Reports API and database health; 503 when the database is unreachable
// @Tags Health
// @Produce json
// @Success 200 {object} services.HealthStatus
// @Failure 503 {object} services.HealthStatus
// @Router /health [get]
func (h *HealthHandler) Check(c *fiber.Ctx) error {
	status := services.CheckHealth(h.Cfg, h.DB)
	code := fiber.StatusOK
	if status.Status != "healthy" {
		code = fiber.StatusServiceUnavailable
	}
	return c.Status(code).JSON(status)
}
