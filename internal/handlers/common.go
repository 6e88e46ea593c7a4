package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/signingconnect/signingconnect-api/internal/services"
	"github.com/signingconnect/signingconnect-api/internal/types"
	"github.com/signingconnect/signingconnect-api/internal/utils"
	"go.uber.org/zap"
)

// ErrorHandler renders errors that escape the handlers, including the
// typed errors the auth middleware returns.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"

	var ce *types.CustomError
	if errors.As(err, &ce) {
		code = ce.Code
		message = ce.Message
	} else if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"message": message,
	})
}

// handleServiceError maps service sentinels onto HTTP responses.
// Anything unrecognized is a 500 with the detail suppressed in
// production.
func handleServiceError(c *fiber.Ctx, err error, production bool) error {
	switch {
	case errors.Is(err, services.ErrValidation):
		return utils.ValidationErrorResponse(c, err.Error())
	case errors.Is(err, services.ErrInvalidStatus):
		return utils.ValidationErrorResponse(c, err.Error())
	case errors.Is(err, services.ErrNotFound):
		return utils.NotFoundResponse(c, "Resource not found")
	case errors.Is(err, services.ErrDuplicateEmail):
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "An account with this email already exists")
	case errors.Is(err, services.ErrConflict):
		return utils.ErrorResponse(c, fiber.StatusConflict, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		return utils.UnauthorizedResponse(c, "Invalid email or password")
	case errors.Is(err, services.ErrAccountInactive):
		return utils.ErrorResponse(c, fiber.StatusForbidden, "Account is not active")
	case errors.Is(err, services.ErrForbidden):
		return utils.ErrorResponse(c, fiber.StatusForbidden, "Insufficient permissions")
	}

	zap.L().Error("unhandled service error",
		zap.String("path", c.Path()),
		zap.Error(err))
	return utils.ServerErrorResponse(c, "Internal server error", err.Error(), production)
}

// parseIDParam reads a numeric path parameter.
func parseIDParam(c *fiber.Ctx, name string) (uint64, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 64)
	if err != nil || id == 0 {
		return 0, errors.New("invalid id")
	}
	return id, nil
}

// parsePagination reads ?page and ?limit with defaults.
func parsePagination(c *fiber.Ctx) (int, int) {
	return c.QueryInt("page", 1), c.QueryInt("limit", 20)
}
