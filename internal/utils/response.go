package utils

import (
	"github.com/gofiber/fiber/v2"
)

// ErrorResponseStruct documents the failure envelope for swagger.
type ErrorResponseStruct struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// SuccessResponse sends the standard success envelope, merging payload
// keys into {success: true, message: ...}.
func SuccessResponse(c *fiber.Ctx, status int, message string, payload fiber.Map) error {
	body := fiber.Map{"success": true}
	if message != "" {
		body["message"] = message
	}
	for k, v := range payload {
		body[k] = v
	}
	return c.Status(status).JSON(body)
}

// ErrorResponse sends the standard failure envelope.
func ErrorResponse(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"message": message,
	})
}

// ValidationErrorResponse sends a 400 with a descriptive message.
func ValidationErrorResponse(c *fiber.Ctx, message string) error {
	return ErrorResponse(c, fiber.StatusBadRequest, message)
}

// NotFoundResponse sends a 404 not found response
func NotFoundResponse(c *fiber.Ctx, message string) error {
	return ErrorResponse(c, fiber.StatusNotFound, message)
}

// UnauthorizedResponse sends a 401 with a deliberately generic message.
func UnauthorizedResponse(c *fiber.Ctx, message string) error {
	return ErrorResponse(c, fiber.StatusUnauthorized, message)
}

// ServerErrorResponse sends a 500. The detail string is included only
// outside production to avoid leaking internals.
func ServerErrorResponse(c *fiber.Ctx, message, detail string, production bool) error {
	body := fiber.Map{
		"success": false,
		"message": message,
	}
	if !production && detail != "" {
		body["error"] = detail
	}
	return c.Status(fiber.StatusInternalServerError).JSON(body)
}
