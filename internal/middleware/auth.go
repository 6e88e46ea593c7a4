package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/signingconnect/signingconnect-api/internal/services"
	"github.com/signingconnect/signingconnect-api/internal/types"
	"github.com/signingconnect/signingconnect-api/internal/utils"
	"gorm.io/gorm"
)

// Protected validates the Bearer token and loads the active account
// into c.Locals("user"). The account is re-fetched on every request so
// suspended users lose access immediately, not at token expiry.
func Protected(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(header, "Bearer ") {
			return &types.CustomError{
				Code:    fiber.StatusUnauthorized,
				Message: "Authentication token required",
				Type:    "unauthorized",
			}
		}

		claims, err := utils.ParseToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			return &types.CustomError{
				Code:    fiber.StatusUnauthorized,
				Message: "Invalid or expired token",
				Type:    "unauthorized",
			}
		}

		user, err := services.GetActiveUser(db, claims.UserID)
		if err != nil {
			return &types.CustomError{
				Code:    fiber.StatusUnauthorized,
				Message: "Account not found or inactive",
				Type:    "unauthorized",
			}
		}

		c.Locals("user", user)
		return c.Next()
	}
}

// RequireAdmin restricts a route to admin accounts
func RequireAdmin() fiber.Handler {
	return requireType("admin")
}

// RequireCompany restricts a route to company accounts
func RequireCompany() fiber.Handler {
	return requireType("company")
}

// RequireAgent restricts a route to agent accounts
func RequireAgent() fiber.Handler {
	return requireType("agent")
}

// requireType performs the role check against the loaded account
func requireType(userType string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := utils.CurrentUser(c)
		if user == nil {
			return &types.CustomError{
				Code:    fiber.StatusUnauthorized,
				Message: "Authentication token required",
				Type:    "unauthorized",
			}
		}
		if string(user.UserType) != userType {
			return &types.CustomError{
				Code:    fiber.StatusForbidden,
				Message: "Insufficient permissions",
				Type:    "forbidden",
			}
		}
		return c.Next()
	}
}
