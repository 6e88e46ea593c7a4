package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/signingconnect/signingconnect-api/internal/utils"
)

// GlobalLimiter caps any single client at 100 requests per 15 minutes
// across the whole API.
func GlobalLimiter() fiber.Handler {
	return newLimiter(100, 15*time.Minute, "Too many requests, please try again later")
}

// AuthLimiter throttles credential endpoints to 5 attempts per 15
// minutes per client to slow brute forcing.
func AuthLimiter() fiber.Handler {
	return newLimiter(5, 15*time.Minute, "Too many authentication attempts, please try again later")
}

// ApplicationLimiter caps application submissions at 3 per hour per
// client.
func ApplicationLimiter() fiber.Handler {
	return newLimiter(3, time.Hour, "Too many applications submitted, please try again later")
}

func newLimiter(max int, window time.Duration, message string) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: window,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return utils.ErrorResponse(c, fiber.StatusTooManyRequests, message)
		},
	})
}
