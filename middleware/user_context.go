package middleware

import (
	"github.com/gofiber/fiber/v2"
)

// UserContextMiddleware extracts the caller identity forwarded by the
// auth layer in front of this service. Session management itself lives
// upstream; here a request either carries X-User-ID or it is anonymous,
// and routes that need an identity reject the latter.
func UserContextMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := c.Get("X-User-ID")
		if userID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "missing X-User-ID header",
			})
		}

		c.Locals("user_id", userID)
		return c.Next()
	}
}
