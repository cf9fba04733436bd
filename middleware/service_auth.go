package middleware

import (
	"log"
	"os"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// ServiceAuthMiddleware validates the shared bearer token used by the
// commissioner console and the external result-sync job. Routes behind
// it mutate league state; everything else stays public.
func ServiceAuthMiddleware() fiber.Handler {
	expectedToken := os.Getenv("LEAGUE_SERVICE_TOKEN")
	if expectedToken == "" {
		log.Fatal("LEAGUE_SERVICE_TOKEN is not set, commissioner and sync routes cannot authenticate")
	}

	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			log.Printf("[SERVICE_AUTH] Missing Authorization header for %s", c.Path())
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "service authentication token missing",
			})
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		if token != expectedToken {
			log.Printf("[SERVICE_AUTH] Invalid token for %s", c.Path())
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid service authentication token",
			})
		}

		return c.Next()
	}
}
