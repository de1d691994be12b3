package middleware

import (
	"os"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ServiceAuthMiddleware validates the bearer token the frontend gateway
// attaches to every request. With COMQUEST_SERVICE_TOKEN unset the check is
// skipped, which keeps local development and tests tokenless.
func ServiceAuthMiddleware(log *zap.Logger) fiber.Handler {
	expectedToken := os.Getenv("COMQUEST_SERVICE_TOKEN")
	if expectedToken == "" {
		log.Warn("⚠️ COMQUEST_SERVICE_TOKEN not set — requests are not authenticated")
		return func(c *fiber.Ctx) error {
			return c.Next()
		}
	}

	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			log.Warn("🚫 Missing Authorization header", zap.String("path", c.Path()))
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "service authentication token missing",
			})
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		if token != expectedToken {
			log.Warn("❌ Invalid service token", zap.String("path", c.Path()))
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid service authentication token",
			})
		}

		return c.Next()
	}
}
