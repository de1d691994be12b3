package handlers

import (
	"comquest-service/models"
	"comquest-service/services"

	"github.com/gofiber/fiber/v2"
)

// SetupLeaderboardRoutes wires the ranked projection plus the static rank
// and badge tables.
func SetupLeaderboardRoutes(app *fiber.App, progressionService *services.ProgressionService) {
	app.Get("/leaderboard", func(c *fiber.Ctx) error {
		return c.JSON(progressionService.Leaderboard())
	})

	app.Get("/ranks", func(c *fiber.Ctx) error {
		return c.JSON(models.Ranks)
	})

	app.Get("/badges", func(c *fiber.Ctx) error {
		return c.JSON(models.BadgeCatalog)
	})
}
