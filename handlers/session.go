package handlers

import (
	"comquest-service/models"
	"comquest-service/services"

	"github.com/gofiber/fiber/v2"
)

// SetupSessionRoutes wires login/logout and the profile read surface.
func SetupSessionRoutes(app *fiber.App, progressionService *services.ProgressionService) {
	app.Post("/session/login", func(c *fiber.Ctx) error {
		type Req struct {
			Username string `json:"username"`
		}
		var req Req
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid JSON",
				"cause": err.Error(),
			})
		}

		user, err := progressionService.Login(req.Username)
		if err != nil {
			return errorJSON(c, "login failed", err)
		}
		return c.JSON(user)
	})

	app.Post("/session/logout", func(c *fiber.Ctx) error {
		if err := progressionService.Logout(); err != nil {
			return errorJSON(c, "logout failed", err)
		}
		return c.JSON(fiber.Map{"message": "logged out"})
	})

	app.Get("/profile", func(c *fiber.Ctx) error {
		user, ok := progressionService.CurrentUser()
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "no active session",
			})
		}

		// Only this user's slice of the append-only history.
		completions := make([]models.CompletedDeed, 0)
		for _, cd := range progressionService.CompletedDeeds() {
			if cd.UserID == user.ID {
				completions = append(completions, cd)
			}
		}

		return c.JSON(fiber.Map{
			"user":        user,
			"rank":        models.CalculateRank(user.Points),
			"completions": completions,
		})
	})
}
