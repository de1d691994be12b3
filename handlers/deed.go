package handlers

import (
	"regexp"

	"comquest-service/models"
	"comquest-service/services"
	"comquest-service/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Location codes are postal-code-shaped: 5 digits with an optional +4.
var zipCodePattern = regexp.MustCompile(`^\d{5}(-\d{4})?$`)

// SetupDeedRoutes wires the location/catalog surface and the two mutating
// deed operations.
func SetupDeedRoutes(app *fiber.App, progressionService *services.ProgressionService, log *zap.Logger) {
	app.Post("/location", func(c *fiber.Ctx) error {
		type Req struct {
			ZipCode string `json:"zip_code"`
		}
		var req Req
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid JSON",
				"cause": err.Error(),
			})
		}
		if !zipCodePattern.MatchString(req.ZipCode) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "zip code must be 5 digits, optionally followed by -XXXX",
			})
		}

		deeds, err := progressionService.SetLocation(req.ZipCode)
		if err != nil {
			return errorJSON(c, "failed to set location", err)
		}
		return c.JSON(fiber.Map{
			"zip_code": req.ZipCode,
			"deeds":    deeds,
		})
	})

	app.Get("/location", func(c *fiber.Ctx) error {
		zipCode, ok := progressionService.ZipCode()
		if !ok {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "no location selected",
			})
		}
		return c.JSON(fiber.Map{"zip_code": zipCode})
	})

	app.Get("/deeds", func(c *fiber.Ctx) error {
		return c.JSON(progressionService.Deeds())
	})

	app.Get("/deeds/:id", func(c *fiber.Ctx) error {
		deed, err := progressionService.DeedByID(c.Params("id"))
		if err != nil {
			return errorJSON(c, "deed not found", err)
		}
		return c.JSON(deed)
	})

	app.Post("/deeds", func(c *fiber.Ctx) error {
		var input models.Deed
		if err := c.BodyParser(&input); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid JSON",
				"cause": err.Error(),
			})
		}

		deed, err := progressionService.CreateDeed(input)
		if err != nil {
			return errorJSON(c, "failed to create deed", err)
		}
		return c.Status(fiber.StatusCreated).JSON(deed)
	})

	app.Post("/deeds/:id/complete", func(c *fiber.Ctx) error {
		deedID := c.Params("id")

		// Proof arrives either as a multipart photo upload or as an opaque
		// photo_url (e.g. a data URL from the web client).
		var photoURL string
		if fileHeader, err := c.FormFile("photo"); err == nil && fileHeader != nil {
			url, err := utils.StoreProofPhoto(fileHeader)
			if err != nil {
				log.Error("❌ Photo upload failed", zap.Error(err))
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error": "failed to store photo",
					"cause": err.Error(),
				})
			}
			photoURL = url
		} else {
			type Req struct {
				PhotoURL string `json:"photo_url"`
			}
			var req Req
			if err := c.BodyParser(&req); err == nil {
				photoURL = req.PhotoURL
			}
		}
		if photoURL == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "photo proof is required",
			})
		}

		completion, user, err := progressionService.CompleteDeed(deedID, photoURL)
		if err != nil {
			return errorJSON(c, "failed to complete deed", err)
		}
		return c.JSON(fiber.Map{
			"completion": completion,
			"user":       user,
		})
	})

	app.Get("/completions", func(c *fiber.Ctx) error {
		return c.JSON(progressionService.CompletedDeeds())
	})
}
