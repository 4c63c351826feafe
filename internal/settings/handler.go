package settings

import (
	"kirana-backend/internal/auth"
	"kirana-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type UpdateSettingsRequest struct {
	DefaultGST *float64                `json:"default_gst"`
	Business   *models.BusinessDetails `json:"business"`
	Bill       *models.BillSettings    `json:"bill_settings"`
	Report     *models.ReportSettings  `json:"report_settings"`
}

// GET /api/settings
func GetHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		settings, err := svc.Get(c.Context(), auth.UserID(c))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to load settings")
		}
		return c.JSON(settings)
	}
}

// PUT /api/settings
//
// Sections are replaced as a whole; omitted sections keep their stored value.
func UpdateHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body UpdateSettingsRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		if body.DefaultGST != nil && *body.DefaultGST < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Default GST rate cannot be negative")
		}

		current, err := svc.Get(c.Context(), auth.UserID(c))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to load settings")
		}

		if body.DefaultGST != nil {
			current.DefaultGST = *body.DefaultGST
		}
		if body.Business != nil {
			current.Business = *body.Business
		}
		if body.Bill != nil {
			current.Bill = *body.Bill
		}
		if body.Report != nil {
			current.Report = *body.Report
		}

		if err := svc.Update(c.Context(), current); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to save settings")
		}
		return c.JSON(current)
	}
}
