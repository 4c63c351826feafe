package docgen

import (
	"kirana-backend/internal/auth"
	"kirana-backend/internal/catalog"
	"kirana-backend/internal/database"
	"kirana-backend/internal/models"
	"kirana-backend/internal/settings"

	"github.com/gofiber/fiber/v2"
)

type LabelsRequest struct {
	ProductCodes []string `json:"product_codes"`
	Copies       int      `json:"copies"`
}

// GET /api/documents/invoice/:billId
func InvoiceHandler(store database.Store, cfg *settings.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var bill models.Bill
		if err := store.Get(c.Context(), database.Bills, c.Params("billId"), &bill); err != nil {
			if database.IsNotFound(err) {
				return fiber.NewError(fiber.StatusNotFound, "Bill not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to load bill")
		}

		appSettings, err := cfg.Get(c.Context(), auth.UserID(c))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to load settings")
		}

		data, err := Invoice(bill, appSettings)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to render invoice")
		}

		c.Set(fiber.HeaderContentType, "application/pdf")
		c.Set(fiber.HeaderContentDisposition, `inline; filename="`+bill.BillID+`.pdf"`)
		return c.Send(data)
	}
}

// POST /api/documents/labels
func LabelsHandler(cat *catalog.Catalog) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body LabelsRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		if len(body.ProductCodes) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "At least one product code is required")
		}

		products := make([]models.Product, 0, len(body.ProductCodes))
		for _, code := range body.ProductCodes {
			p, ok := cat.FindByCode(code)
			if !ok {
				return fiber.NewError(fiber.StatusNotFound, "Product not found: "+code)
			}
			products = append(products, p)
		}

		data, err := Labels(products, body.Copies)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to render labels")
		}

		c.Set(fiber.HeaderContentType, "application/pdf")
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="labels.pdf"`)
		return c.Send(data)
	}
}

// GET /api/documents/signboard/:code
func SignboardHandler(cat *catalog.Catalog, cfg *settings.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, ok := cat.FindByCode(c.Params("code"))
		if !ok {
			return fiber.NewError(fiber.StatusNotFound, "Product not found")
		}

		appSettings, err := cfg.Get(c.Context(), auth.UserID(c))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to load settings")
		}

		data, err := Signboard(p, appSettings.Business)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to render signboard")
		}

		c.Set(fiber.HeaderContentType, "application/pdf")
		c.Set(fiber.HeaderContentDisposition, `inline; filename="signboard-`+p.Code+`.pdf"`)
		return c.Send(data)
	}
}
