package stock

import (
	"errors"
	"strconv"

	"kirana-backend/internal/auth"
	"kirana-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type AdjustRequest struct {
	ProductCode string             `json:"product_code"`
	Action      models.StockAction `json:"action"`
	Quantity    int                `json:"quantity"`
	Reason      string             `json:"reason"`
}

// POST /api/stock/adjust
func AdjustHandler(rec *Reconciler) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body AdjustRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		if body.ProductCode == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Product code is required")
		}

		movement, err := rec.Adjust(c.Context(), body.ProductCode, body.Action, body.Quantity, body.Reason, auth.UserID(c))
		switch {
		case errors.Is(err, ErrInvalidQuantity):
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		case errors.Is(err, ErrRemoveExceedsStock):
			return fiber.NewError(fiber.StatusConflict, err.Error())
		case errors.Is(err, ErrUnknownProduct):
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		case err != nil:
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to adjust stock")
		}

		return c.Status(fiber.StatusCreated).JSON(movement)
	}
}

// GET /api/stock/movements
func HistoryHandler(rec *Reconciler) fiber.Handler {
	return func(c *fiber.Ctx) error {
		movements, err := rec.History(c.Context())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to load stock movements")
		}
		if movements == nil {
			movements = []models.StockMovement{}
		}
		return c.JSON(movements)
	}
}

// GET /api/stock/alerts?threshold=10
func AlertsHandler(rec *Reconciler) fiber.Handler {
	return func(c *fiber.Ctx) error {
		threshold := LowStockThreshold
		if raw := c.Query("threshold"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 0 {
				return fiber.NewError(fiber.StatusBadRequest, "Threshold must be a non-negative number")
			}
			threshold = n
		}

		low := rec.LowStock(threshold)
		outOfStock := 0
		for _, p := range low {
			if p.Quantity == 0 {
				outOfStock++
			}
		}
		if low == nil {
			low = []models.Product{}
		}

		return c.JSON(fiber.Map{
			"threshold":    threshold,
			"low_stock":    low,
			"total_low":    len(low),
			"out_of_stock": outOfStock,
		})
	}
}
