package report

import (
	"time"

	"kirana-backend/internal/models"
	"kirana-backend/internal/stock"

	"github.com/gofiber/fiber/v2"
)

const dateLayout = "2006-01-02"

// parseRange reads from/to query params; the default window is the last 30
// days. The to date is extended to the end of its day so a single-day range
// covers the whole day.
func parseRange(c *fiber.Ctx) (time.Time, time.Time, error) {
	now := time.Now()
	from := now.AddDate(0, 0, -30)
	to := now

	if raw := c.Query("from"); raw != "" {
		t, err := time.Parse(dateLayout, raw)
		if err != nil {
			return time.Time{}, time.Time{}, fiber.NewError(fiber.StatusBadRequest, "from must be YYYY-MM-DD")
		}
		from = t
	}
	if raw := c.Query("to"); raw != "" {
		t, err := time.Parse(dateLayout, raw)
		if err != nil {
			return time.Time{}, time.Time{}, fiber.NewError(fiber.StatusBadRequest, "to must be YYYY-MM-DD")
		}
		to = t.Add(24*time.Hour - time.Nanosecond)
	}
	if to.Before(from) {
		return time.Time{}, time.Time{}, fiber.NewError(fiber.StatusBadRequest, "to must not be before from")
	}
	return from, to, nil
}

// GET /api/reports/sales?from=&to=&payment=&format=json|xlsx|pdf
func SalesHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		from, to, err := parseRange(c)
		if err != nil {
			return err
		}

		payment := models.PaymentMethod(c.Query("payment"))
		if payment != "" && !payment.Valid() {
			return fiber.NewError(fiber.StatusBadRequest, "payment must be cash, card or upi")
		}

		summary, err := svc.Sales(c.Context(), from, to, payment)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to build sales report")
		}

		switch c.Query("format", "json") {
		case "json":
			return c.JSON(summary)
		case "xlsx":
			data, err := ExcelSales(summary)
			if err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Failed to export report")
			}
			c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
			c.Set(fiber.HeaderContentDisposition, `attachment; filename="sales-report.xlsx"`)
			return c.Send(data)
		case "pdf":
			data, err := PDFSales(summary)
			if err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Failed to export report")
			}
			c.Set(fiber.HeaderContentType, "application/pdf")
			c.Set(fiber.HeaderContentDisposition, `attachment; filename="sales-report.pdf"`)
			return c.Send(data)
		default:
			return fiber.NewError(fiber.StatusBadRequest, "format must be json, xlsx or pdf")
		}
	}
}

// GET /api/reports/inventory?format=json|xlsx
func InventoryHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		summary := svc.Inventory(stock.LowStockThreshold)

		switch c.Query("format", "json") {
		case "json":
			return c.JSON(summary)
		case "xlsx":
			data, err := ExcelInventory(summary)
			if err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Failed to export report")
			}
			c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
			c.Set(fiber.HeaderContentDisposition, `attachment; filename="inventory-report.xlsx"`)
			return c.Send(data)
		default:
			return fiber.NewError(fiber.StatusBadRequest, "format must be json or xlsx")
		}
	}
}

// GET /api/reports/credit?format=json|xlsx
func CreditHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		summary, err := svc.Credit(c.Context())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to build credit report")
		}

		switch c.Query("format", "json") {
		case "json":
			return c.JSON(summary)
		case "xlsx":
			data, err := ExcelCredit(summary)
			if err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Failed to export report")
			}
			c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
			c.Set(fiber.HeaderContentDisposition, `attachment; filename="credit-report.xlsx"`)
			return c.Send(data)
		default:
			return fiber.NewError(fiber.StatusBadRequest, "format must be json or xlsx")
		}
	}
}
