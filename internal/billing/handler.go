package billing

import (
	"context"
	"errors"

	"kirana-backend/internal/auth"
	"kirana-backend/internal/database"
	"kirana-backend/internal/models"
	"kirana-backend/internal/stock"

	"github.com/gofiber/fiber/v2"
)

// GSTSource supplies the rate a freshly created cart starts with.
type GSTSource interface {
	DefaultGSTFor(ctx context.Context, userID string) float64
}

type AddItemRequest struct {
	ProductCode string `json:"product_code"`
}

type QuantityRequest struct {
	ProductCode string `json:"product_code"`
	Delta       int    `json:"delta"`
}

type SetGSTRequest struct {
	GSTPercentage float64 `json:"gst_percentage"`
}

type CheckoutRequest struct {
	PaymentMethod models.PaymentMethod `json:"payment_method"`
	CustomerName  string               `json:"customer_name"`
	CustomerPhone string               `json:"customer_phone"`
}

type ReturnRequest struct {
	OriginalBillID string         `json:"original_bill_id"`
	Items          map[string]int `json:"items"` // product code -> quantity to return
}

func cartJSON(cart *Cart) fiber.Map {
	items := cart.Items()
	if items == nil {
		items = []LineItem{}
	}
	return fiber.Map{
		"items":          items,
		"totals":         cart.Totals(),
		"gst_percentage": cart.GSTPercentage(),
	}
}

func userCart(c *fiber.Ctx, carts *Carts, gst GSTSource) *Cart {
	userID := auth.UserID(c)
	return carts.Get(userID, gst.DefaultGSTFor(c.Context(), userID))
}

// GET /api/cart
func GetCartHandler(carts *Carts, gst GSTSource) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(cartJSON(userCart(c, carts, gst)))
	}
}

// POST /api/cart/items
//
// An out-of-stock add is not an error to the terminal: the cart is left
// untouched and the response carries a warning next to the unchanged cart.
func AddItemHandler(carts *Carts, gst GSTSource) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body AddItemRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		cart := userCart(c, carts, gst)
		err := cart.AddByCode(body.ProductCode)
		switch {
		case errors.Is(err, ErrNotFound):
			return fiber.NewError(fiber.StatusNotFound, "Product not found")
		case errors.Is(err, ErrOutOfStock):
			resp := cartJSON(cart)
			resp["warning"] = "Not enough stock for " + body.ProductCode
			return c.JSON(resp)
		case err != nil:
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to add item")
		}

		return c.JSON(cartJSON(cart))
	}
}

// PATCH /api/cart/items
func QuantityHandler(carts *Carts, gst GSTSource) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body QuantityRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		cart := userCart(c, carts, gst)
		err := cart.SetQuantityDelta(body.ProductCode, body.Delta)
		switch {
		case errors.Is(err, ErrNotFound):
			return fiber.NewError(fiber.StatusNotFound, "Item is not in the cart")
		case errors.Is(err, ErrOutOfStock):
			resp := cartJSON(cart)
			resp["warning"] = "Not enough stock for " + body.ProductCode
			return c.JSON(resp)
		case err != nil:
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to update quantity")
		}

		return c.JSON(cartJSON(cart))
	}
}

// DELETE /api/cart/items/:code
func RemoveItemHandler(carts *Carts, gst GSTSource) fiber.Handler {
	return func(c *fiber.Ctx) error {
		cart := userCart(c, carts, gst)
		cart.Remove(c.Params("code"))
		return c.JSON(cartJSON(cart))
	}
}

// PUT /api/cart/gst
func SetGSTHandler(carts *Carts, gst GSTSource) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body SetGSTRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		cart := userCart(c, carts, gst)
		if err := cart.SetGSTPercentage(body.GSTPercentage); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "GST rate cannot be negative")
		}
		return c.JSON(cartJSON(cart))
	}
}

// DELETE /api/cart
func ClearCartHandler(carts *Carts, gst GSTSource) fiber.Handler {
	return func(c *fiber.Ctx) error {
		cart := userCart(c, carts, gst)
		cart.Clear()
		return c.JSON(cartJSON(cart))
	}
}

// POST /api/cart/checkout
//
// A partial stock failure after the bill is persisted still clears the cart
// and returns the bill; the response carries a warning listing the codes
// whose stock could not be updated.
func CheckoutHandler(carts *Carts, checkout *Checkout, gst GSTSource) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CheckoutRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		userID := auth.UserID(c)
		cart := carts.Get(userID, gst.DefaultGSTFor(c.Context(), userID))

		customer := CustomerInfo{Name: body.CustomerName, Phone: body.CustomerPhone}
		bill, err := checkout.ProcessSale(c.Context(), cart, customer, body.PaymentMethod, userID)

		var insufficient *InsufficientStockError
		var partial *stock.PartialFailureError
		switch {
		case errors.Is(err, ErrEmptyCart):
			return fiber.NewError(fiber.StatusBadRequest, "Cart is empty")
		case errors.Is(err, ErrInvalidPaymentMethod):
			return fiber.NewError(fiber.StatusBadRequest, "Payment method must be cash, card or upi")
		case errors.As(err, &insufficient):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "Insufficient stock",
				"codes": insufficient.Codes,
			})
		case errors.As(err, &partial):
			carts.Clear(userID)
			return c.Status(fiber.StatusCreated).JSON(fiber.Map{
				"bill":    bill,
				"warning": "Stock update failed for some products",
				"codes":   partial.Codes,
			})
		case err != nil:
			return fiber.NewError(fiber.StatusInternalServerError, "Checkout failed")
		}

		carts.Clear(userID)
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"bill": bill})
	}
}

// GET /api/bills?returns=only|exclude
func ListBillsHandler(store database.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		query := database.Query{SortBy: "date", SortDesc: true}
		switch c.Query("returns") {
		case "only":
			query.Filter = map[string]any{"isReturn": true}
		case "exclude":
			query.Filter = map[string]any{"isReturn": false}
		}

		var bills []models.Bill
		if err := store.Find(c.Context(), database.Bills, query, &bills); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to load bills")
		}
		if bills == nil {
			bills = []models.Bill{}
		}
		return c.JSON(bills)
	}
}

// GET /api/bills/:id
func GetBillHandler(store database.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var bill models.Bill
		if err := store.Get(c.Context(), database.Bills, c.Params("id"), &bill); err != nil {
			if database.IsNotFound(err) {
				return fiber.NewError(fiber.StatusNotFound, "Bill not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to load bill")
		}
		return c.JSON(bill)
	}
}

// POST /api/bills/return
func ReturnHandler(checkout *Checkout) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body ReturnRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		if body.OriginalBillID == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Original bill id is required")
		}

		returnBill, err := checkout.ProcessReturn(c.Context(), body.OriginalBillID, body.Items, auth.UserID(c))

		var outOfRange *QuantityOutOfRangeError
		switch {
		case errors.Is(err, ErrBillNotFound):
			return fiber.NewError(fiber.StatusNotFound, "Original bill not found")
		case errors.Is(err, ErrInvalidReturn):
			return fiber.NewError(fiber.StatusBadRequest, "A return bill cannot be returned again")
		case errors.Is(err, ErrNoItemsSelected):
			return fiber.NewError(fiber.StatusBadRequest, "No items selected for return")
		case errors.As(err, &outOfRange):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Return quantity out of range",
				"codes": outOfRange.Codes,
			})
		case errors.Is(err, stock.ErrUnknownProduct):
			return fiber.NewError(fiber.StatusConflict, "A returned product no longer exists in the catalog")
		case err != nil:
			return fiber.NewError(fiber.StatusInternalServerError, "Return failed")
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"bill": returnBill})
	}
}
