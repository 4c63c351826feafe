package billing

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound: the product code is not in the catalog snapshot.
	ErrNotFound = errors.New("product not found")
	// ErrOutOfStock: the addition or increment would exceed known stock.
	// Non-fatal; the cart is left unchanged.
	ErrOutOfStock = errors.New("out of stock")
	// ErrEmptyCart: checkout was attempted with no line items.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrInvalidPaymentMethod: payment method outside cash/card/upi.
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
	// ErrInvalidGSTRate: a negative GST rate was supplied.
	ErrInvalidGSTRate = errors.New("gst percentage cannot be negative")
	// ErrInvalidReturn: returns of return bills are not allowed.
	ErrInvalidReturn = errors.New("cannot return a return bill")
	// ErrNoItemsSelected: every requested return quantity was zero.
	ErrNoItemsSelected = errors.New("no items selected for return")
	// ErrBillNotFound: the referenced bill does not exist.
	ErrBillNotFound = errors.New("bill not found")
)

// InsufficientStockError aborts a checkout when live stock no longer covers
// the cart. Codes lists every offending product code, not just the first.
type InsufficientStockError struct {
	Codes []string
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for: %s", strings.Join(e.Codes, ", "))
}

// QuantityOutOfRangeError rejects a return whose requested quantities fall
// outside 0..originalQuantity for the listed product codes.
type QuantityOutOfRangeError struct {
	Codes []string
}

func (e *QuantityOutOfRangeError) Error() string {
	return fmt.Sprintf("return quantity out of range for: %s", strings.Join(e.Codes, ", "))
}
