package billing

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"kirana-backend/internal/models"

	"github.com/google/uuid"
)

type CustomerInfo struct {
	Name  string `json:"customer_name"`
	Phone string `json:"customer_phone"`
}

// FinalizeSale validates the cart against the catalog's *current* stock and
// assembles an immutable Bill. It does not persist anything: persistence and
// stock reconciliation are orchestrated by Checkout, so a persistence
// failure after this point can be retried without re-deriving totals.
func FinalizeSale(cart *Cart, customer CustomerInfo, method models.PaymentMethod) (models.Bill, error) {
	if cart.IsEmpty() {
		return models.Bill{}, ErrEmptyCart
	}
	if !method.Valid() {
		return models.Bill{}, ErrInvalidPaymentMethod
	}

	// Stock may have moved since items were added; re-check every line
	// against the live snapshot and report all offenders at once.
	var short []string
	for _, item := range cart.Items() {
		if item.Quantity > cart.catalog.CurrentStock(item.Product.Code) {
			short = append(short, item.Product.Code)
		}
	}
	if len(short) > 0 {
		sort.Strings(short)
		return models.Bill{}, &InsufficientStockError{Codes: short}
	}

	items := make([]models.BillItem, 0, len(cart.items))
	for _, item := range cart.Items() {
		items = append(items, models.BillItem{
			ProductCode: item.Product.Code,
			ProductName: item.Product.Name,
			Quantity:    item.Quantity,
			Price:       item.Product.SellingPrice,
			TotalPrice:  item.TotalPrice,
		})
	}

	totals := cart.Totals()
	return models.Bill{
		BillID:        newBillID(),
		Date:          time.Now(),
		Items:         items,
		Subtotal:      totals.Subtotal,
		Tax:           totals.Tax,
		Total:         totals.Total,
		GSTPercentage: cart.gstPercentage,
		PaymentMethod: method,
		CustomerName:  customer.Name,
		CustomerPhone: customer.Phone,
	}, nil
}

// FinalizeReturn derives a negated Bill from a subset of an original sale
// bill's items. The tax rate is the one that applied at time of sale, never
// the current default.
func FinalizeReturn(original models.Bill, returnQuantities map[string]int) (models.Bill, error) {
	if original.IsReturn {
		return models.Bill{}, ErrInvalidReturn
	}

	byCode := make(map[string]models.BillItem, len(original.Items))
	for _, item := range original.Items {
		byCode[item.ProductCode] = item
	}

	var outOfRange []string
	selected := 0
	for code, qty := range returnQuantities {
		orig, ok := byCode[code]
		if !ok || qty < 0 || qty > orig.Quantity {
			outOfRange = append(outOfRange, code)
			continue
		}
		if qty > 0 {
			selected++
		}
	}
	if len(outOfRange) > 0 {
		sort.Strings(outOfRange)
		return models.Bill{}, &QuantityOutOfRangeError{Codes: outOfRange}
	}
	if selected == 0 {
		return models.Bill{}, ErrNoItemsSelected
	}

	rate := returnGSTRate(original)

	var items []models.BillItem
	var subtotal float64
	for _, orig := range original.Items {
		qty := returnQuantities[orig.ProductCode]
		if qty <= 0 {
			continue
		}
		item := models.BillItem{
			ProductCode: orig.ProductCode,
			ProductName: orig.ProductName,
			Quantity:    qty,
			Price:       orig.Price,
			TotalPrice:  -(float64(qty) * orig.Price),
		}
		subtotal += item.TotalPrice
		items = append(items, item)
	}

	tax := subtotal * rate / 100
	return models.Bill{
		BillID:         newReturnBillID(original.BillID),
		Date:           time.Now(),
		Items:          items,
		Subtotal:       subtotal,
		Tax:            tax,
		Total:          subtotal + tax,
		GSTPercentage:  rate,
		PaymentMethod:  original.PaymentMethod,
		CustomerName:   original.CustomerName,
		CustomerPhone:  original.CustomerPhone,
		IsReturn:       true,
		OriginalBillID: original.BillID,
	}, nil
}

// returnGSTRate resolves the tax rate for a return. Bills written before the
// rate was stored carry a zero rate next to a nonzero tax; for those the
// rate is re-derived from the stored subtotal/tax pair. A genuine 0% bill
// (zero tax) stays at 0.
func returnGSTRate(b models.Bill) float64 {
	if b.GSTPercentage > 0 {
		return b.GSTPercentage
	}
	if b.Tax != 0 && b.Subtotal != 0 {
		return b.Tax / b.Subtotal * 100
	}
	return 0
}

// newBillID is timestamp-based with a random suffix so that ids never
// collide across terminals or restarts.
func newBillID() string {
	return fmt.Sprintf("BILL-%d-%s", time.Now().UnixMilli(), randSuffix())
}

// newReturnBillID keeps the original id visible while staying globally
// unique even across multiple partial returns of the same bill.
func newReturnBillID(originalID string) string {
	return fmt.Sprintf("R-%s-%s", originalID, randSuffix())
}

func randSuffix() string {
	return strings.ToUpper(uuid.NewString()[:8])
}
