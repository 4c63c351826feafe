package billing

import (
	"kirana-backend/internal/catalog"
	"kirana-backend/internal/models"
)

// LineItem is one product row of an in-progress cart.
type LineItem struct {
	Product    models.Product `json:"product"`
	Quantity   int            `json:"quantity"`
	TotalPrice float64        `json:"total_price"`
}

type Totals struct {
	Subtotal float64 `json:"subtotal"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
}

// Cart holds the line items of the bill being assembled. Items are kept in
// insertion order with at most one row per product code; adding a code that
// is already present increments its quantity instead of duplicating the row.
//
// A Cart is not safe for concurrent use; each session owns exactly one.
type Cart struct {
	catalog       *catalog.Catalog
	items         []LineItem
	gstPercentage float64
}

func NewCart(cat *catalog.Catalog, gstPercentage float64) *Cart {
	if gstPercentage < 0 {
		gstPercentage = 0
	}
	return &Cart{catalog: cat, gstPercentage: gstPercentage}
}

// AddByCode resolves the code against the catalog and adds one unit.
func (c *Cart) AddByCode(code string) error {
	p, ok := c.catalog.FindByCode(code)
	if !ok {
		return ErrNotFound
	}
	return c.add(p)
}

// AddByProduct adds one unit of an already-resolved product (search and
// quick-select paths). Stock checks are identical to AddByCode; when the
// catalog knows the code, the catalog's figures win over the passed copy.
func (c *Cart) AddByProduct(p models.Product) error {
	if cp, ok := c.catalog.FindByCode(p.Code); ok {
		p = cp
	}
	return c.add(p)
}

func (c *Cart) add(p models.Product) error {
	if idx := c.find(p.Code); idx >= 0 {
		if c.items[idx].Quantity+1 > p.Quantity {
			return ErrOutOfStock
		}
		c.items[idx].Quantity++
		c.items[idx].TotalPrice = float64(c.items[idx].Quantity) * c.items[idx].Product.SellingPrice
		return nil
	}

	if p.Quantity < 1 {
		return ErrOutOfStock
	}
	c.items = append(c.items, LineItem{
		Product:    p,
		Quantity:   1,
		TotalPrice: p.SellingPrice,
	})
	return nil
}

// SetQuantityDelta changes a line item's quantity by delta. Increments past
// the product's current stock leave the quantity unchanged and report
// ErrOutOfStock; decrements floor at 1 (removal is Remove, never implicit).
func (c *Cart) SetQuantityDelta(code string, delta int) error {
	idx := c.find(code)
	if idx < 0 {
		return ErrNotFound
	}

	item := &c.items[idx]
	if delta > 0 {
		if item.Quantity+delta > c.catalog.CurrentStock(code) {
			return ErrOutOfStock
		}
		item.Quantity += delta
	} else {
		item.Quantity += delta
		if item.Quantity < 1 {
			item.Quantity = 1
		}
	}
	item.TotalPrice = float64(item.Quantity) * item.Product.SellingPrice
	return nil
}

// Remove deletes the line item unconditionally.
func (c *Cart) Remove(code string) {
	idx := c.find(code)
	if idx < 0 {
		return
	}
	c.items = append(c.items[:idx], c.items[idx+1:]...)
}

// SetGSTPercentage accepts any non-negative rate.
func (c *Cart) SetGSTPercentage(rate float64) error {
	if rate < 0 {
		return ErrInvalidGSTRate
	}
	c.gstPercentage = rate
	return nil
}

func (c *Cart) GSTPercentage() float64 { return c.gstPercentage }

// Totals recomputes subtotal, tax and total from scratch on every call;
// nothing is cached incrementally, so removing the last item always zeroes
// the figures.
func (c *Cart) Totals() Totals {
	var subtotal float64
	for _, item := range c.items {
		subtotal += item.TotalPrice
	}
	tax := subtotal * c.gstPercentage / 100
	return Totals{Subtotal: subtotal, Tax: tax, Total: subtotal + tax}
}

// Items returns a copy of the line items in display order.
func (c *Cart) Items() []LineItem {
	out := make([]LineItem, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Cart) IsEmpty() bool { return len(c.items) == 0 }

// Clear empties the cart after a completed checkout.
func (c *Cart) Clear() { c.items = nil }

func (c *Cart) find(code string) int {
	for i := range c.items {
		if c.items[i].Product.Code == code {
			return i
		}
	}
	return -1
}
