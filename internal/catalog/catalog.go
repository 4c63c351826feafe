package catalog

import (
	"context"
	"sync"

	"kirana-backend/internal/database"
	"kirana-backend/internal/models"
)

// Catalog is the in-memory mirror of the products collection. It is an
// explicit state container: constructed once, passed by reference, and only
// mutated through Refresh.
type Catalog struct {
	store database.Store

	mu       sync.RWMutex
	products []models.Product
	byCode   map[string]models.Product
}

func New(store database.Store) *Catalog {
	return &Catalog{
		store:  store,
		byCode: map[string]models.Product{},
	}
}

// Store exposes the backing document store for collaborators that persist
// alongside catalog reads (reconciler, product handlers).
func (c *Catalog) Store() database.Store { return c.store }

// Refresh replaces the whole snapshot with the current contents of the
// products collection. There is no partial refresh; on error the previous
// snapshot is kept (stale but consistent).
func (c *Catalog) Refresh(ctx context.Context) error {
	var products []models.Product
	err := c.store.Find(ctx, database.Products, database.Query{SortBy: "productName"}, &products)
	if err != nil {
		return err
	}

	byCode := make(map[string]models.Product, len(products))
	for _, p := range products {
		byCode[p.Code] = p
	}

	c.mu.Lock()
	c.products = products
	c.byCode = byCode
	c.mu.Unlock()
	return nil
}

// FindByCode returns a copy of the product with the given code.
func (c *Catalog) FindByCode(code string) (models.Product, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.byCode[code]
	return p, ok
}

// CurrentStock returns the known stock for a product code, 0 when the code
// is unknown.
func (c *Catalog) CurrentStock(code string) int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.byCode[code].Quantity
}

// Products returns a copy of the snapshot in catalog order.
func (c *Catalog) Products() []models.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]models.Product, len(c.products))
	copy(out, c.products)
	return out
}

// Len reports the number of products in the snapshot.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.products)
}
