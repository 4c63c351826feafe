package stock

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"

	"kirana-backend/internal/catalog"
	"kirana-backend/internal/database"
	"kirana-backend/internal/models"
)

// ErrUnknownProduct: a reconciliation item references a code the catalog
// does not know.
var ErrUnknownProduct = errors.New("unknown product code")

// ItemDelta is one product's quantity change in a reconciliation batch.
type ItemDelta struct {
	ProductCode string `json:"product_code"`
	Quantity    int    `json:"quantity"`
}

// PartialFailureError reports the product codes whose stock update failed.
// The sale itself stands; this is a bookkeeping warning, not a rollback.
type PartialFailureError struct {
	Codes []string
}

func (e *PartialFailureError) Error() string {
	return fmt.Sprintf("stock update failed for: %s", strings.Join(e.Codes, ", "))
}

// Reconciler applies per-product stock deltas for finalized bills.
type Reconciler struct {
	store database.Store
	cat   *catalog.Catalog
}

func NewReconciler(store database.Store, cat *catalog.Catalog) *Reconciler {
	return &Reconciler{store: store, cat: cat}
}

// ApplySaleDeductions decrements stock for every sold item. Updates target
// disjoint documents and are issued concurrently; one item's failure never
// blocks the others, and all failures are collected into a single
// PartialFailureError. Deductions clamp at zero instead of erroring on an
// over-sell.
//
// The catalog is refreshed afterwards regardless of the outcome so that
// subsequent reads see the updated stock.
func (r *Reconciler) ApplySaleDeductions(ctx context.Context, items []ItemDelta) error {
	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		failed []string
	)

	for _, item := range items {
		wg.Add(1)
		go func(item ItemDelta) {
			defer wg.Done()

			p, ok := r.cat.FindByCode(item.ProductCode)
			if !ok {
				mu.Lock()
				failed = append(failed, item.ProductCode)
				mu.Unlock()
				return
			}

			newQty := p.Quantity - item.Quantity
			if newQty < 0 {
				newQty = 0
			}
			err := r.store.Update(ctx, database.Products, p.ProductID, map[string]any{"quantity": newQty})
			if err != nil {
				mu.Lock()
				failed = append(failed, item.ProductCode)
				mu.Unlock()
			}
		}(item)
	}
	wg.Wait()

	if err := r.cat.Refresh(ctx); err != nil {
		log.Println("catalog refresh after sale deductions failed:", err)
	}

	if len(failed) > 0 {
		sort.Strings(failed)
		return &PartialFailureError{Codes: failed}
	}
	return nil
}

// ApplyReturnRestocks increments stock for every returned item, reading the
// current quantity fresh from the store. It runs strictly before the return
// bill is persisted and fails fast: the first failure aborts the whole
// return so no return bill is created against unrestocked inventory.
//
// It deliberately does not refresh the catalog; the return flow refreshes
// once the return bill is persisted.
func (r *Reconciler) ApplyReturnRestocks(ctx context.Context, items []ItemDelta) error {
	for _, item := range items {
		p, ok := r.cat.FindByCode(item.ProductCode)
		if !ok {
			return fmt.Errorf("%s: %w", item.ProductCode, ErrUnknownProduct)
		}

		var current models.Product
		if err := r.store.Get(ctx, database.Products, p.ProductID, &current); err != nil {
			return fmt.Errorf("restock %s: %w", item.ProductCode, err)
		}
		newQty := current.Quantity + item.Quantity
		if err := r.store.Update(ctx, database.Products, p.ProductID, map[string]any{"quantity": newQty}); err != nil {
			return fmt.Errorf("restock %s: %w", item.ProductCode, err)
		}
	}
	return nil
}
