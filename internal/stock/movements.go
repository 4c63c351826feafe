package stock

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"kirana-backend/internal/database"
	"kirana-backend/internal/models"

	"github.com/google/uuid"
)

var (
	// ErrInvalidQuantity: adjustments must move stock by at least one unit.
	ErrInvalidQuantity = errors.New("quantity must be greater than 0")
	// ErrRemoveExceedsStock: manual removals are exact, unlike the clamped
	// sale path.
	ErrRemoveExceedsStock = errors.New("cannot remove more than current stock")
)

// LowStockThreshold marks products that should be reordered soon.
const LowStockThreshold = 10

// Adjust applies a manual stock correction (add/remove/adjust) and records
// it as an immutable StockMovement.
func (r *Reconciler) Adjust(ctx context.Context, code string, action models.StockAction, qty int, reason, performedBy string) (models.StockMovement, error) {
	if qty <= 0 && action != models.StockAdjust {
		return models.StockMovement{}, ErrInvalidQuantity
	}

	p, ok := r.cat.FindByCode(code)
	if !ok {
		return models.StockMovement{}, fmt.Errorf("%s: %w", code, ErrUnknownProduct)
	}

	var newQty int
	switch action {
	case models.StockAdd:
		newQty = p.Quantity + qty
	case models.StockRemove:
		if qty > p.Quantity {
			return models.StockMovement{}, ErrRemoveExceedsStock
		}
		newQty = p.Quantity - qty
	case models.StockAdjust:
		if qty < 0 {
			return models.StockMovement{}, ErrInvalidQuantity
		}
		newQty = qty
	default:
		return models.StockMovement{}, fmt.Errorf("unknown stock action %q", action)
	}

	if err := r.store.Update(ctx, database.Products, p.ProductID, map[string]any{"quantity": newQty}); err != nil {
		return models.StockMovement{}, err
	}

	movement := models.StockMovement{
		ID:          uuid.NewString(),
		ProductID:   p.ProductID,
		ProductName: p.Name,
		ProductCode: p.Code,
		Quantity:    qty,
		PrevQty:     p.Quantity,
		NewQty:      newQty,
		Action:      action,
		Reason:      reason,
		Timestamp:   time.Now(),
		PerformedBy: performedBy,
	}
	if err := r.store.Set(ctx, database.StockMovements, movement.ID, movement); err != nil {
		return models.StockMovement{}, err
	}

	// The adjustment is already persisted; a failed refresh only leaves the
	// snapshot stale, so log it instead of failing the call.
	if err := r.cat.Refresh(ctx); err != nil {
		log.Println("catalog refresh after adjustment failed:", err)
	}
	return movement, nil
}

// History lists stock movements newest first.
func (r *Reconciler) History(ctx context.Context) ([]models.StockMovement, error) {
	var movements []models.StockMovement
	err := r.store.Find(ctx, database.StockMovements, database.Query{SortBy: "timestamp", SortDesc: true}, &movements)
	if err != nil {
		return nil, err
	}
	return movements, nil
}

// LowStock returns products at or below the threshold, out-of-stock rows
// included.
func (r *Reconciler) LowStock(threshold int) []models.Product {
	if threshold <= 0 {
		threshold = LowStockThreshold
	}
	var low []models.Product
	for _, p := range r.cat.Products() {
		if p.Quantity <= threshold {
			low = append(low, p)
		}
	}
	return low
}
