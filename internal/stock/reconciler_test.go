package stock

import (
	"context"
	"fmt"
	"testing"
	"time"

	"kirana-backend/internal/catalog"
	"kirana-backend/internal/database"
	"kirana-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestReconciler(t *testing.T) (*Reconciler, *catalog.Catalog, *database.MemoryStore) {
	t.Helper()
	store := database.NewMemoryStore()
	products := []models.Product{
		{ProductID: "p1", Name: "Rice 1kg", Code: "EAT-AAA111", SellingPrice: 100, Quantity: 5},
		{ProductID: "p2", Name: "Blue Shirt", Code: "CLO-BBB222", SellingPrice: 250, Quantity: 2},
		{ProductID: "p3", Name: "USB Cable", Code: "TEC-CCC333", SellingPrice: 80, Quantity: 10},
	}
	for _, p := range products {
		p.CreatedAt = time.Now()
		require.NoError(t, store.Set(context.Background(), database.Products, p.ProductID, p))
	}

	cat := catalog.New(store)
	require.NoError(t, cat.Refresh(context.Background()))
	return NewReconciler(store, cat), cat, store
}

func TestApplySaleDeductions(t *testing.T) {
	rec, cat, _ := newTestReconciler(t)

	err := rec.ApplySaleDeductions(context.Background(), []ItemDelta{
		{ProductCode: "EAT-AAA111", Quantity: 2},
		{ProductCode: "CLO-BBB222", Quantity: 1},
	})
	require.NoError(t, err)

	assert.Equal(t, 3, cat.CurrentStock("EAT-AAA111"))
	assert.Equal(t, 1, cat.CurrentStock("CLO-BBB222"))
}

func TestApplySaleDeductionsClampAtZero(t *testing.T) {
	rec, cat, _ := newTestReconciler(t)

	err := rec.ApplySaleDeductions(context.Background(), []ItemDelta{
		{ProductCode: "CLO-BBB222", Quantity: 99},
	})
	require.NoError(t, err)

	assert.Equal(t, 0, cat.CurrentStock("CLO-BBB222"), "stock never goes negative")
}

func TestApplySaleDeductionsUnknownCode(t *testing.T) {
	rec, cat, _ := newTestReconciler(t)

	err := rec.ApplySaleDeductions(context.Background(), []ItemDelta{
		{ProductCode: "EAT-AAA111", Quantity: 1},
		{ProductCode: "EAT-GONE00", Quantity: 1},
	})

	var partial *PartialFailureError
	require.ErrorAs(t, err, &partial)
	assert.Equal(t, []string{"EAT-GONE00"}, partial.Codes)
	assert.Equal(t, 4, cat.CurrentStock("EAT-AAA111"), "other deductions still apply")
}

func TestApplySaleDeductionsConcurrentBatch(t *testing.T) {
	store := database.NewMemoryStore()
	var items []ItemDelta
	for i := 0; i < 50; i++ {
		id := fmt.Sprintf("p%03d", i)
		code := fmt.Sprintf("EAT-%06d", i)
		p := models.Product{ProductID: id, Name: "Bulk " + id, Code: code, SellingPrice: 10, Quantity: 7}
		require.NoError(t, store.Set(context.Background(), database.Products, id, p))
		items = append(items, ItemDelta{ProductCode: code, Quantity: 3})
	}
	cat := catalog.New(store)
	require.NoError(t, cat.Refresh(context.Background()))
	rec := NewReconciler(store, cat)

	require.NoError(t, rec.ApplySaleDeductions(context.Background(), items))
	for _, item := range items {
		assert.Equal(t, 4, cat.CurrentStock(item.ProductCode))
	}
}

func TestApplyReturnRestocks(t *testing.T) {
	rec, cat, store := newTestReconciler(t)

	err := rec.ApplyReturnRestocks(context.Background(), []ItemDelta{
		{ProductCode: "EAT-AAA111", Quantity: 3},
	})
	require.NoError(t, err)

	// The restock writes through to the store but does not refresh the
	// snapshot itself; that is the caller's job.
	assert.Equal(t, 5, cat.CurrentStock("EAT-AAA111"))
	var p models.Product
	require.NoError(t, store.Get(context.Background(), database.Products, "p1", &p))
	assert.Equal(t, 8, p.Quantity)

	require.NoError(t, cat.Refresh(context.Background()))
	assert.Equal(t, 8, cat.CurrentStock("EAT-AAA111"))
}

func TestApplyReturnRestocksUnknownCode(t *testing.T) {
	rec, _, _ := newTestReconciler(t)

	err := rec.ApplyReturnRestocks(context.Background(), []ItemDelta{
		{ProductCode: "EAT-GONE00", Quantity: 1},
	})
	assert.ErrorIs(t, err, ErrUnknownProduct)
}

func TestAdjustAdd(t *testing.T) {
	rec, cat, _ := newTestReconciler(t)

	movement, err := rec.Adjust(context.Background(), "EAT-AAA111", models.StockAdd, 10, "new delivery", "user-1")
	require.NoError(t, err)

	assert.Equal(t, 5, movement.PrevQty)
	assert.Equal(t, 15, movement.NewQty)
	assert.Equal(t, models.StockAdd, movement.Action)
	assert.Equal(t, "user-1", movement.PerformedBy)
	assert.Equal(t, 15, cat.CurrentStock("EAT-AAA111"))
}

func TestAdjustRemove(t *testing.T) {
	rec, cat, _ := newTestReconciler(t)

	movement, err := rec.Adjust(context.Background(), "EAT-AAA111", models.StockRemove, 2, "damaged", "user-1")
	require.NoError(t, err)
	assert.Equal(t, 3, movement.NewQty)
	assert.Equal(t, 3, cat.CurrentStock("EAT-AAA111"))

	_, err = rec.Adjust(context.Background(), "EAT-AAA111", models.StockRemove, 4, "", "user-1")
	assert.ErrorIs(t, err, ErrRemoveExceedsStock)
	assert.Equal(t, 3, cat.CurrentStock("EAT-AAA111"), "failed removal changes nothing")
}

func TestAdjustSet(t *testing.T) {
	rec, cat, _ := newTestReconciler(t)

	movement, err := rec.Adjust(context.Background(), "TEC-CCC333", models.StockAdjust, 0, "recount", "user-1")
	require.NoError(t, err)
	assert.Equal(t, 10, movement.PrevQty)
	assert.Equal(t, 0, movement.NewQty)
	assert.Equal(t, 0, cat.CurrentStock("TEC-CCC333"))
}

func TestAdjustInvalidQuantity(t *testing.T) {
	rec, _, _ := newTestReconciler(t)

	_, err := rec.Adjust(context.Background(), "EAT-AAA111", models.StockAdd, 0, "", "user-1")
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = rec.Adjust(context.Background(), "EAT-AAA111", models.StockAdjust, -1, "", "user-1")
	assert.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestAdjustWritesMovementHistory(t *testing.T) {
	rec, _, _ := newTestReconciler(t)

	_, err := rec.Adjust(context.Background(), "EAT-AAA111", models.StockAdd, 5, "delivery", "user-1")
	require.NoError(t, err)
	_, err = rec.Adjust(context.Background(), "EAT-AAA111", models.StockRemove, 1, "breakage", "user-1")
	require.NoError(t, err)

	movements, err := rec.History(context.Background())
	require.NoError(t, err)
	require.Len(t, movements, 2)
	for _, m := range movements {
		assert.Equal(t, "EAT-AAA111", m.ProductCode)
		assert.NotEmpty(t, m.ID)
	}
}

func TestLowStock(t *testing.T) {
	rec, _, _ := newTestReconciler(t)

	low := rec.LowStock(LowStockThreshold)
	codes := make([]string, 0, len(low))
	for _, p := range low {
		codes = append(codes, p.Code)
	}
	// all seeded products are at or below 10
	assert.Len(t, codes, 3)

	low = rec.LowStock(3)
	require.Len(t, low, 1)
	assert.Equal(t, "CLO-BBB222", low[0].Code)
}

func TestLowStockUsesDefaultThreshold(t *testing.T) {
	rec, _, _ := newTestReconciler(t)
	assert.Len(t, rec.LowStock(0), 3)
}
