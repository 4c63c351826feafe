package billing

import (
	"context"
	"errors"
	"testing"

	"kirana-backend/internal/database"
	"kirana-backend/internal/models"
	"kirana-backend/internal/stock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// failingStore wraps a Store and fails updates on selected ids.
type failingStore struct {
	database.Store
	failUpdateIDs map[string]bool
}

func (f *failingStore) Update(ctx context.Context, collection, id string, fields map[string]any) error {
	if f.failUpdateIDs[id] {
		return errors.New("simulated write failure")
	}
	return f.Store.Update(ctx, collection, id, fields)
}

func TestProcessSale(t *testing.T) {
	cat, store := newTestCatalog(t)
	rec := stock.NewReconciler(store, cat)
	co := NewCheckout(store, cat, rec)

	cart := NewCart(cat, 18)
	require.NoError(t, cart.AddByCode("EAT-AAA111"))
	require.NoError(t, cart.SetQuantityDelta("EAT-AAA111", 1))

	bill, err := co.ProcessSale(context.Background(), cart, CustomerInfo{Name: "Asha"}, models.PaymentCash, "user-1")
	require.NoError(t, err)

	var stored models.Bill
	require.NoError(t, store.Get(context.Background(), database.Bills, bill.BillID, &stored))
	assert.Equal(t, bill.Total, stored.Total)
	assert.Equal(t, "user-1", stored.CreatedBy)

	// stock 5, sold 2
	assert.Equal(t, 3, cat.CurrentStock("EAT-AAA111"))
}

func TestProcessSalePartialStockFailure(t *testing.T) {
	cat, store := newTestCatalog(t)
	failing := &failingStore{Store: store, failUpdateIDs: map[string]bool{"p2": true}}
	rec := stock.NewReconciler(failing, cat)
	co := NewCheckout(failing, cat, rec)

	cart := NewCart(cat, 18)
	require.NoError(t, cart.AddByCode("EAT-AAA111"))
	require.NoError(t, cart.AddByCode("CLO-BBB222"))

	bill, err := co.ProcessSale(context.Background(), cart, CustomerInfo{}, models.PaymentCash, "user-1")

	var partial *stock.PartialFailureError
	require.ErrorAs(t, err, &partial)
	assert.Equal(t, []string{"CLO-BBB222"}, partial.Codes)

	// The bill stands even though one deduction failed.
	var stored models.Bill
	require.NoError(t, store.Get(context.Background(), database.Bills, bill.BillID, &stored))
	assert.Equal(t, 4, cat.CurrentStock("EAT-AAA111"))
	assert.Equal(t, 2, cat.CurrentStock("CLO-BBB222"), "failed deduction leaves stock untouched")
}

func TestProcessSalePersistFailureSkipsStock(t *testing.T) {
	cat, store := newTestCatalog(t)
	failing := &failingSetStore{Store: store}
	rec := stock.NewReconciler(store, cat)
	co := NewCheckout(failing, cat, rec)

	cart := NewCart(cat, 18)
	require.NoError(t, cart.AddByCode("EAT-AAA111"))

	_, err := co.ProcessSale(context.Background(), cart, CustomerInfo{}, models.PaymentCash, "user-1")
	require.Error(t, err)

	assert.Equal(t, 5, cat.CurrentStock("EAT-AAA111"), "no deduction without a persisted bill")
}

// failingSetStore fails every Set.
type failingSetStore struct {
	database.Store
}

func (f *failingSetStore) Set(context.Context, string, string, any) error {
	return errors.New("simulated write failure")
}

func processTestSale(t *testing.T, co *Checkout, cart *Cart) models.Bill {
	t.Helper()
	bill, err := co.ProcessSale(context.Background(), cart, CustomerInfo{}, models.PaymentCash, "user-1")
	require.NoError(t, err)
	return bill
}

func TestProcessReturn(t *testing.T) {
	cat, store := newTestCatalog(t)
	rec := stock.NewReconciler(store, cat)
	co := NewCheckout(store, cat, rec)

	cart := NewCart(cat, 18)
	require.NoError(t, cart.AddByCode("EAT-AAA111"))
	require.NoError(t, cart.SetQuantityDelta("EAT-AAA111", 2))
	sale := processTestSale(t, co, cart)
	require.Equal(t, 2, cat.CurrentStock("EAT-AAA111"))

	returnBill, err := co.ProcessReturn(context.Background(), sale.BillID, map[string]int{"EAT-AAA111": 2}, "user-1")
	require.NoError(t, err)

	assert.True(t, returnBill.IsReturn)
	assert.Equal(t, 4, cat.CurrentStock("EAT-AAA111"), "returned units go back to stock")

	var stored models.Bill
	require.NoError(t, store.Get(context.Background(), database.Bills, returnBill.BillID, &stored))
	assert.Equal(t, sale.BillID, stored.OriginalBillID)
}

func TestProcessReturnUnknownBill(t *testing.T) {
	cat, store := newTestCatalog(t)
	rec := stock.NewReconciler(store, cat)
	co := NewCheckout(store, cat, rec)

	_, err := co.ProcessReturn(context.Background(), "BILL-MISSING", map[string]int{"EAT-AAA111": 1}, "user-1")
	assert.ErrorIs(t, err, ErrBillNotFound)
}

func TestProcessReturnRestockFailureAborts(t *testing.T) {
	cat, store := newTestCatalog(t)
	rec := stock.NewReconciler(store, cat)
	co := NewCheckout(store, cat, rec)

	cart := NewCart(cat, 18)
	require.NoError(t, cart.AddByCode("EAT-AAA111"))
	sale := processTestSale(t, co, cart)

	// Re-wire the return path through a store whose product update fails.
	failing := &failingStore{Store: store, failUpdateIDs: map[string]bool{"p1": true}}
	failingRec := stock.NewReconciler(failing, cat)
	failingCo := NewCheckout(failing, cat, failingRec)

	_, err := failingCo.ProcessReturn(context.Background(), sale.BillID, map[string]int{"EAT-AAA111": 1}, "user-1")
	require.Error(t, err)

	// No return bill may exist after a failed restock.
	var bills []models.Bill
	require.NoError(t, store.Find(context.Background(), database.Bills, database.Query{
		Filter: map[string]any{"isReturn": true},
	}, &bills))
	assert.Empty(t, bills)
}

func TestProcessReturnOfReturnRejected(t *testing.T) {
	cat, store := newTestCatalog(t)
	rec := stock.NewReconciler(store, cat)
	co := NewCheckout(store, cat, rec)

	cart := NewCart(cat, 18)
	require.NoError(t, cart.AddByCode("EAT-AAA111"))
	sale := processTestSale(t, co, cart)

	returnBill, err := co.ProcessReturn(context.Background(), sale.BillID, map[string]int{"EAT-AAA111": 1}, "user-1")
	require.NoError(t, err)

	_, err = co.ProcessReturn(context.Background(), returnBill.BillID, map[string]int{"EAT-AAA111": 1}, "user-1")
	assert.ErrorIs(t, err, ErrInvalidReturn)
}
