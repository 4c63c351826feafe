package billing

import (
	"context"
	"log"

	"kirana-backend/internal/catalog"
	"kirana-backend/internal/database"
	"kirana-backend/internal/models"
	"kirana-backend/internal/stock"
)

// Checkout orchestrates the sale and return flows across the finalizer, the
// document store and the stock reconciler.
type Checkout struct {
	store database.Store
	cat   *catalog.Catalog
	rec   *stock.Reconciler
}

func NewCheckout(store database.Store, cat *catalog.Catalog, rec *stock.Reconciler) *Checkout {
	return &Checkout{store: store, cat: cat, rec: rec}
}

// ProcessSale runs Validate → Persist(Bill) → ReconcileStock → Refresh.
//
// A persistence failure aborts before any stock is touched: no deduction
// without a persisted bill. A partial stock failure afterwards does NOT
// unwind the bill — the sale is complete, and the returned error is a
// *stock.PartialFailureError warning next to a valid Bill.
func (co *Checkout) ProcessSale(ctx context.Context, cart *Cart, customer CustomerInfo, method models.PaymentMethod, createdBy string) (models.Bill, error) {
	bill, err := FinalizeSale(cart, customer, method)
	if err != nil {
		return models.Bill{}, err
	}
	bill.CreatedBy = createdBy

	if err := co.store.Set(ctx, database.Bills, bill.BillID, bill); err != nil {
		return models.Bill{}, err
	}

	deductions := make([]stock.ItemDelta, 0, len(bill.Items))
	for _, item := range bill.Items {
		deductions = append(deductions, stock.ItemDelta{ProductCode: item.ProductCode, Quantity: item.Quantity})
	}
	if err := co.rec.ApplySaleDeductions(ctx, deductions); err != nil {
		// Bill stays persisted; surface the bookkeeping gap as a warning.
		return bill, err
	}

	return bill, nil
}

// ProcessReturn runs Validate → Restock → Persist(ReturnBill) → Refresh.
//
// The ordering is the mirror image of the sale path on purpose: stock is
// restocked first, and if that fails the return bill is never created.
func (co *Checkout) ProcessReturn(ctx context.Context, originalBillID string, returnQuantities map[string]int, createdBy string) (models.Bill, error) {
	var original models.Bill
	if err := co.store.Get(ctx, database.Bills, originalBillID, &original); err != nil {
		if database.IsNotFound(err) {
			return models.Bill{}, ErrBillNotFound
		}
		return models.Bill{}, err
	}

	returnBill, err := FinalizeReturn(original, returnQuantities)
	if err != nil {
		return models.Bill{}, err
	}
	returnBill.CreatedBy = createdBy

	restocks := make([]stock.ItemDelta, 0, len(returnBill.Items))
	for _, item := range returnBill.Items {
		restocks = append(restocks, stock.ItemDelta{ProductCode: item.ProductCode, Quantity: item.Quantity})
	}
	if err := co.rec.ApplyReturnRestocks(ctx, restocks); err != nil {
		return models.Bill{}, err
	}

	if err := co.store.Set(ctx, database.Bills, returnBill.BillID, returnBill); err != nil {
		return models.Bill{}, err
	}

	if err := co.cat.Refresh(ctx); err != nil {
		log.Println("catalog refresh after return failed:", err)
	}
	return returnBill, nil
}
