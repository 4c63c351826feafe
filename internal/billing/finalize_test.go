package billing

import (
	"context"
	"strings"
	"testing"
	"time"

	"kirana-backend/internal/database"
	"kirana-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFinalizeSaleEmptyCart(t *testing.T) {
	cat, _ := newTestCatalog(t)
	cart := NewCart(cat, 18)

	_, err := FinalizeSale(cart, CustomerInfo{}, models.PaymentCash)
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestFinalizeSaleInvalidPayment(t *testing.T) {
	cat, _ := newTestCatalog(t)
	cart := NewCart(cat, 18)
	require.NoError(t, cart.AddByCode("EAT-AAA111"))

	_, err := FinalizeSale(cart, CustomerInfo{}, models.PaymentMethod("cheque"))
	assert.ErrorIs(t, err, ErrInvalidPaymentMethod)
}

func TestFinalizeSaleBill(t *testing.T) {
	cat, _ := newTestCatalog(t)
	cart := NewCart(cat, 18)
	require.NoError(t, cart.AddByCode("EAT-AAA111"))
	require.NoError(t, cart.SetQuantityDelta("EAT-AAA111", 1))

	bill, err := FinalizeSale(cart, CustomerInfo{Name: "Asha", Phone: "9900112233"}, models.PaymentUPI)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(bill.BillID, "BILL-"))
	assert.WithinDuration(t, time.Now(), bill.Date, time.Minute)
	require.Len(t, bill.Items, 1)
	assert.Equal(t, "Rice 1kg", bill.Items[0].ProductName)
	assert.Equal(t, 2, bill.Items[0].Quantity)
	assert.Equal(t, 200.0, bill.Subtotal)
	assert.Equal(t, 36.0, bill.Tax)
	assert.Equal(t, 236.0, bill.Total)
	assert.Equal(t, 18.0, bill.GSTPercentage)
	assert.Equal(t, models.PaymentUPI, bill.PaymentMethod)
	assert.Equal(t, "Asha", bill.CustomerName)
	assert.False(t, bill.IsReturn)
}

func TestFinalizeSaleStockMovedSinceAdd(t *testing.T) {
	cat, store := newTestCatalog(t)
	cart := NewCart(cat, 18)
	require.NoError(t, cart.AddByCode("EAT-AAA111"))
	require.NoError(t, cart.SetQuantityDelta("EAT-AAA111", 4)) // qty 5, stock 5

	// Another terminal sold the stock in the meantime.
	require.NoError(t, store.Update(context.Background(), database.Products, "p1", map[string]any{"quantity": 3}))
	require.NoError(t, cat.Refresh(context.Background()))

	_, err := FinalizeSale(cart, CustomerInfo{}, models.PaymentCash)
	var insufficient *InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, []string{"EAT-AAA111"}, insufficient.Codes)
}

func saleBillFixture() models.Bill {
	return models.Bill{
		BillID: "BILL-1700000000000-AB12CD34",
		Date:   time.Now().Add(-24 * time.Hour),
		Items: []models.BillItem{
			{ProductCode: "EAT-AAA111", ProductName: "Rice 1kg", Quantity: 3, Price: 100, TotalPrice: 300},
			{ProductCode: "CLO-BBB222", ProductName: "Blue Shirt", Quantity: 1, Price: 250, TotalPrice: 250},
		},
		Subtotal:      550,
		Tax:           99,
		Total:         649,
		GSTPercentage: 18,
		PaymentMethod: models.PaymentCard,
		CustomerName:  "Ravi",
	}
}

func TestFinalizeReturnOfReturn(t *testing.T) {
	original := saleBillFixture()
	original.IsReturn = true

	_, err := FinalizeReturn(original, map[string]int{"EAT-AAA111": 1})
	assert.ErrorIs(t, err, ErrInvalidReturn)
}

func TestFinalizeReturnOutOfRange(t *testing.T) {
	original := saleBillFixture()

	_, err := FinalizeReturn(original, map[string]int{
		"EAT-AAA111": 4, // more than sold
		"TEC-CCC333": 1, // not on the bill
		"CLO-BBB222": 1, // fine
	})
	var outOfRange *QuantityOutOfRangeError
	require.ErrorAs(t, err, &outOfRange)
	assert.Equal(t, []string{"EAT-AAA111", "TEC-CCC333"}, outOfRange.Codes)
}

func TestFinalizeReturnNothingSelected(t *testing.T) {
	original := saleBillFixture()

	_, err := FinalizeReturn(original, map[string]int{"EAT-AAA111": 0})
	assert.ErrorIs(t, err, ErrNoItemsSelected)
}

func TestFinalizeReturnPartial(t *testing.T) {
	original := saleBillFixture()

	returnBill, err := FinalizeReturn(original, map[string]int{"EAT-AAA111": 2})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(returnBill.BillID, "R-"+original.BillID+"-"))
	assert.True(t, returnBill.IsReturn)
	assert.Equal(t, original.BillID, returnBill.OriginalBillID)
	require.Len(t, returnBill.Items, 1)
	assert.Equal(t, 2, returnBill.Items[0].Quantity)
	assert.Equal(t, -200.0, returnBill.Items[0].TotalPrice)
	assert.Equal(t, -200.0, returnBill.Subtotal)
	assert.Equal(t, -36.0, returnBill.Tax)
	assert.Equal(t, -236.0, returnBill.Total)
	assert.Equal(t, 18.0, returnBill.GSTPercentage)
	assert.Equal(t, models.PaymentCard, returnBill.PaymentMethod)
}

func TestFinalizeReturnIDsUniquePerReturn(t *testing.T) {
	original := saleBillFixture()

	first, err := FinalizeReturn(original, map[string]int{"EAT-AAA111": 1})
	require.NoError(t, err)
	second, err := FinalizeReturn(original, map[string]int{"EAT-AAA111": 1})
	require.NoError(t, err)

	assert.NotEqual(t, first.BillID, second.BillID)
}

func TestFinalizeReturnDerivesLegacyGSTRate(t *testing.T) {
	original := saleBillFixture()
	original.GSTPercentage = 0 // written before the rate was stored
	original.Subtotal = 550
	original.Tax = 66 // 12%

	returnBill, err := FinalizeReturn(original, map[string]int{"CLO-BBB222": 1})
	require.NoError(t, err)

	assert.InDelta(t, 12.0, returnBill.GSTPercentage, 1e-9)
	assert.InDelta(t, -30.0, returnBill.Tax, 1e-9) // -250 * 12%
}

func TestFinalizeReturnGenuineZeroRate(t *testing.T) {
	original := saleBillFixture()
	original.GSTPercentage = 0
	original.Tax = 0
	original.Total = original.Subtotal

	returnBill, err := FinalizeReturn(original, map[string]int{"CLO-BBB222": 1})
	require.NoError(t, err)

	assert.Zero(t, returnBill.GSTPercentage)
	assert.Zero(t, returnBill.Tax)
	assert.Equal(t, -250.0, returnBill.Total)
}
