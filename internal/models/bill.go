package models

import "time"

type PaymentMethod string

const (
	PaymentCash PaymentMethod = "cash"
	PaymentCard PaymentMethod = "card"
	PaymentUPI  PaymentMethod = "upi"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCash, PaymentCard, PaymentUPI:
		return true
	}
	return false
}

// BillItem is a by-value snapshot of a product at sale time. Bills never
// reference live Product records, so later edits and deletes cannot change
// historical figures.
type BillItem struct {
	ProductCode string  `bson:"productCode" json:"product_code"`
	ProductName string  `bson:"productName" json:"product_name"`
	Quantity    int     `bson:"quantity" json:"quantity"`
	Price       float64 `bson:"price" json:"price"` // unit selling price
	TotalPrice  float64 `bson:"totalPrice" json:"total_price"`
}

// Bill is immutable once created. For return bills the monetary fields and
// each item's TotalPrice are negative, and OriginalBillID points at the sale
// bill the return was derived from.
type Bill struct {
	BillID         string        `bson:"_id" json:"bill_id"`
	Date           time.Time     `bson:"date" json:"date"`
	Items          []BillItem    `bson:"items" json:"items"`
	Subtotal       float64       `bson:"subtotal" json:"subtotal"`
	Tax            float64       `bson:"tax" json:"tax"`
	Total          float64       `bson:"total" json:"total"`
	GSTPercentage  float64       `bson:"gstPercentage" json:"gst_percentage"`
	PaymentMethod  PaymentMethod `bson:"paymentMethod" json:"payment_method"`
	CustomerName   string        `bson:"customerName,omitempty" json:"customer_name,omitempty"`
	CustomerPhone  string        `bson:"customerPhone,omitempty" json:"customer_phone,omitempty"`
	IsReturn       bool          `bson:"isReturn" json:"is_return"`
	OriginalBillID string        `bson:"originalBillId,omitempty" json:"original_bill_id,omitempty"`
	CreatedBy      string        `bson:"createdBy,omitempty" json:"created_by,omitempty"`
}
