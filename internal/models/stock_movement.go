package models

import "time"

type StockAction string

const (
	StockAdd    StockAction = "add"
	StockRemove StockAction = "remove"
	StockAdjust StockAction = "adjust"
)

// StockMovement is the audit trail of a single stock change: a manual
// adjustment, a sale deduction or a return restock.
type StockMovement struct {
	ID          string      `bson:"_id" json:"id"`
	ProductID   string      `bson:"productId" json:"product_id"`
	ProductName string      `bson:"productName" json:"product_name"`
	ProductCode string      `bson:"productCode" json:"product_code"`
	Quantity    int         `bson:"quantity" json:"quantity"`
	PrevQty     int         `bson:"previousQuantity" json:"previous_quantity"`
	NewQty      int         `bson:"newQuantity" json:"new_quantity"`
	Action      StockAction `bson:"actionType" json:"action_type"`
	Reason      string      `bson:"reason,omitempty" json:"reason,omitempty"`
	Timestamp   time.Time   `bson:"timestamp" json:"timestamp"`
	PerformedBy string      `bson:"performedBy,omitempty" json:"performed_by,omitempty"`
}
