package models

import "time"

type ProductCategory struct {
	Name          string   `bson:"categoryName" json:"category_name"`
	Subcategories []string `bson:"subCategories" json:"subcategories"`
}

type Product struct {
	ProductID    string          `bson:"_id" json:"product_id"`
	Name         string          `bson:"productName" json:"product_name"`
	Code         string          `bson:"productCode" json:"product_code"` // barcode/scanner-facing, unique
	SellingPrice float64         `bson:"sellingPrice" json:"selling_price"`
	CostPrice    float64         `bson:"costPrice" json:"cost_price"`
	MRPPrice     float64         `bson:"mrpPrice" json:"mrp_price"`
	Category     ProductCategory `bson:"category" json:"category"`
	Quantity     int             `bson:"quantity" json:"quantity"` // stock on hand
	DealerName   string          `bson:"dealerName" json:"dealer_name"`
	Size         string          `bson:"size,omitempty" json:"size,omitempty"`
	Color        string          `bson:"color,omitempty" json:"color,omitempty"`
	CreatedAt    time.Time       `bson:"createdAt" json:"created_at"`
	UpdatedAt    time.Time       `bson:"updatedAt" json:"updated_at"`
}
