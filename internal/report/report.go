package report

import (
	"context"
	"sort"
	"time"

	"kirana-backend/internal/catalog"
	"kirana-backend/internal/database"
	"kirana-backend/internal/models"
)

// Service aggregates bills, inventory and credit data into reports. Date
// filtering happens in memory over the sorted bill list; bill volumes for a
// single shop stay small enough that pushing range operators into the store
// is not worth the coupling.
type Service struct {
	store database.Store
	cat   *catalog.Catalog
}

func NewService(store database.Store, cat *catalog.Catalog) *Service {
	return &Service{store: store, cat: cat}
}

// ProductSales is one row of the top-seller breakdown.
type ProductSales struct {
	ProductCode string  `json:"product_code"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	Revenue     float64 `json:"revenue"`
}

// SalesSummary covers one date range. Returns are negative bills; GrossSales
// counts only sale bills, ReturnTotal the absolute value refunded, and
// NetRevenue their difference.
type SalesSummary struct {
	From         time.Time                        `json:"from"`
	To           time.Time                        `json:"to"`
	BillCount    int                              `json:"bill_count"`
	ReturnCount  int                              `json:"return_count"`
	GrossSales   float64                          `json:"gross_sales"`
	ReturnTotal  float64                          `json:"return_total"`
	NetRevenue   float64                          `json:"net_revenue"`
	TaxCollected float64                          `json:"tax_collected"`
	ByPayment    map[models.PaymentMethod]float64 `json:"by_payment"`
	TopProducts  []ProductSales                   `json:"top_products"`
	Bills        []models.Bill                    `json:"bills"`
}

// Sales builds the sales summary for [from, to]. A zero payment method means
// no payment filter.
func (s *Service) Sales(ctx context.Context, from, to time.Time, payment models.PaymentMethod) (SalesSummary, error) {
	var all []models.Bill
	err := s.store.Find(ctx, database.Bills, database.Query{SortBy: "date", SortDesc: true}, &all)
	if err != nil {
		return SalesSummary{}, err
	}

	summary := SalesSummary{
		From:      from,
		To:        to,
		ByPayment: map[models.PaymentMethod]float64{},
		Bills:     []models.Bill{},
	}
	perProduct := map[string]*ProductSales{}

	for _, bill := range all {
		if bill.Date.Before(from) || bill.Date.After(to) {
			continue
		}
		if payment != "" && bill.PaymentMethod != payment {
			continue
		}

		summary.Bills = append(summary.Bills, bill)
		summary.TaxCollected += bill.Tax
		summary.ByPayment[bill.PaymentMethod] += bill.Total

		if bill.IsReturn {
			summary.ReturnCount++
			summary.ReturnTotal += -bill.Total
		} else {
			summary.BillCount++
			summary.GrossSales += bill.Total
		}

		for _, item := range bill.Items {
			row, ok := perProduct[item.ProductCode]
			if !ok {
				row = &ProductSales{ProductCode: item.ProductCode, ProductName: item.ProductName}
				perProduct[item.ProductCode] = row
			}
			if bill.IsReturn {
				row.Quantity -= item.Quantity
			} else {
				row.Quantity += item.Quantity
			}
			row.Revenue += item.TotalPrice
		}
	}
	summary.NetRevenue = summary.GrossSales - summary.ReturnTotal

	for _, row := range perProduct {
		summary.TopProducts = append(summary.TopProducts, *row)
	}
	sort.Slice(summary.TopProducts, func(i, j int) bool {
		if summary.TopProducts[i].Revenue != summary.TopProducts[j].Revenue {
			return summary.TopProducts[i].Revenue > summary.TopProducts[j].Revenue
		}
		return summary.TopProducts[i].ProductCode < summary.TopProducts[j].ProductCode
	})
	if len(summary.TopProducts) > 10 {
		summary.TopProducts = summary.TopProducts[:10]
	}

	return summary, nil
}

// CategoryStock is the per-category slice of the inventory report.
type CategoryStock struct {
	Category     string  `json:"category"`
	ProductCount int     `json:"product_count"`
	Units        int     `json:"units"`
	CostValue    float64 `json:"cost_value"`
	RetailValue  float64 `json:"retail_value"`
}

type InventorySummary struct {
	ProductCount int              `json:"product_count"`
	TotalUnits   int              `json:"total_units"`
	CostValue    float64          `json:"cost_value"`
	RetailValue  float64          `json:"retail_value"`
	LowStock     int              `json:"low_stock"`
	OutOfStock   int              `json:"out_of_stock"`
	ByCategory   []CategoryStock  `json:"by_category"`
	Products     []models.Product `json:"products"`
}

// Inventory snapshots the catalog's current stock position.
func (s *Service) Inventory(lowStockThreshold int) InventorySummary {
	products := s.cat.Products()
	summary := InventorySummary{Products: products}
	byCat := map[string]*CategoryStock{}

	for _, p := range products {
		summary.ProductCount++
		summary.TotalUnits += p.Quantity
		summary.CostValue += float64(p.Quantity) * p.CostPrice
		summary.RetailValue += float64(p.Quantity) * p.SellingPrice
		if p.Quantity == 0 {
			summary.OutOfStock++
		}
		if p.Quantity <= lowStockThreshold {
			summary.LowStock++
		}

		row, ok := byCat[p.Category.Name]
		if !ok {
			row = &CategoryStock{Category: p.Category.Name}
			byCat[p.Category.Name] = row
		}
		row.ProductCount++
		row.Units += p.Quantity
		row.CostValue += float64(p.Quantity) * p.CostPrice
		row.RetailValue += float64(p.Quantity) * p.SellingPrice
	}

	for _, row := range byCat {
		summary.ByCategory = append(summary.ByCategory, *row)
	}
	sort.Slice(summary.ByCategory, func(i, j int) bool {
		return summary.ByCategory[i].Category < summary.ByCategory[j].Category
	})
	return summary
}

type CreditSummary struct {
	PartyCount   int                  `json:"party_count"`
	TotalOwed    float64              `json:"total_owed"`    // sum of positive balances
	TotalOwing   float64              `json:"total_owing"`   // abs sum of negative balances
	NetPosition  float64              `json:"net_position"`  // sum of all balances
	Parties      []models.CreditParty `json:"parties"`
}

// Credit summarizes the ledger's outstanding balances.
func (s *Service) Credit(ctx context.Context) (CreditSummary, error) {
	var parties []models.CreditParty
	err := s.store.Find(ctx, database.CreditParties, database.Query{SortBy: "name"}, &parties)
	if err != nil {
		return CreditSummary{}, err
	}
	if parties == nil {
		parties = []models.CreditParty{}
	}

	summary := CreditSummary{Parties: parties}
	for _, p := range parties {
		summary.PartyCount++
		summary.NetPosition += p.Balance
		if p.Balance >= 0 {
			summary.TotalOwed += p.Balance
		} else {
			summary.TotalOwing += -p.Balance
		}
	}
	return summary, nil
}
