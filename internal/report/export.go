package report

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
	"github.com/xuri/excelize/v2"
)

// ExcelSales renders a sales summary as an xlsx workbook: a summary block on
// top, then one row per bill.
func ExcelSales(summary SalesSummary) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Sales Report"
	f.SetSheetName("Sheet1", sheet)

	rows := [][]any{
		{"Sales Report"},
		{"From", summary.From.Format("2006-01-02"), "To", summary.To.Format("2006-01-02")},
		{},
		{"Bills", summary.BillCount, "Returns", summary.ReturnCount},
		{"Gross Sales", summary.GrossSales, "Returned", summary.ReturnTotal},
		{"Net Revenue", summary.NetRevenue, "Tax Collected", summary.TaxCollected},
		{},
		{"Bill ID", "Date", "Payment", "Customer", "Subtotal", "Tax", "Total", "Return"},
	}
	for _, bill := range summary.Bills {
		kind := ""
		if bill.IsReturn {
			kind = "yes"
		}
		rows = append(rows, []any{
			bill.BillID,
			bill.Date.Format("2006-01-02 15:04"),
			string(bill.PaymentMethod),
			bill.CustomerName,
			bill.Subtotal,
			bill.Tax,
			bill.Total,
			kind,
		})
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ExcelInventory renders the inventory snapshot as an xlsx workbook.
func ExcelInventory(summary InventorySummary) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Inventory Report"
	f.SetSheetName("Sheet1", sheet)

	rows := [][]any{
		{"Inventory Report"},
		{"Products", summary.ProductCount, "Units", summary.TotalUnits},
		{"Cost Value", summary.CostValue, "Retail Value", summary.RetailValue},
		{"Low Stock", summary.LowStock, "Out of Stock", summary.OutOfStock},
		{},
		{"Code", "Name", "Category", "Quantity", "Cost Price", "Selling Price", "MRP"},
	}
	for _, p := range summary.Products {
		rows = append(rows, []any{
			p.Code, p.Name, p.Category.Name, p.Quantity, p.CostPrice, p.SellingPrice, p.MRPPrice,
		})
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ExcelCredit renders the credit ledger position as an xlsx workbook.
func ExcelCredit(summary CreditSummary) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Credit Report"
	f.SetSheetName("Sheet1", sheet)

	rows := [][]any{
		{"Credit Report"},
		{"Parties", summary.PartyCount},
		{"Owed to us", summary.TotalOwed, "We owe", summary.TotalOwing},
		{"Net Position", summary.NetPosition},
		{},
		{"Name", "Shop", "Phone", "Balance", "Joined"},
	}
	for _, p := range summary.Parties {
		rows = append(rows, []any{
			p.Name, p.ShopName, p.Phone, p.Balance, p.JoinDate.Format("2006-01-02"),
		})
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// PDFSales renders a sales summary as a printable A4 report.
func PDFSales(summary SalesSummary) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "Sales Report", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("%s to %s",
		summary.From.Format("2006-01-02"), summary.To.Format("2006-01-02")), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 11)
	lines := []string{
		fmt.Sprintf("Bills: %d    Returns: %d", summary.BillCount, summary.ReturnCount),
		fmt.Sprintf("Gross Sales: %.2f    Returned: %.2f", summary.GrossSales, summary.ReturnTotal),
		fmt.Sprintf("Net Revenue: %.2f    Tax Collected: %.2f", summary.NetRevenue, summary.TaxCollected),
	}
	for _, line := range lines {
		pdf.CellFormat(0, 7, line, "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 9)
	widths := []float64{52, 30, 18, 30, 20, 20, 20}
	headers := []string{"Bill ID", "Date", "Payment", "Customer", "Subtotal", "Tax", "Total"}
	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 8)
	for _, bill := range summary.Bills {
		cols := []string{
			bill.BillID,
			bill.Date.Format("2006-01-02 15:04"),
			string(bill.PaymentMethod),
			bill.CustomerName,
			fmt.Sprintf("%.2f", bill.Subtotal),
			fmt.Sprintf("%.2f", bill.Tax),
			fmt.Sprintf("%.2f", bill.Total),
		}
		for i, col := range cols {
			align := "L"
			if i >= 4 {
				align = "R"
			}
			pdf.CellFormat(widths[i], 6, col, "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
