package docgen

import (
	"bytes"
	"fmt"

	"kirana-backend/internal/models"

	"github.com/go-pdf/fpdf"
)

// Invoice renders a bill as a thermal-printer PDF. The page width follows
// the configured paper width (58 or 80 mm); the height is oversized and the
// printer cuts at the end of the content.
func Invoice(bill models.Bill, settings models.AppSettings) ([]byte, error) {
	width := float64(settings.Bill.PaperWidth)
	if width <= 0 {
		width = 80
	}

	pdf := fpdf.NewCustom(&fpdf.InitType{
		UnitStr: "mm",
		Size:    fpdf.SizeType{Wd: width, Ht: 300},
	})
	pdf.SetMargins(4, 4, 4)
	pdf.SetAutoPageBreak(true, 4)
	pdf.AddPage()

	usable := width - 8

	pdf.SetFont("Helvetica", "B", 11)
	name := settings.Business.Name
	if name == "" {
		name = "Retail Store"
	}
	pdf.CellFormat(usable, 5, name, "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	if settings.Bill.ShowBusinessAddress && settings.Business.Address != "" {
		pdf.MultiCell(usable, 3.5, fmt.Sprintf("%s, %s %s",
			settings.Business.Address, settings.Business.City, settings.Business.PostalCode), "", "C", false)
	}
	if settings.Business.Phone != "" {
		pdf.CellFormat(usable, 3.5, "Ph: "+settings.Business.Phone, "", 1, "C", false, 0, "")
	}
	if settings.Bill.ShowGSTIN && settings.Business.GSTIN != "" {
		pdf.CellFormat(usable, 3.5, "GSTIN: "+settings.Business.GSTIN, "", 1, "C", false, 0, "")
	}
	divider(pdf, usable)

	title := "TAX INVOICE"
	if bill.IsReturn {
		title = "RETURN / CREDIT NOTE"
	}
	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(usable, 4, title, "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	pdf.CellFormat(usable, 3.5, "Bill: "+bill.BillID, "", 1, "L", false, 0, "")
	pdf.CellFormat(usable, 3.5, "Date: "+bill.Date.Format("02 Jan 2006 15:04"), "", 1, "L", false, 0, "")
	if bill.IsReturn && bill.OriginalBillID != "" {
		pdf.CellFormat(usable, 3.5, "Original: "+bill.OriginalBillID, "", 1, "L", false, 0, "")
	}
	if bill.CustomerName != "" {
		pdf.CellFormat(usable, 3.5, "Customer: "+bill.CustomerName, "", 1, "L", false, 0, "")
	}
	divider(pdf, usable)

	nameW := usable * 0.46
	qtyW := usable * 0.12
	priceW := usable * 0.20
	totalW := usable * 0.22

	pdf.SetFont("Helvetica", "B", 7)
	pdf.CellFormat(nameW, 4, "Item", "", 0, "L", false, 0, "")
	pdf.CellFormat(qtyW, 4, "Qty", "", 0, "R", false, 0, "")
	pdf.CellFormat(priceW, 4, "Rate", "", 0, "R", false, 0, "")
	pdf.CellFormat(totalW, 4, "Amount", "", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	for _, item := range bill.Items {
		pdf.CellFormat(nameW, 3.5, truncate(item.ProductName, 20), "", 0, "L", false, 0, "")
		pdf.CellFormat(qtyW, 3.5, fmt.Sprintf("%d", item.Quantity), "", 0, "R", false, 0, "")
		pdf.CellFormat(priceW, 3.5, fmt.Sprintf("%.2f", item.Price), "", 0, "R", false, 0, "")
		pdf.CellFormat(totalW, 3.5, fmt.Sprintf("%.2f", item.TotalPrice), "", 1, "R", false, 0, "")
	}
	divider(pdf, usable)

	labelW := usable * 0.6
	valueW := usable * 0.4
	row := func(label, value string, bold bool) {
		style := ""
		if bold {
			style = "B"
		}
		pdf.SetFont("Helvetica", style, 7)
		pdf.CellFormat(labelW, 3.5, label, "", 0, "L", false, 0, "")
		pdf.CellFormat(valueW, 3.5, value, "", 1, "R", false, 0, "")
	}
	row("Subtotal", fmt.Sprintf("%.2f", bill.Subtotal), false)
	row(fmt.Sprintf("GST (%.1f%%)", bill.GSTPercentage), fmt.Sprintf("%.2f", bill.Tax), false)
	row("TOTAL", fmt.Sprintf("%.2f", bill.Total), true)
	row("Paid by", string(bill.PaymentMethod), false)

	if settings.Bill.ShowFooterText && settings.Bill.FooterText != "" {
		divider(pdf, usable)
		pdf.SetFont("Helvetica", "I", 7)
		pdf.MultiCell(usable, 3.5, settings.Bill.FooterText, "", "C", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func divider(pdf *fpdf.Fpdf, usable float64) {
	pdf.Ln(1)
	x, y := pdf.GetXY()
	pdf.Line(x, y, x+usable, y)
	pdf.Ln(1.5)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "."
}
