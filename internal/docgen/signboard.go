package docgen

import (
	"bytes"
	"fmt"

	"kirana-backend/internal/models"

	"github.com/go-pdf/fpdf"
)

// Signboard renders a large-print A4 price card for a single product, meant
// for shelf or window display.
func Signboard(p models.Product, business models.BusinessDetails) ([]byte, error) {
	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.AddPage()
	pageW, _ := pdf.GetPageSize()

	if business.Name != "" {
		pdf.SetFont("Helvetica", "", 14)
		pdf.SetY(20)
		pdf.CellFormat(pageW-20, 8, business.Name, "", 1, "C", false, 0, "")
	}

	pdf.SetFont("Helvetica", "B", 40)
	pdf.SetY(55)
	pdf.CellFormat(pageW-20, 18, p.Name, "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "B", 80)
	pdf.SetY(90)
	pdf.CellFormat(pageW-20, 35, fmt.Sprintf("Rs. %.2f", p.SellingPrice), "", 1, "C", false, 0, "")

	if p.MRPPrice > p.SellingPrice {
		pdf.SetFont("Helvetica", "", 20)
		pdf.SetY(135)
		pdf.CellFormat(pageW-20, 10, fmt.Sprintf("MRP Rs. %.2f", p.MRPPrice), "", 1, "C", false, 0, "")
	}

	pdf.SetFont("Helvetica", "", 12)
	pdf.SetY(165)
	pdf.CellFormat(pageW-20, 8, p.Code, "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
