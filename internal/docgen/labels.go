package docgen

import (
	"bytes"
	"fmt"
	"image/png"

	"kirana-backend/internal/models"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/code128"
	"github.com/go-pdf/fpdf"
)

// Labels renders Code-128 barcode stickers for a set of products, `copies`
// per product, on an A4 sheet laid out 4 labels across.
func Labels(products []models.Product, copies int) ([]byte, error) {
	if copies < 1 {
		copies = 1
	}

	const (
		labelW  = 48.0
		labelH  = 28.0
		marginX = 6.0
		marginY = 10.0
		perRow  = 4
	)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	col, row := 0, 0
	_, pageH := pdf.GetPageSize()

	for _, p := range products {
		img, err := barcodePNG(p.Code)
		if err != nil {
			return nil, fmt.Errorf("barcode for %s: %w", p.Code, err)
		}
		name := fmt.Sprintf("code-%s", p.Code)
		pdf.RegisterImageOptionsReader(name, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(img))

		for i := 0; i < copies; i++ {
			x := marginX + float64(col)*(labelW+2)
			y := marginY + float64(row)*(labelH+2)
			if y+labelH > pageH-marginY {
				pdf.AddPage()
				col, row = 0, 0
				x = marginX
				y = marginY
			}

			pdf.SetFont("Helvetica", "B", 7)
			pdf.SetXY(x, y)
			pdf.CellFormat(labelW, 4, truncate(p.Name, 26), "", 0, "C", false, 0, "")

			pdf.ImageOptions(name, x+4, y+5, labelW-8, 12, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

			pdf.SetFont("Helvetica", "", 7)
			pdf.SetXY(x, y+18)
			pdf.CellFormat(labelW, 3.5, p.Code, "", 0, "C", false, 0, "")
			pdf.SetXY(x, y+22)
			pdf.SetFont("Helvetica", "B", 8)
			pdf.CellFormat(labelW, 4, fmt.Sprintf("MRP %.2f", p.MRPPrice), "", 0, "C", false, 0, "")

			col++
			if col == perRow {
				col = 0
				row++
			}
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func barcodePNG(code string) ([]byte, error) {
	bc, err := code128.Encode(code)
	if err != nil {
		return nil, err
	}
	scaled, err := barcode.Scale(bc, 400, 120)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, scaled); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
