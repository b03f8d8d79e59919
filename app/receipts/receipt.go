// Package receipts renders the PDF receipt ("Comprobante de Venta") of a
// sale.
package receipts

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/shashiranjanraj/ventas/app/models"
)

// Filename is the download name of a sale's receipt.
func Filename(id uint) string { return fmt.Sprintf("venta-%d.pdf", id) }

// ArchivePath is where a receipt is stored on the storage disk.
func ArchivePath(id uint) string { return "receipts/" + Filename(id) }

// Renderer builds receipt documents.
type Renderer struct {
	// Issuer is printed in the header, usually the app name.
	Issuer string
	// Uncompressed leaves content streams readable; tests grep them.
	Uncompressed bool
	now          func() time.Time
}

func NewRenderer(issuer string) *Renderer {
	return &Renderer{Issuer: issuer, now: time.Now}
}

// Render returns the PDF bytes for sale.
func (r *Renderer) Render(sale models.Sale) ([]byte, error) {
	now := time.Now
	if r.now != nil {
		now = r.now
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	// Core fonts are cp1252; translate so accents render.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetCompression(!r.Uncompressed)
	pdf.SetTitle(tr(fmt.Sprintf("Comprobante de Venta #%d", sale.ID)), false)
	pdf.SetAuthor(tr(r.Issuer), false)
	pdf.SetCreationDate(now())
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 12, tr("Comprobante de Venta"), "", 1, "C", false, 0, "")
	if r.Issuer != "" {
		pdf.SetFont("Helvetica", "", 11)
		pdf.CellFormat(0, 7, tr(r.Issuer), "", 1, "C", false, 0, "")
	}
	pdf.Ln(6)

	rows := [][2]string{
		{"Venta N.", fmt.Sprintf("%d", sale.ID)},
		{"Fecha", sale.CreatedAt.Format("02/01/2006 15:04")},
		{"Vendedor", sale.Seller},
		{"Cliente", sale.Customer},
		{"Forma de pago", sale.Payment},
	}

	pdf.SetFillColor(240, 240, 240)
	for _, row := range rows {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(50, 9, tr(row[0]), "1", 0, "L", true, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		pdf.CellFormat(0, 9, tr(row[1]), "1", 1, "L", false, 0, "")
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(50, 10, "Total", "1", 0, "L", true, 0, "")
	pdf.CellFormat(0, 10, fmt.Sprintf("$ %.2f", sale.Total), "1", 1, "R", false, 0, "")

	pdf.Ln(10)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.CellFormat(0, 5, tr("Generado el "+now().Format("02/01/2006 15:04")), "", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("receipts: render sale %d: %w", sale.ID, err)
	}
	return buf.Bytes(), nil
}
