package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/andy/billfold/internal/domain"
)

// WritePDF renders an invoice to a PDF file at the given path.
// Parent directories are created if needed.
func WritePDF(invoice *domain.Invoice, path string) error {
	if invoice == nil {
		return fmt.Errorf("no invoice to export")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(100, 10, "Invoice #"+invoice.ID)
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 10, strings.ToUpper(string(invoice.Status)), "", 1, "R", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Arial", "", 10)
	pdf.Cell(95, 5, "Invoice date: "+invoice.CreatedAt)
	pdf.CellFormat(0, 5, "Due: "+invoice.PaymentDue, "", 1, "R", false, 0, "")
	pdf.Cell(95, 5, "Terms: "+invoice.PaymentTerms)
	pdf.Ln(10)

	writeAddress(pdf, "From", invoice.SenderAddress)
	pdf.Ln(4)
	pdf.SetFont("Arial", "B", 10)
	pdf.Cell(0, 5, "Bill to: "+invoice.ClientName)
	pdf.Ln(5)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 5, invoice.ClientEmail)
	pdf.Ln(5)
	writeAddress(pdf, "", invoice.ClientAddress)
	pdf.Ln(6)

	if invoice.Description != "" {
		pdf.SetFont("Arial", "I", 10)
		pdf.Cell(0, 5, invoice.Description)
		pdf.Ln(8)
	}

	// Item table
	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(235, 235, 235)
	pdf.CellFormat(90, 7, "Item", "1", 0, "L", true, 0, "")
	pdf.CellFormat(25, 7, "Qty", "1", 0, "R", true, 0, "")
	pdf.CellFormat(35, 7, "Price", "1", 0, "R", true, 0, "")
	pdf.CellFormat(35, 7, "Total", "1", 1, "R", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	for _, item := range invoice.Items {
		pdf.CellFormat(90, 7, tr(item.Name), "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, 7, fmt.Sprintf("%g", item.Quantity), "1", 0, "R", false, 0, "")
		pdf.CellFormat(35, 7, tr(money(item.Price)), "1", 0, "R", false, 0, "")
		pdf.CellFormat(35, 7, tr(money(item.LineTotal())), "1", 1, "R", false, 0, "")
	}

	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(150, 9, "Amount due", "1", 0, "L", false, 0, "")
	pdf.CellFormat(35, 9, tr(money(invoice.Total)), "1", 1, "R", false, 0, "")

	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("failed to write PDF: %w", err)
	}

	return nil
}

// DefaultFileName returns the conventional file name for an invoice PDF.
func DefaultFileName(invoiceID string) string {
	return fmt.Sprintf("invoice-%s.pdf", invoiceID)
}

func writeAddress(pdf *gofpdf.Fpdf, label string, addr domain.Address) {
	if label != "" {
		pdf.SetFont("Arial", "B", 10)
		pdf.Cell(0, 5, label)
		pdf.Ln(5)
	}
	pdf.SetFont("Arial", "", 10)
	for _, line := range []string{addr.Street, addr.City + " " + addr.PostCode, addr.Country} {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		pdf.Cell(0, 5, line)
		pdf.Ln(5)
	}
}

// money formats an amount as pounds with comma grouping, e.g. "£1,800.90".
func money(amount float64) string {
	s := fmt.Sprintf("%.2f", amount)

	parts := strings.Split(s, ".")
	intPart := parts[0]

	neg := strings.HasPrefix(intPart, "-")
	if neg {
		intPart = intPart[1:]
	}

	var grouped strings.Builder
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			grouped.WriteByte(',')
		}
		grouped.WriteRune(digit)
	}

	out := "£" + grouped.String() + "." + parts[1]
	if neg {
		out = "-" + out
	}
	return out
}
