package export

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/andy/billfold/internal/domain"
)

func TestWritePDF(t *testing.T) {
	inv := &domain.Invoice{
		ID:           "RT3080",
		CreatedAt:    "2024-08-18",
		PaymentDue:   "2024-09-17",
		Description:  "Re-branding",
		PaymentTerms: "Net 30 Days",
		ClientName:   "Jensen Huang",
		ClientEmail:  "jensenh@mail.com",
		Status:       domain.InvoiceStatusPending,
		SenderAddress: domain.Address{
			Street: "19 Union Terrace", City: "London", PostCode: "E1 3EZ", Country: "United Kingdom",
		},
		ClientAddress: domain.Address{
			Street: "106 Kendell Street", City: "Sharrington", PostCode: "NR24 5WQ", Country: "United Kingdom",
		},
		Items: []domain.InvoiceItem{
			{Name: "Brand Guidelines", Quantity: 1, Price: 1800.90},
		},
		Total: 1800.90,
	}

	path := filepath.Join(t.TempDir(), "out", "invoice-RT3080.pdf")
	if err := WritePDF(inv, path); err != nil {
		t.Fatalf("WritePDF() error = %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("expected PDF file at %s: %v", path, err)
	}
	if info.Size() == 0 {
		t.Error("PDF file is empty")
	}
}

func TestWritePDFNilInvoice(t *testing.T) {
	if err := WritePDF(nil, filepath.Join(t.TempDir(), "x.pdf")); err == nil {
		t.Error("expected error for nil invoice")
	}
}

func TestDefaultFileName(t *testing.T) {
	if got := DefaultFileName("RT3080"); got != "invoice-RT3080.pdf" {
		t.Errorf("DefaultFileName() = %q", got)
	}
}

func TestMoneyFormatting(t *testing.T) {
	tests := []struct {
		amount float64
		want   string
	}{
		{0, "£0.00"},
		{556, "£556.00"},
		{1800.9, "£1,800.90"},
		{1234567.89, "£1,234,567.89"},
	}
	for _, tt := range tests {
		if got := money(tt.amount); got != tt.want {
			t.Errorf("money(%v) = %q, want %q", tt.amount, got, tt.want)
		}
	}
}
