package domain

import (
	"regexp"
	"testing"
)

func TestCalculateTotal(t *testing.T) {
	inv := NewInvoice("")
	inv.Items = []InvoiceItem{
		{Name: "Design", Quantity: 2, Price: 50},
		{Name: "Hosting", Quantity: 3, Price: 12.5},
	}
	inv.CalculateTotal()

	if inv.Total != 137.5 {
		t.Fatalf("expected total 137.5, got %v", inv.Total)
	}

	inv.Items = inv.Items[:1]
	inv.CalculateTotal()
	if inv.Total != 100 {
		t.Fatalf("expected total 100 after removal, got %v", inv.Total)
	}
}

func TestCalculateTotalEmptyItems(t *testing.T) {
	inv := &Invoice{Total: 42}
	inv.CalculateTotal()
	if inv.Total != 0 {
		t.Fatalf("expected total 0 for no items, got %v", inv.Total)
	}
}

func TestNewInvoiceTemplate(t *testing.T) {
	inv := NewInvoice("")

	if inv.Status != InvoiceStatusDraft {
		t.Errorf("expected draft status, got %s", inv.Status)
	}
	if inv.PaymentTerms != DefaultPaymentTerms {
		t.Errorf("expected default terms, got %q", inv.PaymentTerms)
	}
	if len(inv.Items) != 1 {
		t.Fatalf("expected one blank item, got %d", len(inv.Items))
	}
	if inv.Items[0].Quantity != 1 || inv.Items[0].Price != 0 {
		t.Errorf("blank item should have quantity 1 and price 0, got %+v", inv.Items[0])
	}
	if inv.PaymentDue != "" {
		t.Errorf("expected empty due date without creation date, got %q", inv.PaymentDue)
	}
}

func TestNewInvoiceIDPattern(t *testing.T) {
	pattern := regexp.MustCompile(`^[A-Z]{2}[0-9]{4}$`)
	for i := 0; i < 100; i++ {
		id := NewInvoiceID()
		if !pattern.MatchString(id) {
			t.Fatalf("id %q does not match [A-Z]{2}[0-9]{4}", id)
		}
	}
}

func TestTermDays(t *testing.T) {
	tests := []struct {
		terms string
		want  int
	}{
		{"Net 1 Day", 1},
		{"Net 7 Days", 7},
		{"Net 14 Days", 14},
		{"Net 30 Days", 30},
		{"whenever", 30},
		{"", 30},
	}
	for _, tt := range tests {
		if got := TermDays(tt.terms); got != tt.want {
			t.Errorf("TermDays(%q) = %d, want %d", tt.terms, got, tt.want)
		}
	}
}

func TestDueDate(t *testing.T) {
	if got := DueDate("2024-01-01", "Net 7 Days"); got != "2024-01-08" {
		t.Errorf("expected 2024-01-08, got %q", got)
	}
	if got := DueDate("2024-01-01", "Net 30 Days"); got != "2024-01-31" {
		t.Errorf("expected 2024-01-31, got %q", got)
	}
	// Month rollover
	if got := DueDate("2024-02-15", "Net 30 Days"); got != "2024-03-16" {
		t.Errorf("expected 2024-03-16, got %q", got)
	}
	if got := DueDate("", "Net 30 Days"); got != "" {
		t.Errorf("expected empty due date for empty creation date, got %q", got)
	}
	if got := DueDate("not-a-date", "Net 30 Days"); got != "" {
		t.Errorf("expected empty due date for invalid creation date, got %q", got)
	}
}

func TestStatusLabel(t *testing.T) {
	if got := InvoiceStatusPending.Label(); got != "Pending" {
		t.Errorf("expected Pending, got %q", got)
	}
	if got := InvoiceStatus("PAID").Label(); got != "Paid" {
		t.Errorf("expected Paid, got %q", got)
	}
	if InvoiceStatus("archived").Known() {
		t.Error("archived should not be a known status")
	}
}

func validInvoice() *Invoice {
	return &Invoice{
		ID:          "AB1234",
		CreatedAt:   "2024-01-01",
		PaymentDue:  "2024-01-31",
		Description: "Website redesign",
		ClientName:  "Alex Grim",
		ClientEmail: "client@example.com",
		Status:      InvoiceStatusPending,
		SenderAddress: Address{
			Street: "19 Union Terrace", City: "London", PostCode: "E1 3EZ", Country: "United Kingdom",
		},
		ClientAddress: Address{
			Street: "84 Church Way", City: "Bradford", PostCode: "BD1 9PB", Country: "United Kingdom",
		},
		Items: []InvoiceItem{{Name: "Design", Quantity: 2, Price: 50}},
		Total: 100,
	}
}

func TestValidateInvoiceValid(t *testing.T) {
	if fe := ValidateInvoice(validInvoice()); fe.Any() {
		t.Fatalf("expected valid invoice, got errors: %+v", fe)
	}
}

func TestValidateInvoiceEmptyEmail(t *testing.T) {
	inv := validInvoice()
	inv.ClientEmail = ""
	fe := ValidateInvoice(inv)
	if fe.ClientEmail != "can't be empty" {
		t.Fatalf("expected empty-email error, got %q", fe.ClientEmail)
	}
}

func TestValidateInvoiceBadEmail(t *testing.T) {
	inv := validInvoice()
	inv.ClientEmail = "not-an-email"
	fe := ValidateInvoice(inv)
	if fe.ClientEmail != "must be a valid email" {
		t.Fatalf("expected invalid-email error, got %q", fe.ClientEmail)
	}
}

func TestValidateInvoiceBadDate(t *testing.T) {
	inv := validInvoice()
	inv.CreatedAt = "whenever"
	fe := ValidateInvoice(inv)
	if fe.CreatedAt != "must be a valid date" {
		t.Fatalf("expected invalid-date error, got %q", fe.CreatedAt)
	}

	inv.CreatedAt = ""
	fe = ValidateInvoice(inv)
	if fe.CreatedAt != "can't be empty" {
		t.Fatalf("expected empty-date error, got %q", fe.CreatedAt)
	}
}

func TestValidateInvoiceMissingAddresses(t *testing.T) {
	inv := validInvoice()
	inv.SenderAddress = Address{}
	inv.ClientAddress.City = ""
	fe := ValidateInvoice(inv)

	if fe.SenderAddress.Street == "" || fe.SenderAddress.City == "" ||
		fe.SenderAddress.PostCode == "" || fe.SenderAddress.Country == "" {
		t.Errorf("expected all sender address fields flagged: %+v", fe.SenderAddress)
	}
	if fe.ClientAddress.City == "" {
		t.Errorf("expected client city flagged")
	}
	if fe.ClientAddress.Street != "" {
		t.Errorf("client street should not be flagged")
	}
}

func TestValidateInvoiceItemRules(t *testing.T) {
	inv := validInvoice()
	inv.Items = []InvoiceItem{
		{Name: "", Quantity: 1, Price: 10},
		{Name: "ok", Quantity: 0, Price: 10},
		{Name: "ok", Quantity: 1, Price: 0},
	}
	fe := ValidateInvoice(inv)

	if len(fe.Items) != 3 {
		t.Fatalf("expected 3 item error slots, got %d", len(fe.Items))
	}
	if !fe.Items[0].Name || fe.Items[0].Quantity || fe.Items[0].Price {
		t.Errorf("item 0: expected only name flagged, got %+v", fe.Items[0])
	}
	if !fe.Items[1].Quantity {
		t.Errorf("item 1: expected quantity flagged, got %+v", fe.Items[1])
	}
	if !fe.Items[2].Price {
		t.Errorf("item 2: expected price flagged, got %+v", fe.Items[2])
	}
}

func TestValidateInvoiceEmptyItemList(t *testing.T) {
	inv := validInvoice()
	inv.Items = nil
	fe := ValidateInvoice(inv)
	if fe.ItemList == "" {
		t.Fatal("expected item-list error for empty items")
	}
}
