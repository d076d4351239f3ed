package form

import (
	"errors"
	"regexp"
	"testing"

	"github.com/andy/billfold/internal/domain"
)

// fillValid populates every required field of a create-phase form
func fillValid(t *testing.T, f *Form) {
	t.Helper()
	for _, field := range []string{"street", "city", "postCode", "country"} {
		if err := f.SetAddressField(SectionSender, field, "x"); err != nil {
			t.Fatalf("set sender %s: %v", field, err)
		}
		if err := f.SetAddressField(SectionClient, field, "x"); err != nil {
			t.Fatalf("set client %s: %v", field, err)
		}
	}
	f.SetField("clientName", "Alex Grim")
	f.SetField("clientEmail", "client@example.com")
	f.SetField("createdAt", "2024-01-01")
	f.SetField("description", "Website redesign")
	f.SetItem(0, "name", "Design")
	f.SetItem(0, "quantity", "2")
	f.SetItem(0, "price", "50")
}

func TestNewSeeding(t *testing.T) {
	f := New("")
	inv := f.Invoice()

	if !regexp.MustCompile(`^[A-Z]{2}[0-9]{4}$`).MatchString(inv.ID) {
		t.Errorf("generated id %q does not match pattern", inv.ID)
	}
	if inv.PaymentTerms != "Net 30 Days" {
		t.Errorf("expected default terms, got %q", inv.PaymentTerms)
	}
	if len(inv.Items) != 1 || inv.Items[0].Quantity != 1 || inv.Items[0].Price != 0 {
		t.Errorf("expected one blank item, got %+v", inv.Items)
	}
}

func TestTotalRecomputedOnItemEdits(t *testing.T) {
	f := New("")
	f.SetItem(0, "name", "Design")
	f.SetItem(0, "quantity", "2")
	f.SetItem(0, "price", "50")

	if got := f.Invoice().Total; got != 100 {
		t.Fatalf("expected total 100, got %v", got)
	}

	f.AddItem()
	f.SetItem(1, "quantity", "4")
	f.SetItem(1, "price", "2.5")
	if got := f.Invoice().Total; got != 110 {
		t.Fatalf("expected total 110, got %v", got)
	}

	if err := f.RemoveItem(0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := f.Invoice().Total; got != 10 {
		t.Fatalf("expected total 10 after removal, got %v", got)
	}
}

func TestSetItemRejectsNonNumeric(t *testing.T) {
	f := New("")
	f.SetItem(0, "quantity", "3")
	f.SetItem(0, "price", "10")

	err := f.SetItem(0, "quantity", "lots")
	if !errors.Is(err, ErrInvalidNumber) {
		t.Fatalf("expected ErrInvalidNumber, got %v", err)
	}

	// The rejected edit must not disturb the stored value or the total
	inv := f.Invoice()
	if inv.Items[0].Quantity != 3 {
		t.Errorf("quantity changed by rejected edit: %v", inv.Items[0].Quantity)
	}
	if inv.Total != 30 {
		t.Errorf("total changed by rejected edit: %v", inv.Total)
	}
}

func TestRemoveLastItemRejected(t *testing.T) {
	f := New("")
	if err := f.RemoveItem(0); !errors.Is(err, ErrLastItem) {
		t.Fatalf("expected ErrLastItem, got %v", err)
	}
	if f.ItemCount() != 1 {
		t.Fatalf("item list dropped below 1: %d", f.ItemCount())
	}
}

func TestSetPaymentTermsRecomputesDueDate(t *testing.T) {
	f := New("")
	f.SetField("createdAt", "2024-01-01")

	f.SetPaymentTerms("Net 30 Days")
	if due := f.Invoice().PaymentDue; due != "2024-01-31" {
		t.Fatalf("expected 2024-01-31, got %q", due)
	}

	f.SetPaymentTerms("Net 7 Days")
	if due := f.Invoice().PaymentDue; due != "2024-01-08" {
		t.Fatalf("expected 2024-01-08, got %q", due)
	}
}

func TestSetPaymentTermsWithoutCreationDate(t *testing.T) {
	f := New("")
	f.SetPaymentTerms("Net 7 Days")
	if due := f.Invoice().PaymentDue; due != "" {
		t.Fatalf("expected empty due date, got %q", due)
	}
}

func TestSubmitEmptyEmailRejected(t *testing.T) {
	f := New("")
	fillValid(t, f)
	f.SetField("clientEmail", "")

	inv, err := f.Submit(false)
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if inv != nil {
		t.Fatal("no invoice should be produced on failed validation")
	}
	if got := f.Errors().ClientEmail; got != "can't be empty" {
		t.Fatalf("expected \"can't be empty\" on clientEmail, got %q", got)
	}
	if f.FirstInvalid() != "clientEmail" {
		t.Fatalf("expected focus on clientEmail, got %q", f.FirstInvalid())
	}
}

func TestSubmitDraftSkipsValidation(t *testing.T) {
	f := New("")

	inv, err := f.Submit(true)
	if err != nil {
		t.Fatalf("draft submit must not validate: %v", err)
	}
	if inv.Status != domain.InvoiceStatusDraft {
		t.Fatalf("expected draft status, got %s", inv.Status)
	}
	if f.Errors().Any() {
		t.Fatal("draft submit must clear errors")
	}
}

func TestSubmitValidNewInvoice(t *testing.T) {
	f := New("")
	fillValid(t, f)

	inv, err := f.Submit(false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inv.Status != domain.InvoiceStatusPending {
		t.Errorf("new invoice should become pending, got %s", inv.Status)
	}
	if inv.Total != 100 {
		t.Errorf("expected total 100, got %v", inv.Total)
	}
	if inv.PaymentDue != "2024-01-31" {
		t.Errorf("expected due 2024-01-31, got %q", inv.PaymentDue)
	}
}

func TestSubmitEditPreservesStatus(t *testing.T) {
	f := New("")
	fillValid(t, f)
	saved, err := f.Submit(false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	saved.Status = domain.InvoiceStatusPaid

	edit := Edit(*saved)
	edit.SetField("description", "Amended description")
	inv, err := edit.Submit(false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inv.Status != domain.InvoiceStatusPaid {
		t.Fatalf("edit must preserve existing status, got %s", inv.Status)
	}
	if inv.Description != "Amended description" {
		t.Fatalf("edit lost field update: %q", inv.Description)
	}
}

func TestEditDoesNotAliasSourceItems(t *testing.T) {
	src := *domain.NewInvoice("")
	src.Items = []domain.InvoiceItem{{Name: "Design", Quantity: 2, Price: 50}}

	f := Edit(src)
	f.SetItem(0, "price", "75")

	if src.Items[0].Price != 50 {
		t.Fatalf("editing the form mutated the source invoice: %v", src.Items[0].Price)
	}
}

func TestFirstInvalidOrder(t *testing.T) {
	f := New("")
	_, err := f.Submit(false)
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation failure, got %v", err)
	}
	if got := f.FirstInvalid(); got != "senderAddress.street" {
		t.Fatalf("expected first invalid senderAddress.street, got %q", got)
	}
}
