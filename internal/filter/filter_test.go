package filter

import (
	"testing"

	"github.com/andy/billfold/internal/domain"
)

func sampleInvoices() []domain.Invoice {
	return []domain.Invoice{
		{ID: "AA1111", Status: domain.InvoiceStatusDraft},
		{ID: "BB2222", Status: domain.InvoiceStatusPending},
		{ID: "CC3333", Status: domain.InvoiceStatusPaid},
		{ID: "DD4444", Status: domain.InvoiceStatus("PAID")},
	}
}

func TestApplyEmptySelection(t *testing.T) {
	f := New()
	in := sampleInvoices()
	out := f.Apply(in)

	if len(out) != len(in) {
		t.Fatalf("expected %d invoices, got %d", len(in), len(out))
	}
	for i := range in {
		if out[i].ID != in[i].ID {
			t.Fatalf("order changed at %d: %s != %s", i, out[i].ID, in[i].ID)
		}
	}
}

func TestApplySingleStatus(t *testing.T) {
	f := New("paid")
	out := f.Apply(sampleInvoices())

	if len(out) != 2 {
		t.Fatalf("expected 2 paid invoices (case-insensitive), got %d", len(out))
	}
	if out[0].ID != "CC3333" || out[1].ID != "DD4444" {
		t.Fatalf("unexpected result order: %s, %s", out[0].ID, out[1].ID)
	}
}

func TestApplyMultipleStatuses(t *testing.T) {
	f := New("draft", "pending")
	out := f.Apply(sampleInvoices())

	if len(out) != 2 {
		t.Fatalf("expected 2 invoices, got %d", len(out))
	}
	if out[0].ID != "AA1111" || out[1].ID != "BB2222" {
		t.Fatalf("unexpected results: %s, %s", out[0].ID, out[1].ID)
	}
}

func TestToggleRemoves(t *testing.T) {
	f := New()
	f.Toggle("paid")
	if !f.IsSelected("paid") {
		t.Fatal("expected paid selected after toggle")
	}
	f.Toggle("Paid")
	if f.IsSelected("paid") {
		t.Fatal("expected paid deselected after second toggle")
	}
	if len(f.Apply(sampleInvoices())) != 4 {
		t.Fatal("cleared selection should pass everything through")
	}
}

func TestClear(t *testing.T) {
	f := New("draft", "paid")
	f.Clear()
	if len(f.Selected()) != 0 {
		t.Fatalf("expected empty selection, got %v", f.Selected())
	}
}
