package repository

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/andy/billfold/internal/db"
	"github.com/andy/billfold/internal/domain"
)

func openTestDB(t *testing.T) *db.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "drafts.db")
	database, err := db.Open(path, "test-key")
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	if err := database.RunMigrations(); err != nil {
		t.Fatalf("run migrations: %v", err)
	}
	return database
}

func testInvoice(id string) *domain.Invoice {
	return &domain.Invoice{
		ID:           id,
		CreatedAt:    "2024-08-18",
		PaymentDue:   "2024-09-17",
		Description:  "Re-branding",
		PaymentTerms: "Net 30 Days",
		ClientName:   "Jensen Huang",
		ClientEmail:  "jensenh@mail.com",
		Status:       domain.InvoiceStatusDraft,
		Items: []domain.InvoiceItem{
			{Name: "Brand Guidelines", Quantity: 1, Price: 1800.90},
		},
		Total: 1800.90,
	}
}

func TestDraftRoundTrip(t *testing.T) {
	repo := NewDraftRepo(openTestDB(t))
	ctx := context.Background()

	inv := testInvoice("RT3080")
	if err := repo.Save(ctx, inv); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	draft, err := repo.Get(ctx, "RT3080")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if draft.Invoice.ClientName != "Jensen Huang" {
		t.Errorf("ClientName = %q", draft.Invoice.ClientName)
	}
	if len(draft.Invoice.Items) != 1 || draft.Invoice.Items[0].Price != 1800.90 {
		t.Errorf("items not preserved: %+v", draft.Invoice.Items)
	}
}

func TestDraftSaveOverwrites(t *testing.T) {
	repo := NewDraftRepo(openTestDB(t))
	ctx := context.Background()

	inv := testInvoice("RT3080")
	if err := repo.Save(ctx, inv); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	inv.Description = "Re-branding phase two"
	if err := repo.Save(ctx, inv); err != nil {
		t.Fatalf("second Save() error = %v", err)
	}

	draft, err := repo.Get(ctx, "RT3080")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if draft.Invoice.Description != "Re-branding phase two" {
		t.Errorf("Description = %q", draft.Invoice.Description)
	}

	drafts, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(drafts) != 1 {
		t.Errorf("expected 1 draft after overwrite, got %d", len(drafts))
	}
}

func TestDraftSaveRequiresID(t *testing.T) {
	repo := NewDraftRepo(openTestDB(t))

	inv := testInvoice("")
	if err := repo.Save(context.Background(), inv); err == nil {
		t.Error("expected error for empty invoice ID")
	}
}

func TestDraftGetNotFound(t *testing.T) {
	repo := NewDraftRepo(openTestDB(t))

	_, err := repo.Get(context.Background(), "XX0000")
	if !errors.Is(err, ErrDraftNotFound) {
		t.Errorf("expected ErrDraftNotFound, got %v", err)
	}
}

func TestDraftDeleteAndClear(t *testing.T) {
	repo := NewDraftRepo(openTestDB(t))
	ctx := context.Background()

	for _, id := range []string{"AA1111", "BB2222", "CC3333"} {
		if err := repo.Save(ctx, testInvoice(id)); err != nil {
			t.Fatalf("Save(%s) error = %v", id, err)
		}
	}

	if err := repo.Delete(ctx, "BB2222"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if err := repo.Delete(ctx, "BB2222"); !errors.Is(err, ErrDraftNotFound) {
		t.Errorf("second delete: expected ErrDraftNotFound, got %v", err)
	}

	drafts, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(drafts) != 2 {
		t.Fatalf("expected 2 drafts, got %d", len(drafts))
	}

	if err := repo.Clear(ctx); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	drafts, err = repo.List(ctx)
	if err != nil {
		t.Fatalf("List() after clear error = %v", err)
	}
	if len(drafts) != 0 {
		t.Errorf("expected no drafts after clear, got %d", len(drafts))
	}
}
