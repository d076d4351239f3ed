package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/andy/billfold/internal/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestList(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/invoices" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		json.NewEncoder(w).Encode([]domain.Invoice{
			{ID: "AB1234", Status: domain.InvoiceStatusPending, Total: 100},
		})
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second, discardLogger())
	invoices, err := c.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(invoices) != 1 || invoices[0].ID != "AB1234" {
		t.Fatalf("unexpected result: %+v", invoices)
	}
}

func TestGetNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second, discardLogger())
	_, err := c.Get(context.Background(), "ZZ9999")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCreateSendsWireShape(t *testing.T) {
	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/invoices" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(domain.Invoice{ID: "AB1234"})
	}))
	defer srv.Close()

	inv := domain.NewInvoice("")
	inv.ClientName = "Alex Grim"
	inv.Items = []domain.InvoiceItem{{Name: "Design", Quantity: 2, Price: 50}}
	inv.CalculateTotal()

	c := New(srv.URL, time.Second, discardLogger())
	created, err := c.Create(context.Background(), inv)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID != "AB1234" {
		t.Fatalf("expected created invoice back, got %+v", created)
	}

	for _, field := range []string{"id", "createdAt", "paymentDue", "paymentTerms", "clientName", "clientEmail", "status", "senderAddress", "clientAddress", "items", "total"} {
		if _, ok := body[field]; !ok {
			t.Errorf("wire body missing field %q", field)
		}
	}
	if body["total"].(float64) != 100 {
		t.Errorf("expected total 100 on the wire, got %v", body["total"])
	}
	items := body["items"].([]any)
	item := items[0].(map[string]any)
	if _, ok := item["total"]; ok {
		t.Error("per-item total must not be serialized")
	}
}

func TestUpdateStatusPartialBody(t *testing.T) {
	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/invoices/AB1234" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&body)
		json.NewEncoder(w).Encode(domain.Invoice{ID: "AB1234", Status: domain.InvoiceStatusPaid})
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second, discardLogger())
	updated, err := c.UpdateStatus(context.Background(), "AB1234", domain.InvoiceStatusPaid)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Status != domain.InvoiceStatusPaid {
		t.Fatalf("expected paid status, got %s", updated.Status)
	}
	if len(body) != 1 || body["status"] != "paid" {
		t.Fatalf("expected partial body {status: paid}, got %v", body)
	}
}

func TestDelete(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		if r.Method != http.MethodDelete || r.URL.Path != "/invoices/AB1234" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second, discardLogger())
	if err := c.Delete(context.Background(), "AB1234"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !called {
		t.Fatal("expected DELETE request")
	}
}

func TestServerErrorSurfacesStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second, discardLogger())
	_, err := c.List(context.Background())

	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("expected StatusError, got %v", err)
	}
	if se.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", se.Code)
	}
}

func TestContextCancellation(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	defer srv.Close()
	defer close(block)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := New(srv.URL, time.Second, discardLogger())
	if _, err := c.List(ctx); err == nil {
		t.Fatal("expected error from cancelled context")
	}
}
