package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/andy/billfold/internal/api"
	"github.com/andy/billfold/internal/domain"
)

var (
	ErrAlreadyPaid = errors.New("invoice is already paid")
	ErrNoID        = errors.New("invoice has no id")
)

// InvoiceService sits between the views and the invoice API. It enforces
// the single source of truth for totals and converts transport failures
// into messages the views can show directly.
type InvoiceService interface {
	// ListInvoices fetches all invoices from the service
	ListInvoices(ctx context.Context) ([]domain.Invoice, error)

	// GetInvoice fetches one invoice by display id
	GetInvoice(ctx context.Context, id string) (*domain.Invoice, error)

	// GetItems fetches the line items of one invoice
	GetItems(ctx context.Context, id string) ([]domain.InvoiceItem, error)

	// SaveNew creates an invoice produced by the form
	SaveNew(ctx context.Context, inv *domain.Invoice) (*domain.Invoice, error)

	// SaveEdit replaces an existing invoice with the edited copy
	SaveEdit(ctx context.Context, inv *domain.Invoice) (*domain.Invoice, error)

	// MarkPaid issues a partial status update setting status to paid
	MarkPaid(ctx context.Context, id string) (*domain.Invoice, error)

	// DeleteInvoice removes an invoice. The caller must have confirmed.
	DeleteInvoice(ctx context.Context, id string) error
}

type invoiceService struct {
	invoices api.Invoices
	log      *slog.Logger
}

// NewInvoiceService creates a new invoice service
func NewInvoiceService(invoices api.Invoices, log *slog.Logger) InvoiceService {
	if log == nil {
		log = slog.Default()
	}
	return &invoiceService{invoices: invoices, log: log}
}

func (s *invoiceService) ListInvoices(ctx context.Context) ([]domain.Invoice, error) {
	invoices, err := s.invoices.List(ctx)
	if err != nil {
		s.log.Error("list invoices", "error", err)
		return nil, fmt.Errorf("failed to fetch invoices: %w", err)
	}
	return invoices, nil
}

func (s *invoiceService) GetInvoice(ctx context.Context, id string) (*domain.Invoice, error) {
	inv, err := s.invoices.Get(ctx, id)
	if err != nil {
		s.log.Error("get invoice", "id", id, "error", err)
		return nil, fmt.Errorf("failed to fetch invoice: %w", err)
	}
	return inv, nil
}

func (s *invoiceService) GetItems(ctx context.Context, id string) ([]domain.InvoiceItem, error) {
	items, err := s.invoices.Items(ctx, id)
	if err != nil {
		s.log.Error("get invoice items", "id", id, "error", err)
		return nil, fmt.Errorf("failed to fetch invoice items: %w", err)
	}
	return items, nil
}

func (s *invoiceService) SaveNew(ctx context.Context, inv *domain.Invoice) (*domain.Invoice, error) {
	// The total is derived; never trust a stale value from the caller
	inv.CalculateTotal()

	created, err := s.invoices.Create(ctx, inv)
	if err != nil {
		s.log.Error("create invoice", "id", inv.ID, "error", err)
		return nil, fmt.Errorf("failed to save invoice: %w", err)
	}
	s.log.Info("invoice created", "id", created.ID, "status", created.Status, "total", created.Total)
	return created, nil
}

func (s *invoiceService) SaveEdit(ctx context.Context, inv *domain.Invoice) (*domain.Invoice, error) {
	if inv.ID == "" {
		return nil, ErrNoID
	}
	inv.CalculateTotal()

	updated, err := s.invoices.Update(ctx, inv.ID, inv)
	if err != nil {
		s.log.Error("update invoice", "id", inv.ID, "error", err)
		return nil, fmt.Errorf("failed to save invoice: %w", err)
	}
	s.log.Info("invoice updated", "id", updated.ID, "total", updated.Total)
	return updated, nil
}

func (s *invoiceService) MarkPaid(ctx context.Context, id string) (*domain.Invoice, error) {
	inv, err := s.invoices.Get(ctx, id)
	if err != nil {
		s.log.Error("get invoice for mark-paid", "id", id, "error", err)
		return nil, fmt.Errorf("failed to fetch invoice: %w", err)
	}
	if inv.Status == domain.InvoiceStatusPaid {
		return nil, ErrAlreadyPaid
	}

	updated, err := s.invoices.UpdateStatus(ctx, id, domain.InvoiceStatusPaid)
	if err != nil {
		s.log.Error("mark invoice paid", "id", id, "error", err)
		return nil, fmt.Errorf("failed to mark invoice as paid: %w", err)
	}
	s.log.Info("invoice marked paid", "id", id)
	return updated, nil
}

func (s *invoiceService) DeleteInvoice(ctx context.Context, id string) error {
	if err := s.invoices.Delete(ctx, id); err != nil {
		s.log.Error("delete invoice", "id", id, "error", err)
		return fmt.Errorf("failed to delete invoice: %w", err)
	}
	s.log.Info("invoice deleted", "id", id)
	return nil
}
