package repository

import (
	"context"
	"time"

	"github.com/andy/billfold/internal/domain"
)

// Draft is a locally stashed invoice that has not been sent to the server.
type Draft struct {
	InvoiceID string
	Invoice   *domain.Invoice
	UpdatedAt time.Time
}

// DraftRepository manages locally stashed invoice drafts
type DraftRepository interface {
	Save(ctx context.Context, invoice *domain.Invoice) error
	Get(ctx context.Context, invoiceID string) (*Draft, error)
	List(ctx context.Context) ([]*Draft, error)
	Delete(ctx context.Context, invoiceID string) error
	Clear(ctx context.Context) error
}
