package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/andy/billfold/internal/db"
	"github.com/andy/billfold/internal/domain"
)

// ErrDraftNotFound is returned when no draft exists for the given invoice ID.
var ErrDraftNotFound = errors.New("draft not found")

const timeLayout = "2006-01-02 15:04:05"

// DraftRepo is a SQLite implementation of DraftRepository
type DraftRepo struct {
	db *db.DB
}

// NewDraftRepo creates a new DraftRepo
func NewDraftRepo(database *db.DB) *DraftRepo {
	return &DraftRepo{db: database}
}

// Save upserts a draft keyed by its invoice ID
func (r *DraftRepo) Save(ctx context.Context, invoice *domain.Invoice) error {
	if invoice.ID == "" {
		return errors.New("draft requires an invoice ID")
	}

	payload, err := json.Marshal(invoice)
	if err != nil {
		return fmt.Errorf("failed to encode draft: %w", err)
	}

	query := `
		INSERT INTO drafts (invoice_id, payload, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(invoice_id) DO UPDATE SET
			payload = excluded.payload,
			updated_at = excluded.updated_at
	`

	now := time.Now().UTC().Format(timeLayout)
	if _, err := r.db.ExecContext(ctx, query, invoice.ID, string(payload), now); err != nil {
		return fmt.Errorf("failed to save draft: %w", err)
	}

	return nil
}

// Get retrieves a draft by invoice ID
func (r *DraftRepo) Get(ctx context.Context, invoiceID string) (*Draft, error) {
	query := `
		SELECT invoice_id, payload, updated_at
		FROM drafts
		WHERE invoice_id = ?
	`

	var id, payload, updatedAt string
	err := r.db.QueryRowContext(ctx, query, invoiceID).Scan(&id, &payload, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDraftNotFound
		}
		return nil, fmt.Errorf("failed to get draft: %w", err)
	}

	return scanDraft(id, payload, updatedAt)
}

// List returns all drafts, most recently updated first
func (r *DraftRepo) List(ctx context.Context) ([]*Draft, error) {
	query := `
		SELECT invoice_id, payload, updated_at
		FROM drafts
		ORDER BY updated_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list drafts: %w", err)
	}
	defer rows.Close()

	var drafts []*Draft
	for rows.Next() {
		var id, payload, updatedAt string
		if err := rows.Scan(&id, &payload, &updatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan draft: %w", err)
		}

		draft, err := scanDraft(id, payload, updatedAt)
		if err != nil {
			return nil, err
		}
		drafts = append(drafts, draft)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate drafts: %w", err)
	}

	return drafts, nil
}

// Delete removes a draft by invoice ID
func (r *DraftRepo) Delete(ctx context.Context, invoiceID string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM drafts WHERE invoice_id = ?", invoiceID)
	if err != nil {
		return fmt.Errorf("failed to delete draft: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return ErrDraftNotFound
	}

	return nil
}

// Clear removes all drafts
func (r *DraftRepo) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM drafts"); err != nil {
		return fmt.Errorf("failed to clear drafts: %w", err)
	}
	return nil
}

func scanDraft(id, payload, updatedAt string) (*Draft, error) {
	invoice := &domain.Invoice{}
	if err := json.Unmarshal([]byte(payload), invoice); err != nil {
		return nil, fmt.Errorf("failed to decode draft %s: %w", id, err)
	}

	ts, err := time.Parse(timeLayout, updatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse updated_at: %w", err)
	}

	return &Draft{InvoiceID: id, Invoice: invoice, UpdatedAt: ts}, nil
}
