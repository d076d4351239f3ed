// Package api is the HTTP client for the remote invoice service.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/andy/billfold/internal/domain"
)

// ErrNotFound is returned when the service reports 404 for an invoice id
var ErrNotFound = errors.New("invoice not found")

// StatusError is a non-success HTTP response from the invoice service
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("invoice service returned status %d", e.Code)
	}
	return fmt.Sprintf("invoice service returned status %d: %s", e.Code, e.Body)
}

// Invoices is the invoice service contract. Each call issues exactly one
// HTTP request: no retries, no batching.
type Invoices interface {
	List(ctx context.Context) ([]domain.Invoice, error)
	Get(ctx context.Context, id string) (*domain.Invoice, error)
	Items(ctx context.Context, id string) ([]domain.InvoiceItem, error)
	Create(ctx context.Context, inv *domain.Invoice) (*domain.Invoice, error)
	Update(ctx context.Context, id string, inv *domain.Invoice) (*domain.Invoice, error)
	UpdateStatus(ctx context.Context, id string, status domain.InvoiceStatus) (*domain.Invoice, error)
	Delete(ctx context.Context, id string) error
}

// Client implements Invoices against {baseURL}/invoices
type Client struct {
	baseURL string
	hc      *http.Client
	log     *slog.Logger
}

// New creates a client for the given base URL, e.g. "http://localhost:3001/api"
func New(baseURL string, timeout time.Duration, log *slog.Logger) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if log == nil {
		log = slog.Default()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		hc:      &http.Client{Timeout: timeout},
		log:     log,
	}
}

func (c *Client) List(ctx context.Context) ([]domain.Invoice, error) {
	var out []domain.Invoice
	if err := c.do(ctx, http.MethodGet, "/invoices", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Get(ctx context.Context, id string) (*domain.Invoice, error) {
	var out domain.Invoice
	if err := c.do(ctx, http.MethodGet, "/invoices/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Items(ctx context.Context, id string) ([]domain.InvoiceItem, error) {
	var out []domain.InvoiceItem
	if err := c.do(ctx, http.MethodGet, "/invoices/"+url.PathEscape(id)+"/items", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Create(ctx context.Context, inv *domain.Invoice) (*domain.Invoice, error) {
	var out domain.Invoice
	if err := c.do(ctx, http.MethodPost, "/invoices", inv, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Update(ctx context.Context, id string, inv *domain.Invoice) (*domain.Invoice, error) {
	var out domain.Invoice
	if err := c.do(ctx, http.MethodPut, "/invoices/"+url.PathEscape(id), inv, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateStatus issues a partial update touching only the status field
func (c *Client) UpdateStatus(ctx context.Context, id string, status domain.InvoiceStatus) (*domain.Invoice, error) {
	patch := struct {
		Status domain.InvoiceStatus `json:"status"`
	}{Status: status}

	var out domain.Invoice
	if err := c.do(ctx, http.MethodPut, "/invoices/"+url.PathEscape(id), patch, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Delete(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/invoices/"+url.PathEscape(id), nil, nil)
}

// do performs one request and decodes the JSON response into out when
// out is non-nil. Non-2xx statuses become *StatusError (404 unwraps to
// ErrNotFound). The request is scoped to ctx so callers can cancel it when
// the owning view goes away.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.hc.Do(req)
	if err != nil {
		c.log.Error("request failed", "method", method, "path", path, "error", err)
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.Error("request rejected", "method", method, "path", path, "status", resp.StatusCode)
		if resp.StatusCode == http.StatusNotFound {
			return fmt.Errorf("%s %s: %w", method, path, ErrNotFound)
		}
		return &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(data))}
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
