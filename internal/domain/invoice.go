package domain

import (
	"math/rand/v2"
	"strings"
)

type InvoiceStatus string

const (
	InvoiceStatusDraft   InvoiceStatus = "draft"
	InvoiceStatusPending InvoiceStatus = "pending"
	InvoiceStatusPaid    InvoiceStatus = "paid"
)

// Known returns true for one of the three lifecycle statuses
func (s InvoiceStatus) Known() bool {
	switch s {
	case InvoiceStatusDraft, InvoiceStatusPending, InvoiceStatusPaid:
		return true
	}
	return false
}

// Label returns the capitalized display form, e.g. "Pending"
func (s InvoiceStatus) Label() string {
	str := string(s)
	if str == "" {
		return ""
	}
	return strings.ToUpper(str[:1]) + strings.ToLower(str[1:])
}

// Address is a plain value object with no identity of its own
type Address struct {
	Street   string `json:"street" validate:"required"`
	City     string `json:"city" validate:"required"`
	PostCode string `json:"postCode" validate:"required"`
	Country  string `json:"country" validate:"required"`
}

// InvoiceItem is one billable entry. Its line total is always derived from
// quantity and price and never stored.
type InvoiceItem struct {
	Name     string  `json:"name" validate:"required"`
	Quantity float64 `json:"quantity" validate:"gt=0"`
	Price    float64 `json:"price" validate:"gt=0"`
}

// LineTotal returns quantity x unit price
func (it InvoiceItem) LineTotal() float64 {
	return it.Quantity * it.Price
}

// Invoice is a billing record held by the remote invoice API. JSON field
// names match the wire contract; CreatedAt and PaymentDue are ISO-8601 date
// strings (YYYY-MM-DD).
type Invoice struct {
	ID            string        `json:"id"`
	CreatedAt     string        `json:"createdAt" validate:"required,isodate"`
	PaymentDue    string        `json:"paymentDue"`
	Description   string        `json:"description" validate:"required"`
	PaymentTerms  string        `json:"paymentTerms"`
	ClientName    string        `json:"clientName" validate:"required"`
	ClientEmail   string        `json:"clientEmail" validate:"required,email"`
	Status        InvoiceStatus `json:"status"`
	SenderAddress Address       `json:"senderAddress"`
	ClientAddress Address       `json:"clientAddress"`
	Items         []InvoiceItem `json:"items" validate:"min=1,dive"`
	Total         float64       `json:"total"`
}

// NewInvoice creates an empty draft template: freshly generated display id,
// the given payment terms (default terms when empty), and one blank line item.
func NewInvoice(terms string) *Invoice {
	if terms == "" {
		terms = DefaultPaymentTerms
	}
	return &Invoice{
		ID:           NewInvoiceID(),
		Status:       InvoiceStatusDraft,
		PaymentTerms: terms,
		Items:        []InvoiceItem{{Quantity: 1, Price: 0}},
	}
}

// CalculateTotal recomputes the invoice total as the sum of quantity x price
// across all line items. The total is never stored independently of its
// inputs; callers recompute after every item mutation.
func (i *Invoice) CalculateTotal() {
	i.Total = 0
	for _, item := range i.Items {
		i.Total += item.LineTotal()
	}
}

const (
	idLetters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	idDigits  = "0123456789"
)

// NewInvoiceID generates a display id of two uppercase letters followed by
// four digits, e.g. "RT3454". No collision checking; collisions are accepted.
func NewInvoiceID() string {
	b := make([]byte, 6)
	for i := 0; i < 2; i++ {
		b[i] = idLetters[rand.IntN(len(idLetters))]
	}
	for i := 2; i < 6; i++ {
		b[i] = idDigits[rand.IntN(len(idDigits))]
	}
	return string(b)
}
