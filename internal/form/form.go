// Package form holds the working copy of an invoice being created or
// edited, applies field edits, keeps the derived total current, and
// validates on submit.
package form

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/andy/billfold/internal/domain"
)

// Mode is the form phase: creating a fresh invoice or editing a fetched one
type Mode int

const (
	ModeCreate Mode = iota
	ModeEdit
)

// Section selects one of the two address sub-objects
type Section string

const (
	SectionSender Section = "senderAddress"
	SectionClient Section = "clientAddress"
)

var (
	ErrLastItem      = errors.New("an invoice must keep at least one line item")
	ErrUnknownField  = errors.New("unknown form field")
	ErrInvalidNumber = errors.New("must be a number")
	ErrValidation    = errors.New("invoice has validation errors")
)

// Form is the invoice form state machine
type Form struct {
	mode    Mode
	invoice domain.Invoice
	errs    domain.FormErrors
}

// New seeds a create-phase form: generated id, default terms, one blank item
func New(defaultTerms string) *Form {
	return &Form{mode: ModeCreate, invoice: *domain.NewInvoice(defaultTerms)}
}

// Edit seeds an edit-phase form from an existing invoice
func Edit(inv domain.Invoice) *Form {
	items := make([]domain.InvoiceItem, len(inv.Items))
	copy(items, inv.Items)
	inv.Items = items
	if inv.PaymentTerms == "" {
		inv.PaymentTerms = domain.DefaultPaymentTerms
	}
	return &Form{mode: ModeEdit, invoice: inv}
}

func (f *Form) Mode() Mode { return f.mode }

// Invoice returns a snapshot of the working copy
func (f *Form) Invoice() domain.Invoice {
	inv := f.invoice
	items := make([]domain.InvoiceItem, len(inv.Items))
	copy(items, inv.Items)
	inv.Items = items
	return inv
}

// Errors returns the error map from the last failed submit
func (f *Form) Errors() domain.FormErrors { return f.errs }

// SetField updates a top-level scalar field. Editing the creation date also
// recomputes the payment-due date, which is derived state.
func (f *Form) SetField(name, value string) error {
	switch name {
	case "clientName":
		f.invoice.ClientName = value
		f.errs.ClientName = ""
	case "clientEmail":
		f.invoice.ClientEmail = value
		f.errs.ClientEmail = ""
	case "description":
		f.invoice.Description = value
		f.errs.Description = ""
	case "createdAt":
		f.invoice.CreatedAt = value
		f.invoice.PaymentDue = domain.DueDate(value, f.invoice.PaymentTerms)
		f.errs.CreatedAt = ""
	default:
		return fmt.Errorf("%w: %s", ErrUnknownField, name)
	}
	return nil
}

// SetAddressField updates one field of the sender or client address
func (f *Form) SetAddressField(section Section, field, value string) error {
	var addr *domain.Address
	var errs *domain.AddressErrors
	switch section {
	case SectionSender:
		addr, errs = &f.invoice.SenderAddress, &f.errs.SenderAddress
	case SectionClient:
		addr, errs = &f.invoice.ClientAddress, &f.errs.ClientAddress
	default:
		return fmt.Errorf("%w: address section %s", ErrUnknownField, section)
	}

	switch field {
	case "street":
		addr.Street, errs.Street = value, ""
	case "city":
		addr.City, errs.City = value, ""
	case "postCode":
		addr.PostCode, errs.PostCode = value, ""
	case "country":
		addr.Country, errs.Country = value, ""
	default:
		return fmt.Errorf("%w: %s.%s", ErrUnknownField, section, field)
	}
	return nil
}

// SetPaymentTerms updates the terms label and recomputes the due date from
// the creation date. An unset creation date leaves the due date empty.
func (f *Form) SetPaymentTerms(terms string) {
	f.invoice.PaymentTerms = terms
	f.invoice.PaymentDue = domain.DueDate(f.invoice.CreatedAt, terms)
}

// SetItem updates one field of one line item. Numeric fields must parse as
// floats; invalid input is rejected and the item is left untouched. The
// invoice total is recomputed after every accepted mutation.
func (f *Form) SetItem(index int, field, value string) error {
	if index < 0 || index >= len(f.invoice.Items) {
		return fmt.Errorf("item %d out of range", index)
	}
	item := &f.invoice.Items[index]

	switch field {
	case "name":
		item.Name = value
	case "quantity", "price":
		n, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("%s %q: %w", field, value, ErrInvalidNumber)
		}
		if field == "quantity" {
			item.Quantity = n
		} else {
			item.Price = n
		}
	default:
		return fmt.Errorf("%w: item field %s", ErrUnknownField, field)
	}

	if index < len(f.errs.Items) {
		f.errs.Items[index] = domain.ItemErrors{}
	}
	f.invoice.CalculateTotal()
	return nil
}

// AddItem appends a blank line item (quantity 1, price 0)
func (f *Form) AddItem() {
	f.invoice.Items = append(f.invoice.Items, domain.InvoiceItem{Quantity: 1, Price: 0})
	if f.errs.Items != nil {
		f.errs.Items = append(f.errs.Items, domain.ItemErrors{})
	}
	f.invoice.CalculateTotal()
}

// RemoveItem removes one line item. The list never drops below length 1.
func (f *Form) RemoveItem(index int) error {
	if index < 0 || index >= len(f.invoice.Items) {
		return fmt.Errorf("item %d out of range", index)
	}
	if len(f.invoice.Items) == 1 {
		return ErrLastItem
	}
	f.invoice.Items = append(f.invoice.Items[:index], f.invoice.Items[index+1:]...)
	if index < len(f.errs.Items) {
		f.errs.Items = append(f.errs.Items[:index], f.errs.Items[index+1:]...)
	}
	f.invoice.CalculateTotal()
	return nil
}

// ItemCount returns the current number of line items
func (f *Form) ItemCount() int { return len(f.invoice.Items) }

// Submit finishes the form. With saveAsDraft the invoice is returned
// unvalidated with status forced to draft. Otherwise the full rule set
// runs: on failure ErrValidation is returned and Errors() carries the
// field map; on success a new invoice becomes pending while an edited
// one keeps its status.
func (f *Form) Submit(saveAsDraft bool) (*domain.Invoice, error) {
	f.invoice.CalculateTotal()

	if saveAsDraft {
		f.errs = domain.FormErrors{}
		f.invoice.Status = domain.InvoiceStatusDraft
		inv := f.Invoice()
		return &inv, nil
	}

	if fe := domain.ValidateInvoice(&f.invoice); fe.Any() {
		f.errs = fe
		return nil, ErrValidation
	}
	f.errs = domain.FormErrors{}

	if f.mode == ModeCreate {
		f.invoice.Status = domain.InvoiceStatusPending
	}
	inv := f.Invoice()
	return &inv, nil
}

// FirstInvalid returns the path of the first invalid field in form order,
// e.g. "senderAddress.street" or "items[1].price". Empty when the form is
// clean. Views use it to move focus to the offending input.
func (f *Form) FirstInvalid() string {
	e := f.errs
	addr := func(prefix string, ae domain.AddressErrors) string {
		switch {
		case ae.Street != "":
			return prefix + ".street"
		case ae.City != "":
			return prefix + ".city"
		case ae.PostCode != "":
			return prefix + ".postCode"
		case ae.Country != "":
			return prefix + ".country"
		}
		return ""
	}

	if p := addr("senderAddress", e.SenderAddress); p != "" {
		return p
	}
	if e.ClientName != "" {
		return "clientName"
	}
	if e.ClientEmail != "" {
		return "clientEmail"
	}
	if p := addr("clientAddress", e.ClientAddress); p != "" {
		return p
	}
	if e.CreatedAt != "" {
		return "createdAt"
	}
	if e.Description != "" {
		return "description"
	}
	for i, it := range e.Items {
		switch {
		case it.Name:
			return fmt.Sprintf("items[%d].name", i)
		case it.Quantity:
			return fmt.Sprintf("items[%d].quantity", i)
		case it.Price:
			return fmt.Sprintf("items[%d].price", i)
		}
	}
	return ""
}
