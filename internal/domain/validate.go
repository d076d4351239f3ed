package domain

import (
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	msgEmpty = "can't be empty"
	msgEmail = "must be a valid email"
	msgDate  = "must be a valid date"
)

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	// Report field names as they appear on the wire
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	// Dates travel as YYYY-MM-DD strings, so the date rule lives here
	// rather than on a time.Time field.
	validate.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
		return ValidDate(fl.Field().String())
	})
}

// AddressErrors carries per-field messages for one address section
type AddressErrors struct {
	Street   string
	City     string
	PostCode string
	Country  string
}

// Any returns true if any address field is invalid
func (e AddressErrors) Any() bool {
	return e.Street != "" || e.City != "" || e.PostCode != "" || e.Country != ""
}

// ItemErrors flags invalid fields of one line item. Item errors drive error
// styling only and carry no message text.
type ItemErrors struct {
	Name     bool
	Quantity bool
	Price    bool
}

// Any returns true if any item field is invalid
func (e ItemErrors) Any() bool {
	return e.Name || e.Quantity || e.Price
}

// FormErrors mirrors the invoice shape: messages for scalar and address
// fields, presence flags per line item, plus a list-level message when the
// item list itself is empty.
type FormErrors struct {
	SenderAddress AddressErrors
	ClientName    string
	ClientEmail   string
	ClientAddress AddressErrors
	CreatedAt     string
	Description   string
	Items         []ItemErrors
	ItemList      string
}

// Any returns true if the invoice failed validation anywhere
func (e FormErrors) Any() bool {
	if e.SenderAddress.Any() || e.ClientAddress.Any() || e.ItemList != "" {
		return true
	}
	if e.ClientName != "" || e.ClientEmail != "" || e.CreatedAt != "" || e.Description != "" {
		return true
	}
	for _, it := range e.Items {
		if it.Any() {
			return true
		}
	}
	return false
}

// ValidateInvoice runs the full non-draft rule set over an invoice and
// returns a structured error map. A zero FormErrors means the invoice is
// valid.
func ValidateInvoice(inv *Invoice) FormErrors {
	var fe FormErrors
	err := validate.Struct(inv)
	if err == nil {
		return fe
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		// Unexpected failure shape: surface it on the description field
		// rather than silently passing the invoice.
		fe.Description = err.Error()
		return fe
	}

	fe.Items = make([]ItemErrors, len(inv.Items))

	for _, e := range verrs {
		ns := strings.TrimPrefix(e.Namespace(), "Invoice.")
		switch {
		case ns == "clientName":
			fe.ClientName = msgEmpty
		case ns == "clientEmail":
			if e.Tag() == "email" {
				fe.ClientEmail = msgEmail
			} else {
				fe.ClientEmail = msgEmpty
			}
		case ns == "createdAt":
			if e.Tag() == "isodate" {
				fe.CreatedAt = msgDate
			} else {
				fe.CreatedAt = msgEmpty
			}
		case ns == "description":
			fe.Description = msgEmpty
		case ns == "items":
			fe.ItemList = "an item must be added"
		case strings.HasPrefix(ns, "senderAddress."):
			setAddressError(&fe.SenderAddress, strings.TrimPrefix(ns, "senderAddress."))
		case strings.HasPrefix(ns, "clientAddress."):
			setAddressError(&fe.ClientAddress, strings.TrimPrefix(ns, "clientAddress."))
		case strings.HasPrefix(ns, "items["):
			idx, field := splitItemRef(ns)
			if idx < 0 || idx >= len(fe.Items) {
				continue
			}
			switch field {
			case "name":
				fe.Items[idx].Name = true
			case "quantity":
				fe.Items[idx].Quantity = true
			case "price":
				fe.Items[idx].Price = true
			}
		}
	}

	return fe
}

func setAddressError(ae *AddressErrors, field string) {
	switch field {
	case "street":
		ae.Street = msgEmpty
	case "city":
		ae.City = msgEmpty
	case "postCode":
		ae.PostCode = msgEmpty
	case "country":
		ae.Country = msgEmpty
	}
}

// splitItemRef parses "items[2].price" into (2, "price")
func splitItemRef(ns string) (int, string) {
	open := strings.Index(ns, "[")
	end := strings.Index(ns, "]")
	if open < 0 || end < open {
		return -1, ""
	}
	idx, err := strconv.Atoi(ns[open+1 : end])
	if err != nil {
		return -1, ""
	}
	rest := ns[end+1:]
	return idx, strings.TrimPrefix(rest, ".")
}
