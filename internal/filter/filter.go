// Package filter derives a status-filtered view of an invoice list.
package filter

import (
	"strings"

	"github.com/andy/billfold/internal/domain"
)

// Filter holds the set of selected status labels. The zero value selects
// nothing, which means no filter is applied.
type Filter struct {
	selected []string
}

// New returns a filter with the given statuses pre-selected
func New(statuses ...string) *Filter {
	f := &Filter{}
	for _, s := range statuses {
		f.Toggle(s)
	}
	return f
}

// Toggle adds the status to the selection if absent and removes it if present
func (f *Filter) Toggle(status string) {
	status = strings.ToLower(status)
	for i, s := range f.selected {
		if s == status {
			f.selected = append(f.selected[:i], f.selected[i+1:]...)
			return
		}
	}
	f.selected = append(f.selected, status)
}

// IsSelected reports whether the status is currently selected
func (f *Filter) IsSelected(status string) bool {
	status = strings.ToLower(status)
	for _, s := range f.selected {
		if s == status {
			return true
		}
	}
	return false
}

// Selected returns the selected statuses in toggle order
func (f *Filter) Selected() []string {
	out := make([]string, len(f.selected))
	copy(out, f.selected)
	return out
}

// Clear resets the selection so all invoices pass
func (f *Filter) Clear() {
	f.selected = nil
}

// Apply derives the filtered list. An empty selection returns the input
// unchanged; otherwise invoices whose status matches a selected label
// (case-insensitively) are kept, in input order.
func (f *Filter) Apply(invoices []domain.Invoice) []domain.Invoice {
	if len(f.selected) == 0 {
		return invoices
	}
	var out []domain.Invoice
	for _, inv := range invoices {
		if f.IsSelected(string(inv.Status)) {
			out = append(out, inv)
		}
	}
	return out
}
