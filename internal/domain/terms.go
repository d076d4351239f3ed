package domain

import (
	"strconv"
	"strings"
	"time"
)

// DefaultPaymentTerms is the seed value for new invoices
const DefaultPaymentTerms = "Net 30 Days"

// PaymentTermOptions are the selectable payment-terms labels, shortest first
var PaymentTermOptions = []string{
	"Net 1 Day",
	"Net 7 Days",
	"Net 14 Days",
	"Net 30 Days",
}

// dateLayout is the ISO-8601 date format used on the wire
const dateLayout = "2006-01-02"

// TermDays extracts the day offset from a payment-terms label:
// "Net 30 Days" -> 30. Labels without a number fall back to 30.
func TermDays(terms string) int {
	for _, f := range strings.Fields(terms) {
		if n, err := strconv.Atoi(f); err == nil {
			return n
		}
	}
	return 30
}

// DueDate computes the payment-due date as createdAt plus the term's day
// offset. An empty or unparseable creation date yields an empty due date.
func DueDate(createdAt, terms string) string {
	if createdAt == "" {
		return ""
	}
	t, err := time.Parse(dateLayout, createdAt)
	if err != nil {
		return ""
	}
	return t.AddDate(0, 0, TermDays(terms)).Format(dateLayout)
}

// ValidDate reports whether s is a wire-format date string
func ValidDate(s string) bool {
	_, err := time.Parse(dateLayout, s)
	return err == nil
}
