package tui

import "testing"

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		amount float64
		want   string
	}{
		{0, "£0.00"},
		{556, "£556.00"},
		{1800.9, "£1,800.90"},
		{14002.33, "£14,002.33"},
		{1234567.89, "£1,234,567.89"},
		{-250.5, "-£250.50"},
	}
	for _, tt := range tests {
		if got := formatMoney(tt.amount); got != tt.want {
			t.Errorf("formatMoney(%v) = %q, want %q", tt.amount, got, tt.want)
		}
	}
}

func TestFormatDate(t *testing.T) {
	if got := formatDate("2024-08-18"); got != "18 Aug 2024" {
		t.Errorf("formatDate() = %q", got)
	}
	if got := formatDate(""); got != "" {
		t.Errorf("formatDate(empty) = %q", got)
	}
	if got := formatDate("not-a-date"); got != "not-a-date" {
		t.Errorf("formatDate(garbage) = %q", got)
	}
}

func TestTruncateStr(t *testing.T) {
	if got := truncateStr("short", 20); got != "short" {
		t.Errorf("truncateStr() = %q", got)
	}
	if got := truncateStr("a very long client name", 10); got != "a very ..." {
		t.Errorf("truncateStr() = %q", got)
	}
	if got := truncateStr("Café Münsterländer GmbH", 10); got != "Café Mü..." {
		t.Errorf("truncateStr() = %q", got)
	}
}
