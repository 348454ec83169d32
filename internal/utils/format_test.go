package utils

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestCurrency(t *testing.T) {
	tests := []struct {
		amount   string
		currency string
		want     string
	}{
		{"12.34", "USD", "$12.34"},
		{"0", "USD", "$0.00"},
		{"1234.56", "", "$1,234.56"},
		{"50", "EUR", "EUR 50.00"},
		{"3.645", "", "$3.65"},
	}

	for _, tt := range tests {
		got := Currency(decimal.RequireFromString(tt.amount), tt.currency)
		if got != tt.want {
			t.Errorf("Currency(%s, %q) = %q, want %q", tt.amount, tt.currency, got, tt.want)
		}
	}
}

func TestCountAndSize(t *testing.T) {
	if got := Count(3000); got != "3,000" {
		t.Errorf("Count(3000) = %q, want %q", got, "3,000")
	}
	if got := SizeGB(1000); got != "1,000 GB" {
		t.Errorf("SizeGB(1000) = %q, want %q", got, "1,000 GB")
	}
	if got := SizeGB(50); got != "50 GB" {
		t.Errorf("SizeGB(50) = %q, want %q", got, "50 GB")
	}
}

func TestOrDash(t *testing.T) {
	if got := OrDash(""); got != Dash {
		t.Errorf("OrDash(\"\") = %q, want %q", got, Dash)
	}
	if got := OrDash("vpc-1"); got != "vpc-1" {
		t.Errorf("OrDash(vpc-1) = %q, want vpc-1", got)
	}
}

func TestTimeOrDash(t *testing.T) {
	tests := []struct {
		name   string
		t      time.Time
		layout string
		want   string
	}{
		{"zero time", time.Time{}, DateTime, "—"},
		{"valid date", time.Date(2026, 2, 25, 14, 30, 0, 0, time.UTC), DateTime, "2026-02-25 14:30"},
		{"date only", time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), DateOnly, "2026-01-01"},
		{"with seconds", time.Date(2026, 3, 15, 8, 45, 30, 0, time.UTC), DateTimeSec, "2026-03-15 08:45:30"},
		{"time only", time.Date(2026, 1, 1, 9, 5, 12, 0, time.UTC), TimeOnly, "09:05:12"},
	}

	for _, tt := range tests {
		got := TimeOrDash(tt.t, tt.layout)
		if got != tt.want {
			t.Errorf("TimeOrDash(%v, %q) = %q, want %q", tt.t, tt.layout, got, tt.want)
		}
	}
}
