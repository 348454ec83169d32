package utils

import (
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	DateOnly    = "2006-01-02"
	DateTime    = "2006-01-02 15:04"
	DateTimeSec = "2006-01-02 15:04:05"
	TimeOnly    = "15:04:05"

	// Dash stands in for a missing value.
	Dash = "—"
)

var numbers = message.NewPrinter(language.English)

// Currency formats an amount with a currency symbol and thousands separators.
// USD (or empty) uses "$"; other currencies prefix with the code.
func Currency(amount decimal.Decimal, currency string) string {
	symbol := "$"
	if currency != "" && currency != "USD" {
		symbol = currency + " "
	}
	return symbol + numbers.Sprintf("%.2f", amount.Round(2).InexactFloat64())
}

// Count formats an integer with thousands separators, e.g. "3,000".
func Count(n int) string {
	return numbers.Sprintf("%d", n)
}

// SizeGB formats a capacity like "1,000 GB".
func SizeGB(n int) string {
	return Count(n) + " GB"
}

// OrDash returns s, or Dash when s is empty.
func OrDash(s string) string {
	if s == "" {
		return Dash
	}
	return s
}

// TimeOrDash formats a time value using the given layout, or returns Dash if zero.
func TimeOrDash(t time.Time, layout string) string {
	if t.IsZero() {
		return Dash
	}
	return t.Format(layout)
}
