package models

import "github.com/shopspring/decimal"

// FormatAmount renders an amount with exactly two decimal places.
// This is the presentation boundary; ledger values stay at full precision.
func FormatAmount(amount float64) string {
	return decimal.NewFromFloat(amount).StringFixed(2)
}

// PlainAmount renders an amount rounded to two decimal places with trailing
// zeros and thousands separators omitted (500 -> "500", 150.5 -> "150.5").
func PlainAmount(amount float64) string {
	return decimal.NewFromFloat(amount).Round(2).String()
}
