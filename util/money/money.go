// Package money formats currency amounts for display. Amounts are carried as
// float64 through calculations and only rounded here.
package money

import "github.com/shopspring/decimal"

// Round returns v rounded half away from zero to two places.
func Round(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}

// Format renders v with exactly two decimals.
func Format(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}
