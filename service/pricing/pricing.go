// Package pricing computes what a rental costs.
package pricing

import (
	"errors"
	"math"
	"strings"
	"time"
)

const (
	TaxRate        = 0.05
	ServiceFeeRate = 0.05
)

const day = 24 * time.Hour

// Quote is the charge breakdown of a rental. Amounts are not rounded.
type Quote struct {
	TotalDays   int     `json:"total_days"`
	PricePerDay float64 `json:"price_per_day"`
	Subtotal    float64 `json:"subtotal"`
	Tax         float64 `json:"tax"`
	ServiceFee  float64 `json:"service_fee"`
	TotalAmount float64 `json:"total_amount"`
}

// TotalDays rounds the absolute distance between start and end up to whole
// days. Spans shorter than a day, including zero, count as one day.
func TotalDays(start, end time.Time) int {
	d := end.Sub(start)
	if d < 0 {
		d = -d
	}
	days := int(math.Ceil(float64(d) / float64(day)))
	if days < 1 {
		days = 1
	}
	return days
}

// Calculate prices a rental of the given date range.
func Calculate(pricePerDay float64, start, end time.Time) Quote {
	return Totals(pricePerDay, TotalDays(start, end))
}

// Totals prices totalDays at pricePerDay.
func Totals(pricePerDay float64, totalDays int) Quote {
	subtotal := pricePerDay * float64(totalDays)
	tax := subtotal * TaxRate
	fee := subtotal * ServiceFeeRate
	return Quote{
		TotalDays:   totalDays,
		PricePerDay: pricePerDay,
		Subtotal:    subtotal,
		Tax:         tax,
		ServiceFee:  fee,
		TotalAmount: subtotal + tax + fee,
	}
}

var ErrBadDate = errors.New("date must be YYYY-MM-DD or RFC 3339")

// ParseDate accepts a calendar date (midnight UTC) or a full RFC 3339 timestamp.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Time{}, ErrBadDate
}
