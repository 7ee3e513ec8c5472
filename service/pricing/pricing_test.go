package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestTotalsExample(t *testing.T) {
	q := Totals(50, 2)
	require.Equal(t, 100.0, q.Subtotal)
	require.Equal(t, 5.0, q.Tax)
	require.Equal(t, 5.0, q.ServiceFee)
	require.Equal(t, 110.0, q.TotalAmount)
}

func TestTotalIsSubtotalPlusTenPercent(t *testing.T) {
	for _, price := range []float64{0.99, 12.5, 49.95, 75, 199.99, 1234.56} {
		for days := 1; days <= 45; days++ {
			q := Totals(price, days)
			require.InDelta(t, price*float64(days)*1.10, q.TotalAmount, 1e-9, "price=%v days=%d", price, days)
		}
	}
}

func TestTotalDaysFromDates(t *testing.T) {
	require.Equal(t, 2, TotalDays(date("2024-01-15"), date("2024-01-17")))
}

func TestTotalDaysRoundsUp(t *testing.T) {
	start := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	require.Equal(t, 1, TotalDays(start, start))
	require.Equal(t, 1, TotalDays(start, start.Add(3*time.Hour)))
	require.Equal(t, 2, TotalDays(start, start.Add(25*time.Hour)))
	// reversed range uses the absolute difference
	require.Equal(t, 2, TotalDays(start.Add(25*time.Hour), start))
}

func TestCalculate(t *testing.T) {
	q := Calculate(40, date("2024-02-27"), date("2024-03-02"))
	require.Equal(t, 4, q.TotalDays)
	require.Equal(t, 40.0, q.PricePerDay)
	require.InDelta(t, 176.0, q.TotalAmount, 1e-9)
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-01-15")
	require.NoError(t, err)
	require.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), d)

	d, err = ParseDate("2024-01-15T10:30:00+07:00")
	require.NoError(t, err)
	require.Equal(t, 3, d.UTC().Hour())

	_, err = ParseDate("15/01/2024")
	require.ErrorIs(t, err, ErrBadDate)
}
