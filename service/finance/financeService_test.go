package financesvc_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"swiftride/model"
	"swiftride/repository/query"
	financesvc "swiftride/service/finance"
	"swiftride/util/apperr"

	"github.com/stretchr/testify/require"
)

type repoMock struct {
	totalsFn       func(ctx context.Context, rng query.DateRange) ([]model.StatusTotal, error)
	monthlyFn      func(ctx context.Context, rng query.DateRange) ([]model.MonthlyRevenue, error)
	vehicleRevFn   func(ctx context.Context, rng query.DateRange, limit int) ([]model.VehicleRevenue, error)
	transactionsFn func(ctx context.Context, q query.ListQuery) ([]model.Booking, int64, error)
	vehiclesFn     func(ctx context.Context, ids []int64) (map[int64]model.Vehicle, error)
}

var _ financesvc.Repo = (*repoMock)(nil)

func (m *repoMock) StatusTotals(ctx context.Context, rng query.DateRange) ([]model.StatusTotal, error) {
	return m.totalsFn(ctx, rng)
}
func (m *repoMock) MonthlyRevenue(ctx context.Context, rng query.DateRange) ([]model.MonthlyRevenue, error) {
	return m.monthlyFn(ctx, rng)
}
func (m *repoMock) VehicleRevenue(ctx context.Context, rng query.DateRange, limit int) ([]model.VehicleRevenue, error) {
	return m.vehicleRevFn(ctx, rng, limit)
}
func (m *repoMock) Transactions(ctx context.Context, q query.ListQuery) ([]model.Booking, int64, error) {
	return m.transactionsFn(ctx, q)
}
func (m *repoMock) VehiclesByIDs(ctx context.Context, ids []int64) (map[int64]model.Vehicle, error) {
	return m.vehiclesFn(ctx, ids)
}

type memCache map[string][]byte

func (c memCache) Get(_ context.Context, key string, dst any) (bool, error) {
	b, ok := c[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, dst)
}

func (c memCache) Set(_ context.Context, key string, v any, _ time.Duration) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c[key] = b
	return nil
}

func total(st model.BookingStatus, ps model.PaymentStatus, count int64, amount, min, max float64) model.StatusTotal {
	return model.StatusTotal{Status: st, PaymentStatus: ps, Count: count, Amount: amount, Min: min, Max: max}
}

func TestOverview_PaidOnly(t *testing.T) {
	totals := []model.StatusTotal{
		total(model.BookingConfirmed, model.PaymentPaid, 1, 110, 110, 110),
		total(model.BookingCompleted, model.PaymentPaid, 1, 110, 110, 110),
		total(model.BookingPending, model.PaymentPending, 1, 0, 0, 0),
	}
	got := financesvc.Overview(totals)
	require.Equal(t, 220.0, got.TotalRevenue)
	require.Equal(t, int64(2), got.TotalTransactions)
	require.Equal(t, 110.0, got.AverageTransactionValue)
	require.Equal(t, 110.0, got.MinTransactionValue)
	require.Equal(t, 110.0, got.MaxTransactionValue)
	require.Equal(t, int64(3), got.TotalBookings)
}

func TestOverview_MinMaxAcrossGroups(t *testing.T) {
	totals := []model.StatusTotal{
		total(model.BookingConfirmed, model.PaymentPaid, 2, 350, 50, 300),
		total(model.BookingCompleted, model.PaymentPaid, 1, 20, 20, 20),
		total(model.BookingCancelled, model.PaymentFailed, 1, 999, 999, 999),
	}
	got := financesvc.Overview(totals)
	require.Equal(t, 20.0, got.MinTransactionValue)
	require.Equal(t, 300.0, got.MaxTransactionValue)
	require.Equal(t, 370.0, got.TotalRevenue)
	require.InDelta(t, 123.33, got.AverageTransactionValue, 0.01)
	require.Equal(t, int64(4), got.TotalBookings)
}

func TestOverview_Empty(t *testing.T) {
	got := financesvc.Overview(nil)
	require.Equal(t, model.RevenueOverview{}, got)
}

func TestBreakdown_MergesGroups(t *testing.T) {
	totals := []model.StatusTotal{
		total(model.BookingConfirmed, model.PaymentPaid, 2, 160, 60, 100),
		total(model.BookingPending, model.PaymentPending, 1, 40, 40, 40),
		total(model.BookingCompleted, model.PaymentPaid, 1, 30, 30, 30),
	}
	require.Equal(t, []model.StatusBucket{
		{Status: "paid", Count: 3, Amount: 190},
		{Status: "pending", Count: 1, Amount: 40},
	}, financesvc.ByPaymentStatus(totals))
	require.Equal(t, []model.StatusBucket{
		{Status: "completed", Count: 1, Amount: 30},
		{Status: "confirmed", Count: 2, Amount: 160},
		{Status: "pending", Count: 1, Amount: 40},
	}, financesvc.ByBookingStatus(totals))
}

func TestService_TrendCoversTwelveMonths(t *testing.T) {
	var got query.DateRange
	m := &repoMock{
		monthlyFn: func(ctx context.Context, rng query.DateRange) ([]model.MonthlyRevenue, error) {
			got = rng
			return []model.MonthlyRevenue{{Year: 2023, Month: 7, Revenue: 20, Count: 1}}, nil
		},
	}
	svc := financesvc.New(m, nil, 0)
	financesvc.SetNow(svc, func() time.Time {
		return time.Date(2024, 6, 15, 9, 0, 0, 0, time.UTC)
	})

	out, err := svc.Trend(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.Equal(t, time.Date(2023, 7, 1, 0, 0, 0, 0, time.UTC), *got.From)
	require.Nil(t, got.To)
}

func TestService_TopVehiclesAsksForLimit(t *testing.T) {
	m := &repoMock{
		vehicleRevFn: func(ctx context.Context, rng query.DateRange, limit int) ([]model.VehicleRevenue, error) {
			require.Equal(t, financesvc.TopVehicleLimit, limit)
			return []model.VehicleRevenue{}, nil
		},
	}
	svc := financesvc.New(m, nil, 0)
	got, err := svc.TopVehicles(context.Background(), query.DateRange{})
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestResolveRange(t *testing.T) {
	now := time.Date(2024, 5, 20, 15, 30, 0, 0, time.UTC)

	r, err := financesvc.ResolveRange("", "", "", now)
	require.NoError(t, err)
	require.Nil(t, r.From)
	require.Nil(t, r.To)

	r, err = financesvc.ResolveRange("week", "", "", now)
	require.NoError(t, err)
	require.Equal(t, now.AddDate(0, 0, -7), *r.From)
	require.Nil(t, r.To)

	r, err = financesvc.ResolveRange("month", "", "", now)
	require.NoError(t, err)
	require.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), *r.From)

	r, err = financesvc.ResolveRange("quarter", "", "", now)
	require.NoError(t, err)
	require.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), *r.From)

	r, err = financesvc.ResolveRange("year", "", "", now)
	require.NoError(t, err)
	require.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), *r.From)
}

func TestResolveRange_QuarterCrossesYear(t *testing.T) {
	now := time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC)
	r, err := financesvc.ResolveRange("quarter", "", "", now)
	require.NoError(t, err)
	require.Equal(t, time.Date(2023, 11, 1, 0, 0, 0, 0, time.UTC), *r.From)
}

func TestResolveRange_ExplicitDatesWin(t *testing.T) {
	now := time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC)
	r, err := financesvc.ResolveRange("year", "2024-03-01", "2024-03-31", now)
	require.NoError(t, err)
	require.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), *r.From)
	require.Equal(t, time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), *r.To)
}

func TestResolveRange_UTCRegardlessOfServerZone(t *testing.T) {
	jakarta := time.FixedZone("WIB", 7*60*60)
	now := time.Date(2024, 6, 1, 3, 0, 0, 0, jakarta) // still May 31 in UTC

	r, err := financesvc.ResolveRange("", "2024-03-01", "2024-03-31", now)
	require.NoError(t, err)

	q, err := query.TransactionParams{StartDate: "2024-03-01", EndDate: "2024-03-31"}.Build()
	require.NoError(t, err)
	require.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), *r.From)
	require.Equal(t, time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), *r.To)
	_, args := q.Where.SQL()
	require.Contains(t, args, *r.From)
	require.Contains(t, args, *r.To)

	r, err = financesvc.ResolveRange("month", "", "", now)
	require.NoError(t, err)
	require.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), *r.From)
}

func TestResolveRange_Invalid(t *testing.T) {
	now := time.Now().UTC()
	_, err := financesvc.ResolveRange("decade", "", "", now)
	require.Equal(t, apperr.ErrBadInput, apperr.Code(err))

	_, err = financesvc.ResolveRange("", "03/01/2024", "", now)
	require.Equal(t, apperr.ErrBadInput, apperr.Code(err))

	_, err = financesvc.ResolveRange("", "2024-03-10", "2024-03-01", now)
	require.Equal(t, apperr.ErrBadInput, apperr.Code(err))
}

func TestService_OverviewIsCached(t *testing.T) {
	calls := 0
	m := &repoMock{
		totalsFn: func(ctx context.Context, rng query.DateRange) ([]model.StatusTotal, error) {
			calls++
			return []model.StatusTotal{total(model.BookingConfirmed, model.PaymentPaid, 1, 110, 110, 110)}, nil
		},
	}
	svc := financesvc.New(m, memCache{}, time.Minute)

	for i := 0; i < 2; i++ {
		got, err := svc.Overview(context.Background(), query.DateRange{})
		require.NoError(t, err)
		require.Equal(t, 110.0, got.TotalRevenue)
	}
	require.Equal(t, 1, calls)
}

func TestService_RepoError(t *testing.T) {
	m := &repoMock{
		totalsFn: func(ctx context.Context, rng query.DateRange) ([]model.StatusTotal, error) {
			return nil, errors.New("db down")
		},
	}
	svc := financesvc.New(m, nil, time.Minute)
	_, err := svc.Breakdown(context.Background(), query.DateRange{})
	require.EqualError(t, err, "db down")
}

func TestService_TopVehiclesJoinsVehicles(t *testing.T) {
	m := &repoMock{
		vehicleRevFn: func(ctx context.Context, rng query.DateRange, limit int) ([]model.VehicleRevenue, error) {
			return []model.VehicleRevenue{
				{VehicleID: 4, Revenue: 200, Count: 1},
				{VehicleID: 9, Revenue: 80, Count: 1},
			}, nil
		},
		vehiclesFn: func(ctx context.Context, ids []int64) (map[int64]model.Vehicle, error) {
			require.Equal(t, []int64{4, 9}, ids)
			return map[int64]model.Vehicle{4: {ID: 4, Make: "Toyota"}}, nil
		},
	}
	svc := financesvc.New(m, nil, 0)
	got, err := svc.TopVehicles(context.Background(), query.DateRange{})
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "Toyota", got[0].Vehicle.Make)
	require.Nil(t, got[1].Vehicle)
}

func TestService_Transactions(t *testing.T) {
	m := &repoMock{
		transactionsFn: func(ctx context.Context, q query.ListQuery) ([]model.Booking, int64, error) {
			return nil, 25, nil
		},
	}
	svc := financesvc.New(m, nil, 0)
	got, err := svc.Transactions(context.Background(), query.ListQuery{Page: query.Page{Page: 2, Limit: 10}})
	require.NoError(t, err)
	require.Equal(t, 3, got.TotalPages)
	require.Equal(t, 2, got.Page)
	require.NotNil(t, got.Transactions)
}
