package financesvc

import (
	"context"
	"time"

	"swiftride/model"
	"swiftride/repository/query"
	"swiftride/util/cache"
)

type Repo interface {
	StatusTotals(ctx context.Context, rng query.DateRange) ([]model.StatusTotal, error)
	MonthlyRevenue(ctx context.Context, rng query.DateRange) ([]model.MonthlyRevenue, error)
	VehicleRevenue(ctx context.Context, rng query.DateRange, limit int) ([]model.VehicleRevenue, error)
	Transactions(ctx context.Context, q query.ListQuery) ([]model.Booking, int64, error)
	VehiclesByIDs(ctx context.Context, ids []int64) (map[int64]model.Vehicle, error)
}

type Service interface {
	Overview(ctx context.Context, rng query.DateRange) (*model.RevenueOverview, error)
	Breakdown(ctx context.Context, rng query.DateRange) (*model.Breakdown, error)
	// Trend reports paid revenue per month over the last twelve months.
	Trend(ctx context.Context) ([]model.MonthlyRevenue, error)
	TopVehicles(ctx context.Context, rng query.DateRange) ([]model.VehicleRevenue, error)
	Transactions(ctx context.Context, q query.ListQuery) (*model.TransactionList, error)
}

type service struct {
	r   Repo
	c   cache.Cache
	ttl time.Duration
	now func() time.Time
}

// New builds the finance service. A nil cache disables caching.
func New(r Repo, c cache.Cache, ttl time.Duration) Service {
	if c == nil {
		c = cache.Noop{}
	}
	return &service{r: r, c: c, ttl: ttl, now: time.Now}
}

// cached serves key from the cache, falling back to load. Cache failures
// fall through to load.
func cached[T any](ctx context.Context, s *service, key string, load func() (T, error)) (T, error) {
	var v T
	if s.ttl > 0 {
		if ok, err := s.c.Get(ctx, key, &v); err == nil && ok {
			return v, nil
		}
	}
	v, err := load()
	if err != nil {
		return v, err
	}
	if s.ttl > 0 {
		_ = s.c.Set(ctx, key, v, s.ttl)
	}
	return v, nil
}

func (s *service) Overview(ctx context.Context, rng query.DateRange) (*model.RevenueOverview, error) {
	out, err := cached(ctx, s, "finance:overview:"+rng.Key(), func() (model.RevenueOverview, error) {
		totals, err := s.r.StatusTotals(ctx, rng)
		if err != nil {
			return model.RevenueOverview{}, err
		}
		return Overview(totals), nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *service) Breakdown(ctx context.Context, rng query.DateRange) (*model.Breakdown, error) {
	out, err := cached(ctx, s, "finance:breakdown:"+rng.Key(), func() (model.Breakdown, error) {
		totals, err := s.r.StatusTotals(ctx, rng)
		if err != nil {
			return model.Breakdown{}, err
		}
		return model.Breakdown{
			ByPaymentStatus: ByPaymentStatus(totals),
			ByBookingStatus: ByBookingStatus(totals),
		}, nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *service) Trend(ctx context.Context) ([]model.MonthlyRevenue, error) {
	now := s.now().UTC()
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -11, 0)
	rng := query.DateRange{From: &from}
	return cached(ctx, s, "finance:trend:"+rng.Key(), func() ([]model.MonthlyRevenue, error) {
		return s.r.MonthlyRevenue(ctx, rng)
	})
}

func (s *service) TopVehicles(ctx context.Context, rng query.DateRange) ([]model.VehicleRevenue, error) {
	return cached(ctx, s, "finance:top-vehicles:"+rng.Key(), func() ([]model.VehicleRevenue, error) {
		top, err := s.r.VehicleRevenue(ctx, rng, TopVehicleLimit)
		if err != nil || len(top) == 0 {
			return top, err
		}
		ids := make([]int64, len(top))
		for i, t := range top {
			ids[i] = t.VehicleID
		}
		vehicles, err := s.r.VehiclesByIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
		for i := range top {
			if v, ok := vehicles[top[i].VehicleID]; ok {
				v := v
				top[i].Vehicle = &v
			}
		}
		return top, nil
	})
}

func (s *service) Transactions(ctx context.Context, q query.ListQuery) (*model.TransactionList, error) {
	rows, total, err := s.r.Transactions(ctx, q)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []model.Booking{}
	}
	return &model.TransactionList{
		Transactions: rows,
		Total:        total,
		Page:         q.Page.Page,
		Limit:        q.Page.Limit,
		TotalPages:   query.TotalPages(total, q.Page.Limit),
	}, nil
}
