package financerepo

import (
	"context"
	"fmt"

	"swiftride/model"
	bookingrepo "swiftride/repository/booking"
	"swiftride/repository/query"
	vehiclerepo "swiftride/repository/vehicle"
	"swiftride/util/database"
)

type Repo interface {
	StatusTotals(ctx context.Context, rng query.DateRange) ([]model.StatusTotal, error)
	MonthlyRevenue(ctx context.Context, rng query.DateRange) ([]model.MonthlyRevenue, error)
	VehicleRevenue(ctx context.Context, rng query.DateRange, limit int) ([]model.VehicleRevenue, error)
	Transactions(ctx context.Context, q query.ListQuery) ([]model.Booking, int64, error)
	VehiclesByIDs(ctx context.Context, ids []int64) (map[int64]model.Vehicle, error)
}

type repo struct{ db *database.DB }

func New(db *database.DB) Repo { return &repo{db} }

func paidIn(rng query.DateRange) (string, []any) {
	return rng.Apply(query.NewWhere(), "created_at").Eq("payment_status", string(model.PaymentPaid)).SQL()
}

// StatusTotals returns one row per (status, payment_status) pair present in
// the window.
func (r *repo) StatusTotals(ctx context.Context, rng query.DateRange) ([]model.StatusTotal, error) {
	where, args := rng.Apply(query.NewWhere(), "created_at").SQL()
	rows, err := r.db.Pool.Query(ctx, `
		SELECT status, payment_status, COUNT(*),
			COALESCE(SUM(total_amount), 0), COALESCE(MIN(total_amount), 0), COALESCE(MAX(total_amount), 0)
		FROM bookings `+where+`
		GROUP BY status, payment_status`, args...)
	if err != nil {
		return nil, fmt.Errorf("status totals: %w", err)
	}
	defer rows.Close()

	out := []model.StatusTotal{}
	for rows.Next() {
		var t model.StatusTotal
		if err := rows.Scan(&t.Status, &t.PaymentStatus, &t.Count, &t.Amount, &t.Min, &t.Max); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// MonthlyRevenue sums paid bookings per UTC calendar month, oldest first.
func (r *repo) MonthlyRevenue(ctx context.Context, rng query.DateRange) ([]model.MonthlyRevenue, error) {
	where, args := paidIn(rng)
	rows, err := r.db.Pool.Query(ctx, `
		SELECT EXTRACT(YEAR FROM created_at AT TIME ZONE 'UTC')::int AS y,
			EXTRACT(MONTH FROM created_at AT TIME ZONE 'UTC')::int AS m,
			COALESCE(SUM(total_amount), 0), COUNT(*)
		FROM bookings `+where+`
		GROUP BY y, m
		ORDER BY y, m`, args...)
	if err != nil {
		return nil, fmt.Errorf("monthly revenue: %w", err)
	}
	defer rows.Close()

	out := []model.MonthlyRevenue{}
	for rows.Next() {
		var m model.MonthlyRevenue
		if err := rows.Scan(&m.Year, &m.Month, &m.Revenue, &m.Count); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// VehicleRevenue ranks vehicles by paid revenue, highest first. Equal revenues
// go to the vehicle paid for earliest.
func (r *repo) VehicleRevenue(ctx context.Context, rng query.DateRange, limit int) ([]model.VehicleRevenue, error) {
	where, args := paidIn(rng)
	rows, err := r.db.Pool.Query(ctx, fmt.Sprintf(`
		SELECT vehicle_id, SUM(total_amount) AS revenue, COUNT(*)
		FROM bookings %s
		GROUP BY vehicle_id
		ORDER BY revenue DESC, MIN(created_at), vehicle_id
		LIMIT $%d`, where, len(args)+1), append(args, limit)...)
	if err != nil {
		return nil, fmt.Errorf("vehicle revenue: %w", err)
	}
	defer rows.Close()

	out := []model.VehicleRevenue{}
	for rows.Next() {
		var v model.VehicleRevenue
		if err := rows.Scan(&v.VehicleID, &v.Revenue, &v.Count); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (r *repo) Transactions(ctx context.Context, q query.ListQuery) ([]model.Booking, int64, error) {
	where, args := q.Where.SQL()

	var total int64
	if err := r.db.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM bookings b `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	page, pargs := q.Page.SQL(len(args) + 1)
	sql := fmt.Sprintf(`SELECT %s FROM bookings b JOIN vehicles v ON v.id = b.vehicle_id %s %s %s`,
		bookingrepo.Columns(), where, q.Sort.SQL("b.id"), page)
	rows, err := r.db.Pool.Query(ctx, sql, append(args, pargs...)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := []model.Booking{}
	for rows.Next() {
		b, err := bookingrepo.Scan(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, *b)
	}
	return out, total, rows.Err()
}

func (r *repo) VehiclesByIDs(ctx context.Context, ids []int64) (map[int64]model.Vehicle, error) {
	rows, err := r.db.Pool.Query(ctx, `SELECT `+vehiclerepo.Columns()+` FROM vehicles WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[int64]model.Vehicle, len(ids))
	for rows.Next() {
		v, err := vehiclerepo.Scan(rows)
		if err != nil {
			return nil, err
		}
		out[v.ID] = *v
	}
	return out, rows.Err()
}
