package vehiclerepo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"swiftride/model"
	"swiftride/repository/query"
	"swiftride/util/database"
)

type Repo interface {
	Create(ctx context.Context, v *model.Vehicle) error
	ByID(ctx context.Context, id int64) (*model.Vehicle, error)
	List(ctx context.Context, q query.VehicleQuery) (rows []model.Vehicle, total, available int64, err error)
	BySeller(ctx context.Context, sellerID int64) ([]model.Vehicle, error)
	Update(ctx context.Context, v *model.Vehicle) error
	SetAvailability(ctx context.Context, id int64, available bool) error
	Delete(ctx context.Context, id int64) error
}

type repo struct{ db *database.DB }

func New(db *database.DB) Repo { return &repo{db} }

const vehicleCols = `id, seller_id, make, model, year, license_plate, category, fuel_type,
	transmission, seats, price_per_day, location, description, is_available, images, features,
	created_at, updated_at`

// Scan reads a row selected with the vehicle column list.
func Scan(row pgx.Row) (*model.Vehicle, error) {
	v := &model.Vehicle{}
	err := row.Scan(&v.ID, &v.SellerID, &v.Make, &v.Model, &v.Year, &v.LicensePlate, &v.Category, &v.FuelType,
		&v.Transmission, &v.Seats, &v.PricePerDay, &v.Location, &v.Description, &v.IsAvailable, &v.Images, &v.Features,
		&v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if v.Images == nil {
		v.Images = []string{}
	}
	if v.Features == nil {
		v.Features = []string{}
	}
	return v, nil
}

// Columns is the select list Scan expects.
func Columns() string { return vehicleCols }

func (r *repo) Create(ctx context.Context, v *model.Vehicle) error {
	return r.db.Pool.QueryRow(ctx, `
		INSERT INTO vehicles (seller_id, make, model, year, license_plate, category, fuel_type,
			transmission, seats, price_per_day, location, description, is_available, images, features)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
		RETURNING id, created_at, updated_at`,
		v.SellerID, v.Make, v.Model, v.Year, v.LicensePlate, v.Category, v.FuelType,
		v.Transmission, v.Seats, v.PricePerDay, v.Location, v.Description, v.IsAvailable, v.Images, v.Features,
	).Scan(&v.ID, &v.CreatedAt, &v.UpdatedAt)
}

func (r *repo) ByID(ctx context.Context, id int64) (*model.Vehicle, error) {
	return Scan(r.db.Pool.QueryRow(ctx, `SELECT `+vehicleCols+` FROM vehicles WHERE id = $1`, id))
}

func (r *repo) count(ctx context.Context, w *query.Where) (int64, error) {
	where, args := w.SQL()
	var n int64
	err := r.db.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM vehicles `+where, args...).Scan(&n)
	return n, err
}

func (r *repo) List(ctx context.Context, q query.VehicleQuery) ([]model.Vehicle, int64, int64, error) {
	w := q.Where()
	total, err := r.count(ctx, w)
	if err != nil {
		return nil, 0, 0, err
	}
	available, err := r.count(ctx, q.AvailableWhere())
	if err != nil {
		return nil, 0, 0, err
	}

	where, args := w.SQL()
	page, pargs := q.Page.SQL(len(args) + 1)
	sql := fmt.Sprintf(`SELECT %s FROM vehicles %s %s %s`, vehicleCols, where, q.Sort.SQL("id"), page)
	rows, err := r.db.Pool.Query(ctx, sql, append(args, pargs...)...)
	if err != nil {
		return nil, 0, 0, err
	}
	defer rows.Close()

	out := []model.Vehicle{}
	for rows.Next() {
		v, err := Scan(rows)
		if err != nil {
			return nil, 0, 0, err
		}
		out = append(out, *v)
	}
	return out, total, available, rows.Err()
}

func (r *repo) BySeller(ctx context.Context, sellerID int64) ([]model.Vehicle, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT `+vehicleCols+`
		FROM vehicles
		WHERE seller_id = $1
		ORDER BY created_at DESC, id DESC`, sellerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Vehicle{}
	for rows.Next() {
		v, err := Scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *v)
	}
	return out, rows.Err()
}

func (r *repo) Update(ctx context.Context, v *model.Vehicle) error {
	return r.db.Pool.QueryRow(ctx, `
		UPDATE vehicles
		SET make=$2, model=$3, year=$4, license_plate=$5, category=$6, fuel_type=$7,
			transmission=$8, seats=$9, price_per_day=$10, location=$11, description=$12,
			is_available=$13, images=$14, features=$15, updated_at=now()
		WHERE id=$1
		RETURNING updated_at`,
		v.ID, v.Make, v.Model, v.Year, v.LicensePlate, v.Category, v.FuelType,
		v.Transmission, v.Seats, v.PricePerDay, v.Location, v.Description,
		v.IsAvailable, v.Images, v.Features,
	).Scan(&v.UpdatedAt)
}

func (r *repo) SetAvailability(ctx context.Context, id int64, available bool) error {
	tag, err := r.db.Pool.Exec(ctx,
		`UPDATE vehicles SET is_available=$2, updated_at=now() WHERE id=$1`, id, available)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *repo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM vehicles WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
