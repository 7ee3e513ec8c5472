package branchrepo

import (
	"context"

	"github.com/jackc/pgx/v5"

	"swiftride/model"
	"swiftride/util/database"
)

type Repo interface {
	Create(ctx context.Context, b *model.Branch) error
	List(ctx context.Context, activeOnly bool) ([]model.Branch, error)
	ByID(ctx context.Context, id int64) (*model.Branch, error)
	Update(ctx context.Context, b *model.Branch) error
	Delete(ctx context.Context, id int64) error
}

type repo struct{ db *database.DB }

func New(db *database.DB) Repo { return &repo{db} }

const branchCols = `id, name, location, address, phone, email, manager_id, is_active, created_at, updated_at`

func scanBranch(row pgx.Row) (*model.Branch, error) {
	b := &model.Branch{}
	if err := row.Scan(&b.ID, &b.Name, &b.Location, &b.Address, &b.Phone, &b.Email, &b.ManagerID,
		&b.IsActive, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return nil, err
	}
	return b, nil
}

func (r *repo) Create(ctx context.Context, b *model.Branch) error {
	return r.db.Pool.QueryRow(ctx, `
		INSERT INTO branches (name, location, address, phone, email, manager_id, is_active)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING id, created_at, updated_at`,
		b.Name, b.Location, b.Address, b.Phone, b.Email, b.ManagerID, b.IsActive,
	).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
}

func (r *repo) List(ctx context.Context, activeOnly bool) ([]model.Branch, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT `+branchCols+`
		FROM branches
		WHERE is_active OR NOT $1
		ORDER BY name, id`, activeOnly)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Branch{}
	for rows.Next() {
		b, err := scanBranch(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *b)
	}
	return out, rows.Err()
}

func (r *repo) ByID(ctx context.Context, id int64) (*model.Branch, error) {
	return scanBranch(r.db.Pool.QueryRow(ctx, `SELECT `+branchCols+` FROM branches WHERE id=$1`, id))
}

func (r *repo) Update(ctx context.Context, b *model.Branch) error {
	return r.db.Pool.QueryRow(ctx, `
		UPDATE branches
		SET name=$2, location=$3, address=$4, phone=$5, email=$6, manager_id=$7, is_active=$8, updated_at=now()
		WHERE id=$1
		RETURNING updated_at`,
		b.ID, b.Name, b.Location, b.Address, b.Phone, b.Email, b.ManagerID, b.IsActive,
	).Scan(&b.UpdatedAt)
}

func (r *repo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM branches WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
