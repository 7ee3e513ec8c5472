package usersvc

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"swiftride/model"
	"swiftride/repository/query"
	userrepo "swiftride/repository/user"
	authsvc "swiftride/service/auth"
	"swiftride/util/apperr"
	"swiftride/util/database"
)

type Repo = userrepo.Repo

// Service is the admin's view of user accounts.
type Service interface {
	List(ctx context.Context, q query.ListQuery) (*model.UserList, error)
	// Create adds an account of any role, admin included.
	Create(ctx context.Context, req model.RegisterReq) (*model.User, error)
	SetActive(ctx context.Context, actor model.Actor, id int64, active bool) (*model.User, error)
	Delete(ctx context.Context, actor model.Actor, id int64) error
}

type service struct{ r Repo }

func New(r Repo) Service { return &service{r: r} }

var (
	errNotFound = apperr.New(apperr.ErrNotFound, "user not found")
	errSelf     = apperr.New(apperr.ErrBadInput, "cannot change your own account")
)

func (s *service) List(ctx context.Context, q query.ListQuery) (*model.UserList, error) {
	rows, total, err := s.r.List(ctx, q)
	if err != nil {
		return nil, err
	}
	return &model.UserList{
		Users:      rows,
		Total:      total,
		Page:       q.Page.Page,
		Limit:      q.Page.Limit,
		TotalPages: query.TotalPages(total, q.Page.Limit),
	}, nil
}

func (s *service) Create(ctx context.Context, req model.RegisterReq) (*model.User, error) {
	u, err := authsvc.NewAccount(req)
	if err != nil {
		return nil, err
	}
	if err := authsvc.CreateAccount(ctx, s.r, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *service) SetActive(ctx context.Context, actor model.Actor, id int64, active bool) (*model.User, error) {
	if id == actor.ID {
		return nil, errSelf
	}
	if err := s.r.SetActive(ctx, id, active); errors.Is(err, pgx.ErrNoRows) {
		return nil, errNotFound
	} else if err != nil {
		return nil, err
	}
	u, err := s.r.ByID(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, errNotFound
	}
	return u, err
}

func (s *service) Delete(ctx context.Context, actor model.Actor, id int64) error {
	if id == actor.ID {
		return errSelf
	}
	err := s.r.Delete(ctx, id)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return errNotFound
	case database.ForeignKeyViolation(err):
		return apperr.New(apperr.ErrConflict, "user still owns vehicles or bookings")
	}
	return err
}
