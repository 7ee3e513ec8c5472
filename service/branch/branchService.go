package branchsvc

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"swiftride/model"
	branchrepo "swiftride/repository/branch"
	"swiftride/util/apperr"
)

type Repo = branchrepo.Repo

type UserRepo interface {
	ByID(ctx context.Context, id int64) (*model.User, error)
}

type Service interface {
	List(ctx context.Context, activeOnly bool) ([]model.Branch, error)
	Detail(ctx context.Context, id int64) (*model.Branch, error)
	Create(ctx context.Context, actor model.Actor, in model.BranchInput) (*model.Branch, error)
	Update(ctx context.Context, actor model.Actor, id int64, in model.BranchInput) (*model.Branch, error)
	Delete(ctx context.Context, id int64) error
}

type service struct {
	r  Repo
	ur UserRepo
}

func New(r Repo, ur UserRepo) Service { return &service{r: r, ur: ur} }

var errNotFound = apperr.New(apperr.ErrNotFound, "branch not found")

func (s *service) List(ctx context.Context, activeOnly bool) ([]model.Branch, error) {
	return s.r.List(ctx, activeOnly)
}

func (s *service) Detail(ctx context.Context, id int64) (*model.Branch, error) {
	b, err := s.r.ByID(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, errNotFound
	}
	return b, err
}

// checkManager requires id to reference an active branch manager.
func (s *service) checkManager(ctx context.Context, id *int64) error {
	if id == nil {
		return nil
	}
	u, err := s.ur.ByID(ctx, *id)
	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.New(apperr.ErrBadInput, "manager not found")
	}
	if err != nil {
		return err
	}
	if u.Role != model.RoleBranchManager {
		return apperr.New(apperr.ErrBadInput, "manager must be a branch-manager")
	}
	if !u.IsActive {
		return apperr.New(apperr.ErrBadInput, "manager account is deactivated")
	}
	return nil
}

func apply(b *model.Branch, in model.BranchInput) {
	b.Name = strings.TrimSpace(in.Name)
	b.Location = strings.TrimSpace(in.Location)
	b.Address = strings.TrimSpace(in.Address)
	b.Phone = strings.TrimSpace(in.Phone)
	b.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if in.ManagerID != nil {
		b.ManagerID = in.ManagerID
	}
	if in.IsActive != nil {
		b.IsActive = *in.IsActive
	}
}

func (s *service) Create(ctx context.Context, actor model.Actor, in model.BranchInput) (*model.Branch, error) {
	if in.ManagerID == nil && actor.Role == model.RoleBranchManager {
		id := actor.ID
		in.ManagerID = &id
	}
	if err := s.checkManager(ctx, in.ManagerID); err != nil {
		return nil, err
	}
	b := &model.Branch{IsActive: true}
	apply(b, in)
	if err := s.r.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *service) Update(ctx context.Context, actor model.Actor, id int64, in model.BranchInput) (*model.Branch, error) {
	b, err := s.Detail(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && (b.ManagerID == nil || *b.ManagerID != actor.ID) {
		return nil, apperr.New(apperr.ErrForbidden, "not the manager of this branch")
	}
	if err := s.checkManager(ctx, in.ManagerID); err != nil {
		return nil, err
	}
	apply(b, in)
	if err := s.r.Update(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	if err := s.r.Delete(ctx, id); errors.Is(err, pgx.ErrNoRows) {
		return errNotFound
	} else if err != nil {
		return err
	}
	return nil
}
