package branchsvc_test

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"

	"swiftride/model"
	branchsvc "swiftride/service/branch"
	"swiftride/util/apperr"
)

type repoMock struct {
	createFn func(ctx context.Context, b *model.Branch) error
	listFn   func(ctx context.Context, activeOnly bool) ([]model.Branch, error)
	byIDFn   func(ctx context.Context, id int64) (*model.Branch, error)
	updateFn func(ctx context.Context, b *model.Branch) error
	deleteFn func(ctx context.Context, id int64) error
}

var _ branchsvc.Repo = (*repoMock)(nil)

func (m *repoMock) Create(ctx context.Context, b *model.Branch) error { return m.createFn(ctx, b) }
func (m *repoMock) List(ctx context.Context, activeOnly bool) ([]model.Branch, error) {
	return m.listFn(ctx, activeOnly)
}
func (m *repoMock) ByID(ctx context.Context, id int64) (*model.Branch, error) { return m.byIDFn(ctx, id) }
func (m *repoMock) Update(ctx context.Context, b *model.Branch) error        { return m.updateFn(ctx, b) }
func (m *repoMock) Delete(ctx context.Context, id int64) error               { return m.deleteFn(ctx, id) }

type usersMock map[int64]model.User

func (u usersMock) ByID(ctx context.Context, id int64) (*model.User, error) {
	usr, ok := u[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	usr.ID = id
	return &usr, nil
}

var users = usersMock{
	20: {Role: model.RoleBranchManager, IsActive: true},
	21: {Role: model.RoleBranchManager, IsActive: true},
	22: {Role: model.RoleBranchManager},
	30: {Role: model.RoleCustomer, IsActive: true},
}

func input() model.BranchInput {
	return model.BranchInput{Name: "Central", Location: "Jakarta", Address: "Jl. Sudirman 1"}
}

func TestCreate_ManagerDefaultsToCaller(t *testing.T) {
	m := &repoMock{createFn: func(ctx context.Context, b *model.Branch) error { b.ID = 1; return nil }}
	b, err := branchsvc.New(m, users).Create(context.Background(), model.Actor{ID: 20, Role: model.RoleBranchManager}, input())
	require.NoError(t, err)
	require.Equal(t, int64(20), *b.ManagerID)
	require.True(t, b.IsActive)
}

func TestCreate_ManagerMustBeBranchManager(t *testing.T) {
	s := branchsvc.New(&repoMock{}, users)
	admin := model.Actor{ID: 1, Role: model.RoleAdmin}

	in := input()
	customer := int64(30)
	in.ManagerID = &customer
	_, err := s.Create(context.Background(), admin, in)
	require.Equal(t, apperr.ErrBadInput, apperr.Code(err))

	ghost := int64(99)
	in.ManagerID = &ghost
	_, err = s.Create(context.Background(), admin, in)
	require.Equal(t, apperr.ErrBadInput, apperr.Code(err))
}

func TestUpdate_OnlyOwnBranch(t *testing.T) {
	mgr := int64(20)
	m := &repoMock{
		byIDFn:   func(ctx context.Context, id int64) (*model.Branch, error) { return &model.Branch{ID: id, ManagerID: &mgr}, nil },
		updateFn: func(ctx context.Context, b *model.Branch) error { return nil },
	}
	s := branchsvc.New(m, users)

	_, err := s.Update(context.Background(), model.Actor{ID: 21, Role: model.RoleBranchManager}, 1, input())
	require.Equal(t, apperr.ErrForbidden, apperr.Code(err))

	in := input()
	in.ManagerID = &mgr
	b, err := s.Update(context.Background(), model.Actor{ID: 20, Role: model.RoleBranchManager}, 1, in)
	require.NoError(t, err)
	require.Equal(t, "Central", b.Name)
}

func TestUpdate_KeepsManagerWhenOmitted(t *testing.T) {
	mgr := int64(20)
	var saved *model.Branch
	m := &repoMock{
		byIDFn: func(ctx context.Context, id int64) (*model.Branch, error) {
			if saved != nil {
				cp := *saved
				return &cp, nil
			}
			return &model.Branch{ID: id, ManagerID: &mgr}, nil
		},
		updateFn: func(ctx context.Context, b *model.Branch) error {
			saved = b
			return nil
		},
	}
	s := branchsvc.New(m, users)

	_, err := s.Update(context.Background(), model.Actor{ID: 20, Role: model.RoleBranchManager}, 1, input())
	require.NoError(t, err)
	require.NotNil(t, saved.ManagerID)
	require.Equal(t, int64(20), *saved.ManagerID)

	// still the manager, so a second edit is allowed
	_, err = s.Update(context.Background(), model.Actor{ID: 20, Role: model.RoleBranchManager}, 1, input())
	require.NoError(t, err)
}

func TestCreate_ManagerMustBeActive(t *testing.T) {
	in := input()
	inactive := int64(22)
	in.ManagerID = &inactive
	_, err := branchsvc.New(&repoMock{}, users).Create(context.Background(), model.Actor{ID: 1, Role: model.RoleAdmin}, in)
	require.Equal(t, apperr.ErrBadInput, apperr.Code(err))
}

func TestDelete_NotFound(t *testing.T) {
	m := &repoMock{deleteFn: func(ctx context.Context, id int64) error { return pgx.ErrNoRows }}
	err := branchsvc.New(m, users).Delete(context.Background(), 5)
	require.Equal(t, apperr.ErrNotFound, apperr.Code(err))
}
