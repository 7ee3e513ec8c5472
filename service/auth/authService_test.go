package authsvc

import (
	"context"
	"errors"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"

	"swiftride/model"
	"swiftride/util/apperr"
	"swiftride/util/hash"
	jwtutil "swiftride/util/jwt"
)

type mockRepo struct {
	byEmailFn func(ctx context.Context, email string) (*model.User, error)
	byIDFn    func(ctx context.Context, id int64) (*model.User, error)
	createFn  func(ctx context.Context, u *model.User) error
}

var _ Repo = (*mockRepo)(nil)

func (m *mockRepo) ByEmail(ctx context.Context, email string) (*model.User, error) {
	if m.byEmailFn == nil {
		return nil, pgx.ErrNoRows
	}
	return m.byEmailFn(ctx, email)
}

func (m *mockRepo) ByID(ctx context.Context, id int64) (*model.User, error) {
	if m.byIDFn == nil {
		return nil, pgx.ErrNoRows
	}
	return m.byIDFn(ctx, id)
}

func (m *mockRepo) Create(ctx context.Context, u *model.User) error {
	if m.createFn == nil {
		return nil
	}
	return m.createFn(ctx, u)
}

func mustHash(t *testing.T, plain string) string {
	t.Helper()

	h, err := hash.HashPassword(plain)
	require.NoError(t, err)
	return h
}

func customerReq() model.RegisterReq {
	return model.RegisterReq{
		FirstName:     "Halim",
		LastName:      "Iskandar",
		Email:         "USER@Example.COM",
		Password:      "supersecret",
		Role:          model.RoleCustomer,
		LicenseNumber: "B 1234 XYZ",
	}
}

func TestRegister_Success(t *testing.T) {
	ctx := context.Background()
	m := &mockRepo{
		createFn: func(ctx context.Context, u *model.User) error {
			u.ID = 42
			return nil
		},
	}
	svc := New(m, "test-secret", 24)

	u, tok, err := svc.Register(ctx, customerReq())
	require.NoError(t, err)
	require.NotEmpty(t, tok)
	require.Equal(t, int64(42), u.ID)
	require.Equal(t, "user@example.com", u.Email)
	require.Equal(t, model.RoleCustomer, u.Role)
	require.Equal(t, "B 1234 XYZ", *u.LicenseNumber)
	require.True(t, u.IsActive)
	require.True(t, hash.Check(u.PasswordHash, "supersecret"))

	claims := &jwtutil.Claims{}
	_, err = jwt.ParseWithClaims(tok, claims, func(*jwt.Token) (any, error) { return []byte("test-secret"), nil })
	require.NoError(t, err)
	require.Equal(t, "customer", claims.Role)
	require.Equal(t, "42", claims.Subject)
}

func TestRegister_CustomerNeedsLicense(t *testing.T) {
	svc := New(&mockRepo{}, "test-secret", 24)
	req := customerReq()
	req.LicenseNumber = " "

	_, _, err := svc.Register(context.Background(), req)
	require.Error(t, err)
	require.Equal(t, apperr.ErrBadInput, apperr.Code(err))
}

func TestRegister_BranchManagerNeedsLocation(t *testing.T) {
	svc := New(&mockRepo{}, "test-secret", 24)
	req := customerReq()
	req.Role = model.RoleBranchManager

	_, _, err := svc.Register(context.Background(), req)
	require.Equal(t, apperr.ErrBadInput, apperr.Code(err))

	req.BranchLocation = "Jakarta"
	u, _, err := svc.Register(context.Background(), req)
	require.NoError(t, err)
	require.Nil(t, u.LicenseNumber)
	require.Equal(t, "Jakarta", *u.BranchLocation)
}

func TestRegister_AdminRejected(t *testing.T) {
	svc := New(&mockRepo{}, "test-secret", 24)
	req := customerReq()
	req.Role = model.RoleAdmin

	_, _, err := svc.Register(context.Background(), req)
	require.Equal(t, apperr.ErrForbidden, apperr.Code(err))
}

func TestRegister_BadInput(t *testing.T) {
	svc := New(&mockRepo{}, "test-secret", 24)

	_, _, err := svc.Register(context.Background(), model.RegisterReq{
		Email:    " ",
		Password: "123",
		Role:     model.RoleSeller,
	})
	require.Error(t, err)
	require.Equal(t, apperr.ErrBadInput, apperr.Code(err))
}

func TestRegister_EmailTaken(t *testing.T) {
	m := &mockRepo{
		byEmailFn: func(ctx context.Context, email string) (*model.User, error) {
			return &model.User{ID: 9, Email: email}, nil
		},
	}
	svc := New(m, "test-secret", 24)

	_, _, err := svc.Register(context.Background(), customerReq())
	require.Error(t, err)
	require.Equal(t, apperr.ErrConflict, apperr.Code(err))
}

func TestRegister_UniqueViolationOnInsert(t *testing.T) {
	m := &mockRepo{
		createFn: func(ctx context.Context, u *model.User) error {
			return &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}
		},
	}
	svc := New(m, "test-secret", 24)

	_, _, err := svc.Register(context.Background(), customerReq())
	require.Equal(t, apperr.ErrConflict, apperr.Code(err))
	require.Equal(t, "email already registered", apperr.Message(err))
}

func TestRegister_CreateError(t *testing.T) {
	m := &mockRepo{
		createFn: func(ctx context.Context, u *model.User) error {
			return errors.New("db down")
		},
	}
	svc := New(m, "test-secret", 24)

	_, _, err := svc.Register(context.Background(), customerReq())
	require.Error(t, err)
	require.Equal(t, apperr.ErrCode(""), apperr.Code(err))
}

func TestLogin_Success(t *testing.T) {
	pw := "supersecret"
	hashed := mustHash(t, pw)

	m := &mockRepo{
		byEmailFn: func(ctx context.Context, email string) (*model.User, error) {
			require.Equal(t, "user@example.com", email)
			return &model.User{
				ID:           7,
				Email:        "user@example.com",
				PasswordHash: hashed,
				Role:         model.RoleSeller,
				IsActive:     true,
			}, nil
		},
	}
	svc := New(m, "test-secret", 24)

	u, tok, err := svc.Login(context.Background(), model.LoginReq{
		Email:    "User@Example.com",
		Password: pw,
	})
	require.NoError(t, err)
	require.NotEmpty(t, tok)
	require.Equal(t, int64(7), u.ID)
}

func TestLogin_BadInput(t *testing.T) {
	svc := New(&mockRepo{}, "test-secret", 24)

	_, _, err := svc.Login(context.Background(), model.LoginReq{Email: " ", Password: ""})
	require.Error(t, err)
	require.Equal(t, apperr.ErrBadInput, apperr.Code(err))
}

func TestLogin_UserNotFound(t *testing.T) {
	svc := New(&mockRepo{}, "test-secret", 24)

	_, _, err := svc.Login(context.Background(), model.LoginReq{
		Email:    "missing@example.com",
		Password: "whatever",
	})
	require.Equal(t, apperr.ErrUnauthorized, apperr.Code(err))
}

func TestLogin_WrongPassword(t *testing.T) {
	hashed := mustHash(t, "correct-password")

	m := &mockRepo{
		byEmailFn: func(ctx context.Context, email string) (*model.User, error) {
			return &model.User{ID: 101, Email: email, PasswordHash: hashed, IsActive: true}, nil
		},
	}
	svc := New(m, "test-secret", 24)

	_, _, err := svc.Login(context.Background(), model.LoginReq{
		Email:    "user@example.com",
		Password: "wrong-password",
	})
	require.Equal(t, apperr.ErrUnauthorized, apperr.Code(err))
}

func TestLogin_Inactive(t *testing.T) {
	hashed := mustHash(t, "pw123456")

	m := &mockRepo{
		byEmailFn: func(ctx context.Context, email string) (*model.User, error) {
			return &model.User{ID: 5, Email: email, PasswordHash: hashed, IsActive: false}, nil
		},
	}
	svc := New(m, "test-secret", 24)

	_, _, err := svc.Login(context.Background(), model.LoginReq{Email: "a@b.co", Password: "pw123456"})
	require.Equal(t, apperr.ErrForbidden, apperr.Code(err))
}

func TestMe_NotFound(t *testing.T) {
	svc := New(&mockRepo{}, "test-secret", 24)

	_, err := svc.Me(context.Background(), 3)
	require.Equal(t, apperr.ErrNotFound, apperr.Code(err))
}
