package authsvc

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"swiftride/model"
	"swiftride/util/apperr"
	"swiftride/util/database"
	"swiftride/util/hash"
	jwtutil "swiftride/util/jwt"
)

type Repo interface {
	Create(ctx context.Context, u *model.User) error
	ByEmail(ctx context.Context, email string) (*model.User, error)
	ByID(ctx context.Context, id int64) (*model.User, error)
}

type Service interface {
	Register(ctx context.Context, req model.RegisterReq) (*model.User, string, error)
	Login(ctx context.Context, req model.LoginReq) (*model.User, string, error)
	Me(ctx context.Context, userID int64) (*model.User, error)
}

type service struct {
	ur       Repo
	secret   string
	ttlHours int
}

func New(ur Repo, secret string, ttlHours int) Service {
	if ttlHours <= 0 {
		ttlHours = 24
	}
	return &service{ur: ur, secret: secret, ttlHours: ttlHours}
}

var errEmailTaken = apperr.New(apperr.ErrConflict, "email already registered")

// NewAccount turns a registration payload into a validated user with a hashed
// password. It does not check who may create which role.
func NewAccount(req model.RegisterReq) (*model.User, error) {
	p, err := model.ProfileFor(req.Role, req.LicenseNumber, req.BranchLocation)
	if err != nil {
		return nil, apperr.New(apperr.ErrBadInput, "invalid role")
	}
	if len(req.Password) < 6 {
		return nil, apperr.New(apperr.ErrBadInput, "password must be at least 6 characters")
	}
	hashed, err := hash.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	u, err := model.NewUser(model.Identity{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		Phone:        req.Phone,
		PasswordHash: hashed,
	}, p)
	if err != nil {
		return nil, apperr.Wrap(apperr.ErrBadInput, err)
	}
	return u, nil
}

// CreateAccount stores u, mapping a duplicate email to a conflict.
func CreateAccount(ctx context.Context, ur Repo, u *model.User) error {
	existing, err := ur.ByEmail(ctx, u.Email)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return err
	}
	if existing != nil {
		return errEmailTaken
	}
	if err := ur.Create(ctx, u); err != nil {
		if derr := mapDuplicateErr(err); derr != nil {
			return derr
		}
		return err
	}
	return nil
}

func (s *service) Register(ctx context.Context, req model.RegisterReq) (*model.User, string, error) {
	if req.Role == model.RoleAdmin {
		return nil, "", apperr.New(apperr.ErrForbidden, "admin accounts cannot self-register")
	}
	u, err := NewAccount(req)
	if err != nil {
		return nil, "", err
	}
	if err := CreateAccount(ctx, s.ur, u); err != nil {
		return nil, "", err
	}

	token, err := jwtutil.Issue(s.secret, u.ID, string(u.Role), s.ttlHours)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

func mapDuplicateErr(err error) error {
	cn, ok := database.UniqueViolation(err)
	if !ok {
		return nil
	}
	if strings.Contains(strings.ToLower(cn), "email") {
		return errEmailTaken
	}
	return apperr.Wrap(apperr.ErrConflict, err)
}

func (s *service) Login(ctx context.Context, req model.LoginReq) (*model.User, string, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		return nil, "", apperr.New(apperr.ErrBadInput, "email and password are required")
	}

	invalid := apperr.New(apperr.ErrUnauthorized, "invalid email or password")
	u, err := s.ur.ByEmail(ctx, email)
	if errors.Is(err, pgx.ErrNoRows) || (err == nil && u == nil) {
		return nil, "", invalid
	}
	if err != nil {
		return nil, "", err
	}
	if !hash.Check(u.PasswordHash, req.Password) {
		return nil, "", invalid
	}
	if !u.IsActive {
		return nil, "", apperr.New(apperr.ErrForbidden, "account is deactivated")
	}

	token, err := jwtutil.Issue(s.secret, u.ID, string(u.Role), s.ttlHours)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

func (s *service) Me(ctx context.Context, userID int64) (*model.User, error) {
	u, err := s.ur.ByID(ctx, userID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.New(apperr.ErrNotFound, "user not found")
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}
