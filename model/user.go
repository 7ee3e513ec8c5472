package model

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

type Role string

const (
	RoleCustomer      Role = "customer"
	RoleSeller        Role = "seller"
	RoleBranchManager Role = "branch-manager"
	RoleAdmin         Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleCustomer, RoleSeller, RoleBranchManager, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID             int64     `json:"id"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone,omitempty"`
	Role           Role      `json:"role"`
	LicenseNumber  *string   `json:"license_number,omitempty"`
	BranchLocation *string   `json:"branch_location,omitempty"`
	IsActive       bool      `json:"is_active"`
	PasswordHash   string    `json:"-"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// Identity holds the fields every role shares.
type Identity struct {
	FirstName    string `validate:"required"`
	LastName     string `validate:"required"`
	Email        string `validate:"required,email"`
	Phone        string
	PasswordHash string `validate:"required"`
}

// Profile is the role-specific part of a user. Each variant carries only the
// fields its role requires.
type Profile interface {
	Role() Role
	apply(u *User)
}

type CustomerProfile struct {
	LicenseNumber string `validate:"required"`
}

func (CustomerProfile) Role() Role { return RoleCustomer }
func (p CustomerProfile) apply(u *User) {
	ln := strings.TrimSpace(p.LicenseNumber)
	u.LicenseNumber = &ln
}

type SellerProfile struct{}

func (SellerProfile) Role() Role   { return RoleSeller }
func (SellerProfile) apply(*User) {}

type BranchManagerProfile struct {
	BranchLocation string `validate:"required"`
}

func (BranchManagerProfile) Role() Role { return RoleBranchManager }
func (p BranchManagerProfile) apply(u *User) {
	bl := strings.TrimSpace(p.BranchLocation)
	u.BranchLocation = &bl
}

type AdminProfile struct{}

func (AdminProfile) Role() Role   { return RoleAdmin }
func (AdminProfile) apply(*User) {}

var ErrUnknownRole = errors.New("unknown role")

// ProfileFor builds the variant for role from a flat payload. Fields that do
// not belong to the role are dropped.
func ProfileFor(role Role, licenseNumber, branchLocation string) (Profile, error) {
	switch role {
	case RoleCustomer:
		return CustomerProfile{LicenseNumber: strings.TrimSpace(licenseNumber)}, nil
	case RoleSeller:
		return SellerProfile{}, nil
	case RoleBranchManager:
		return BranchManagerProfile{BranchLocation: strings.TrimSpace(branchLocation)}, nil
	case RoleAdmin:
		return AdminProfile{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownRole, role)
}

var structValidator = validator.New()

// NewUser validates the identity and the role variant and returns an active user.
func NewUser(id Identity, p Profile) (*User, error) {
	if p == nil {
		return nil, ErrUnknownRole
	}
	id.Email = strings.ToLower(strings.TrimSpace(id.Email))
	id.FirstName = strings.TrimSpace(id.FirstName)
	id.LastName = strings.TrimSpace(id.LastName)
	if err := structValidator.Struct(id); err != nil {
		return nil, err
	}
	if err := structValidator.Struct(p); err != nil {
		return nil, err
	}
	u := &User{
		FirstName:    id.FirstName,
		LastName:     id.LastName,
		Email:        id.Email,
		Phone:        strings.TrimSpace(id.Phone),
		Role:         p.Role(),
		IsActive:     true,
		PasswordHash: id.PasswordHash,
	}
	p.apply(u)
	return u, nil
}

// RegisterReq represents user registration payload
// swagger:model RegisterReq
type RegisterReq struct {
	FirstName      string `json:"first_name" validate:"required"`
	LastName       string `json:"last_name" validate:"required"`
	Email          string `json:"email" validate:"required,email"`
	Phone          string `json:"phone"`
	Password       string `json:"password" validate:"required,min=6"`
	Role           Role   `json:"role" validate:"required,oneof=customer seller branch-manager admin"`
	LicenseNumber  string `json:"license_number" validate:"required_if=Role customer"`
	BranchLocation string `json:"branch_location" validate:"required_if=Role branch-manager"`
}

// LoginReq represents login payload
// swagger:model LoginReq
type LoginReq struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserList is one page of the admin user listing.
type UserList struct {
	Users      []User `json:"users"`
	Total      int64  `json:"total"`
	Page       int    `json:"page"`
	Limit      int    `json:"limit"`
	TotalPages int    `json:"total_pages"`
}

// Actor is the authenticated caller of an operation.
type Actor struct {
	ID   int64
	Role Role
}

func (a Actor) IsAdmin() bool { return a.Role == RoleAdmin }
