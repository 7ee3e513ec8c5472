package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func identity() Identity {
	return Identity{FirstName: " Ana ", LastName: "Diaz", Email: " Ana@Example.COM ", PasswordHash: "h"}
}

func TestNewUser_Customer(t *testing.T) {
	p, err := ProfileFor(RoleCustomer, " DL-123 ", "ignored")
	require.NoError(t, err)

	u, err := NewUser(identity(), p)
	require.NoError(t, err)
	require.Equal(t, RoleCustomer, u.Role)
	require.Equal(t, "ana@example.com", u.Email)
	require.Equal(t, "Ana Diaz", u.FullName())
	require.True(t, u.IsActive)
	require.NotNil(t, u.LicenseNumber)
	require.Equal(t, "DL-123", *u.LicenseNumber)
	require.Nil(t, u.BranchLocation)
}

func TestNewUser_CustomerNeedsLicense(t *testing.T) {
	p, err := ProfileFor(RoleCustomer, "  ", "")
	require.NoError(t, err)
	_, err = NewUser(identity(), p)
	require.Error(t, err)
}

func TestNewUser_BranchManagerNeedsLocation(t *testing.T) {
	p, _ := ProfileFor(RoleBranchManager, "", "")
	_, err := NewUser(identity(), p)
	require.Error(t, err)

	p, _ = ProfileFor(RoleBranchManager, "", "Jakarta")
	u, err := NewUser(identity(), p)
	require.NoError(t, err)
	require.Equal(t, "Jakarta", *u.BranchLocation)
}

func TestProfileFor_UnknownRole(t *testing.T) {
	_, err := ProfileFor("pilot", "", "")
	require.True(t, errors.Is(err, ErrUnknownRole))

	_, err = NewUser(identity(), nil)
	require.ErrorIs(t, err, ErrUnknownRole)
}

func TestNewUser_BadEmail(t *testing.T) {
	id := identity()
	id.Email = "nope"
	_, err := NewUser(id, SellerProfile{})
	require.Error(t, err)
}

func TestBookingStatus_CanMoveTo(t *testing.T) {
	allowed := [][2]BookingStatus{
		{BookingPending, BookingConfirmed},
		{BookingPending, BookingCancelled},
		{BookingConfirmed, BookingActive},
		{BookingConfirmed, BookingCancelled},
		{BookingActive, BookingCompleted},
	}
	for _, p := range allowed {
		require.True(t, p[0].CanMoveTo(p[1]), "%s -> %s", p[0], p[1])
	}

	denied := [][2]BookingStatus{
		{BookingPending, BookingActive},
		{BookingActive, BookingCancelled},
		{BookingCompleted, BookingPending},
		{BookingCancelled, BookingConfirmed},
		{BookingConfirmed, BookingConfirmed},
	}
	for _, p := range denied {
		require.False(t, p[0].CanMoveTo(p[1]), "%s -> %s", p[0], p[1])
	}
}

func TestRole_Valid(t *testing.T) {
	require.True(t, RoleBranchManager.Valid())
	require.False(t, Role("owner").Valid())
	require.True(t, Actor{Role: RoleAdmin}.IsAdmin())
	require.False(t, Actor{Role: RoleSeller}.IsAdmin())
}

func TestBookingStatus_AcceptsPayment(t *testing.T) {
	require.True(t, BookingPending.AcceptsPayment(PaymentPending))
	require.True(t, BookingPending.AcceptsPayment(PaymentFailed))
	require.True(t, BookingConfirmed.AcceptsPayment(PaymentPending))

	require.False(t, BookingPending.AcceptsPayment(PaymentPaid))
	require.False(t, BookingCancelled.AcceptsPayment(PaymentFailed))
	require.False(t, BookingCancelled.AcceptsPayment(PaymentRefunded))
	require.False(t, BookingCompleted.AcceptsPayment(PaymentPending))
	require.False(t, BookingActive.AcceptsPayment(PaymentPending))
}
