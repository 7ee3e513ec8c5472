package bookingsvc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"swiftride/model"
	bookingrepo "swiftride/repository/booking"
	xenditrepo "swiftride/repository/xendit"
	"swiftride/service/pricing"
	"swiftride/util/apperr"
	"swiftride/util/events"
)

type Repo = bookingrepo.Repo

type VehicleRepo interface {
	ByID(ctx context.Context, id int64) (*model.Vehicle, error)
}

type UserRepo interface {
	ByID(ctx context.Context, id int64) (*model.User, error)
}

type Service interface {
	// Create books a vehicle for the customer and opens a payment invoice.
	Create(ctx context.Context, customerID int64, req model.BookingReq) (*model.Booking, error)
	MyBookings(ctx context.Context, customerID int64) ([]model.Booking, error)
	Detail(ctx context.Context, actor model.Actor, id int64) (*model.Booking, error)
	Cancel(ctx context.Context, actor model.Actor, id int64) (*model.Booking, error)
	UpdateStatus(ctx context.Context, id int64, next model.BookingStatus) (*model.Booking, error)
	// Receipt renders a PDF receipt for a paid booking.
	Receipt(ctx context.Context, actor model.Actor, id int64) ([]byte, error)
}

type Deps struct {
	Bookings   Repo
	Vehicles   VehicleRepo
	Users      UserRepo
	Gateway    xenditrepo.Repo
	Events     events.Publisher
	Log        *slog.Logger
	InvoiceTTL time.Duration
}

type service struct {
	Deps
	now func() time.Time
}

// New builds the booking service. A nil Gateway skips invoice creation.
func New(d Deps) Service {
	if d.Events == nil {
		d.Events = events.Noop{}
	}
	if d.Log == nil {
		d.Log = slog.Default()
	}
	if d.InvoiceTTL <= 0 {
		d.InvoiceTTL = 24 * time.Hour
	}
	return &service{Deps: d, now: time.Now}
}

var (
	errNotFound  = apperr.New(apperr.ErrNotFound, "booking not found")
	errForbidden = apperr.New(apperr.ErrForbidden, "not allowed to access this booking")
)

func (s *service) Create(ctx context.Context, customerID int64, req model.BookingReq) (*model.Booking, error) {
	start, err := pricing.ParseDate(req.StartDate)
	if err != nil {
		return nil, apperr.New(apperr.ErrBadInput, "invalid start_date")
	}
	end, err := pricing.ParseDate(req.EndDate)
	if err != nil {
		return nil, apperr.New(apperr.ErrBadInput, "invalid end_date")
	}
	if end.Before(start) {
		return nil, apperr.New(apperr.ErrBadInput, "end_date must not precede start_date")
	}
	if strings.TrimSpace(req.PickupLocation) == "" || strings.TrimSpace(req.DropoffLocation) == "" {
		return nil, apperr.New(apperr.ErrBadInput, "pickup and dropoff locations are required")
	}

	v, err := s.Vehicles.ByID(ctx, req.VehicleID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.New(apperr.ErrNotFound, "vehicle not found")
	}
	if err != nil {
		return nil, err
	}
	if !v.IsAvailable {
		return nil, apperr.New(apperr.ErrConflict, "vehicle is not available")
	}

	cust, err := s.Users.ByID(ctx, customerID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.New(apperr.ErrNotFound, "customer not found")
	}
	if err != nil {
		return nil, err
	}

	q := pricing.Calculate(v.PricePerDay, start, end)
	b := &model.Booking{
		CustomerID:      customerID,
		VehicleID:       v.ID,
		StartDate:       start,
		EndDate:         end,
		TotalDays:       q.TotalDays,
		PricePerDay:     q.PricePerDay,
		Subtotal:        q.Subtotal,
		Tax:             q.Tax,
		ServiceFee:      q.ServiceFee,
		TotalAmount:     q.TotalAmount,
		Status:          model.BookingPending,
		PaymentStatus:   model.PaymentPending,
		CustomerName:    cust.FullName(),
		CustomerEmail:   cust.Email,
		CustomerPhone:   cust.Phone,
		PickupLocation:  strings.TrimSpace(req.PickupLocation),
		DropoffLocation: strings.TrimSpace(req.DropoffLocation),
	}
	if p := strings.TrimSpace(req.CustomerPhone); p != "" {
		b.CustomerPhone = p
	}
	if n := strings.TrimSpace(req.Notes); n != "" {
		b.Notes = &n
	}

	if s.Gateway != nil {
		inv, err := s.Gateway.CreateInvoice(ctx, xenditrepo.CreateInvoiceReq{
			ExternalID:  "booking:" + uuid.NewString(),
			Amount:      b.TotalAmount,
			PayerEmail:  b.CustomerEmail,
			Description: fmt.Sprintf("%s %s rental, %d day(s)", v.Make, v.Model, b.TotalDays),
			Expiry:      s.InvoiceTTL,
		})
		if err != nil {
			return nil, fmt.Errorf("create invoice: %w", err)
		}
		due := s.now().UTC().Add(s.InvoiceTTL)
		if !inv.ExpiresAt.IsZero() {
			due = inv.ExpiresAt
		}
		b.PaymentInvoice = &inv.ID
		b.PaymentLink = &inv.URL
		b.PaymentDueAt = &due
	}

	if err := s.Bookings.Create(ctx, b); err != nil {
		if b.PaymentInvoice != nil {
			s.Log.Error("booking insert failed after invoice was issued",
				"invoice_id", *b.PaymentInvoice, "customer_id", customerID, "err", err)
			s.expireInvoice(ctx, b)
		}
		return nil, err
	}
	b.Vehicle = &model.VehicleSummary{
		ID: v.ID, Make: v.Make, Model: v.Model, Year: v.Year,
		LicensePlate: v.LicensePlate, PricePerDay: v.PricePerDay, SellerID: v.SellerID,
	}
	events.Emit(ctx, s.Events, s.Log, events.BookingCreated, b)
	return b, nil
}

func (s *service) MyBookings(ctx context.Context, customerID int64) ([]model.Booking, error) {
	return s.Bookings.ByCustomer(ctx, customerID)
}

func (s *service) load(ctx context.Context, id int64) (*model.Booking, error) {
	b, err := s.Bookings.ByID(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, errNotFound
	}
	return b, err
}

// canView reports whether actor is the customer, the vehicle's seller or an admin.
func canView(actor model.Actor, b *model.Booking) bool {
	if actor.IsAdmin() || b.CustomerID == actor.ID {
		return true
	}
	return b.Vehicle != nil && b.Vehicle.SellerID == actor.ID
}

func (s *service) Detail(ctx context.Context, actor model.Actor, id int64) (*model.Booking, error) {
	b, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canView(actor, b) {
		return nil, errForbidden
	}
	return b, nil
}

// vehicleFlag is the availability a vehicle takes when its booking moves
// from one status to another; nil leaves the vehicle untouched.
func vehicleFlag(from, to model.BookingStatus) *bool {
	var v bool
	switch {
	case to == model.BookingConfirmed || to == model.BookingActive:
		v = false
	case to == model.BookingCompleted:
		v = true
	case to == model.BookingCancelled && from != model.BookingPending:
		v = true
	default:
		return nil
	}
	return &v
}

func (s *service) transition(ctx context.Context, b *model.Booking, next model.BookingStatus, event string) (*model.Booking, error) {
	if !b.Status.CanMoveTo(next) {
		return nil, apperr.New(apperr.ErrConflict,
			fmt.Sprintf("cannot move booking from %s to %s", b.Status, next))
	}
	out, err := s.Bookings.Transition(ctx, b.ID, b.Status, next, vehicleFlag(b.Status, next))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.New(apperr.ErrConflict, "booking status changed concurrently")
	}
	if err != nil {
		return nil, err
	}
	if next == model.BookingCancelled && b.PaymentStatus != model.PaymentPaid {
		s.expireInvoice(ctx, out)
	}
	events.Emit(ctx, s.Events, s.Log, event, out)
	return out, nil
}

// expireInvoice closes the booking's open invoice at the provider. Failures
// are logged; the invoice then lapses on its own expiry.
func (s *service) expireInvoice(ctx context.Context, b *model.Booking) {
	if s.Gateway == nil || b.PaymentInvoice == nil {
		return
	}
	if _, err := s.Gateway.ExpireInvoice(ctx, *b.PaymentInvoice); err != nil {
		s.Log.Warn("invoice expire failed", "booking_id", b.ID, "invoice_id", *b.PaymentInvoice, "err", err)
	}
}

func (s *service) Cancel(ctx context.Context, actor model.Actor, id int64) (*model.Booking, error) {
	b, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.CustomerID != actor.ID && !actor.IsAdmin() {
		return nil, errForbidden
	}
	return s.transition(ctx, b, model.BookingCancelled, events.BookingCancelled)
}

func (s *service) UpdateStatus(ctx context.Context, id int64, next model.BookingStatus) (*model.Booking, error) {
	if !next.Valid() {
		return nil, apperr.New(apperr.ErrBadInput, "invalid status")
	}
	b, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	event := events.BookingStatus
	if next == model.BookingCancelled {
		event = events.BookingCancelled
	}
	return s.transition(ctx, b, next, event)
}

func (s *service) Receipt(ctx context.Context, actor model.Actor, id int64) ([]byte, error) {
	b, err := s.Detail(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if b.PaymentStatus != model.PaymentPaid {
		return nil, apperr.New(apperr.ErrConflict, "receipt is only available for paid bookings")
	}
	return RenderReceipt(b)
}
