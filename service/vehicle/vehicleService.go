package vehiclesvc

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"swiftride/model"
	"swiftride/repository/query"
	vehiclerepo "swiftride/repository/vehicle"
	"swiftride/service/pricing"
	"swiftride/util/apperr"
	"swiftride/util/database"
)

type Repo = vehiclerepo.Repo

type Service interface {
	List(ctx context.Context, q query.VehicleQuery) (*model.VehicleList, error)
	Detail(ctx context.Context, id int64) (*model.Vehicle, error)
	// Quote prices a rental of the vehicle at its current daily rate.
	Quote(ctx context.Context, id int64, start, end time.Time) (*pricing.Quote, error)
	Mine(ctx context.Context, sellerID int64) ([]model.Vehicle, error)
	Create(ctx context.Context, actor model.Actor, in model.VehicleInput) (*model.Vehicle, error)
	Update(ctx context.Context, actor model.Actor, id int64, in model.VehicleInput) (*model.Vehicle, error)
	Delete(ctx context.Context, actor model.Actor, id int64) error
	SetAvailability(ctx context.Context, actor model.Actor, id int64, available bool) (*model.Vehicle, error)
}

type service struct{ r Repo }

func New(r Repo) Service { return &service{r: r} }

var (
	errNotFound   = apperr.New(apperr.ErrNotFound, "vehicle not found")
	errNotOwner   = apperr.New(apperr.ErrForbidden, "not the owner of this vehicle")
	errPlateTaken = apperr.New(apperr.ErrConflict, "license plate already registered")
)

func (s *service) List(ctx context.Context, q query.VehicleQuery) (*model.VehicleList, error) {
	rows, total, available, err := s.r.List(ctx, q)
	if err != nil {
		return nil, err
	}
	return &model.VehicleList{
		Vehicles:       rows,
		Total:          total,
		AvailableCount: available,
		Page:           q.Page.Page,
		Limit:          q.Page.Limit,
		TotalPages:     query.TotalPages(total, q.Page.Limit),
	}, nil
}

func (s *service) Detail(ctx context.Context, id int64) (*model.Vehicle, error) {
	v, err := s.r.ByID(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, errNotFound
	}
	return v, err
}

func (s *service) Quote(ctx context.Context, id int64, start, end time.Time) (*pricing.Quote, error) {
	if end.Before(start) {
		return nil, apperr.New(apperr.ErrBadInput, "endDate must not precede startDate")
	}
	v, err := s.Detail(ctx, id)
	if err != nil {
		return nil, err
	}
	q := pricing.Calculate(v.PricePerDay, start, end)
	return &q, nil
}

func (s *service) Mine(ctx context.Context, sellerID int64) ([]model.Vehicle, error) {
	return s.r.BySeller(ctx, sellerID)
}

func apply(v *model.Vehicle, in model.VehicleInput) {
	v.Make = strings.TrimSpace(in.Make)
	v.Model = strings.TrimSpace(in.Model)
	v.Year = in.Year
	v.LicensePlate = strings.TrimSpace(in.LicensePlate)
	v.Category = strings.TrimSpace(in.Category)
	v.FuelType = strings.TrimSpace(in.FuelType)
	v.Transmission = strings.TrimSpace(in.Transmission)
	v.Seats = in.Seats
	v.PricePerDay = in.PricePerDay
	v.Location = strings.TrimSpace(in.Location)
	v.Description = in.Description
	if in.IsAvailable != nil {
		v.IsAvailable = *in.IsAvailable
	}
	v.Images = in.Images
	if v.Images == nil {
		v.Images = []string{}
	}
	v.Features = in.Features
	if v.Features == nil {
		v.Features = []string{}
	}
}

func validInput(in model.VehicleInput) error {
	if strings.TrimSpace(in.LicensePlate) == "" || strings.TrimSpace(in.Make) == "" {
		return apperr.New(apperr.ErrBadInput, "make and license plate are required")
	}
	if in.PricePerDay <= 0 || in.Seats <= 0 {
		return apperr.New(apperr.ErrBadInput, "price and seats must be positive")
	}
	return nil
}

func mapWriteErr(err error) error {
	if cn, ok := database.UniqueViolation(err); ok && strings.Contains(cn, "license_plate") {
		return errPlateTaken
	}
	return err
}

func (s *service) Create(ctx context.Context, actor model.Actor, in model.VehicleInput) (*model.Vehicle, error) {
	if err := validInput(in); err != nil {
		return nil, err
	}
	v := &model.Vehicle{SellerID: actor.ID, IsAvailable: true}
	apply(v, in)
	if err := s.r.Create(ctx, v); err != nil {
		return nil, mapWriteErr(err)
	}
	return v, nil
}

// owned loads the vehicle and checks actor may change it.
func (s *service) owned(ctx context.Context, actor model.Actor, id int64) (*model.Vehicle, error) {
	v, err := s.Detail(ctx, id)
	if err != nil {
		return nil, err
	}
	if v.SellerID != actor.ID && !actor.IsAdmin() {
		return nil, errNotOwner
	}
	return v, nil
}

func (s *service) Update(ctx context.Context, actor model.Actor, id int64, in model.VehicleInput) (*model.Vehicle, error) {
	if err := validInput(in); err != nil {
		return nil, err
	}
	v, err := s.owned(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	apply(v, in)
	if err := s.r.Update(ctx, v); err != nil {
		return nil, mapWriteErr(err)
	}
	return v, nil
}

func (s *service) Delete(ctx context.Context, actor model.Actor, id int64) error {
	if _, err := s.owned(ctx, actor, id); err != nil {
		return err
	}
	err := s.r.Delete(ctx, id)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return errNotFound
	case database.ForeignKeyViolation(err):
		return apperr.New(apperr.ErrConflict, "vehicle has bookings")
	}
	return err
}

func (s *service) SetAvailability(ctx context.Context, actor model.Actor, id int64, available bool) (*model.Vehicle, error) {
	v, err := s.owned(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if err := s.r.SetAvailability(ctx, id, available); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errNotFound
		}
		return nil, err
	}
	v.IsAvailable = available
	return v, nil
}
