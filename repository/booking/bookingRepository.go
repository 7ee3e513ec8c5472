package bookingrepo

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"swiftride/model"
	"swiftride/util/database"
)

type Repo interface {
	Create(ctx context.Context, b *model.Booking) error
	ByID(ctx context.Context, id int64) (*model.Booking, error)
	ByCustomer(ctx context.Context, customerID int64) ([]model.Booking, error)
	ByInvoice(ctx context.Context, invoiceID string) (*model.Booking, error)

	// Transition moves a booking from one status to another and, when
	// vehicleAvailable is set, updates the vehicle's flag in the same
	// transaction. It fails with pgx.ErrNoRows when the booking is no longer
	// in status from.
	Transition(ctx context.Context, id int64, from, to model.BookingStatus, vehicleAvailable *bool) (*model.Booking, error)

	// ConfirmPayment marks a pending or confirmed booking paid. A pending
	// booking moves to confirmed and its vehicle becomes unavailable in the
	// same transaction. Bookings that cannot accept a payment are left alone
	// and reported with Applied false.
	ConfirmPayment(ctx context.Context, id int64) (Confirmation, error)
	// MarkPaymentFailed reports false when the payment was no longer pending.
	MarkPaymentFailed(ctx context.Context, id int64) (bool, error)

	PendingPayments(ctx context.Context) ([]model.Booking, error)
	ExpireUnpaid(ctx context.Context, before time.Time) (int64, error)
}

// Confirmation is the stored state of a booking after ConfirmPayment.
type Confirmation struct {
	Status        model.BookingStatus
	PaymentStatus model.PaymentStatus
	Applied       bool
}

type repo struct{ db *database.DB }

func New(db *database.DB) Repo { return &repo{db} }

const bookingCols = `b.id, b.customer_id, b.vehicle_id, b.start_date, b.end_date, b.total_days,
	b.price_per_day, b.subtotal, b.tax, b.service_fee, b.total_amount, b.status, b.payment_status,
	b.payment_invoice_id, b.payment_link, b.payment_due_at, b.paid_at, b.cancelled_at,
	b.customer_name, b.customer_email, b.customer_phone, b.pickup_location, b.dropoff_location,
	b.notes, b.created_at, b.updated_at,
	v.id, v.make, v.model, v.year, v.license_plate, v.price_per_day, v.seller_id`

// Columns is the select list Scan expects, over bookings b joined with vehicles v.
func Columns() string { return bookingCols }

const fromBookings = ` FROM bookings b JOIN vehicles v ON v.id = b.vehicle_id `

// Scan reads a row selected with Columns.
func Scan(row pgx.Row) (*model.Booking, error) {
	b := &model.Booking{Vehicle: &model.VehicleSummary{}}
	err := row.Scan(&b.ID, &b.CustomerID, &b.VehicleID, &b.StartDate, &b.EndDate, &b.TotalDays,
		&b.PricePerDay, &b.Subtotal, &b.Tax, &b.ServiceFee, &b.TotalAmount, &b.Status, &b.PaymentStatus,
		&b.PaymentInvoice, &b.PaymentLink, &b.PaymentDueAt, &b.PaidAt, &b.CancelledAt,
		&b.CustomerName, &b.CustomerEmail, &b.CustomerPhone, &b.PickupLocation, &b.DropoffLocation,
		&b.Notes, &b.CreatedAt, &b.UpdatedAt,
		&b.Vehicle.ID, &b.Vehicle.Make, &b.Vehicle.Model, &b.Vehicle.Year, &b.Vehicle.LicensePlate,
		&b.Vehicle.PricePerDay, &b.Vehicle.SellerID)
	if err != nil {
		return nil, err
	}
	return b, nil
}

func collect(rows pgx.Rows) ([]model.Booking, error) {
	defer rows.Close()
	out := []model.Booking{}
	for rows.Next() {
		b, err := Scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *b)
	}
	return out, rows.Err()
}

func (r *repo) Create(ctx context.Context, b *model.Booking) error {
	const q = `
INSERT INTO bookings (customer_id, vehicle_id, start_date, end_date, total_days,
	price_per_day, subtotal, tax, service_fee, total_amount, status, payment_status,
	payment_invoice_id, payment_link, payment_due_at,
	customer_name, customer_email, customer_phone, pickup_location, dropoff_location, notes)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21)
RETURNING id, created_at, updated_at`
	return r.db.Pool.QueryRow(ctx, q,
		b.CustomerID, b.VehicleID, b.StartDate, b.EndDate, b.TotalDays,
		b.PricePerDay, b.Subtotal, b.Tax, b.ServiceFee, b.TotalAmount, b.Status, b.PaymentStatus,
		b.PaymentInvoice, b.PaymentLink, b.PaymentDueAt,
		b.CustomerName, b.CustomerEmail, b.CustomerPhone, b.PickupLocation, b.DropoffLocation, b.Notes,
	).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
}

func (r *repo) ByID(ctx context.Context, id int64) (*model.Booking, error) {
	return Scan(r.db.Pool.QueryRow(ctx, `SELECT `+bookingCols+fromBookings+`WHERE b.id = $1`, id))
}

func (r *repo) ByInvoice(ctx context.Context, invoiceID string) (*model.Booking, error) {
	return Scan(r.db.Pool.QueryRow(ctx, `SELECT `+bookingCols+fromBookings+`WHERE b.payment_invoice_id = $1`, invoiceID))
}

func (r *repo) ByCustomer(ctx context.Context, customerID int64) ([]model.Booking, error) {
	rows, err := r.db.Pool.Query(ctx, `SELECT `+bookingCols+fromBookings+`
		WHERE b.customer_id = $1
		ORDER BY b.created_at DESC, b.id DESC`, customerID)
	if err != nil {
		return nil, err
	}
	return collect(rows)
}

func (r *repo) Transition(ctx context.Context, id int64, from, to model.BookingStatus, vehicleAvailable *bool) (*model.Booking, error) {
	err := r.db.InTx(ctx, func(tx pgx.Tx) error {
		var vehicleID int64
		err := tx.QueryRow(ctx, `
			UPDATE bookings
			SET status = $3::text,
				cancelled_at = CASE WHEN $3::text = 'cancelled' THEN now() ELSE cancelled_at END,
				payment_status = CASE
					WHEN $3::text = 'cancelled' AND payment_status = 'paid' THEN 'refunded'
					WHEN $3::text = 'cancelled' AND payment_status = 'pending' THEN 'failed'
					ELSE payment_status END,
				updated_at = now()
			WHERE id = $1 AND status = $2
			RETURNING vehicle_id`, id, from, to).Scan(&vehicleID)
		if err != nil {
			return err
		}
		if vehicleAvailable == nil {
			return nil
		}
		_, err = tx.Exec(ctx, `UPDATE vehicles SET is_available = $2, updated_at = now() WHERE id = $1`,
			vehicleID, *vehicleAvailable)
		return err
	})
	if err != nil {
		return nil, err
	}
	return r.ByID(ctx, id)
}

func (r *repo) ConfirmPayment(ctx context.Context, id int64) (Confirmation, error) {
	var out Confirmation
	err := r.db.InTx(ctx, func(tx pgx.Tx) error {
		var vehicleID int64
		err := tx.QueryRow(ctx, `
			SELECT status, payment_status, vehicle_id FROM bookings WHERE id = $1 FOR UPDATE`, id).
			Scan(&out.Status, &out.PaymentStatus, &vehicleID)
		if err != nil {
			return err
		}
		if !out.Status.AcceptsPayment(out.PaymentStatus) {
			return nil
		}

		next := out.Status
		if next == model.BookingPending {
			next = model.BookingConfirmed
		}
		if _, err := tx.Exec(ctx, `
			UPDATE bookings
			SET status = $2, payment_status = 'paid', paid_at = now(), updated_at = now()
			WHERE id = $1`, id, string(next)); err != nil {
			return err
		}
		if out.Status == model.BookingPending {
			if _, err := tx.Exec(ctx, `UPDATE vehicles SET is_available = false, updated_at = now() WHERE id = $1`, vehicleID); err != nil {
				return err
			}
		}
		out = Confirmation{Status: next, PaymentStatus: model.PaymentPaid, Applied: true}
		return nil
	})
	if err != nil {
		return Confirmation{}, err
	}
	return out, nil
}

func (r *repo) MarkPaymentFailed(ctx context.Context, id int64) (bool, error) {
	tag, err := r.db.Pool.Exec(ctx, `
		UPDATE bookings SET payment_status = 'failed', updated_at = now()
		WHERE id = $1 AND payment_status = 'pending'`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *repo) PendingPayments(ctx context.Context) ([]model.Booking, error) {
	rows, err := r.db.Pool.Query(ctx, `SELECT `+bookingCols+fromBookings+`
		WHERE b.payment_status = 'pending' AND b.status = 'pending' AND b.payment_invoice_id IS NOT NULL
		ORDER BY b.created_at, b.id`)
	if err != nil {
		return nil, err
	}
	return collect(rows)
}

func (r *repo) ExpireUnpaid(ctx context.Context, before time.Time) (int64, error) {
	tag, err := r.db.Pool.Exec(ctx, `
		UPDATE bookings
		SET status = 'cancelled', payment_status = 'failed', cancelled_at = now(), updated_at = now()
		WHERE status = 'pending' AND payment_status = 'pending' AND created_at < $1`, before)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
