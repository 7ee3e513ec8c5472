package model

import "time"

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingActive    BookingStatus = "active"
	BookingCompleted BookingStatus = "completed"
	BookingCancelled BookingStatus = "cancelled"
)

var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingPending:   {BookingConfirmed, BookingCancelled},
	BookingConfirmed: {BookingActive, BookingCancelled},
	BookingActive:    {BookingCompleted},
}

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingActive, BookingCompleted, BookingCancelled:
		return true
	}
	return false
}

// CanMoveTo reports whether an administrative status change from s to next is allowed.
func (s BookingStatus) CanMoveTo(next BookingStatus) bool {
	for _, n := range bookingTransitions[s] {
		if n == next {
			return true
		}
	}
	return false
}

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentFailed   PaymentStatus = "failed"
	PaymentRefunded PaymentStatus = "refunded"
)

// AcceptsPayment reports whether a provider payment may settle a booking in
// status s whose payment is currently p. Closed bookings never become paid.
func (s BookingStatus) AcceptsPayment(p PaymentStatus) bool {
	if s != BookingPending && s != BookingConfirmed {
		return false
	}
	return p == PaymentPending || p == PaymentFailed
}

type Booking struct {
	ID              int64         `json:"id"`
	CustomerID      int64         `json:"customer_id"`
	VehicleID       int64         `json:"vehicle_id"`
	StartDate       time.Time     `json:"start_date"`
	EndDate         time.Time     `json:"end_date"`
	TotalDays       int           `json:"total_days"`
	PricePerDay     float64       `json:"price_per_day"`
	Subtotal        float64       `json:"subtotal"`
	Tax             float64       `json:"tax"`
	ServiceFee      float64       `json:"service_fee"`
	TotalAmount     float64       `json:"total_amount"`
	Status          BookingStatus `json:"status"`
	PaymentStatus   PaymentStatus `json:"payment_status"`
	PaymentInvoice  *string       `json:"payment_invoice_id,omitempty"`
	PaymentLink     *string       `json:"payment_link,omitempty"`
	PaymentDueAt    *time.Time    `json:"payment_due_at,omitempty"`
	PaidAt          *time.Time    `json:"paid_at,omitempty"`
	CancelledAt     *time.Time    `json:"cancelled_at,omitempty"`
	CustomerName    string        `json:"customer_name"`
	CustomerEmail   string        `json:"customer_email"`
	CustomerPhone   string        `json:"customer_phone,omitempty"`
	PickupLocation  string        `json:"pickup_location"`
	DropoffLocation string        `json:"dropoff_location"`
	Notes           *string       `json:"notes,omitempty"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`

	Vehicle *VehicleSummary `json:"vehicle,omitempty"`
}

// VehicleSummary is the vehicle part populated into booking listings.
type VehicleSummary struct {
	ID           int64   `json:"id"`
	Make         string  `json:"make"`
	Model        string  `json:"model"`
	Year         int     `json:"year"`
	LicensePlate string  `json:"license_plate"`
	PricePerDay  float64 `json:"price_per_day"`
	SellerID     int64   `json:"seller_id"`
}

// BookingReq is the customer's booking payload. Dates are YYYY-MM-DD or RFC 3339.
type BookingReq struct {
	VehicleID       int64  `json:"vehicle_id" validate:"required,gt=0"`
	StartDate       string `json:"start_date" validate:"required"`
	EndDate         string `json:"end_date" validate:"required"`
	PickupLocation  string `json:"pickup_location" validate:"required"`
	DropoffLocation string `json:"dropoff_location" validate:"required"`
	CustomerPhone   string `json:"customer_phone"`
	Notes           string `json:"notes"`
}

type StatusReq struct {
	Status BookingStatus `json:"status" validate:"required"`
}
