package model

// StatusTotal aggregates the bookings sharing one (status, payment status)
// pair. Min and Max are zero when Count is zero.
type StatusTotal struct {
	Status        BookingStatus
	PaymentStatus PaymentStatus
	Count         int64
	Amount        float64
	Min           float64
	Max           float64
}

type RevenueOverview struct {
	TotalRevenue            float64 `json:"total_revenue"`
	TotalTransactions       int64   `json:"total_transactions"`
	AverageTransactionValue float64 `json:"average_transaction_value"`
	MinTransactionValue     float64 `json:"min_transaction_value"`
	MaxTransactionValue     float64 `json:"max_transaction_value"`
	TotalBookings           int64   `json:"total_bookings"`
}

type StatusBucket struct {
	Status string  `json:"status"`
	Count  int64   `json:"count"`
	Amount float64 `json:"amount"`
}

type Breakdown struct {
	ByPaymentStatus []StatusBucket `json:"by_payment_status"`
	ByBookingStatus []StatusBucket `json:"by_booking_status"`
}

type MonthlyRevenue struct {
	Year    int     `json:"year"`
	Month   int     `json:"month"`
	Revenue float64 `json:"revenue"`
	Count   int64   `json:"count"`
}

type VehicleRevenue struct {
	VehicleID int64    `json:"vehicle_id"`
	Revenue   float64  `json:"revenue"`
	Count     int64    `json:"count"`
	Vehicle   *Vehicle `json:"vehicle,omitempty"`
}

// TransactionList is one page of the admin transaction listing.
type TransactionList struct {
	Transactions []Booking `json:"transactions"`
	Total        int64     `json:"total"`
	Page         int       `json:"page"`
	Limit        int       `json:"limit"`
	TotalPages   int       `json:"total_pages"`
}
