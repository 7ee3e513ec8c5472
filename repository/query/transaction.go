package query

import (
	"strings"
	"time"

	"swiftride/util/apperr"
)

// TransactionParams are the query-string parameters of the admin transaction listing.
type TransactionParams struct {
	Status        string `query:"status"`
	PaymentStatus string `query:"paymentStatus"`
	StartDate     string `query:"startDate"`
	EndDate       string `query:"endDate"`
	Search        string `query:"search"`
	SortBy        string `query:"sortBy"`
	SortOrder     string `query:"sortOrder"`
	Page          string `query:"page"`
	Limit         string `query:"limit"`
}

const DefaultTransactionLimit = 10

const dateLayout = "2006-01-02"

var transactionSort = map[string]string{
	"createdAt":   "b.created_at",
	"totalAmount": "b.total_amount",
	"startDate":   "b.start_date",
}

// Build produces the filter over bookings aliased as b. endDate covers the whole day.
func (p TransactionParams) Build() (ListQuery, error) {
	w := NewWhere()
	if v := strings.TrimSpace(p.Status); v != "" {
		w.Eq("b.status", v)
	}
	if v := strings.TrimSpace(p.PaymentStatus); v != "" {
		w.Eq("b.payment_status", v)
	}
	start, err := DayParam("startDate", p.StartDate)
	if err != nil {
		return ListQuery{}, err
	}
	if start != nil {
		w.Gte("b.created_at", *start)
	}
	end, err := DayParam("endDate", p.EndDate)
	if err != nil {
		return ListQuery{}, err
	}
	if end != nil {
		w.Lt("b.created_at", end.AddDate(0, 0, 1))
	}
	if v := strings.TrimSpace(p.Search); v != "" {
		w.ILike(v, "b.customer_name", "b.customer_email")
	}
	page, err := NewPage(p.Page, p.Limit, DefaultTransactionLimit)
	if err != nil {
		return ListQuery{}, err
	}
	return ListQuery{
		Where: w,
		Sort:  NewSort(p.SortBy, p.SortOrder, transactionSort, "createdAt"),
		Page:  page,
	}, nil
}

// DayParam parses a YYYY-MM-DD query parameter as midnight UTC. Empty is nil.
func DayParam(name, s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(dateLayout, s, time.UTC)
	if err != nil {
		return nil, apperr.New(apperr.ErrBadInput, "invalid "+name)
	}
	return &t, nil
}
