package financesvc

import (
	"strings"
	"time"

	"swiftride/repository/query"
	"swiftride/util/apperr"
)

const (
	PeriodWeek    = "week"
	PeriodMonth   = "month"
	PeriodQuarter = "quarter"
	PeriodYear    = "year"
)

// ResolveRange maps the finance query parameters to a window. Explicit dates
// take precedence over period; endDate includes the whole day. Dates and
// period boundaries are UTC, like the transaction listing. Named periods run
// from their start up to now.
func ResolveRange(period, startDate, endDate string, now time.Time) (query.DateRange, error) {
	if strings.TrimSpace(startDate) != "" || strings.TrimSpace(endDate) != "" {
		from, err := query.DayParam("startDate", startDate)
		if err != nil {
			return query.DateRange{}, err
		}
		end, err := query.DayParam("endDate", endDate)
		if err != nil {
			return query.DateRange{}, err
		}
		r := query.DateRange{From: from}
		if end != nil {
			to := end.AddDate(0, 0, 1)
			r.To = &to
		}
		if r.From != nil && r.To != nil && !r.From.Before(*r.To) {
			return query.DateRange{}, apperr.New(apperr.ErrBadInput, "endDate before startDate")
		}
		return r, nil
	}

	now = now.UTC()
	var from time.Time
	y, m, _ := now.Date()
	switch strings.TrimSpace(period) {
	case "":
		return query.DateRange{}, nil
	case PeriodWeek:
		from = now.AddDate(0, 0, -7)
	case PeriodMonth:
		from = time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
	case PeriodQuarter:
		from = time.Date(y, m-3, 1, 0, 0, 0, 0, time.UTC)
	case PeriodYear:
		from = time.Date(y, time.January, 1, 0, 0, 0, 0, time.UTC)
	default:
		return query.DateRange{}, apperr.New(apperr.ErrBadInput, "invalid period")
	}
	return query.DateRange{From: &from}, nil
}
