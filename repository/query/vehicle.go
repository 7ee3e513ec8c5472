package query

import "strings"

// VehicleParams are the query-string parameters of the public vehicle listing.
type VehicleParams struct {
	Available    string `query:"available"`
	Type         string `query:"type"`
	FuelType     string `query:"fuelType"`
	Transmission string `query:"transmission"`
	Seats        string `query:"seats"`
	Location     string `query:"location"`
	MinPrice     string `query:"minPrice"`
	MaxPrice     string `query:"maxPrice"`
	SortBy       string `query:"sortBy"`
	SortOrder    string `query:"sortOrder"`
	Page         string `query:"page"`
	Limit        string `query:"limit"`
}

const DefaultVehicleLimit = 12

// seatsOrMore is the seats value that selects every vehicle with at least that many seats.
const seatsOrMore = "8"

var vehicleSort = map[string]string{
	"price":     "price_per_day",
	"year":      "year",
	"createdAt": "created_at",
}

type VehicleQuery struct {
	// Availability is nil when the caller asked for all vehicles.
	Availability *bool
	Sort         Sort
	Page         Page

	filters *Where
}

// Build validates the parameters and produces the listing query.
func (p VehicleParams) Build() (VehicleQuery, error) {
	q := VehicleQuery{filters: NewWhere()}

	switch strings.TrimSpace(p.Available) {
	case "all":
	case "false":
		f := false
		q.Availability = &f
	default:
		t := true
		q.Availability = &t
	}

	if v := strings.TrimSpace(p.Type); v != "" {
		q.filters.Eq("category", v)
	}
	if v := strings.TrimSpace(p.FuelType); v != "" {
		q.filters.Eq("fuel_type", v)
	}
	if v := strings.TrimSpace(p.Transmission); v != "" {
		q.filters.Eq("transmission", v)
	}
	if v := strings.TrimSpace(p.Seats); v != "" {
		n, err := intParam("seats", v, 0)
		if err != nil {
			return VehicleQuery{}, err
		}
		if v == seatsOrMore {
			q.filters.Gte("seats", n)
		} else {
			q.filters.Eq("seats", n)
		}
	}
	if v := strings.TrimSpace(p.Location); v != "" {
		q.filters.ILike(v, "location")
	}
	minP, err := floatParam("minPrice", p.MinPrice)
	if err != nil {
		return VehicleQuery{}, err
	}
	if minP != nil {
		q.filters.Gte("price_per_day", *minP)
	}
	maxP, err := floatParam("maxPrice", p.MaxPrice)
	if err != nil {
		return VehicleQuery{}, err
	}
	if maxP != nil {
		q.filters.Lte("price_per_day", *maxP)
	}

	q.Sort = NewSort(p.SortBy, p.SortOrder, vehicleSort, "createdAt")
	q.Page, err = NewPage(p.Page, p.Limit, DefaultVehicleLimit)
	if err != nil {
		return VehicleQuery{}, err
	}
	return q, nil
}

// Where is the listing filter including the requested availability.
func (q VehicleQuery) Where() *Where {
	w := q.filters.Clone()
	if q.Availability != nil {
		w.Eq("is_available", *q.Availability)
	}
	return w
}

// AvailableWhere is the listing filter with availability forced to true,
// whatever the caller asked for.
func (q VehicleQuery) AvailableWhere() *Where {
	return q.filters.Clone().Eq("is_available", true)
}
