package query

import "strings"

// UserParams are the query-string parameters of the admin user listing.
type UserParams struct {
	Role      string `query:"role"`
	IsActive  string `query:"isActive"`
	Search    string `query:"search"`
	SortBy    string `query:"sortBy"`
	SortOrder string `query:"sortOrder"`
	Page      string `query:"page"`
	Limit     string `query:"limit"`
}

const DefaultUserLimit = 10

var userSort = map[string]string{
	"createdAt": "created_at",
	"name":      "first_name",
	"email":     "email",
	"role":      "role",
}

type ListQuery struct {
	Where *Where
	Sort  Sort
	Page  Page
}

func (p UserParams) Build() (ListQuery, error) {
	w := NewWhere()
	if v := strings.TrimSpace(p.Role); v != "" {
		w.Eq("role", v)
	}
	active, err := boolParam("isActive", p.IsActive)
	if err != nil {
		return ListQuery{}, err
	}
	if active != nil {
		w.Eq("is_active", *active)
	}
	if v := strings.TrimSpace(p.Search); v != "" {
		w.ILike(v, "first_name", "last_name", "email")
	}
	page, err := NewPage(p.Page, p.Limit, DefaultUserLimit)
	if err != nil {
		return ListQuery{}, err
	}
	return ListQuery{
		Where: w,
		Sort:  NewSort(p.SortBy, p.SortOrder, userSort, "createdAt"),
		Page:  page,
	}, nil
}
