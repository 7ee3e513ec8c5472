package admin

// UserStatusReq toggles an account's active flag.
type UserStatusReq struct {
	IsActive *bool `json:"is_active" validate:"required"`
}

// RangeParams selects the window of a finance report.
type RangeParams struct {
	Period    string `query:"period"`
	StartDate string `query:"startDate"`
	EndDate   string `query:"endDate"`
}
