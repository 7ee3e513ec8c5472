package vehicle

type AvailabilityReq struct {
	IsAvailable *bool `json:"is_available" validate:"required"`
}

type QuoteParams struct {
	StartDate string `query:"startDate"`
	EndDate   string `query:"endDate"`
}
