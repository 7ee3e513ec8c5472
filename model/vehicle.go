package model

import "time"

type Vehicle struct {
	ID           int64     `json:"id"`
	SellerID     int64     `json:"seller_id"`
	Make         string    `json:"make"`
	Model        string    `json:"model"`
	Year         int       `json:"year"`
	LicensePlate string    `json:"license_plate"`
	Category     string    `json:"category"`
	FuelType     string    `json:"fuel_type"`
	Transmission string    `json:"transmission"`
	Seats        int       `json:"seats"`
	PricePerDay  float64   `json:"price_per_day"`
	Location     string    `json:"location"`
	Description  string    `json:"description,omitempty"`
	IsAvailable  bool      `json:"is_available"`
	Images       []string  `json:"images"`
	Features     []string  `json:"features"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// VehicleInput is the writable part of a vehicle.
type VehicleInput struct {
	Make         string   `json:"make" validate:"required"`
	Model        string   `json:"model" validate:"required"`
	Year         int      `json:"year" validate:"required,gte=1950,lte=2100"`
	LicensePlate string   `json:"license_plate" validate:"required"`
	Category     string   `json:"category" validate:"required"`
	FuelType     string   `json:"fuel_type" validate:"required"`
	Transmission string   `json:"transmission" validate:"required"`
	Seats        int      `json:"seats" validate:"required,gt=0"`
	PricePerDay  float64  `json:"price_per_day" validate:"required,gt=0"`
	Location     string   `json:"location" validate:"required"`
	Description  string   `json:"description"`
	IsAvailable  *bool    `json:"is_available"`
	Images       []string `json:"images" validate:"omitempty,dive,url"`
	Features     []string `json:"features"`
}

// VehicleList is one page of a vehicle listing.
type VehicleList struct {
	Vehicles       []Vehicle `json:"vehicles"`
	Total          int64     `json:"total"`
	AvailableCount int64     `json:"available_count"`
	Page           int       `json:"page"`
	Limit          int       `json:"limit"`
	TotalPages     int       `json:"total_pages"`
}
