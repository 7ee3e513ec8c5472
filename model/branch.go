package model

import "time"

type Branch struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Location  string    `json:"location"`
	Address   string    `json:"address"`
	Phone     string    `json:"phone,omitempty"`
	Email     string    `json:"email,omitempty"`
	ManagerID *int64    `json:"manager_id,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type BranchInput struct {
	Name      string `json:"name" validate:"required"`
	Location  string `json:"location" validate:"required"`
	Address   string `json:"address" validate:"required"`
	Phone     string `json:"phone"`
	Email     string `json:"email" validate:"omitempty,email"`
	ManagerID *int64 `json:"manager_id" validate:"omitempty,gt=0"`
	IsActive  *bool  `json:"is_active"`
}
