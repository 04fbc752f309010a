// Package users proxies the Users module of the dashboard to the auction
// backend.
package users

import "time"

// User is an auction-platform account as the backend reports it.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email,omitempty"`
	Role      string    `json:"role"`
	CompanyID string    `json:"companyId,omitempty"`
	IsBlocked bool      `json:"isBlocked"`
	CreatedAt time.Time `json:"createdAt"`
}

// CreateRequest is the payload for creating an account.
type CreateRequest struct {
	Name  string `json:"name" validate:"required"`
	Phone string `json:"phone" validate:"required,e164"`
	Email string `json:"email" validate:"omitempty,email"`
	Role  string `json:"role" validate:"required"`
}

// UpdateRequest is the payload for updating an account.
type UpdateRequest struct {
	Name  string `json:"name" validate:"omitempty"`
	Email string `json:"email" validate:"omitempty,email"`
	Role  string `json:"role" validate:"omitempty"`
}
