package models

import (
	"time"

	"github.com/google/uuid"
)

type Profile struct {
	ID           uuid.UUID `json:"id" db:"uid"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Contact      string    `json:"contact,omitempty"`
	Address      string    `json:"address,omitempty"`
	PasswordHash string    `json:"-"`
	Verified     bool      `json:"verified"`
	OTP          string    `json:"-"`
	UserRole     string    `json:"user_role"`

	// Vendor capabilities, populated only for vendor profiles.
	WasteTypes []VendorWasteType `json:"waste_types,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type UpdateProfileRequest struct {
	Name    *string `json:"name"`
	Contact *string `json:"contact"`
	Address *string `json:"address"`
}
