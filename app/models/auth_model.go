package models

import (
	"time"

	"github.com/google/uuid"
)

type SignUp struct {
	Email    string `json:"email" validate:"required,email,lte=255"`
	Name     string `json:"name" validate:"required,lte=255"`
	Password string `json:"password" validate:"required,lte=255"`
	Contact  string `json:"contact" validate:"required,lte=20"`
	Address  string `json:"address" validate:"required,lte=500"`
	UserRole string `json:"user_role" validate:"required,oneof=citizen vendor"`

	// Vendor signups may declare collection capabilities up front.
	WasteTypes []SignUpWasteType `json:"waste_types,omitempty" validate:"omitempty,dive"`
}

type SignUpWasteType struct {
	WasteType  string   `json:"waste_type" validate:"required,oneof=plastic paper organic glass metal"`
	PricePerKg *float64 `json:"price_per_kg" validate:"omitempty,gte=0"`
}

type SignIn struct {
	Email    string `json:"email" validate:"required,email,lte=255"`
	Password string `json:"password" validate:"required,lte=255"`
}

type VerifyOTP struct {
	Email string `json:"email" validate:"required,email,lte=255"`
	OTP   string `json:"otp" validate:"required,len=4"`
}

type RefreshToken struct {
	ID        uuid.UUID `json:"id" db:"id"`
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	Token     string    `json:"token" db:"token"`
	ExpiresAt time.Time `json:"expires_at" db:"expires_at"`
	Revoked   bool      `json:"revoked" db:"revoked"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
