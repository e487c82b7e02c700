package models

import (
	"time"

	"github.com/google/uuid"
)

// WasteType values a request or vendor capability can carry.
const (
	WastePlastic = "plastic"
	WastePaper   = "paper"
	WasteOrganic = "organic"
	WasteGlass   = "glass"
	WasteMetal   = "metal"
)

var ValidWasteTypes = []string{WastePlastic, WastePaper, WasteOrganic, WasteGlass, WasteMetal}

func IsValidWasteType(wt string) bool {
	for _, v := range ValidWasteTypes {
		if wt == v {
			return true
		}
	}
	return false
}

type VendorWasteType struct {
	ID         uuid.UUID `json:"id" db:"id"`
	VendorID   uuid.UUID `json:"vendor_id" db:"vendor_id"`
	WasteType  string    `json:"waste_type" db:"waste_type"`
	PricePerKg float64   `json:"price_per_kg" db:"price_per_kg"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

type UpsertWasteTypeRequest struct {
	WasteType  string  `json:"waste_type" validate:"required,oneof=plastic paper organic glass metal"`
	PricePerKg float64 `json:"price_per_kg" validate:"gte=0"`
}
