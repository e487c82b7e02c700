package models

import (
	"time"

	"github.com/google/uuid"
)

// PlatformFee is the flat deduction taken from every completed pickup.
const PlatformFee = 10.0

// DefaultRatePerKg is used when a vendor has no declared rate for the
// request's waste type.
const DefaultRatePerKg = 5.0

type Bill struct {
	ID           uuid.UUID `json:"id" db:"id"`
	RequestID    uuid.UUID `json:"request_id" db:"request_id"`
	CitizenID    uuid.UUID `json:"citizen_id" db:"citizen_id"`
	VendorID     uuid.UUID `json:"vendor_id" db:"vendor_id"`
	WasteType    string    `json:"waste_type" db:"waste_type"`
	ActualWeight float64   `json:"actual_weight" db:"actual_weight"`
	RatePerKg    float64   `json:"rate_per_kg" db:"rate_per_kg"`
	GrossAmount  float64   `json:"gross_amount" db:"gross_amount"`
	PlatformFee  float64   `json:"platform_fee" db:"platform_fee"`
	NetAmount    float64   `json:"net_amount" db:"net_amount"`
	PaymentURL   string    `json:"payment_url,omitempty" db:"payment_url"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// ComputeBill derives the billing amounts for a completed pickup. Net may go
// negative when the gross is below the platform fee; that is not clamped.
func ComputeBill(actualWeight, ratePerKg float64) (gross, fee, net float64) {
	gross = actualWeight * ratePerKg
	fee = PlatformFee
	net = gross - fee
	return gross, fee, net
}

// NewBill builds the immutable billing record for a completed request.
func NewBill(req *PickupRequest, vendorID uuid.UUID, actualWeight, ratePerKg float64) *Bill {
	gross, fee, net := ComputeBill(actualWeight, ratePerKg)
	return &Bill{
		ID:           uuid.New(),
		RequestID:    req.ID,
		CitizenID:    req.CitizenID,
		VendorID:     vendorID,
		WasteType:    req.WasteType,
		ActualWeight: actualWeight,
		RatePerKg:    ratePerKg,
		GrossAmount:  gross,
		PlatformFee:  fee,
		NetAmount:    net,
		CreatedAt:    time.Now(),
	}
}
