package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Request lifecycle statuses. A request moves strictly forward:
// pending -> accepted -> assigned -> in_progress -> completed, with
// declined and cancelled as the only off-ramps, both out of pending.
const (
	StatusPending    = "pending"
	StatusAccepted   = "accepted"
	StatusAssigned   = "assigned"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
	StatusDeclined   = "declined"
)

// Weight categories are citizen-declared size buckets, advisory only.
const (
	WeightSmall  = "small"  // 0-5 kg
	WeightMedium = "medium" // 5-15 kg
	WeightLarge  = "large"  // 15+ kg
)

var ErrInvalidTransition = errors.New("invalid state transition")

// transitions is the closed set of legal status edges.
var transitions = map[string][]string{
	StatusPending:    {StatusAccepted, StatusDeclined, StatusCancelled},
	StatusAccepted:   {StatusAssigned},
	StatusAssigned:   {StatusInProgress},
	StatusInProgress: {StatusCompleted},
}

// CanTransition reports whether a request may move from one status to another.
func CanTransition(from, to string) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether a status admits no further transitions.
func IsTerminal(status string) bool {
	return len(transitions[status]) == 0
}

func IsValidWeightCategory(wc string) bool {
	return wc == WeightSmall || wc == WeightMedium || wc == WeightLarge
}

type PickupRequest struct {
	ID                uuid.UUID  `json:"id" db:"id"`
	CitizenID         uuid.UUID  `json:"citizen_id" db:"citizen_id"`
	WasteType         string     `json:"waste_type" db:"waste_type"`
	WeightCategory    string     `json:"weight_category" db:"weight_category"`
	ApproximateWeight *float64   `json:"approximate_weight,omitempty" db:"approximate_weight"`
	ActualWeight      *float64   `json:"actual_weight,omitempty" db:"actual_weight"`
	WastePhotoURL     *string    `json:"waste_photo_url,omitempty" db:"waste_photo_url"`
	Status            string     `json:"status" db:"status"`
	AssignedVendorID  *uuid.UUID `json:"assigned_vendor_id,omitempty" db:"assigned_vendor_id"`
	PickupDate        *time.Time `json:"pickup_date,omitempty" db:"pickup_date"`
	PickupTime        *string    `json:"pickup_time,omitempty" db:"pickup_time"`
	CitizenLocation   *string    `json:"citizen_location,omitempty" db:"citizen_location"`
	CreatedAt         time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at" db:"updated_at"`

	// Joined citizen profile fields for vendor-facing listings.
	CitizenName    string `json:"citizen_name,omitempty"`
	CitizenAddress string `json:"citizen_address,omitempty"`
	CitizenContact string `json:"citizen_contact,omitempty"`
}

type CreatePickupRequest struct {
	WasteType         string   `json:"waste_type" validate:"required,oneof=plastic paper organic glass metal"`
	WeightCategory    string   `json:"weight_category" validate:"required,oneof=small medium large"`
	ApproximateWeight *float64 `json:"approximate_weight" validate:"omitempty,gt=0"`
	CitizenLocation   *string  `json:"citizen_location" validate:"omitempty,lte=500"`
}

type SchedulePickupRequest struct {
	PickupDate string `json:"pickup_date" validate:"required"`
	PickupTime string `json:"pickup_time" validate:"required"`
}

type CompletePickupRequest struct {
	ActualWeight float64 `json:"actual_weight" validate:"required,gt=0"`
}

// FilterRequestsForVendor narrows pending requests to those matching a
// vendor's declared waste types. An empty declared set fails open: the
// vendor sees every pending request rather than being silently starved
// by missing configuration.
func FilterRequestsForVendor(requests []PickupRequest, declared []string) []PickupRequest {
	if len(declared) == 0 {
		return requests
	}
	set := make(map[string]bool, len(declared))
	for _, wt := range declared {
		set[wt] = true
	}
	out := []PickupRequest{}
	for _, r := range requests {
		if set[r.WasteType] {
			out = append(out, r)
		}
	}
	return out
}
