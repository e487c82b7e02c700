package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestComputeBill(t *testing.T) {
	gross, fee, net := ComputeBill(10.0, 5.0)

	assert.Equal(t, 50.0, gross)
	assert.Equal(t, 10.0, fee)
	assert.Equal(t, 40.0, net)
}

func TestComputeBillNetCanGoNegative(t *testing.T) {
	gross, fee, net := ComputeBill(1.0, 5.0)

	assert.Equal(t, 5.0, gross)
	assert.Equal(t, 10.0, fee)
	assert.Equal(t, -5.0, net)
}

func TestComputeBillZeroRate(t *testing.T) {
	gross, _, net := ComputeBill(12.5, 0)

	assert.Equal(t, 0.0, gross)
	assert.Equal(t, -PlatformFee, net)
}

func TestNewBill(t *testing.T) {
	vendorID := uuid.New()
	req := &PickupRequest{
		ID:        uuid.New(),
		CitizenID: uuid.New(),
		WasteType: WastePlastic,
		Status:    StatusInProgress,
	}

	bill := NewBill(req, vendorID, 10.0, 5.0)

	assert.Equal(t, req.ID, bill.RequestID)
	assert.Equal(t, req.CitizenID, bill.CitizenID)
	assert.Equal(t, vendorID, bill.VendorID)
	assert.Equal(t, WastePlastic, bill.WasteType)
	assert.Equal(t, 10.0, bill.ActualWeight)
	assert.Equal(t, 5.0, bill.RatePerKg)
	assert.Equal(t, 50.0, bill.GrossAmount)
	assert.Equal(t, PlatformFee, bill.PlatformFee)
	assert.Equal(t, 40.0, bill.NetAmount)
	assert.NotEqual(t, uuid.Nil, bill.ID)
	assert.Equal(t, bill.GrossAmount-bill.PlatformFee, bill.NetAmount)
}
