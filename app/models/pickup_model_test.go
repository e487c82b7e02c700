package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allowedEdges = []struct{ from, to string }{
	{StatusPending, StatusAccepted},
	{StatusPending, StatusDeclined},
	{StatusPending, StatusCancelled},
	{StatusAccepted, StatusAssigned},
	{StatusAssigned, StatusInProgress},
	{StatusInProgress, StatusCompleted},
}

func TestCanTransition(t *testing.T) {
	for _, tr := range allowedEdges {
		assert.True(t, CanTransition(tr.from, tr.to), "%s -> %s should be allowed", tr.from, tr.to)
	}
}

func TestCanTransitionRejectsEverythingElse(t *testing.T) {
	statuses := []string{
		StatusPending, StatusAccepted, StatusAssigned,
		StatusInProgress, StatusCompleted, StatusCancelled, StatusDeclined,
	}
	allowed := map[string]bool{}
	for _, tr := range allowedEdges {
		allowed[tr.from+">"+tr.to] = true
	}
	for _, from := range statuses {
		for _, to := range statuses {
			if allowed[from+">"+to] {
				continue
			}
			assert.False(t, CanTransition(from, to), "%s -> %s should be rejected", from, to)
		}
	}
}

func TestCancelOnAcceptedIsRejected(t *testing.T) {
	assert.False(t, CanTransition(StatusAccepted, StatusCancelled))
}

func TestIsTerminal(t *testing.T) {
	assert.True(t, IsTerminal(StatusCompleted))
	assert.True(t, IsTerminal(StatusCancelled))
	assert.True(t, IsTerminal(StatusDeclined))
	assert.False(t, IsTerminal(StatusPending))
	assert.False(t, IsTerminal(StatusAccepted))
	assert.False(t, IsTerminal(StatusAssigned))
	assert.False(t, IsTerminal(StatusInProgress))
}

func pendingRequest(wasteType string) PickupRequest {
	return PickupRequest{
		ID:        uuid.New(),
		CitizenID: uuid.New(),
		WasteType: wasteType,
		Status:    StatusPending,
	}
}

func TestFilterRequestsForVendorDeclaredSet(t *testing.T) {
	requests := []PickupRequest{
		pendingRequest(WastePlastic),
		pendingRequest(WastePaper),
		pendingRequest(WastePlastic),
		pendingRequest(WasteMetal),
	}

	visible := FilterRequestsForVendor(requests, []string{WastePlastic})

	require.Len(t, visible, 2)
	for _, r := range visible {
		assert.Equal(t, WastePlastic, r.WasteType)
	}
}

func TestFilterRequestsForVendorEmptySetFailsOpen(t *testing.T) {
	requests := []PickupRequest{
		pendingRequest(WastePlastic),
		pendingRequest(WasteOrganic),
	}

	visible := FilterRequestsForVendor(requests, nil)

	assert.Equal(t, requests, visible)
}

func TestFilterRequestsForVendorMultipleTypes(t *testing.T) {
	requests := []PickupRequest{
		pendingRequest(WastePlastic),
		pendingRequest(WastePaper),
		pendingRequest(WasteGlass),
	}

	visible := FilterRequestsForVendor(requests, []string{WastePaper, WasteGlass})

	require.Len(t, visible, 2)
	assert.Equal(t, WastePaper, visible[0].WasteType)
	assert.Equal(t, WasteGlass, visible[1].WasteType)
}

func TestIsValidWasteType(t *testing.T) {
	for _, wt := range ValidWasteTypes {
		assert.True(t, IsValidWasteType(wt))
	}
	assert.False(t, IsValidWasteType("electronics"))
	assert.False(t, IsValidWasteType(""))
}

func TestIsValidWeightCategory(t *testing.T) {
	assert.True(t, IsValidWeightCategory(WeightSmall))
	assert.True(t, IsValidWeightCategory(WeightMedium))
	assert.True(t, IsValidWeightCategory(WeightLarge))
	assert.False(t, IsValidWeightCategory("huge"))
}
