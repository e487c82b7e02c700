package controllers

import (
	"errors"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/gilanghuda/ecosync-backend/app/models"
	"github.com/gilanghuda/ecosync-backend/app/queries"
	"github.com/gilanghuda/ecosync-backend/pkg/database"
	"github.com/gilanghuda/ecosync-backend/pkg/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// CreatePickupRequest lets a citizen submit a new pickup request. The
// request starts pending with no assigned vendor.
func CreatePickupRequest(c *fiber.Ctx) error {
	identity, err := utils.ExtractIdentityFromHeader(c.Get("Authorization"))
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}
	if identity.Role != utils.RoleCitizen {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Only citizens can submit pickup requests"})
	}

	req := &models.CreatePickupRequest{}
	if err := c.BodyParser(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	r := &models.PickupRequest{
		ID:                uuid.New(),
		CitizenID:         identity.UserID,
		WasteType:         req.WasteType,
		WeightCategory:    req.WeightCategory,
		ApproximateWeight: req.ApproximateWeight,
		CitizenLocation:   req.CitizenLocation,
		Status:            models.StatusPending,
		CreatedAt:         time.Now(),
		UpdatedAt:         time.Now(),
	}

	pickupQueries := queries.PickupQueries{DB: database.DB}
	if err := pickupQueries.CreateRequest(r); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create pickup request"})
	}

	return c.Status(fiber.StatusCreated).JSON(r)
}

// UploadWastePhoto attaches a photo to the citizen's own request.
func UploadWastePhoto(c *fiber.Ctx) error {
	identity, err := utils.ExtractIdentityFromHeader(c.Get("Authorization"))
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	requestID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request id"})
	}

	pickupQueries := queries.PickupQueries{DB: database.DB}
	request, err := pickupQueries.GetRequestByID(requestID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Pickup request not found"})
	}
	if request.CitizenID != identity.UserID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Not your pickup request"})
	}

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing photo file"})
	}
	f, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Unable to read photo file"})
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Unable to read photo file"})
	}

	name := requestID.String() + filepath.Ext(fileHeader.Filename)
	contentType := fileHeader.Header.Get("Content-Type")
	url, err := utils.UploadWastePhoto(c.Context(), name, data, contentType)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "Failed to upload photo"})
	}

	if err := pickupQueries.SetPhotoURL(requestID, url); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save photo URL"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"waste_photo_url": url})
}

func GetMyPickupRequests(c *fiber.Ctx) error {
	identity, err := utils.ExtractIdentityFromHeader(c.Get("Authorization"))
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}
	if identity.Role != utils.RoleCitizen {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Only citizens have pickup requests"})
	}

	pickupQueries := queries.PickupQueries{DB: database.DB}
	requests, err := pickupQueries.GetRequestsByCitizen(identity.UserID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to query pickup requests"})
	}
	return c.Status(fiber.StatusOK).JSON(requests)
}

// CancelPickupRequest cancels a citizen's own request. Only pending requests
// can be cancelled unless ALLOW_CANCEL_AFTER_ACCEPT extends the window to
// accepted ones.
func CancelPickupRequest(c *fiber.Ctx) error {
	identity, err := utils.ExtractIdentityFromHeader(c.Get("Authorization"))
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}
	if identity.Role != utils.RoleCitizen {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Only citizens can cancel pickup requests"})
	}

	requestID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request id"})
	}

	fromStatuses := []string{models.StatusPending}
	if os.Getenv("ALLOW_CANCEL_AFTER_ACCEPT") == "true" {
		fromStatuses = append(fromStatuses, models.StatusAccepted)
	}

	pickupQueries := queries.PickupQueries{DB: database.DB}
	if err := pickupQueries.CancelRequest(requestID, identity.UserID, fromStatuses); err != nil {
		return transitionError(c, err)
	}

	notifyRequestUpdate(requestID, models.StatusCancelled)
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Pickup request cancelled"})
}

// GetAvailablePickupRequests lists pending requests visible to the vendor
// through the waste-type matching filter.
func GetAvailablePickupRequests(c *fiber.Ctx) error {
	identity, err := utils.ExtractIdentityFromHeader(c.Get("Authorization"))
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}
	if identity.Role != utils.RoleVendor {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Only vendors can browse pickup requests"})
	}

	wasteQueries := queries.WasteTypeQueries{DB: database.DB}
	declared, err := wasteQueries.GetWasteTypesByVendor(identity.UserID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to query vendor waste types"})
	}
	declaredTypes := make([]string, 0, len(declared))
	for _, wt := range declared {
		declaredTypes = append(declaredTypes, wt.WasteType)
	}

	pickupQueries := queries.PickupQueries{DB: database.DB}
	requests, err := pickupQueries.GetPendingRequests(declaredTypes)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to query pickup requests"})
	}

	return c.Status(fiber.StatusOK).JSON(requests)
}

// AcceptPickupRequest commits the vendor to a pending request. The update is
// conditioned on status = pending, so of two racing vendors only one wins;
// the loser gets an invalid transition error.
func AcceptPickupRequest(c *fiber.Ctx) error {
	identity, err := utils.ExtractIdentityFromHeader(c.Get("Authorization"))
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}
	if identity.Role != utils.RoleVendor {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Only vendors can accept pickup requests"})
	}

	requestID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request id"})
	}

	pickupQueries := queries.PickupQueries{DB: database.DB}
	if err := pickupQueries.AcceptRequest(requestID, identity.UserID); err != nil {
		return transitionError(c, err)
	}

	notifyRequestUpdate(requestID, models.StatusAccepted)
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Pickup request accepted"})
}

func DeclinePickupRequest(c *fiber.Ctx) error {
	identity, err := utils.ExtractIdentityFromHeader(c.Get("Authorization"))
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}
	if identity.Role != utils.RoleVendor {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Only vendors can decline pickup requests"})
	}

	requestID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request id"})
	}

	pickupQueries := queries.PickupQueries{DB: database.DB}
	if err := pickupQueries.DeclineRequest(requestID); err != nil {
		return transitionError(c, err)
	}

	notifyRequestUpdate(requestID, models.StatusDeclined)
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Pickup request declined"})
}

// SchedulePickup sets the pickup date and time on an accepted request.
func SchedulePickup(c *fiber.Ctx) error {
	identity, err := utils.ExtractIdentityFromHeader(c.Get("Authorization"))
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}
	if identity.Role != utils.RoleVendor {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Only vendors can schedule pickups"})
	}

	requestID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request id"})
	}

	req := &models.SchedulePickupRequest{}
	if err := c.BodyParser(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	pickupDate, err := time.Parse("2006-01-02", req.PickupDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid pickup_date format, use YYYY-MM-DD"})
	}
	if _, err := time.Parse("15:04", req.PickupTime); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid pickup_time format, use HH:MM"})
	}

	pickupQueries := queries.PickupQueries{DB: database.DB}
	if err := pickupQueries.ScheduleRequest(requestID, identity.UserID, pickupDate, req.PickupTime); err != nil {
		return transitionError(c, err)
	}

	notifyRequestUpdate(requestID, models.StatusAssigned)
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Pickup scheduled"})
}

func StartPickup(c *fiber.Ctx) error {
	identity, err := utils.ExtractIdentityFromHeader(c.Get("Authorization"))
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}
	if identity.Role != utils.RoleVendor {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Only vendors can start pickups"})
	}

	requestID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request id"})
	}

	pickupQueries := queries.PickupQueries{DB: database.DB}
	if err := pickupQueries.StartRequest(requestID, identity.UserID); err != nil {
		return transitionError(c, err)
	}

	notifyRequestUpdate(requestID, models.StatusInProgress)
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Pickup started"})
}

// CompletePickup records the measured weight, completes the request and
// writes the bill, all inside one transaction.
func CompletePickup(c *fiber.Ctx) error {
	identity, err := utils.ExtractIdentityFromHeader(c.Get("Authorization"))
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}
	if identity.Role != utils.RoleVendor {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Only vendors can complete pickups"})
	}

	requestID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request id"})
	}

	req := &models.CompletePickupRequest{}
	if err := c.BodyParser(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	pickupQueries := queries.PickupQueries{DB: database.DB}
	request, err := pickupQueries.GetRequestByID(requestID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Pickup request not found"})
	}
	if request.AssignedVendorID == nil || *request.AssignedVendorID != identity.UserID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Pickup request is not assigned to you"})
	}

	wasteQueries := queries.WasteTypeQueries{DB: database.DB}
	rate, declared, err := wasteQueries.GetRate(identity.UserID, request.WasteType)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to resolve vendor rate"})
	}
	if !declared {
		rate = models.DefaultRatePerKg
		log.Printf("event=rate_fallback vendor=%s waste_type=%s rate=%.2f", identity.UserID, request.WasteType, rate)
	}

	bill := models.NewBill(&request, identity.UserID, req.ActualWeight, rate)

	if url, err := utils.CreateBillPaymentLink(bill.ID.String(), bill.NetAmount); err == nil {
		bill.PaymentURL = url
	} else {
		log.Printf("event=payment_link_error bill=%s error=%v", bill.ID, err)
	}

	if err := pickupQueries.CompleteRequest(requestID, identity.UserID, req.ActualWeight, bill); err != nil {
		return transitionError(c, err)
	}

	notifyRequestUpdate(requestID, models.StatusCompleted)
	return c.Status(fiber.StatusOK).JSON(bill)
}

// GetAssignedPickupRequests lists the vendor's active jobs.
func GetAssignedPickupRequests(c *fiber.Ctx) error {
	return vendorRequestsByStatus(c, []string{models.StatusAccepted, models.StatusAssigned, models.StatusInProgress})
}

// GetPickupHistory lists the vendor's completed jobs.
func GetPickupHistory(c *fiber.Ctx) error {
	return vendorRequestsByStatus(c, []string{models.StatusCompleted})
}

func vendorRequestsByStatus(c *fiber.Ctx, statuses []string) error {
	identity, err := utils.ExtractIdentityFromHeader(c.Get("Authorization"))
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}
	if identity.Role != utils.RoleVendor {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Only vendors have assigned pickups"})
	}

	pickupQueries := queries.PickupQueries{DB: database.DB}
	requests, err := pickupQueries.GetRequestsByVendor(identity.UserID, statuses)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to query pickup requests"})
	}
	return c.Status(fiber.StatusOK).JSON(requests)
}

func transitionError(c *fiber.Ctx, err error) error {
	if errors.Is(err, models.ErrInvalidTransition) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "invalid state transition"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
}
