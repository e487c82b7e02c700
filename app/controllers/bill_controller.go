package controllers

import (
	"github.com/gilanghuda/ecosync-backend/app/queries"
	"github.com/gilanghuda/ecosync-backend/pkg/database"
	"github.com/gilanghuda/ecosync-backend/pkg/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// GetMyBills returns the caller's bills: the citizen side for citizens, the
// vendor side for vendors.
func GetMyBills(c *fiber.Ctx) error {
	identity, err := utils.ExtractIdentityFromHeader(c.Get("Authorization"))
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	billQueries := queries.BillQueries{DB: database.DB}
	switch identity.Role {
	case utils.RoleCitizen:
		bills, err := billQueries.GetBillsByCitizen(identity.UserID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to query bills"})
		}
		return c.Status(fiber.StatusOK).JSON(bills)
	case utils.RoleVendor:
		bills, err := billQueries.GetBillsByVendor(identity.UserID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to query bills"})
		}
		return c.Status(fiber.StatusOK).JSON(bills)
	default:
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Unknown role"})
	}
}

// GetBillByRequest returns the bill of a completed request the caller is a
// party to.
func GetBillByRequest(c *fiber.Ctx) error {
	identity, err := utils.ExtractIdentityFromHeader(c.Get("Authorization"))
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	requestID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request id"})
	}

	billQueries := queries.BillQueries{DB: database.DB}
	bill, err := billQueries.GetBillByRequestID(requestID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Bill not found"})
	}

	if bill.CitizenID != identity.UserID && bill.VendorID != identity.UserID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Not a party to this bill"})
	}

	return c.Status(fiber.StatusOK).JSON(bill)
}
