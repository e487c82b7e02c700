package controllers

import (
	"time"

	"github.com/gilanghuda/ecosync-backend/app/models"
	"github.com/gilanghuda/ecosync-backend/app/queries"
	"github.com/gilanghuda/ecosync-backend/pkg/database"
	"github.com/gilanghuda/ecosync-backend/pkg/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func GetVendorWasteTypes(c *fiber.Ctx) error {
	identity, err := utils.ExtractIdentityFromHeader(c.Get("Authorization"))
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}
	if identity.Role != utils.RoleVendor {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Only vendors have waste types"})
	}

	wasteQueries := queries.WasteTypeQueries{DB: database.DB}
	wasteTypes, err := wasteQueries.GetWasteTypesByVendor(identity.UserID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to query vendor waste types"})
	}
	return c.Status(fiber.StatusOK).JSON(wasteTypes)
}

// UpsertVendorWasteType declares or re-prices one of the vendor's
// collection capabilities.
func UpsertVendorWasteType(c *fiber.Ctx) error {
	identity, err := utils.ExtractIdentityFromHeader(c.Get("Authorization"))
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}
	if identity.Role != utils.RoleVendor {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Only vendors can declare waste types"})
	}

	req := &models.UpsertWasteTypeRequest{}
	if err := c.BodyParser(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	wt := &models.VendorWasteType{
		ID:         uuid.New(),
		VendorID:   identity.UserID,
		WasteType:  req.WasteType,
		PricePerKg: req.PricePerKg,
		CreatedAt:  time.Now(),
	}

	wasteQueries := queries.WasteTypeQueries{DB: database.DB}
	if err := wasteQueries.UpsertWasteType(wt); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save vendor waste type"})
	}

	return c.Status(fiber.StatusOK).JSON(wt)
}

func DeleteVendorWasteType(c *fiber.Ctx) error {
	identity, err := utils.ExtractIdentityFromHeader(c.Get("Authorization"))
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}
	if identity.Role != utils.RoleVendor {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Only vendors can remove waste types"})
	}

	wasteType := c.Params("wasteType")
	if !models.IsValidWasteType(wasteType) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid waste type"})
	}

	wasteQueries := queries.WasteTypeQueries{DB: database.DB}
	if err := wasteQueries.DeleteWasteType(identity.UserID, wasteType); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Waste type removed"})
}
