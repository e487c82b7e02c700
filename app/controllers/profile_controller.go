package controllers

import (
	"github.com/gilanghuda/ecosync-backend/app/models"
	"github.com/gilanghuda/ecosync-backend/app/queries"
	"github.com/gilanghuda/ecosync-backend/pkg/database"
	"github.com/gilanghuda/ecosync-backend/pkg/utils"
	"github.com/gofiber/fiber/v2"
)

func UserProfile(c *fiber.Ctx) error {
	identity, err := utils.ExtractIdentityFromHeader(c.Get("Authorization"))
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	profileQueries := queries.ProfileQueries{DB: database.DB}
	profile, err := profileQueries.GetProfileByID(identity.UserID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Profile not found"})
	}

	profile.PasswordHash = ""

	if profile.UserRole == utils.RoleVendor {
		wasteQueries := queries.WasteTypeQueries{DB: database.DB}
		wasteTypes, err := wasteQueries.GetWasteTypesByVendor(profile.ID)
		if err == nil {
			profile.WasteTypes = wasteTypes
		}
	}

	return c.Status(fiber.StatusOK).JSON(profile)
}

func UpdateProfile(c *fiber.Ctx) error {
	identity, err := utils.ExtractIdentityFromHeader(c.Get("Authorization"))
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	req := &models.UpdateProfileRequest{}
	if err := c.BodyParser(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	profileQueries := queries.ProfileQueries{DB: database.DB}
	if err := profileQueries.UpdateProfile(identity.UserID, req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Profile updated"})
}
