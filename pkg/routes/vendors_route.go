package routes

import (
	"github.com/gilanghuda/ecosync-backend/app/controllers"
	"github.com/gilanghuda/ecosync-backend/pkg/middleware"
	"github.com/gofiber/fiber/v2"
)

func RegisterVendorRoutes(app *fiber.App) {
	vendor := app.Group("/vendor", middleware.JWTProtected())
	vendor.Get("/waste-types", controllers.GetVendorWasteTypes)
	vendor.Put("/waste-types", controllers.UpsertVendorWasteType)
	vendor.Delete("/waste-types/:wasteType", controllers.DeleteVendorWasteType)
}
