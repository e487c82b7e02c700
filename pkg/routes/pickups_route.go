package routes

import (
	"github.com/gilanghuda/ecosync-backend/app/controllers"
	"github.com/gilanghuda/ecosync-backend/pkg/middleware"
	"github.com/gofiber/fiber/v2"
)

func RegisterPickupRoutes(app *fiber.App) {
	pickups := app.Group("/pickups", middleware.JWTProtected())

	// Citizen side
	pickups.Post("/", controllers.CreatePickupRequest)
	pickups.Get("/mine", controllers.GetMyPickupRequests)
	pickups.Post("/:id/photo", controllers.UploadWastePhoto)
	pickups.Post("/:id/cancel", controllers.CancelPickupRequest)

	// Vendor side
	pickups.Get("/available", controllers.GetAvailablePickupRequests)
	pickups.Get("/assigned", controllers.GetAssignedPickupRequests)
	pickups.Get("/history", controllers.GetPickupHistory)
	pickups.Post("/:id/accept", controllers.AcceptPickupRequest)
	pickups.Post("/:id/decline", controllers.DeclinePickupRequest)
	pickups.Post("/:id/schedule", controllers.SchedulePickup)
	pickups.Post("/:id/start", controllers.StartPickup)
	pickups.Post("/:id/complete", controllers.CompletePickup)
}
