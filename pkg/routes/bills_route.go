package routes

import (
	"github.com/gilanghuda/ecosync-backend/app/controllers"
	"github.com/gilanghuda/ecosync-backend/pkg/middleware"
	"github.com/gofiber/fiber/v2"
)

func RegisterBillRoutes(app *fiber.App) {
	bills := app.Group("/bills", middleware.JWTProtected())
	bills.Get("/mine", controllers.GetMyBills)
	bills.Get("/request/:id", controllers.GetBillByRequest)
}
