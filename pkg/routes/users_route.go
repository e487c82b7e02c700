package routes

import (
	"github.com/gilanghuda/ecosync-backend/app/controllers"
	"github.com/gilanghuda/ecosync-backend/pkg/middleware"
	"github.com/gofiber/fiber/v2"
)

func RegisterUserRoutes(app *fiber.App) {
	// Public routes
	app.Post("/signup", controllers.UserSignUp)
	app.Post("/signin", controllers.UserSignIn)
	app.Post("/signin/google", controllers.UserSignInWithGoogle)
	app.Post("/verify-otp", controllers.UserVerifyOTP)
	app.Post("/refresh", controllers.RefreshToken)
	app.Post("/logout", controllers.UserLogout)

	user := app.Group("/user", middleware.JWTProtected())
	user.Get("/profile", controllers.UserProfile)
	user.Put("/profile", controllers.UpdateProfile)
}
