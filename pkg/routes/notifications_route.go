package routes

import (
	"github.com/gilanghuda/ecosync-backend/app/controllers"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

func RegisterNotificationRoutes(app *fiber.App) {
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		controllers.WsHandler(c)
	}))
}
