package routes

import (
	"github.com/anjiri1684/edu_cooperative/handlers"
	"github.com/anjiri1684/edu_cooperative/middleware"
	"github.com/gofiber/fiber/v2"
)

func AuthRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	auth := api.Group("/auth")
	auth.Post("/login", handlers.LoginUser)

	me := auth.Group("/me", middleware.Protected())
	me.Get("", handlers.GetMe)
	me.Put("/password", handlers.ChangePassword)
}
