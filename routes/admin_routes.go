package routes

import (
	"github.com/anjiri1684/edu_cooperative/handlers"
	"github.com/anjiri1684/edu_cooperative/middleware"
	"github.com/gofiber/fiber/v2"
)

func AdminRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	users := api.Group("/users", middleware.Protected(), middleware.Require(middleware.OpUsersManage))
	users.Get("", handlers.ListUsers)
	users.Post("", handlers.CreateUser)

	api.Get("/audit-logs", middleware.Protected(), middleware.Require(middleware.OpAuditView), handlers.ListAuditLogs)
}
