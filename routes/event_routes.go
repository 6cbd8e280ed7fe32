package routes

import (
	"github.com/anjiri1684/edu_cooperative/handlers"
	"github.com/anjiri1684/edu_cooperative/middleware"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

func EventRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	api.Get("/ws",
		handlers.UpgradeEvents,
		middleware.Protected(),
		middleware.Require(middleware.OpSummaryView),
		websocket.New(handlers.ServeEvents),
	)
}
