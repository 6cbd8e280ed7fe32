package routes

import (
	"github.com/anjiri1684/edu_cooperative/handlers"
	"github.com/anjiri1684/edu_cooperative/middleware"
	"github.com/gofiber/fiber/v2"
)

func SummaryRoutes(app *fiber.App) {
	app.Get("/health", handlers.Health)

	summary := app.Group("/api/v1/api", middleware.Protected(), middleware.Require(middleware.OpSummaryView))
	summary.Get("/financial-summary", handlers.FinancialSummary)
	summary.Get("/enrollment-stats", handlers.EnrollmentStats)
}
