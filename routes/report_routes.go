package routes

import (
	"github.com/anjiri1684/edu_cooperative/handlers"
	"github.com/anjiri1684/edu_cooperative/middleware"
	"github.com/gofiber/fiber/v2"
)

func ReportRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	reports := api.Group("/reports", middleware.Protected())
	reports.Get("", middleware.Require(middleware.OpReportsView), handlers.ListFinancialReports)
	reports.Get("/overview", middleware.Require(middleware.OpReportsView), handlers.FinancialOverview)
	reports.Post("/generate", middleware.Require(middleware.OpReportsGenerate), handlers.GenerateFinancialReport)
	reports.Get("/:reportId", middleware.Require(middleware.OpReportsView), handlers.GetFinancialReport)
	reports.Post("/:reportId/distribute", middleware.Require(middleware.OpReportsDistribute), handlers.DistributeProfits)

	api.Post("/distributions/:distributionId/pay", middleware.Protected(), middleware.Require(middleware.OpDistributionsPay), handlers.MarkDistributionPaid)
}
