package routes

import (
	"github.com/anjiri1684/edu_cooperative/handlers"
	"github.com/anjiri1684/edu_cooperative/middleware"
	"github.com/gofiber/fiber/v2"
)

func DocumentRoutes(app *fiber.App) {
	docs := app.Group("/api/v1/documents", middleware.Protected())

	docs.Get("/invoices/:recordId", middleware.Require(middleware.OpDocumentsInvoice), handlers.InvoicePDF)
	docs.Get("/contracts/:instructorId", middleware.Require(middleware.OpDocumentsContract), handlers.ContractPDF)
	docs.Get("/reports/:reportId", middleware.Require(middleware.OpDocumentsReport), handlers.ReportPDF)
}
