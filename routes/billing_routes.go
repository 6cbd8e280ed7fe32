package routes

import (
	"github.com/anjiri1684/edu_cooperative/handlers"
	"github.com/anjiri1684/edu_cooperative/middleware"
	"github.com/gofiber/fiber/v2"
)

func BillingRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	api.Get("/instructor-payments", middleware.Protected(), middleware.Require(middleware.OpInstructorPaymentsView), handlers.ListInstructorPayments)

	payments := api.Group("/payments", middleware.Protected())
	payments.Get("", middleware.Require(middleware.OpPaymentsView), handlers.ListBillingRecords)
	payments.Get("/student-fees", middleware.Require(middleware.OpPaymentsView), handlers.ListStudentFees)
	payments.Get("/export", middleware.Require(middleware.OpPaymentsView), handlers.ExportLedgerCSV)
	payments.Post("/generate", middleware.Require(middleware.OpPaymentsGenerate), handlers.GenerateMonthlyBilling)
	payments.Post("/mark-overdue", middleware.Require(middleware.OpPaymentsGenerate), handlers.MarkOverdue)
	payments.Get("/:recordId", middleware.Require(middleware.OpPaymentsView), handlers.GetBillingRecord)
	payments.Post("/:recordId/record", middleware.Require(middleware.OpPaymentsRecord), handlers.RecordPayment)
}
