package routes

import (
	"github.com/anjiri1684/edu_cooperative/handlers"
	"github.com/anjiri1684/edu_cooperative/middleware"
	"github.com/gofiber/fiber/v2"
)

func ExpenseRoutes(app *fiber.App) {
	api := app.Group("/api/v1")
	can := middleware.Require

	expenses := api.Group("/expenses", middleware.Protected())
	expenses.Get("", can(middleware.OpExpensesView), handlers.ListExpenses)
	expenses.Post("", can(middleware.OpExpensesCreate), handlers.CreateExpense)
	expenses.Get("/report", can(middleware.OpExpensesView), handlers.ExpenseReport)
	expenses.Get("/report.xlsx", can(middleware.OpExpensesView), handlers.ExpenseReportXLSX)
	expenses.Post("/:expenseId/decision", can(middleware.OpExpensesApprove), handlers.DecideExpense)
	expenses.Post("/:expenseId/pay", can(middleware.OpExpensesPay), handlers.MarkExpensePaid)

	categories := api.Group("/expense-categories", middleware.Protected())
	categories.Get("", can(middleware.OpExpensesView), handlers.ListExpenseCategories)
	categories.Post("", can(middleware.OpExpensesCreate), handlers.CreateExpenseCategory)

	recurring := api.Group("/recurring-expenses", middleware.Protected())
	recurring.Get("", can(middleware.OpRecurringView), handlers.ListRecurringExpenses)
	recurring.Post("", can(middleware.OpRecurringCreate), handlers.CreateRecurringExpense)
	recurring.Post("/generate", can(middleware.OpRecurringCreate), handlers.GenerateRecurringExpenses)
}
