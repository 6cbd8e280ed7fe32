package routes

import "github.com/gofiber/fiber/v2"

// Setup mounts every API area on app.
func Setup(app *fiber.App) {
	AuthRoutes(app)
	AdminRoutes(app)
	DirectoryRoutes(app)
	AttendanceRoutes(app)
	BillingRoutes(app)
	ReportRoutes(app)
	ExpenseRoutes(app)
	DocumentRoutes(app)
	SummaryRoutes(app)
	EventRoutes(app)
}
