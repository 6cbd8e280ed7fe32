package routes

import (
	"github.com/anjiri1684/edu_cooperative/handlers"
	"github.com/anjiri1684/edu_cooperative/middleware"
	"github.com/gofiber/fiber/v2"
)

func AttendanceRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	attendance := api.Group("/attendance", middleware.Protected())
	attendance.Get("", middleware.Require(middleware.OpAttendanceView), handlers.ListAttendance)
	attendance.Post("", middleware.Require(middleware.OpAttendanceRecord), handlers.RecordAttendance)
	attendance.Get("/report", middleware.Require(middleware.OpAttendanceView), handlers.AttendanceReport)

	hours := api.Group("/instructor-hours", middleware.Protected(), middleware.Require(middleware.OpHoursManage))
	hours.Get("", handlers.ListInstructorHours)
	hours.Put("", handlers.SetInstructorHours)
}
