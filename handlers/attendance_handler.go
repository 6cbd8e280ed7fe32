package handlers

import (
	"fmt"
	"time"

	"github.com/anjiri1684/edu_cooperative/database"
	"github.com/anjiri1684/edu_cooperative/models"
	"github.com/anjiri1684/edu_cooperative/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type RecordAttendanceRequest struct {
	CourseID uuid.UUID            `json:"course_id" validate:"required"`
	Date     string               `json:"date"`
	Statuses map[uuid.UUID]string `json:"statuses"`
}

func ListAttendance(c *fiber.Ctx) error {
	var attendances []models.Attendance
	err := database.DB.Preload("Enrollment.Student").Preload("Enrollment.Course").
		Order("date DESC").Limit(100).Find(&attendances).Error
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(attendances)
}

func RecordAttendance(c *fiber.Ctx) error {
	var req RecordAttendanceRequest
	if err := parseBody(c, &req); err != nil {
		return badRequest(c, err)
	}
	date, err := services.ParseDate(req.Date)
	if err != nil {
		return badRequest(c, err)
	}
	if date == nil {
		today := time.Now()
		date = &today
	}

	n, err := services.RecordAttendance(database.DB, req.CourseID, *date, req.Statuses)
	if err != nil {
		return serviceError(c, err)
	}

	audit(c, models.AuditCreate, "Attendance", &req.CourseID,
		fmt.Sprintf("Recorded attendance for %d enrollments on %s", n, date.Format("2006-01-02")), nil)
	return c.JSON(fiber.Map{"recorded": n, "date": date.Format("2006-01-02")})
}

func AttendanceReport(c *fiber.Ctx) error {
	courseID, err := optionalUUID(c.Query("course"))
	if err != nil {
		return badRequest(c, err)
	}
	start, err := services.ParseDate(c.Query("start_date"))
	if err != nil {
		return badRequest(c, err)
	}
	end, err := services.ParseDate(c.Query("end_date"))
	if err != nil {
		return badRequest(c, err)
	}

	report, err := services.BuildAttendanceReport(database.DB, services.AttendanceFilter{CourseID: courseID, Start: start, End: end})
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(report)
}
