package handlers

import (
	"fmt"
	"time"

	"github.com/anjiri1684/edu_cooperative/database"
	"github.com/anjiri1684/edu_cooperative/models"
	"github.com/anjiri1684/edu_cooperative/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type HoursRequest struct {
	InstructorID uuid.UUID       `json:"instructor_id" validate:"required"`
	CourseID     uuid.UUID       `json:"course_id" validate:"required"`
	Month        string          `json:"month"`
	HoursWorked  decimal.Decimal `json:"hours_worked"`
}

func ListInstructorHours(c *fiber.Ctx) error {
	var month *time.Time
	if raw := c.Query("month"); raw != "" {
		m, err := monthParam(raw)
		if err != nil {
			return serviceError(c, err)
		}
		month = &m
	}
	rows, err := services.ListInstructorHours(database.DB, month)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(rows)
}

func SetInstructorHours(c *fiber.Ctx) error {
	var req HoursRequest
	if err := parseBody(c, &req); err != nil {
		return badRequest(c, err)
	}
	month, err := monthParam(req.Month)
	if err != nil {
		return serviceError(c, err)
	}

	var count int64
	database.DB.Model(&models.Course{}).
		Joins("JOIN course_instructors ON course_instructors.course_id = courses.id").
		Where("courses.id = ? AND course_instructors.instructor_id = ?", req.CourseID, req.InstructorID).
		Count(&count)
	if count == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Instructor is not assigned to this course"})
	}

	row, err := services.SetInstructorHours(database.DB, req.InstructorID, req.CourseID, month, req.HoursWorked, services.RatesFromConfig())
	if err != nil {
		return serviceError(c, err)
	}

	audit(c, models.AuditUpdate, "InstructorHours", &row.ID,
		fmt.Sprintf("Set %s hours for %s", row.HoursWorked.String(), month.Format("2006-01")), nil)
	return c.JSON(row)
}
