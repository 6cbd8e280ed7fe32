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

type EnrollmentRequest struct {
	StudentID      uuid.UUID `json:"student_id" validate:"required"`
	CourseID       uuid.UUID `json:"course_id" validate:"required"`
	EnrollmentDate string    `json:"enrollment_date"`
	IsActive       *bool     `json:"is_active"`
}

func ListEnrollments(c *fiber.Ctx) error {
	q := database.DB.Preload("Student").Preload("Course").Order("enrollment_date DESC")
	courseID, err := optionalUUID(c.Query("course"))
	if err != nil {
		return badRequest(c, err)
	}
	if courseID != nil {
		q = q.Where("course_id = ?", *courseID)
	}
	if active := c.Query("active"); active != "" {
		q = q.Where("is_active = ?", active == "true")
	}

	var enrollments []models.Enrollment
	if err := q.Find(&enrollments).Error; err != nil {
		return serviceError(c, err)
	}
	return c.JSON(enrollments)
}

func CreateEnrollment(c *fiber.Ctx) error {
	var req EnrollmentRequest
	if err := parseBody(c, &req); err != nil {
		return badRequest(c, err)
	}
	date, err := services.ParseDate(req.EnrollmentDate)
	if err != nil {
		return badRequest(c, err)
	}
	if date == nil {
		today := time.Now().UTC().Truncate(24 * time.Hour)
		date = &today
	}

	var student models.Student
	if err := database.DB.First(&student, "id = ?", req.StudentID).Error; err != nil {
		return notFound(c, "Student")
	}
	var course models.Course
	if err := database.DB.First(&course, "id = ?", req.CourseID).Error; err != nil {
		return notFound(c, "Course")
	}

	enrollment := models.Enrollment{
		StudentID:      req.StudentID,
		CourseID:       req.CourseID,
		EnrollmentDate: *date,
		IsActive:       boolOr(req.IsActive, true),
	}
	if err := database.DB.Create(&enrollment).Error; err != nil {
		return serviceError(c, err)
	}
	enrollment.Student = &student
	enrollment.Course = &course

	audit(c, models.AuditCreate, "Enrollment", &enrollment.ID,
		fmt.Sprintf("Enrolled %s in %s", student.FullName(), course.Name), nil)
	return c.Status(fiber.StatusCreated).JSON(enrollment)
}

func UpdateEnrollment(c *fiber.Ctx) error {
	id, err := paramID(c, "enrollmentId")
	if err != nil {
		return badRequest(c, err)
	}
	var req struct {
		IsActive bool `json:"is_active"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	var enrollment models.Enrollment
	if err := database.DB.First(&enrollment, "id = ?", id).Error; err != nil {
		return notFound(c, "Enrollment")
	}
	if err := database.DB.Model(&enrollment).Update("is_active", req.IsActive).Error; err != nil {
		return serviceError(c, err)
	}

	audit(c, models.AuditUpdate, "Enrollment", &enrollment.ID, fmt.Sprintf("Set enrollment active=%t", req.IsActive), nil)
	return c.JSON(enrollment)
}

func DeleteEnrollment(c *fiber.Ctx) error {
	id, err := paramID(c, "enrollmentId")
	if err != nil {
		return badRequest(c, err)
	}

	var enrollment models.Enrollment
	if err := database.DB.First(&enrollment, "id = ?", id).Error; err != nil {
		return notFound(c, "Enrollment")
	}
	if err := database.DB.Delete(&enrollment).Error; err != nil {
		return serviceError(c, err)
	}

	audit(c, models.AuditDelete, "Enrollment", &enrollment.ID, "Deleted enrollment", nil)
	return c.SendStatus(fiber.StatusNoContent)
}
