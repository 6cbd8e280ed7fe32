package handlers

import (
	"errors"
	"fmt"

	"github.com/anjiri1684/edu_cooperative/database"
	"github.com/anjiri1684/edu_cooperative/models"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type InstructorRequest struct {
	FirstName      string           `json:"first_name" validate:"required,max=100"`
	LastName       string           `json:"last_name" validate:"required,max=100"`
	Email          string           `json:"email" validate:"required,email"`
	Phone          string           `json:"phone" validate:"max=20"`
	Specialization string           `json:"specialization" validate:"required,max=200"`
	HourlyRate     *decimal.Decimal `json:"hourly_rate"`
	IsActive       *bool            `json:"is_active"`
}

func (r InstructorRequest) apply(i *models.Instructor) error {
	i.FirstName = r.FirstName
	i.LastName = r.LastName
	i.Email = r.Email
	i.Phone = r.Phone
	i.Specialization = r.Specialization
	switch {
	case r.HourlyRate != nil:
		if r.HourlyRate.IsNegative() {
			return errors.New("hourly_rate must not be negative")
		}
		i.HourlyRate = *r.HourlyRate
	case i.HourlyRate.IsZero():
		i.HourlyRate = decimal.NewFromInt(120)
	}
	i.IsActive = boolOr(r.IsActive, true)
	return nil
}

func ListInstructors(c *fiber.Ctx) error {
	q := database.DB.Order("last_name ASC, first_name ASC")
	if search := c.Query("search"); search != "" {
		like := "%" + search + "%"
		q = q.Where("first_name LIKE ? OR last_name LIKE ? OR specialization LIKE ?", like, like, like)
	}
	if active := c.Query("active"); active != "" {
		q = q.Where("is_active = ?", active == "true")
	}

	var instructors []models.Instructor
	if err := q.Find(&instructors).Error; err != nil {
		return serviceError(c, err)
	}
	return c.JSON(instructors)
}

func GetInstructor(c *fiber.Ctx) error {
	id, err := paramID(c, "instructorId")
	if err != nil {
		return badRequest(c, err)
	}

	var instructor models.Instructor
	if err := database.DB.First(&instructor, "id = ?", id).Error; err != nil {
		return notFound(c, "Instructor")
	}

	var courses []models.Course
	err = database.DB.
		Joins("JOIN course_instructors ON course_instructors.course_id = courses.id").
		Where("course_instructors.instructor_id = ?", id).
		Find(&courses).Error
	if err != nil {
		return serviceError(c, err)
	}

	var payments []models.BillingRecord
	if err := database.DB.Where("instructor_id = ?", id).Order("month DESC").Limit(10).Find(&payments).Error; err != nil {
		return serviceError(c, err)
	}

	var hours []models.InstructorHours
	if err := database.DB.Preload("Course").Where("instructor_id = ?", id).Order("month DESC").Limit(10).Find(&hours).Error; err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{
		"instructor": instructor,
		"courses":    courses,
		"payments":   payments,
		"hours":      hours,
	})
}

func CreateInstructor(c *fiber.Ctx) error {
	var req InstructorRequest
	if err := parseBody(c, &req); err != nil {
		return badRequest(c, err)
	}

	var instructor models.Instructor
	if err := req.apply(&instructor); err != nil {
		return badRequest(c, err)
	}
	if err := database.DB.Create(&instructor).Error; err != nil {
		return serviceError(c, err)
	}

	audit(c, models.AuditCreate, "Instructor", &instructor.ID, fmt.Sprintf("Created instructor %s", instructor.FullName()), nil)
	return c.Status(fiber.StatusCreated).JSON(instructor)
}

func UpdateInstructor(c *fiber.Ctx) error {
	id, err := paramID(c, "instructorId")
	if err != nil {
		return badRequest(c, err)
	}
	var req InstructorRequest
	if err := parseBody(c, &req); err != nil {
		return badRequest(c, err)
	}

	var instructor models.Instructor
	if err := database.DB.First(&instructor, "id = ?", id).Error; err != nil {
		return notFound(c, "Instructor")
	}
	if err := req.apply(&instructor); err != nil {
		return badRequest(c, err)
	}
	if err := database.DB.Save(&instructor).Error; err != nil {
		return serviceError(c, err)
	}

	audit(c, models.AuditUpdate, "Instructor", &instructor.ID, fmt.Sprintf("Updated instructor %s", instructor.FullName()), nil)
	return c.JSON(instructor)
}

func DeleteInstructor(c *fiber.Ctx) error {
	id, err := paramID(c, "instructorId")
	if err != nil {
		return badRequest(c, err)
	}

	var instructor models.Instructor
	if err := database.DB.First(&instructor, "id = ?", id).Error; err != nil {
		return notFound(c, "Instructor")
	}
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM course_instructors WHERE instructor_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&instructor).Error
	})
	if err != nil {
		return serviceError(c, err)
	}

	audit(c, models.AuditDelete, "Instructor", &instructor.ID, fmt.Sprintf("Deleted instructor %s", instructor.FullName()), nil)
	return c.SendStatus(fiber.StatusNoContent)
}
