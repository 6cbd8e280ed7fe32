package handlers

import (
	"fmt"
	"time"

	"github.com/anjiri1684/edu_cooperative/database"
	"github.com/anjiri1684/edu_cooperative/models"
	"github.com/anjiri1684/edu_cooperative/services"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type StudentRequest struct {
	FirstName        string `json:"first_name" validate:"required,max=100"`
	LastName         string `json:"last_name" validate:"required,max=100"`
	Email            string `json:"email" validate:"required,email"`
	Phone            string `json:"phone" validate:"max=20"`
	ParentName       string `json:"parent_name" validate:"max=200"`
	ParentPhone      string `json:"parent_phone" validate:"max=20"`
	Address          string `json:"address"`
	DateOfBirth      string `json:"date_of_birth"`
	RegistrationDate string `json:"registration_date"`
	IsActive         *bool  `json:"is_active"`
}

func (r StudentRequest) apply(s *models.Student) error {
	dob, err := services.ParseDate(r.DateOfBirth)
	if err != nil {
		return err
	}
	registered, err := services.ParseDate(r.RegistrationDate)
	if err != nil {
		return err
	}

	s.FirstName = r.FirstName
	s.LastName = r.LastName
	s.Email = r.Email
	s.Phone = r.Phone
	s.ParentName = r.ParentName
	s.ParentPhone = r.ParentPhone
	s.Address = r.Address
	s.DateOfBirth = dob
	if registered != nil {
		s.RegistrationDate = *registered
	} else if s.RegistrationDate.IsZero() {
		s.RegistrationDate = time.Now().UTC().Truncate(24 * time.Hour)
	}
	s.IsActive = boolOr(r.IsActive, true)
	return nil
}

func ListStudents(c *fiber.Ctx) error {
	q := database.DB.Order("last_name ASC, first_name ASC")
	if search := c.Query("search"); search != "" {
		like := "%" + search + "%"
		q = q.Where("first_name LIKE ? OR last_name LIKE ? OR email LIKE ?", like, like, like)
	}
	if active := c.Query("active"); active != "" {
		q = q.Where("is_active = ?", active == "true")
	}

	var students []models.Student
	if err := q.Find(&students).Error; err != nil {
		return serviceError(c, err)
	}
	return c.JSON(students)
}

func GetStudent(c *fiber.Ctx) error {
	id, err := paramID(c, "studentId")
	if err != nil {
		return badRequest(c, err)
	}

	var student models.Student
	if err := database.DB.Preload("Enrollments.Course").First(&student, "id = ?", id).Error; err != nil {
		return notFound(c, "Student")
	}

	var payments []models.BillingRecord
	if err := database.DB.Where("student_id = ?", id).Order("month DESC").Limit(10).Find(&payments).Error; err != nil {
		return serviceError(c, err)
	}

	totalFees := decimal.Zero
	for _, e := range student.Enrollments {
		if e.IsActive && e.Course != nil {
			totalFees = totalFees.Add(e.Course.MonthlyFee)
		}
	}

	return c.JSON(fiber.Map{
		"student":            student,
		"payments":           payments,
		"total_monthly_fees": totalFees,
	})
}

func CreateStudent(c *fiber.Ctx) error {
	var req StudentRequest
	if err := parseBody(c, &req); err != nil {
		return badRequest(c, err)
	}

	var student models.Student
	if err := req.apply(&student); err != nil {
		return badRequest(c, err)
	}
	if err := database.DB.Create(&student).Error; err != nil {
		return serviceError(c, err)
	}

	audit(c, models.AuditCreate, "Student", &student.ID, fmt.Sprintf("Created student %s", student.FullName()), nil)
	return c.Status(fiber.StatusCreated).JSON(student)
}

func UpdateStudent(c *fiber.Ctx) error {
	id, err := paramID(c, "studentId")
	if err != nil {
		return badRequest(c, err)
	}
	var req StudentRequest
	if err := parseBody(c, &req); err != nil {
		return badRequest(c, err)
	}

	var student models.Student
	if err := database.DB.First(&student, "id = ?", id).Error; err != nil {
		return notFound(c, "Student")
	}
	if err := req.apply(&student); err != nil {
		return badRequest(c, err)
	}
	if err := database.DB.Save(&student).Error; err != nil {
		return serviceError(c, err)
	}

	audit(c, models.AuditUpdate, "Student", &student.ID, fmt.Sprintf("Updated student %s", student.FullName()), nil)
	return c.JSON(student)
}

func DeleteStudent(c *fiber.Ctx) error {
	id, err := paramID(c, "studentId")
	if err != nil {
		return badRequest(c, err)
	}

	var student models.Student
	if err := database.DB.First(&student, "id = ?", id).Error; err != nil {
		return notFound(c, "Student")
	}
	if err := database.DB.Delete(&student).Error; err != nil {
		return serviceError(c, err)
	}

	audit(c, models.AuditDelete, "Student", &student.ID, fmt.Sprintf("Deleted student %s", student.FullName()), nil)
	return c.SendStatus(fiber.StatusNoContent)
}
