package handlers

import (
	"errors"
	"fmt"

	"github.com/anjiri1684/edu_cooperative/database"
	"github.com/anjiri1684/edu_cooperative/models"
	"github.com/anjiri1684/edu_cooperative/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CourseRequest struct {
	Name            string          `json:"name" validate:"required,max=200"`
	CourseType      string          `json:"course_type" validate:"required,oneof=tutoring it_course"`
	Subject         string          `json:"subject" validate:"required,oneof=math physics life_sciences it_training"`
	Description     string          `json:"description"`
	MonthlyFee      decimal.Decimal `json:"monthly_fee"`
	EnrollmentLimit *int            `json:"enrollment_limit" validate:"omitempty,min=1"`
	DurationHours   *int            `json:"duration_hours" validate:"omitempty,min=0"`
	StartDate       string          `json:"start_date"`
	EndDate         string          `json:"end_date"`
	IsActive        *bool           `json:"is_active"`
	InstructorIDs   []uuid.UUID     `json:"instructor_ids"`
}

func (r CourseRequest) apply(course *models.Course) error {
	if r.MonthlyFee.IsNegative() {
		return errors.New("monthly_fee must not be negative")
	}
	start, err := services.ParseDate(r.StartDate)
	if err != nil {
		return err
	}
	end, err := services.ParseDate(r.EndDate)
	if err != nil {
		return err
	}

	course.Name = r.Name
	course.CourseType = r.CourseType
	course.Subject = r.Subject
	course.Description = r.Description
	course.MonthlyFee = r.MonthlyFee
	course.StartDate = start
	course.EndDate = end
	course.IsActive = boolOr(r.IsActive, true)

	switch {
	case r.EnrollmentLimit != nil:
		course.EnrollmentLimit = *r.EnrollmentLimit
	case course.EnrollmentLimit == 0:
		course.EnrollmentLimit = 30
	}
	switch {
	case r.DurationHours != nil:
		course.DurationHours = *r.DurationHours
	case course.DurationHours == 0:
		course.DurationHours = 8
	}
	return nil
}

func saveCourse(course *models.Course, instructorIDs []uuid.UUID, replaceInstructors bool) error {
	return database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Instructors").Save(course).Error; err != nil {
			return err
		}
		if !replaceInstructors {
			return nil
		}

		var instructors []*models.Instructor
		if len(instructorIDs) > 0 {
			if err := tx.Where("id IN ?", instructorIDs).Find(&instructors).Error; err != nil {
				return err
			}
			if len(instructors) != len(instructorIDs) {
				return fmt.Errorf("unknown instructor in instructor_ids: %w", services.ErrRecordNotFound)
			}
		}
		return tx.Model(course).Association("Instructors").Replace(instructors)
	})
}

type CourseSummary struct {
	models.Course
	EnrolledCount  int64 `json:"enrolled_count"`
	AvailableSlots int64 `json:"available_slots"`
}

func summarizeCourse(course models.Course) (CourseSummary, error) {
	var enrolled int64
	err := database.DB.Model(&models.Enrollment{}).
		Where("course_id = ? AND is_active = ?", course.ID, true).
		Count(&enrolled).Error
	available := int64(course.EnrollmentLimit) - enrolled
	if available < 0 {
		available = 0
	}
	return CourseSummary{Course: course, EnrolledCount: enrolled, AvailableSlots: available}, err
}

func ListCourses(c *fiber.Ctx) error {
	q := database.DB.Preload("Instructors").Order("name ASC")
	if t := c.Query("type"); t != "" {
		q = q.Where("course_type = ?", t)
	}
	if s := c.Query("subject"); s != "" {
		q = q.Where("subject = ?", s)
	}
	if active := c.Query("active"); active != "" {
		q = q.Where("is_active = ?", active == "true")
	}

	var courses []models.Course
	if err := q.Find(&courses).Error; err != nil {
		return serviceError(c, err)
	}

	out := make([]CourseSummary, 0, len(courses))
	for _, course := range courses {
		summary, err := summarizeCourse(course)
		if err != nil {
			return serviceError(c, err)
		}
		out = append(out, summary)
	}
	return c.JSON(out)
}

func GetCourse(c *fiber.Ctx) error {
	id, err := paramID(c, "courseId")
	if err != nil {
		return badRequest(c, err)
	}

	var course models.Course
	err = database.DB.Preload("Instructors").
		Preload("Enrollments", "is_active = ?", true).
		Preload("Enrollments.Student").
		First(&course, "id = ?", id).Error
	if err != nil {
		return notFound(c, "Course")
	}

	summary, err := summarizeCourse(course)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(summary)
}

func CreateCourse(c *fiber.Ctx) error {
	var req CourseRequest
	if err := parseBody(c, &req); err != nil {
		return badRequest(c, err)
	}

	var course models.Course
	if err := req.apply(&course); err != nil {
		return badRequest(c, err)
	}
	if err := saveCourse(&course, req.InstructorIDs, true); err != nil {
		return serviceError(c, err)
	}

	audit(c, models.AuditCreate, "Course", &course.ID, fmt.Sprintf("Created course %s", course.Name), nil)
	database.DB.Preload("Instructors").First(&course, "id = ?", course.ID)
	return c.Status(fiber.StatusCreated).JSON(course)
}

func UpdateCourse(c *fiber.Ctx) error {
	id, err := paramID(c, "courseId")
	if err != nil {
		return badRequest(c, err)
	}
	var req CourseRequest
	if err := parseBody(c, &req); err != nil {
		return badRequest(c, err)
	}

	var course models.Course
	if err := database.DB.First(&course, "id = ?", id).Error; err != nil {
		return notFound(c, "Course")
	}
	if err := req.apply(&course); err != nil {
		return badRequest(c, err)
	}
	if err := saveCourse(&course, req.InstructorIDs, req.InstructorIDs != nil); err != nil {
		return serviceError(c, err)
	}

	audit(c, models.AuditUpdate, "Course", &course.ID, fmt.Sprintf("Updated course %s", course.Name), nil)
	database.DB.Preload("Instructors").First(&course, "id = ?", course.ID)
	return c.JSON(course)
}

func DeleteCourse(c *fiber.Ctx) error {
	id, err := paramID(c, "courseId")
	if err != nil {
		return badRequest(c, err)
	}

	var course models.Course
	if err := database.DB.First(&course, "id = ?", id).Error; err != nil {
		return notFound(c, "Course")
	}
	if err := database.DB.Select("Instructors").Delete(&course).Error; err != nil {
		return serviceError(c, err)
	}

	audit(c, models.AuditDelete, "Course", &course.ID, fmt.Sprintf("Deleted course %s", course.Name), nil)
	return c.SendStatus(fiber.StatusNoContent)
}
