package services

import (
	"fmt"
	"time"

	"github.com/anjiri1684/edu_cooperative/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SetInstructorHours records the hours an instructor worked on a course in
// month, replacing any earlier value.
func SetInstructorHours(db *gorm.DB, instructorID, courseID uuid.UUID, month time.Time, hours decimal.Decimal, rates Rates) (*models.InstructorHours, error) {
	if hours.IsNegative() || hours.GreaterThan(rates.MonthlyHourCap) {
		return nil, fmt.Errorf("%s hours: %w", hours.String(), ErrInvalidHours)
	}
	month = MonthStart(month)

	row := models.InstructorHours{
		InstructorID: instructorID,
		CourseID:     courseID,
		Month:        month,
		HoursWorked:  hours,
	}
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "instructor_id"}, {Name: "course_id"}, {Name: "month"}},
		DoUpdates: clause.AssignmentColumns([]string{"hours_worked", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return nil, err
	}

	var saved models.InstructorHours
	err = db.Preload("Instructor").Preload("Course").
		Where("instructor_id = ? AND course_id = ? AND month = ?", instructorID, courseID, month).
		First(&saved).Error
	return &saved, err
}

func ListInstructorHours(db *gorm.DB, month *time.Time) ([]models.InstructorHours, error) {
	q := db.Preload("Instructor").Preload("Course").Order("month DESC, created_at DESC")
	if month != nil {
		q = q.Where("month = ?", MonthStart(*month))
	}
	var rows []models.InstructorHours
	return rows, q.Limit(200).Find(&rows).Error
}
