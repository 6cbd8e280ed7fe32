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

type BillingResult struct {
	Month                  time.Time `json:"month"`
	StudentFeesCreated     int       `json:"student_fees_created"`
	InstructorPaysCreated  int       `json:"instructor_payments_created"`
	InstructorHoursCreated int       `json:"instructor_hours_created"`
}

var billingConflict = clause.OnConflict{
	Columns:   []clause.Column{{Name: "payment_type"}, {Name: "payee_id"}, {Name: "month"}},
	DoNothing: true,
}

// GenerateMonthlyBilling makes sure every active enrollment's student has a fee and every
// instructor with a positive accrual has a payment for month. Existing
// records are never modified, so running it again is a no-op.
func GenerateMonthlyBilling(db *gorm.DB, month time.Time, rates Rates) (*BillingResult, error) {
	month = MonthStart(month)
	result := &BillingResult{Month: month}

	err := db.Transaction(func(tx *gorm.DB) error {
		n, err := createStudentFees(tx, month)
		if err != nil {
			return err
		}
		result.StudentFeesCreated = n

		totals, hoursCreated, err := accrueInstructorPay(tx, month, rates)
		if err != nil {
			return err
		}
		result.InstructorHoursCreated = hoursCreated

		for _, acc := range totals {
			if !acc.amount.IsPositive() {
				continue
			}
			instructorID := acc.instructorID
			record := models.BillingRecord{
				PaymentType:  models.PaymentTypeInstructorPayment,
				PayeeID:      instructorID,
				InstructorID: &instructorID,
				Month:        month,
				Amount:       acc.amount.Round(2),
				AmountPaid:   decimal.Zero,
				Status:       models.PaymentStatusPending,
			}
			res := tx.Clauses(billingConflict).Create(&record)
			if res.Error != nil {
				return fmt.Errorf("creating instructor payment: %w", res.Error)
			}
			if res.RowsAffected > 0 {
				result.InstructorPaysCreated++
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func createStudentFees(tx *gorm.DB, month time.Time) (int, error) {
	var enrollments []models.Enrollment
	// The most recent enrollment decides the fee of a student with several.
	err := tx.Preload("Course").
		Where("is_active = ?", true).
		Order("enrollment_date DESC, created_at DESC").
		Find(&enrollments).Error
	if err != nil {
		return 0, fmt.Errorf("loading enrollments: %w", err)
	}

	created := 0
	seen := make(map[uuid.UUID]bool)
	for _, e := range enrollments {
		if seen[e.StudentID] || e.Course == nil {
			continue
		}
		seen[e.StudentID] = true

		studentID := e.StudentID
		record := models.BillingRecord{
			PaymentType: models.PaymentTypeStudentFee,
			PayeeID:     studentID,
			StudentID:   &studentID,
			Month:       month,
			Amount:      e.Course.MonthlyFee,
			AmountPaid:  decimal.Zero,
			Status:      models.PaymentStatusPending,
		}
		res := tx.Clauses(billingConflict).Create(&record)
		if res.Error != nil {
			return 0, fmt.Errorf("creating student fee: %w", res.Error)
		}
		if res.RowsAffected > 0 {
			created++
		}
	}
	return created, nil
}

type accrual struct {
	instructorID uuid.UUID
	amount       decimal.Decimal
}

// accrueInstructorPay sums what each assigned instructor earned across all
// active courses. Missing hours rows for IT courses are filled in from the
// course duration.
func accrueInstructorPay(tx *gorm.DB, month time.Time, rates Rates) ([]*accrual, int, error) {
	var courses []models.Course
	if err := tx.Preload("Instructors").Where("is_active = ?", true).Order("created_at ASC").Find(&courses).Error; err != nil {
		return nil, 0, fmt.Errorf("loading courses: %w", err)
	}

	var ordered []*accrual
	byInstructor := make(map[uuid.UUID]*accrual)
	hoursCreated := 0

	for _, course := range courses {
		var activeCount int64
		if course.IsTutoring() {
			if err := tx.Model(&models.Enrollment{}).
				Where("course_id = ? AND is_active = ?", course.ID, true).
				Count(&activeCount).Error; err != nil {
				return nil, 0, err
			}
		}

		for _, instructor := range course.Instructors {
			acc, ok := byInstructor[instructor.ID]
			if !ok {
				acc = &accrual{instructorID: instructor.ID, amount: decimal.Zero}
				byInstructor[instructor.ID] = acc
				ordered = append(ordered, acc)
			}

			if course.IsTutoring() {
				acc.amount = acc.amount.Add(rates.TutoringRate.Mul(decimal.NewFromInt(activeCount)))
				continue
			}

			hours, created, err := ensureHours(tx, instructor.ID, course, month, rates)
			if err != nil {
				return nil, 0, err
			}
			if created {
				hoursCreated++
			}

			acc.amount = acc.amount.Add(rates.ITHourlyRate.Mul(hours))
		}
	}
	return ordered, hoursCreated, nil
}

func ensureHours(tx *gorm.DB, instructorID uuid.UUID, course models.Course, month time.Time, rates Rates) (decimal.Decimal, bool, error) {
	var existing models.InstructorHours
	err := tx.Where("instructor_id = ? AND course_id = ? AND month = ?", instructorID, course.ID, month).
		Limit(1).Find(&existing).Error
	if err != nil {
		return decimal.Zero, false, err
	}
	if existing.ID != uuid.Nil {
		return rates.CapHours(existing.HoursWorked), false, nil
	}

	return insertHours(tx, models.InstructorHours{
		InstructorID: instructorID,
		CourseID:     course.ID,
		Month:        month,
		HoursWorked:  rates.CapHours(decimal.NewFromInt(int64(course.DurationHours))),
	}, rates)
}

// insertHours keeps whatever row already exists for the same instructor,
// course and month, and reports the hours that ended up stored.
func insertHours(tx *gorm.DB, row models.InstructorHours, rates Rates) (decimal.Decimal, bool, error) {
	res := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "instructor_id"}, {Name: "course_id"}, {Name: "month"}},
		DoNothing: true,
	}).Create(&row)
	if res.Error != nil {
		return decimal.Zero, false, fmt.Errorf("creating instructor hours: %w", res.Error)
	}
	if res.RowsAffected > 0 {
		return row.HoursWorked, true, nil
	}

	var stored models.InstructorHours
	err := tx.Where("instructor_id = ? AND course_id = ? AND month = ?", row.InstructorID, row.CourseID, row.Month).
		First(&stored).Error
	if err != nil {
		return decimal.Zero, false, fmt.Errorf("reloading instructor hours: %w", err)
	}
	return rates.CapHours(stored.HoursWorked), false, nil
}

// MarkOverdue moves pending records of months before current to overdue.
func MarkOverdue(db *gorm.DB, current time.Time) (int64, error) {
	res := db.Model(&models.BillingRecord{}).
		Where("status = ? AND month < ?", models.PaymentStatusPending, MonthStart(current)).
		Update("status", models.PaymentStatusOverdue)
	return res.RowsAffected, res.Error
}
