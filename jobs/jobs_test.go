package jobs

import (
	"testing"
	"time"

	"github.com/anjiri1684/edu_cooperative/database/dbtest"
	"github.com/anjiri1684/edu_cooperative/models"
	"github.com/anjiri1684/edu_cooperative/services"
	"github.com/robfig/cron/v3"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var april = time.Date(2025, time.April, 1, 2, 0, 0, 0, time.UTC)

func TestSchedule(t *testing.T) {
	c := cron.New()
	require.NoError(t, Schedule(c))
	assert.Len(t, c.Entries(), 3)
}

func TestGenerateBillingJob(t *testing.T) {
	db := dbtest.New(t)

	student := models.Student{FirstName: "Hind", LastName: "Kabbaj", Email: "hind@example.com", RegistrationDate: april, IsActive: true}
	require.NoError(t, db.Create(&student).Error)
	course := models.Course{Name: "Physics", CourseType: models.CourseTypeTutoring, Subject: models.SubjectPhysics,
		MonthlyFee: decimal.NewFromInt(300), EnrollmentLimit: 30, DurationHours: 8, IsActive: true}
	require.NoError(t, db.Create(&course).Error)
	require.NoError(t, db.Create(&models.Enrollment{StudentID: student.ID, CourseID: course.ID, EnrollmentDate: april, IsActive: true}).Error)

	result, err := generateBilling(db, april, services.DefaultRates())
	require.NoError(t, err)
	assert.Equal(t, 1, result.StudentFeesCreated)
	assert.Equal(t, services.MonthStart(april), result.Month)

	var audits int64
	require.NoError(t, db.Model(&models.AuditLog{}).Where("model_name = ?", "BillingRecord").Count(&audits).Error)
	assert.EqualValues(t, 1, audits)

	again, err := generateBilling(db, april.AddDate(0, 0, 10), services.DefaultRates())
	require.NoError(t, err)
	assert.Zero(t, again.StudentFeesCreated)
}

func TestMarkOverdueJob(t *testing.T) {
	db := dbtest.New(t)

	payee := models.Student{FirstName: "Reda", LastName: "Fassi", Email: "reda@example.com", RegistrationDate: april, IsActive: true}
	require.NoError(t, db.Create(&payee).Error)
	record := models.BillingRecord{
		PaymentType: models.PaymentTypeStudentFee,
		PayeeID:     payee.ID,
		StudentID:   &payee.ID,
		Month:       services.AddMonths(april, -1),
		Amount:      decimal.NewFromInt(300),
		AmountPaid:  decimal.Zero,
		Status:      models.PaymentStatusPending,
	}
	require.NoError(t, db.Create(&record).Error)

	n, err := markOverdue(db, april)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	n, err = markOverdue(db, april)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestGenerateRecurringJob(t *testing.T) {
	db := dbtest.New(t)

	rent := models.RecurringExpense{
		Name:         "Rent",
		ExpenseType:  "rent",
		Amount:       decimal.NewFromInt(4500),
		Frequency:    models.FrequencyMonthly,
		StartDate:    time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC),
		IsActive:     true,
		AutoGenerate: true,
	}
	require.NoError(t, db.Create(&rent).Error)

	n, err := generateRecurring(db, april)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = generateRecurring(db, april)
	require.NoError(t, err)
	assert.Zero(t, n)
}
