package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/anjiri1684/edu_cooperative/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var march = time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	require.Truef(t, dec(want).Equal(got), "want %s, got %s", want, got.String())
}

type fixtures struct {
	t  *testing.T
	db *gorm.DB
	n  int
}

func newFixtures(t *testing.T, db *gorm.DB) *fixtures {
	return &fixtures{t: t, db: db}
}

func (f *fixtures) seq() int {
	f.n++
	return f.n
}

func (f *fixtures) student(active bool) models.Student {
	n := f.seq()
	s := models.Student{
		FirstName:        "Student",
		LastName:         fmt.Sprint(n),
		Email:            fmt.Sprintf("student%d@example.com", n),
		RegistrationDate: march,
		IsActive:         active,
	}
	require.NoError(f.t, f.db.Create(&s).Error)
	return s
}

func (f *fixtures) instructor(rate string) models.Instructor {
	n := f.seq()
	i := models.Instructor{
		FirstName:      "Instructor",
		LastName:       fmt.Sprint(n),
		Email:          fmt.Sprintf("instructor%d@example.com", n),
		Specialization: "Mathematics",
		HourlyRate:     dec(rate),
		IsActive:       true,
	}
	require.NoError(f.t, f.db.Create(&i).Error)
	return i
}

func (f *fixtures) course(courseType, fee string, duration int, instructors ...models.Instructor) models.Course {
	n := f.seq()
	subject := models.SubjectMath
	if courseType == models.CourseTypeIT {
		subject = models.SubjectITTraining
	}
	c := models.Course{
		Name:            fmt.Sprintf("Course %d", n),
		CourseType:      courseType,
		Subject:         subject,
		MonthlyFee:      dec(fee),
		EnrollmentLimit: 30,
		DurationHours:   duration,
		IsActive:        true,
	}
	for i := range instructors {
		c.Instructors = append(c.Instructors, &instructors[i])
	}
	require.NoError(f.t, f.db.Omit("Instructors.*").Create(&c).Error)
	return c
}

func (f *fixtures) enroll(s models.Student, c models.Course, on time.Time) models.Enrollment {
	e := models.Enrollment{StudentID: s.ID, CourseID: c.ID, EnrollmentDate: on, IsActive: true}
	require.NoError(f.t, f.db.Create(&e).Error)
	return e
}

func (f *fixtures) billing(paymentType, amount, paid, status string, month time.Time) models.BillingRecord {
	payee := f.student(true)
	r := models.BillingRecord{
		PaymentType: paymentType,
		PayeeID:     payee.ID,
		Month:       month,
		Amount:      dec(amount),
		AmountPaid:  dec(paid),
		Status:      status,
	}
	if paymentType == models.PaymentTypeStudentFee {
		r.StudentID = &payee.ID
	}
	require.NoError(f.t, f.db.Create(&r).Error)
	return r
}

func (f *fixtures) expense(amount, status string, month time.Time) models.Expense {
	e := models.Expense{
		ExpenseType: "rent",
		Description: "Office rent",
		Amount:      dec(amount),
		ExpenseDate: month,
		Month:       month,
		Status:      status,
	}
	require.NoError(f.t, f.db.Create(&e).Error)
	return e
}

func (f *fixtures) member(shares string) models.Member {
	n := f.seq()
	m := models.Member{
		FirstName:     "Member",
		LastName:      fmt.Sprint(n),
		Email:         fmt.Sprintf("member%d@example.com", n),
		MemberType:    models.MemberTypeActive,
		CapitalShares: dec(shares),
		JoinDate:      march,
		IsActive:      true,
	}
	require.NoError(f.t, f.db.Create(&m).Error)
	return m
}

func (f *fixtures) report(net string) models.FinancialReport {
	r := models.FinancialReport{
		Month:                   march,
		TotalRevenue:            dec(net),
		TotalInstructorPayments: decimal.Zero,
		TotalExpenses:           decimal.Zero,
		GrossProfit:             dec(net),
		NetProfit:               dec(net),
	}
	require.NoError(f.t, f.db.Create(&r).Error)
	return r
}

func countBilling(t *testing.T, db *gorm.DB, paymentType string) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&models.BillingRecord{}).Where("payment_type = ?", paymentType).Count(&n).Error)
	return n
}
