package services

import (
	"strings"
	"testing"
	"time"

	"github.com/anjiri1684/edu_cooperative/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvoiceNumber(t *testing.T) {
	r := models.BillingRecord{Base: models.Base{ID: uuid.MustParse("3f2a9c1e-77aa-4b1c-9d2e-0123456789ab")}}
	assert.Equal(t, "INV-3F2A9C1E", InvoiceNumber(r))
}

func TestAmountInWords(t *testing.T) {
	assert.Equal(t, "twelve dirhams and 50 centimes", AmountInWords(dec("12.5")))
	assert.Equal(t, "seven dirhams and 05 centimes", AmountInWords(dec("7.049")))
	assert.Equal(t, "minus three dirhams and 00 centimes", AmountInWords(dec("-3")))
}

func TestRenderInvoiceHTML(t *testing.T) {
	receipt := "RCPT-AB12CD34"
	r := models.BillingRecord{
		Base:          models.Base{ID: uuid.New()},
		PaymentType:   models.PaymentTypeStudentFee,
		Month:         march,
		Amount:        dec("250"),
		AmountPaid:    dec("100"),
		Status:        models.PaymentStatusPartial,
		ReceiptNumber: &receipt,
		Student:       &models.Student{FirstName: "Nadia", LastName: "Amrani", Email: "nadia@example.com"},
	}

	html, err := RenderInvoiceHTML(r, time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Contains(t, html, InvoiceNumber(r))
	assert.Contains(t, html, "March 2025")
	assert.Contains(t, html, "03/03/2025")
	assert.Contains(t, html, "Bill To")
	assert.Contains(t, html, "Nadia Amrani")
	assert.Contains(t, html, "Monthly Fee - March 2025")
	assert.Contains(t, html, "150.00 DH")
	assert.Contains(t, html, "Partial (RCPT-AB12CD34)")
}

func TestRenderContractHTML(t *testing.T) {
	instructor := models.Instructor{FirstName: "Omar", LastName: "Bennani", Email: "omar@example.com", Specialization: "Networks"}

	html, err := RenderContractHTML(instructor, nil, DefaultRates(), march)
	require.NoError(t, err)
	assert.Contains(t, html, "Omar Bennani")
	assert.Contains(t, html, "Tutoring: 100 DH per student per month")
	assert.Contains(t, html, "IT Courses: 120 DH per hour (maximum 8 hours per month)")
	assert.Contains(t, html, "5. The Instructor agrees to comply")

	course := &models.Course{Name: "Python Basics", CourseType: models.CourseTypeIT}
	html, err = RenderContractHTML(instructor, course, DefaultRates(), march)
	require.NoError(t, err)
	assert.Contains(t, html, "For IT course Python Basics: 120 DH per hour")
	assert.NotContains(t, html, "per student per month")
}

func TestRenderReportHTML(t *testing.T) {
	detail := ReportDetail{
		Report: models.FinancialReport{
			Month:                   march,
			TotalRevenue:            dec("5000"),
			TotalInstructorPayments: dec("2000"),
			TotalExpenses:           dec("500"),
			GrossProfit:             dec("3000"),
			NetProfit:               dec("2500"),
			IsFinalized:             true,
		},
		Distributions: []models.ProfitDistribution{{
			SharePercentage: dec("30"),
			Amount:          dec("750"),
			Member:          &models.Member{FirstName: "Salma", LastName: "Idrissi"},
		}},
		ExpenseBreakdown: []ExpenseGroup{{Key: "rent", Total: dec("500"), Count: 1}},
	}

	html, err := RenderReportHTML(detail, march)
	require.NoError(t, err)
	assert.Contains(t, html, "Financial Report - March 2025")
	assert.Contains(t, html, "2500.00 DH")
	assert.Contains(t, html, "Salma Idrissi")
	assert.Contains(t, html, "30.00%")
	assert.Contains(t, html, "Rent")
	assert.Contains(t, html, "Finalized")
	assert.False(t, strings.Contains(html, "Draft"))
}
