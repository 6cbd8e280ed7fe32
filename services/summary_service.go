package services

import (
	"time"

	"github.com/anjiri1684/edu_cooperative/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type FinancialSummary struct {
	Month              string          `json:"month"`
	Revenue            decimal.Decimal `json:"revenue"`
	InstructorPayments decimal.Decimal `json:"instructor_payments"`
	Expenses           decimal.Decimal `json:"expenses"`
	Profit             decimal.Decimal `json:"profit"`
	Margin             decimal.Decimal `json:"margin"`
}

// BuildFinancialSummary reports paid revenue against paid costs for month.
// Margin is zero when nothing was collected.
func BuildFinancialSummary(db *gorm.DB, month time.Time) (*FinancialSummary, error) {
	month = MonthStart(month)
	revenue, err := sumPaidBilling(db, models.PaymentTypeStudentFee, month)
	if err != nil {
		return nil, err
	}
	instructorPay, err := sumPaidBilling(db, models.PaymentTypeInstructorPayment, month)
	if err != nil {
		return nil, err
	}
	expenses, err := SumPaidExpenses(db, month)
	if err != nil {
		return nil, err
	}

	profit := revenue.Sub(instructorPay).Sub(expenses)
	margin := decimal.Zero
	if revenue.IsPositive() {
		margin = profit.Div(revenue).Mul(hundred).Round(2)
	}
	return &FinancialSummary{
		Month:              month.Format("2006-01"),
		Revenue:            revenue,
		InstructorPayments: instructorPay,
		Expenses:           expenses,
		Profit:             profit,
		Margin:             margin,
	}, nil
}

type EnrollmentStats struct {
	TotalStudents    int64            `json:"total_students"`
	TotalCourses     int64            `json:"total_courses"`
	TotalEnrollments int64            `json:"total_enrollments"`
	ByCourseType     map[string]int64 `json:"by_course_type"`
	BySubject        map[string]int64 `json:"by_subject"`
}

func BuildEnrollmentStats(db *gorm.DB) (*EnrollmentStats, error) {
	stats := &EnrollmentStats{ByCourseType: map[string]int64{}, BySubject: map[string]int64{}}

	if err := db.Model(&models.Student{}).Where("is_active = ?", true).Count(&stats.TotalStudents).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Course{}).Where("is_active = ?", true).Count(&stats.TotalCourses).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Enrollment{}).Where("is_active = ?", true).Count(&stats.TotalEnrollments).Error; err != nil {
		return nil, err
	}

	activeByCourse := func(column, value string) (int64, error) {
		var n int64
		err := db.Model(&models.Enrollment{}).
			Joins("JOIN courses ON courses.id = enrollments.course_id").
			Where("enrollments.is_active = ? AND courses."+column+" = ?", true, value).
			Count(&n).Error
		return n, err
	}
	for key, label := range models.CourseTypeLabels {
		n, err := activeByCourse("course_type", key)
		if err != nil {
			return nil, err
		}
		stats.ByCourseType[label] = n
	}
	for key, label := range models.SubjectLabels {
		n, err := activeByCourse("subject", key)
		if err != nil {
			return nil, err
		}
		stats.BySubject[label] = n
	}
	return stats, nil
}

type BilledPaid struct {
	Billed decimal.Decimal `json:"billed"`
	Paid   decimal.Decimal `json:"paid"`
}

type FinancialOverview struct {
	Reports              []models.FinancialReport `json:"reports"`
	CurrentMonth         string                   `json:"current_month"`
	StudentFees          BilledPaid               `json:"student_fees"`
	InstructorPayments   BilledPaid               `json:"instructor_payments"`
	OperationalExpenses  decimal.Decimal          `json:"operational_expenses"`
	TotalCurrentExpenses decimal.Decimal          `json:"total_current_expenses"`
	TotalActiveCapital   decimal.Decimal          `json:"total_active_capital"`
}

func BuildFinancialOverview(db *gorm.DB, month time.Time) (*FinancialOverview, error) {
	month = MonthStart(month)
	out := &FinancialOverview{CurrentMonth: month.Format("2006-01")}

	if err := db.Order("month DESC").Limit(12).Find(&out.Reports).Error; err != nil {
		return nil, err
	}

	billedPaid := func(paymentType string) (BilledPaid, error) {
		var bp BilledPaid
		err := db.Model(&models.BillingRecord{}).
			Select("COALESCE(SUM(amount), 0), COALESCE(SUM(amount_paid), 0)").
			Where("payment_type = ? AND month = ?", paymentType, month).
			Row().Scan(&bp.Billed, &bp.Paid)
		return bp, err
	}

	var err error
	if out.StudentFees, err = billedPaid(models.PaymentTypeStudentFee); err != nil {
		return nil, err
	}
	if out.InstructorPayments, err = billedPaid(models.PaymentTypeInstructorPayment); err != nil {
		return nil, err
	}
	if out.OperationalExpenses, err = SumPaidExpenses(db, month); err != nil {
		return nil, err
	}
	out.TotalCurrentExpenses = out.InstructorPayments.Paid.Add(out.OperationalExpenses)

	err = db.Model(&models.Member{}).Select("COALESCE(SUM(capital_shares), 0)").
		Where("is_active = ?", true).Row().Scan(&out.TotalActiveCapital)
	if err != nil {
		return nil, err
	}
	return out, nil
}

type ReportDetail struct {
	Report           models.FinancialReport      `json:"report"`
	Distributions    []models.ProfitDistribution `json:"distributions"`
	ExpenseBreakdown []ExpenseGroup              `json:"expense_breakdown"`
	Expenses         []models.Expense            `json:"expenses"`
}

func BuildReportDetail(db *gorm.DB, report models.FinancialReport) (*ReportDetail, error) {
	detail := &ReportDetail{Report: report}
	if err := db.Preload("Member").Where("financial_report_id = ?", report.ID).
		Order("amount DESC").Find(&detail.Distributions).Error; err != nil {
		return nil, err
	}
	if err := db.Preload("Submitter").Preload("Approver").
		Where("month = ? AND status = ?", report.Month, models.ExpenseStatusPaid).
		Order("expense_date DESC").Find(&detail.Expenses).Error; err != nil {
		return nil, err
	}

	groups := map[string]*ExpenseGroup{}
	for _, e := range detail.Expenses {
		addToGroup(groups, e.ExpenseType, e.Amount)
	}
	detail.ExpenseBreakdown = sortedGroups(groups, func(a, b ExpenseGroup) bool { return a.Total.GreaterThan(b.Total) })
	return detail, nil
}
