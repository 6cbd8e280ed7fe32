package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/anjiri1684/edu_cooperative/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GenerateFinancialReport totals what was actually paid in month and upserts
// the report for it. The finalized flag is left alone. When lock is set a
// finalized report is not recomputed.
func GenerateFinancialReport(db *gorm.DB, month time.Time, lock bool) (*models.FinancialReport, bool, error) {
	month = MonthStart(month)
	var report models.FinancialReport
	created := false

	err := db.Transaction(func(tx *gorm.DB) error {
		var existing models.FinancialReport
		err := tx.Where("month = ?", month).First(&existing).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			created = true
		case err != nil:
			return err
		case lock && existing.IsFinalized:
			return ErrReportFinalized
		}

		revenue, err := sumPaidBilling(tx, models.PaymentTypeStudentFee, month)
		if err != nil {
			return err
		}
		instructorPay, err := sumPaidBilling(tx, models.PaymentTypeInstructorPayment, month)
		if err != nil {
			return err
		}
		expenses, err := SumPaidExpenses(tx, month)
		if err != nil {
			return err
		}

		gross := revenue.Sub(instructorPay)
		report = models.FinancialReport{
			Month:                   month,
			TotalRevenue:            revenue,
			TotalInstructorPayments: instructorPay,
			TotalExpenses:           expenses,
			GrossProfit:             gross,
			NetProfit:               gross.Sub(expenses),
		}
		err = tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "month"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"total_revenue", "total_instructor_payments", "total_expenses",
				"gross_profit", "net_profit", "updated_at",
			}),
		}).Create(&report).Error
		if err != nil {
			return fmt.Errorf("saving financial report: %w", err)
		}

		// The upsert may have kept the existing row, so reload by month.
		var saved models.FinancialReport
		if err := tx.Where("month = ?", month).First(&saved).Error; err != nil {
			return err
		}
		report = saved
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return &report, created, nil
}

func sumPaidBilling(tx *gorm.DB, paymentType string, month time.Time) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := tx.Model(&models.BillingRecord{}).
		Select("COALESCE(SUM(amount_paid), 0)").
		Where("payment_type = ? AND month = ? AND status = ?", paymentType, month, models.PaymentStatusPaid).
		Row().Scan(&total)
	return total, err
}

// SumPaidExpenses totals the paid expenses booked against month.
func SumPaidExpenses(tx *gorm.DB, month time.Time) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := tx.Model(&models.Expense{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("month = ? AND status = ?", MonthStart(month), models.ExpenseStatusPaid).
		Row().Scan(&total)
	return total, err
}
