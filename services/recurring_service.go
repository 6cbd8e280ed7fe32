package services

import (
	"fmt"
	"time"

	"github.com/anjiri1684/edu_cooperative/models"
	"gorm.io/gorm"
)

var frequencyStep = map[string]int{
	models.FrequencyMonthly:   1,
	models.FrequencyQuarterly: 3,
	models.FrequencyYearly:    12,
}

// IsDue reports whether r should produce an expense for month.
func IsDue(r models.RecurringExpense, month time.Time) bool {
	month = MonthStart(month)
	if !r.IsActive || !r.AutoGenerate {
		return false
	}
	start := MonthStart(r.StartDate)
	if month.Before(start) {
		return false
	}
	if r.EndDate != nil && month.After(MonthStart(*r.EndDate)) {
		return false
	}
	if r.LastGenerated != nil && !MonthStart(*r.LastGenerated).Before(month) {
		return false
	}

	step, ok := frequencyStep[r.Frequency]
	if !ok {
		return false
	}
	elapsed := (month.Year()-start.Year())*12 + int(month.Month()-start.Month())
	return elapsed%step == 0
}

// GenerateRecurringExpenses creates one pending expense for each recurring
// expense due in month and stamps it as generated.
func GenerateRecurringExpenses(db *gorm.DB, month time.Time) (int, error) {
	month = MonthStart(month)
	created := 0

	err := db.Transaction(func(tx *gorm.DB) error {
		var recurring []models.RecurringExpense
		if err := tx.Where("is_active = ? AND auto_generate = ?", true, true).Find(&recurring).Error; err != nil {
			return err
		}

		for _, r := range recurring {
			if !IsDue(r, month) {
				continue
			}
			sourceID := r.ID
			expense := models.Expense{
				ExpenseType:        r.ExpenseType,
				CategoryID:         r.CategoryID,
				Description:        fmt.Sprintf("%s (%s)", r.Name, month.Format("January 2006")),
				Amount:             r.Amount,
				ExpenseDate:        month,
				Month:              month,
				Status:             models.ExpenseStatusPending,
				Notes:              r.Description,
				RecurringExpenseID: &sourceID,
			}
			if err := tx.Create(&expense).Error; err != nil {
				return fmt.Errorf("generating expense for %s: %w", r.Name, err)
			}
			if err := tx.Model(&models.RecurringExpense{}).Where("id = ?", r.ID).
				Update("last_generated", month).Error; err != nil {
				return err
			}
			created++
		}
		return nil
	})
	return created, err
}
