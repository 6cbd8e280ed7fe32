package services

import (
	"testing"
	"time"

	"github.com/anjiri1684/edu_cooperative/database/dbtest"
	"github.com/anjiri1684/edu_cooperative/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsDue(t *testing.T) {
	start := time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC)
	base := models.RecurringExpense{StartDate: start, IsActive: true, AutoGenerate: true}
	month := func(m time.Month) time.Time { return time.Date(2025, m, 1, 0, 0, 0, 0, time.UTC) }

	monthly := base
	monthly.Frequency = models.FrequencyMonthly
	assert.True(t, IsDue(monthly, month(time.January)))
	assert.True(t, IsDue(monthly, month(time.February)))
	assert.False(t, IsDue(monthly, time.Date(2024, time.December, 1, 0, 0, 0, 0, time.UTC)))

	quarterly := base
	quarterly.Frequency = models.FrequencyQuarterly
	assert.True(t, IsDue(quarterly, month(time.April)))
	assert.False(t, IsDue(quarterly, month(time.March)))

	yearly := base
	yearly.Frequency = models.FrequencyYearly
	assert.False(t, IsDue(yearly, month(time.July)))
	assert.True(t, IsDue(yearly, time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)))

	ended := monthly
	end := time.Date(2025, time.February, 28, 0, 0, 0, 0, time.UTC)
	ended.EndDate = &end
	assert.False(t, IsDue(ended, month(time.March)))

	generated := monthly
	last := month(time.March)
	generated.LastGenerated = &last
	assert.False(t, IsDue(generated, month(time.March)))
	assert.True(t, IsDue(generated, month(time.April)))

	manual := monthly
	manual.AutoGenerate = false
	assert.False(t, IsDue(manual, month(time.March)))
}

func TestGenerateRecurringExpenses(t *testing.T) {
	db := dbtest.New(t)

	rent := models.RecurringExpense{
		Name:         "Office rent",
		ExpenseType:  "rent",
		Amount:       dec("4500"),
		Frequency:    models.FrequencyMonthly,
		StartDate:    time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC),
		IsActive:     true,
		AutoGenerate: true,
	}
	insurance := rent
	insurance.Name = "Insurance"
	insurance.ExpenseType = "insurance"
	insurance.Frequency = models.FrequencyQuarterly
	require.NoError(t, db.Create(&rent).Error)
	require.NoError(t, db.Create(&insurance).Error)

	n, err := GenerateRecurringExpenses(db, march)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	var expenses []models.Expense
	require.NoError(t, db.Find(&expenses).Error)
	require.Len(t, expenses, 1)
	assert.Equal(t, models.ExpenseStatusPending, expenses[0].Status)
	assert.Equal(t, "Office rent (March 2025)", expenses[0].Description)
	assert.Equal(t, rent.ID, *expenses[0].RecurringExpenseID)
	assertDecimal(t, "4500", expenses[0].Amount)

	n, err = GenerateRecurringExpenses(db, march)
	require.NoError(t, err)
	assert.Zero(t, n, "a second run in the same month generates nothing")

	n, err = GenerateRecurringExpenses(db, AddMonths(march, 1))
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}
