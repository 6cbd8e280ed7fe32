package services

import (
	"testing"
	"time"

	"github.com/anjiri1684/edu_cooperative/database/dbtest"
	"github.com/anjiri1684/edu_cooperative/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newExpense(t *testing.T, f *fixtures, autoApprove bool) *models.Expense {
	t.Helper()
	e, err := CreateExpense(f.db, ExpenseInput{
		ExpenseType: "utilities",
		Description: "Electricity",
		Amount:      dec("320.50"),
		ExpenseDate: march.AddDate(0, 0, 9),
		Month:       march.AddDate(0, 0, 9),
	}, uuid.New(), autoApprove)
	require.NoError(t, err)
	return e
}

func TestCreateExpense(t *testing.T) {
	db := dbtest.New(t)
	f := newFixtures(t, db)

	pending := newExpense(t, f, false)
	assert.Equal(t, models.ExpenseStatusPending, pending.Status)
	assert.Equal(t, march, pending.Month)
	assert.Nil(t, pending.ApprovedBy)

	approved := newExpense(t, f, true)
	assert.Equal(t, models.ExpenseStatusApproved, approved.Status)
	require.NotNil(t, approved.ApprovedBy)
	assert.Equal(t, *approved.SubmittedBy, *approved.ApprovedBy)
	assert.NotNil(t, approved.ApprovalDate)
}

func TestCreateExpense_Validation(t *testing.T) {
	db := dbtest.New(t)

	_, err := CreateExpense(db, ExpenseInput{ExpenseType: "rent", Amount: dec("0"), Month: march}, uuid.New(), false)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = CreateExpense(db, ExpenseInput{ExpenseType: "yachts", Amount: dec("10"), Month: march}, uuid.New(), false)
	assert.Error(t, err)
}

func TestExpenseTransitions(t *testing.T) {
	db := dbtest.New(t)
	f := newFixtures(t, db)
	approver := uuid.New()

	e := newExpense(t, f, false)

	_, err := MarkExpensePaid(db, e.ID, ExpensePayment{})
	require.ErrorIs(t, err, ErrInvalidTransition, "pending expenses cannot be paid")

	approved, err := ApproveExpense(db, e.ID, approver)
	require.NoError(t, err)
	assert.Equal(t, models.ExpenseStatusApproved, approved.Status)
	assert.Equal(t, approver, *approved.ApprovedBy)

	_, err = RejectExpense(db, e.ID, "too late")
	require.ErrorIs(t, err, ErrInvalidTransition)

	paidOn := time.Date(2025, time.March, 20, 0, 0, 0, 0, time.UTC)
	paid, err := MarkExpensePaid(db, e.ID, ExpensePayment{PaidDate: paidOn, PaymentMethod: "bank transfer", ReceiptNumber: "F-77"})
	require.NoError(t, err)
	assert.Equal(t, models.ExpenseStatusPaid, paid.Status)
	assert.Equal(t, paidOn, *paid.PaidDate)
	assert.Equal(t, "F-77", paid.ReceiptNumber)

	_, err = ApproveExpense(db, e.ID, approver)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestRejectExpense(t *testing.T) {
	db := dbtest.New(t)
	e := newExpense(t, newFixtures(t, db), false)

	rejected, err := RejectExpense(db, e.ID, "duplicate invoice")
	require.NoError(t, err)
	assert.Equal(t, models.ExpenseStatusRejected, rejected.Status)
	assert.Equal(t, "duplicate invoice", rejected.Notes)

	_, err = ApproveExpense(db, uuid.New(), uuid.New())
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func TestListExpenses(t *testing.T) {
	db := dbtest.New(t)
	f := newFixtures(t, db)

	f.expense("100", models.ExpenseStatusPaid, march)
	f.expense("50", models.ExpenseStatusPaid, march)
	f.expense("70", models.ExpenseStatusPending, march)
	f.expense("999", models.ExpenseStatusPaid, AddMonths(march, 1))

	month := march
	list, err := ListExpenses(db, ExpenseFilter{Month: &month})
	require.NoError(t, err)
	assert.Len(t, list.Expenses, 3)
	assertDecimal(t, "150", list.TotalPaid)
	assert.EqualValues(t, 1, list.PendingCount)

	list, err = ListExpenses(db, ExpenseFilter{Status: models.ExpenseStatusPending})
	require.NoError(t, err)
	assert.Len(t, list.Expenses, 1)
	assertDecimal(t, "0", list.TotalPaid)
}

func TestBuildExpenseReport(t *testing.T) {
	db := dbtest.New(t)
	f := newFixtures(t, db)

	f.expense("100", models.ExpenseStatusPaid, march)
	f.expense("40", models.ExpenseStatusPaid, AddMonths(march, 1))
	f.expense("500", models.ExpenseStatusApproved, march)
	marketing := f.expense("60", models.ExpenseStatusPaid, march)
	require.NoError(t, db.Model(&marketing).Update("expense_type", "marketing").Error)

	report, err := BuildExpenseReport(db, nil, nil)
	require.NoError(t, err)
	assertDecimal(t, "200", report.Total)
	assert.Len(t, report.Expenses, 3)

	require.Len(t, report.ByType, 2)
	assert.Equal(t, "rent", report.ByType[0].Key)
	assertDecimal(t, "140", report.ByType[0].Total)
	assert.Equal(t, 2, report.ByType[0].Count)

	require.Len(t, report.ByMonth, 2)
	assert.Equal(t, "2025-04", report.ByMonth[0].Key)
	assertDecimal(t, "160", report.ByMonth[1].Total)

	end := march.AddDate(0, 0, 27)
	report, err = BuildExpenseReport(db, &march, &end)
	require.NoError(t, err)
	assertDecimal(t, "160", report.Total)
}
