package services

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/anjiri1684/edu_cooperative/database/dbtest"
	"github.com/anjiri1684/edu_cooperative/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExportLedgerCSV(t *testing.T) {
	db := dbtest.New(t)
	f := newFixtures(t, db)

	fee := f.billing(models.PaymentTypeStudentFee, "250", "100", models.PaymentStatusPartial, march)
	f.billing(models.PaymentTypeStudentFee, "300", "0", models.PaymentStatusPending, AddMonths(march, 1))

	out, err := ExportLedgerCSV(db, march)
	require.NoError(t, err)

	rows, err := csv.NewReader(bytes.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Invoice", rows[0][0])
	assert.Equal(t, []string{
		InvoiceNumber(fee), "2025-03", models.PaymentTypeStudentFee, "Student 1",
		"250.00", "100.00", "150.00", models.PaymentStatusPartial, "", "",
	}, rows[1])
}

func TestExpenseReportXLSX(t *testing.T) {
	db := dbtest.New(t)
	f := newFixtures(t, db)
	f.expense("100", models.ExpenseStatusPaid, march)
	f.expense("40", models.ExpenseStatusPaid, AddMonths(march, 1))

	report, err := BuildExpenseReport(db, nil, nil)
	require.NoError(t, err)

	out, err := ExpenseReportXLSX(report)
	require.NoError(t, err)

	book, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer book.Close()

	assert.Equal(t, []string{"Summary", "By Month", "Expenses"}, book.GetSheetList())

	label, err := book.GetCellValue("Summary", "A2")
	require.NoError(t, err)
	assert.Equal(t, "Rent", label)

	total, err := book.GetCellValue("Summary", "C4")
	require.NoError(t, err)
	assert.Equal(t, "140", total)

	month, err := book.GetCellValue("By Month", "A2")
	require.NoError(t, err)
	assert.Equal(t, "2025-04", month)

	rows, err := book.GetRows("Expenses")
	require.NoError(t, err)
	assert.Len(t, rows, 3)
}
