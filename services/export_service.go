package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/anjiri1684/edu_cooperative/models"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// ExportLedgerCSV writes every billing record of month as CSV.
func ExportLedgerCSV(db *gorm.DB, month time.Time) ([]byte, error) {
	month = MonthStart(month)
	var records []models.BillingRecord
	err := db.Preload("Student").Preload("Instructor").
		Where("month = ?", month).
		Order("payment_type ASC, created_at ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	b := &bytes.Buffer{}
	w := csv.NewWriter(b)

	headers := []string{"Invoice", "Month", "Type", "Payee", "Amount", "Amount Paid", "Remaining", "Status", "Payment Date", "Receipt"}
	if err := w.Write(headers); err != nil {
		return nil, err
	}

	for _, r := range records {
		var paymentDate, receipt string
		if r.PaymentDate != nil {
			paymentDate = r.PaymentDate.Format("2006-01-02")
		}
		if r.ReceiptNumber != nil {
			receipt = *r.ReceiptNumber
		}
		row := []string{
			InvoiceNumber(r),
			r.Month.Format("2006-01"),
			r.PaymentType,
			r.PayeeName(),
			r.Amount.StringFixed(2),
			r.AmountPaid.StringFixed(2),
			r.RemainingAmount().StringFixed(2),
			r.Status,
			paymentDate,
			receipt,
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	w.Flush()
	return b.Bytes(), w.Error()
}

// ExpenseReportXLSX lays the expense report out on three sheets.
func ExpenseReportXLSX(report *ExpenseReport) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const summary = "Summary"
	if err := f.SetSheetName("Sheet1", summary); err != nil {
		return nil, err
	}

	writeRow := func(sheet string, row int, values ...any) error {
		for i, v := range values {
			cell, err := excelize.CoordinatesToCellName(i+1, row)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
		return nil
	}

	if err := writeRow(summary, 1, "Expense Type", "Count", "Total (DH)"); err != nil {
		return nil, err
	}
	row := 2
	for _, g := range report.ByType {
		label := models.ExpenseTypeLabels[g.Key]
		if label == "" {
			label = g.Key
		}
		if err := writeRow(summary, row, label, g.Count, g.Total.InexactFloat64()); err != nil {
			return nil, err
		}
		row++
	}
	if err := writeRow(summary, row+1, "Total", "", report.Total.InexactFloat64()); err != nil {
		return nil, err
	}

	const monthly = "By Month"
	if _, err := f.NewSheet(monthly); err != nil {
		return nil, err
	}
	if err := writeRow(monthly, 1, "Month", "Count", "Total (DH)"); err != nil {
		return nil, err
	}
	for i, g := range report.ByMonth {
		if err := writeRow(monthly, i+2, g.Key, g.Count, g.Total.InexactFloat64()); err != nil {
			return nil, err
		}
	}

	const detail = "Expenses"
	if _, err := f.NewSheet(detail); err != nil {
		return nil, err
	}
	if err := writeRow(detail, 1, "Date", "Month", "Type", "Description", "Amount (DH)", "Payment Method", "Receipt"); err != nil {
		return nil, err
	}
	for i, e := range report.Expenses {
		err := writeRow(detail, i+2,
			e.ExpenseDate.Format("2006-01-02"),
			e.Month.Format("2006-01"),
			e.ExpenseType,
			e.Description,
			e.Amount.InexactFloat64(),
			e.PaymentMethod,
			e.ReceiptNumber,
		)
		if err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("writing xlsx: %w", err)
	}
	return buf.Bytes(), nil
}
