package services

import (
	"errors"
	"fmt"
	"time"

	config "github.com/anjiri1684/edu_cooperative/configs"
	"github.com/anjiri1684/edu_cooperative/models"
	"github.com/anjiri1684/edu_cooperative/utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OverpaymentPolicy string

const (
	OverpaymentAllow  OverpaymentPolicy = "allow"
	OverpaymentReject OverpaymentPolicy = "reject"
	OverpaymentCap    OverpaymentPolicy = "cap"
)

// OverpaymentPolicyFromConfig reads OVERPAYMENT_POLICY. Unknown values allow.
func OverpaymentPolicyFromConfig() OverpaymentPolicy {
	switch p := OverpaymentPolicy(config.Config("OVERPAYMENT_POLICY")); p {
	case OverpaymentReject, OverpaymentCap:
		return p
	default:
		return OverpaymentAllow
	}
}

type PaymentEntry struct {
	Amount      decimal.Decimal
	PaymentDate time.Time
	Notes       string
}

// RecordPayment adds entry to the billing record and recomputes its status.
func RecordPayment(db *gorm.DB, id uuid.UUID, entry PaymentEntry, policy OverpaymentPolicy) (*models.BillingRecord, error) {
	if entry.Amount.IsNegative() {
		return nil, ErrNegativePayment
	}

	var record models.BillingRecord
	err := db.Transaction(func(tx *gorm.DB) error {
		q := tx
		if tx.Dialector.Name() == "postgres" {
			q = q.Clauses(clause.Locking{Strength: "UPDATE"})
		}
		if err := q.First(&record, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRecordNotFound
			}
			return err
		}

		paid := record.AmountPaid.Add(entry.Amount)
		if paid.GreaterThan(record.Amount) {
			switch policy {
			case OverpaymentReject:
				return fmt.Errorf("%s due, %s offered: %w", record.RemainingAmount().StringFixed(2), entry.Amount.StringFixed(2), ErrOverpayment)
			case OverpaymentCap:
				paid = record.Amount
			}
		}
		record.AmountPaid = paid

		switch {
		case record.AmountPaid.GreaterThanOrEqual(record.Amount):
			record.Status = models.PaymentStatusPaid
		case record.AmountPaid.IsPositive():
			record.Status = models.PaymentStatusPartial
		}

		paymentDate := entry.PaymentDate
		if paymentDate.IsZero() {
			paymentDate = time.Now()
		}
		paymentDate = time.Date(paymentDate.Year(), paymentDate.Month(), paymentDate.Day(), 0, 0, 0, 0, time.UTC)
		record.PaymentDate = &paymentDate

		if entry.Notes != "" {
			record.Notes = entry.Notes
		}

		if record.ReceiptNumber == nil && record.AmountPaid.IsPositive() {
			receipt, err := utils.GenerateUniqueReceiptNumber(tx)
			if err != nil {
				return err
			}
			record.ReceiptNumber = &receipt
		}

		return tx.Model(&record).Select("AmountPaid", "Status", "PaymentDate", "Notes", "ReceiptNumber").Updates(&record).Error
	})
	if err != nil {
		return nil, err
	}

	if err := db.Preload("Student").Preload("Instructor").First(&record, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &record, nil
}
