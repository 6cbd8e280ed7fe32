package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	PaymentTypeStudentFee        = "student_fee"
	PaymentTypeInstructorPayment = "instructor_payment"
)

const (
	PaymentStatusPending = "pending"
	PaymentStatusPartial = "partial"
	PaymentStatusPaid    = "paid"
	PaymentStatusOverdue = "overdue"
)

// BillingRecord is one fee owed by a student or one payment owed to an
// instructor for a billing month. PayeeID mirrors whichever of StudentID or
// InstructorID is set so (type, payee, month) can carry a unique index.
type BillingRecord struct {
	Base
	PaymentType string    `gorm:"size:20;not null;uniqueIndex:idx_billing_payee_month,priority:1" json:"payment_type"`
	PayeeID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_billing_payee_month,priority:2" json:"payee_id"`
	Month       time.Time `gorm:"type:date;not null;uniqueIndex:idx_billing_payee_month,priority:3;index" json:"month"`

	StudentID    *uuid.UUID `gorm:"type:uuid;index" json:"student_id,omitempty"`
	InstructorID *uuid.UUID `gorm:"type:uuid;index" json:"instructor_id,omitempty"`

	Amount        decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"amount"`
	AmountPaid    decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"amount_paid"`
	Status        string          `gorm:"size:10;not null;index" json:"status"`
	PaymentDate   *time.Time      `gorm:"type:date" json:"payment_date,omitempty"`
	ReceiptNumber *string         `gorm:"size:20;uniqueIndex" json:"receipt_number,omitempty"`
	Notes         string          `gorm:"type:text" json:"notes"`

	Student    *Student    `gorm:"foreignKey:StudentID" json:"student,omitempty"`
	Instructor *Instructor `gorm:"foreignKey:InstructorID" json:"instructor,omitempty"`
}

func (BillingRecord) TableName() string {
	return "billing_records"
}

func (p BillingRecord) RemainingAmount() decimal.Decimal {
	return p.Amount.Sub(p.AmountPaid)
}

func (p BillingRecord) PayeeName() string {
	switch {
	case p.Student != nil:
		return p.Student.FullName()
	case p.Instructor != nil:
		return p.Instructor.FullName()
	}
	return ""
}
