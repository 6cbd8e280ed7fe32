package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	ExpenseStatusPending  = "pending"
	ExpenseStatusApproved = "approved"
	ExpenseStatusPaid     = "paid"
	ExpenseStatusRejected = "rejected"
)

var ExpenseTypeLabels = map[string]string{
	"rent":        "Rent",
	"utilities":   "Utilities",
	"supplies":    "Supplies (Papers, etc.)",
	"maintenance": "Maintenance",
	"marketing":   "Marketing",
	"insurance":   "Insurance",
	"salaries":    "Administrative Salaries",
	"technology":  "Technology/Software",
	"other":       "Other",
}

type ExpenseCategory struct {
	Base
	Name        string `gorm:"size:100;not null;uniqueIndex" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	IsActive    bool   `gorm:"not null" json:"is_active"`
}

func (ExpenseCategory) TableName() string {
	return "expense_categories"
}

type Expense struct {
	Base
	ExpenseType string           `gorm:"size:20;not null;index" json:"expense_type"`
	CategoryID  *uuid.UUID       `gorm:"type:uuid" json:"category_id,omitempty"`
	Category    *ExpenseCategory `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Description string           `gorm:"type:text;not null" json:"description"`
	Amount      decimal.Decimal  `gorm:"type:numeric(10,2);not null" json:"amount"`
	ExpenseDate time.Time        `gorm:"type:date;not null" json:"expense_date"`
	Month       time.Time        `gorm:"type:date;not null;index" json:"month"`

	Status       string     `gorm:"size:20;not null;default:'pending';index" json:"status"`
	SubmittedBy  *uuid.UUID `gorm:"type:uuid" json:"submitted_by,omitempty"`
	Submitter    *User      `gorm:"foreignKey:SubmittedBy" json:"submitter,omitempty"`
	ApprovedBy   *uuid.UUID `gorm:"type:uuid" json:"approved_by,omitempty"`
	Approver     *User      `gorm:"foreignKey:ApprovedBy" json:"approver,omitempty"`
	ApprovalDate *time.Time `gorm:"type:date" json:"approval_date,omitempty"`

	PaidDate      *time.Time `gorm:"type:date" json:"paid_date,omitempty"`
	PaymentMethod string     `gorm:"size:50" json:"payment_method"`
	ReceiptNumber string     `gorm:"size:100" json:"receipt_number"`
	Notes         string     `gorm:"type:text" json:"notes"`

	RecurringExpenseID *uuid.UUID `gorm:"type:uuid;index" json:"recurring_expense_id,omitempty"`
}

const (
	FrequencyMonthly   = "monthly"
	FrequencyQuarterly = "quarterly"
	FrequencyYearly    = "yearly"
)

type RecurringExpense struct {
	Base
	Name          string           `gorm:"size:200;not null" json:"name"`
	ExpenseType   string           `gorm:"size:20;not null" json:"expense_type"`
	CategoryID    *uuid.UUID       `gorm:"type:uuid" json:"category_id,omitempty"`
	Category      *ExpenseCategory `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Amount        decimal.Decimal  `gorm:"type:numeric(10,2);not null" json:"amount"`
	Frequency     string           `gorm:"size:20;not null;default:'monthly'" json:"frequency"`
	StartDate     time.Time        `gorm:"type:date;not null" json:"start_date"`
	EndDate       *time.Time       `gorm:"type:date" json:"end_date,omitempty"`
	Description   string           `gorm:"type:text" json:"description"`
	IsActive      bool             `gorm:"not null" json:"is_active"`
	AutoGenerate  bool             `gorm:"not null" json:"auto_generate"`
	LastGenerated *time.Time       `gorm:"type:date" json:"last_generated,omitempty"`
}
