package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ProfitDistribution struct {
	Base
	FinancialReportID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_distribution_report_member,priority:1" json:"financial_report_id"`
	MemberID          uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_distribution_report_member,priority:2;index" json:"member_id"`
	SharePercentage   decimal.Decimal `gorm:"type:numeric(5,2);not null" json:"share_percentage"`
	Amount            decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"amount"`
	IsPaid            bool            `gorm:"not null" json:"is_paid"`
	PaymentDate       *time.Time      `gorm:"type:date" json:"payment_date,omitempty"`

	FinancialReport *FinancialReport `gorm:"foreignKey:FinancialReportID" json:"financial_report,omitempty"`
	Member          *Member          `gorm:"foreignKey:MemberID" json:"member,omitempty"`
}
