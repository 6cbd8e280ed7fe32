package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type FinancialReport struct {
	Base
	Month                   time.Time       `gorm:"type:date;not null;uniqueIndex" json:"month"`
	TotalRevenue            decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"total_revenue"`
	TotalInstructorPayments decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"total_instructor_payments"`
	TotalExpenses           decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"total_expenses"`
	GrossProfit             decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"gross_profit"`
	NetProfit               decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"net_profit"`
	IsFinalized             bool            `gorm:"not null" json:"is_finalized"`

	Distributions []ProfitDistribution `gorm:"foreignKey:FinancialReportID" json:"distributions,omitempty"`
}
