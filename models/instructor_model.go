package models

import (
	"github.com/shopspring/decimal"
)

type Instructor struct {
	Base
	FirstName      string          `gorm:"size:100;not null" json:"first_name"`
	LastName       string          `gorm:"size:100;not null" json:"last_name"`
	Email          string          `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Phone          string          `gorm:"size:20" json:"phone"`
	Specialization string          `gorm:"size:200;not null" json:"specialization"`
	HourlyRate     decimal.Decimal `gorm:"type:numeric(8,2);not null" json:"hourly_rate"`
	IsActive       bool            `gorm:"not null;index" json:"is_active"`
}

func (i Instructor) FullName() string {
	return i.FirstName + " " + i.LastName
}
