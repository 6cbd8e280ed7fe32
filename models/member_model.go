package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	MemberTypeActive  = "active"
	MemberTypePassive = "passive"
)

type Member struct {
	Base
	FirstName     string          `gorm:"size:100;not null" json:"first_name"`
	LastName      string          `gorm:"size:100;not null" json:"last_name"`
	Email         string          `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Phone         string          `gorm:"size:20" json:"phone"`
	MemberType    string          `gorm:"size:10;not null;default:'active'" json:"member_type"`
	CapitalShares decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"capital_shares"`
	JoinDate      time.Time       `gorm:"type:date;not null" json:"join_date"`
	IsActive      bool            `gorm:"not null;index" json:"is_active"`
}

func (m Member) FullName() string {
	return m.FirstName + " " + m.LastName
}
