package services

import "errors"

var (
	ErrInvalidMonth      = errors.New("invalid month, expected YYYY-MM")
	ErrRecordNotFound    = errors.New("record not found")
	ErrNegativePayment   = errors.New("payment amount must not be negative")
	ErrOverpayment       = errors.New("payment exceeds the amount due")
	ErrReportFinalized   = errors.New("financial report is finalized")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrInvalidHours      = errors.New("hours worked must be between 0 and the monthly cap")
	ErrInvalidAmount     = errors.New("amount must be greater than zero")
)
