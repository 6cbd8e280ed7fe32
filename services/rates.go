package services

import (
	config "github.com/anjiri1684/edu_cooperative/configs"
	"github.com/shopspring/decimal"
)

// Rates holds the compensation constants used when billing a month.
type Rates struct {
	TutoringRate   decimal.Decimal // paid to an instructor per active student per month
	ITHourlyRate   decimal.Decimal // used when an instructor has no hourly rate of their own
	MonthlyHourCap decimal.Decimal // per instructor, per course, per month
}

func DefaultRates() Rates {
	return Rates{
		TutoringRate:   decimal.NewFromInt(100),
		ITHourlyRate:   decimal.NewFromInt(120),
		MonthlyHourCap: decimal.NewFromInt(8),
	}
}

// RatesFromConfig reads TUTORING_RATE, IT_HOURLY_RATE and MONTHLY_HOUR_CAP.
func RatesFromConfig() Rates {
	return Rates{
		TutoringRate:   config.Decimal("TUTORING_RATE"),
		ITHourlyRate:   config.Decimal("IT_HOURLY_RATE"),
		MonthlyHourCap: config.Decimal("MONTHLY_HOUR_CAP"),
	}
}

// CapHours clamps hours to the configured monthly cap.
func (r Rates) CapHours(hours decimal.Decimal) decimal.Decimal {
	return decimal.Min(hours, r.MonthlyHourCap)
}
