package jobs

import (
	"log"

	"github.com/robfig/cron/v3"
)

// Schedule registers every back-office job on c.
func Schedule(c *cron.Cron) error {
	entries := []struct {
		spec string
		name string
		run  func()
	}{
		{"0 2 1 * *", "monthly billing", GenerateMonthlyBilling},
		{"0 3 1 * *", "recurring expenses", GenerateRecurringExpenses},
		{"0 4 * * *", "overdue payments", MarkOverduePayments},
	}
	for _, e := range entries {
		if _, err := c.AddFunc(e.spec, e.run); err != nil {
			return err
		}
		log.Printf("✅ Scheduled %s job (%s).", e.name, e.spec)
	}
	return nil
}
