package jobs

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/anjiri1684/edu_cooperative/cache"
	"github.com/anjiri1684/edu_cooperative/database"
	"github.com/anjiri1684/edu_cooperative/models"
	"github.com/anjiri1684/edu_cooperative/services"
	"github.com/anjiri1684/edu_cooperative/websocket"
	"gorm.io/gorm"
)

// GenerateMonthlyBilling creates the current month's student fees and
// instructor payments.
func GenerateMonthlyBilling() {
	log.Println("Running job: GenerateMonthlyBilling...")
	if _, err := generateBilling(database.DB, time.Now(), services.RatesFromConfig()); err != nil {
		log.Printf("🔥 Error generating monthly billing: %v", err)
	}
}

func generateBilling(db *gorm.DB, now time.Time, rates services.Rates) (*services.BillingResult, error) {
	month := services.MonthStart(now)
	result, err := services.GenerateMonthlyBilling(db, month, rates)
	if err != nil {
		return nil, err
	}

	log.Printf("✅ Billing for %s: %d student fee(s), %d instructor payment(s).",
		month.Format("2006-01"), result.StudentFeesCreated, result.InstructorPaysCreated)
	services.RecordAudit(db, services.AuditEntry{
		Action:      models.AuditCreate,
		ModelName:   "BillingRecord",
		Description: fmt.Sprintf("Scheduled billing for %s", month.Format("January 2006")),
		Metadata: map[string]any{
			"student_fees":        result.StudentFeesCreated,
			"instructor_payments": result.InstructorPaysCreated,
			"hours_created":       result.InstructorHoursCreated,
		},
	})
	announce(websocket.EventBillingGenerated, result)
	return result, nil
}

// MarkOverduePayments flags pending records of past months as overdue.
func MarkOverduePayments() {
	log.Println("Running job: MarkOverduePayments...")
	n, err := markOverdue(database.DB, time.Now())
	if err != nil {
		log.Printf("🔥 Error marking overdue payments: %v", err)
		return
	}
	if n == 0 {
		log.Println("No overdue payments found.")
	}
}

func markOverdue(db *gorm.DB, now time.Time) (int64, error) {
	n, err := services.MarkOverdue(db, now)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		log.Printf("Marked %d payment(s) as overdue.", n)
		announce(websocket.EventPaymentRecorded, map[string]any{"overdue": n})
	}
	return n, nil
}

func announce(event string, data any) {
	websocket.Publish(event, data)
	go cache.InvalidateSummaries(context.Background())
}
