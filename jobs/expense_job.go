package jobs

import (
	"fmt"
	"log"
	"time"

	"github.com/anjiri1684/edu_cooperative/database"
	"github.com/anjiri1684/edu_cooperative/models"
	"github.com/anjiri1684/edu_cooperative/services"
	"github.com/anjiri1684/edu_cooperative/websocket"
	"gorm.io/gorm"
)

func GenerateRecurringExpenses() {
	log.Println("Running job: GenerateRecurringExpenses...")
	if _, err := generateRecurring(database.DB, time.Now()); err != nil {
		log.Printf("🔥 Error generating recurring expenses: %v", err)
	}
}

func generateRecurring(db *gorm.DB, now time.Time) (int, error) {
	month := services.MonthStart(now)
	n, err := services.GenerateRecurringExpenses(db, month)
	if err != nil {
		return 0, err
	}
	if n == 0 {
		log.Println("No recurring expenses due.")
		return 0, nil
	}

	log.Printf("✅ Generated %d recurring expense(s) for %s.", n, month.Format("2006-01"))
	services.RecordAudit(db, services.AuditEntry{
		Action:      models.AuditCreate,
		ModelName:   "Expense",
		Description: fmt.Sprintf("Generated %d recurring expense(s) for %s", n, month.Format("January 2006")),
	})
	announce(websocket.EventExpenseUpdated, map[string]any{"generated": n, "month": month.Format("2006-01")})
	return n, nil
}
