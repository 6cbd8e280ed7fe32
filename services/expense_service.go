package services

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/anjiri1684/edu_cooperative/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ExpenseInput struct {
	ExpenseType string
	CategoryID  *uuid.UUID
	Description string
	Amount      decimal.Decimal
	ExpenseDate time.Time
	Month       time.Time
	Notes       string
}

// CreateExpense files a new expense. With autoApprove the submitter is also
// recorded as approver.
func CreateExpense(db *gorm.DB, in ExpenseInput, submitterID uuid.UUID, autoApprove bool) (*models.Expense, error) {
	if !in.Amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	if _, ok := models.ExpenseTypeLabels[in.ExpenseType]; !ok {
		return nil, fmt.Errorf("unknown expense type %q", in.ExpenseType)
	}

	expense := models.Expense{
		ExpenseType: in.ExpenseType,
		CategoryID:  in.CategoryID,
		Description: in.Description,
		Amount:      in.Amount,
		ExpenseDate: dateOnly(in.ExpenseDate),
		Month:       MonthStart(in.Month),
		Status:      models.ExpenseStatusPending,
		SubmittedBy: &submitterID,
		Notes:       in.Notes,
	}
	if autoApprove {
		today := dateOnly(time.Now())
		expense.Status = models.ExpenseStatusApproved
		expense.ApprovedBy = &submitterID
		expense.ApprovalDate = &today
	}

	if err := db.Create(&expense).Error; err != nil {
		return nil, err
	}
	return &expense, nil
}

func ApproveExpense(db *gorm.DB, id, approverID uuid.UUID) (*models.Expense, error) {
	return transitionExpense(db, id, models.ExpenseStatusPending, func(e *models.Expense) {
		today := dateOnly(time.Now())
		e.Status = models.ExpenseStatusApproved
		e.ApprovedBy = &approverID
		e.ApprovalDate = &today
	})
}

func RejectExpense(db *gorm.DB, id uuid.UUID, notes string) (*models.Expense, error) {
	return transitionExpense(db, id, models.ExpenseStatusPending, func(e *models.Expense) {
		e.Status = models.ExpenseStatusRejected
		if notes != "" {
			e.Notes = notes
		}
	})
}

type ExpensePayment struct {
	PaidDate      time.Time
	PaymentMethod string
	ReceiptNumber string
}

func MarkExpensePaid(db *gorm.DB, id uuid.UUID, p ExpensePayment) (*models.Expense, error) {
	return transitionExpense(db, id, models.ExpenseStatusApproved, func(e *models.Expense) {
		paid := p.PaidDate
		if paid.IsZero() {
			paid = time.Now()
		}
		paid = dateOnly(paid)
		e.Status = models.ExpenseStatusPaid
		e.PaidDate = &paid
		e.PaymentMethod = p.PaymentMethod
		e.ReceiptNumber = p.ReceiptNumber
	})
}

func transitionExpense(db *gorm.DB, id uuid.UUID, from string, apply func(*models.Expense)) (*models.Expense, error) {
	var expense models.Expense
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&expense, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRecordNotFound
			}
			return err
		}
		if expense.Status != from {
			return fmt.Errorf("expense is %s: %w", expense.Status, ErrInvalidTransition)
		}
		apply(&expense)
		return tx.Save(&expense).Error
	})
	if err != nil {
		return nil, err
	}
	return &expense, nil
}

type ExpenseFilter struct {
	ExpenseType string
	Status      string
	Month       *time.Time
}

type ExpenseList struct {
	Expenses     []models.Expense `json:"expenses"`
	TotalPaid    decimal.Decimal  `json:"total_paid"`
	PendingCount int64            `json:"pending_count"`
}

func ListExpenses(db *gorm.DB, f ExpenseFilter) (*ExpenseList, error) {
	scope := func(tx *gorm.DB) *gorm.DB {
		q := tx.Model(&models.Expense{})
		if f.ExpenseType != "" {
			q = q.Where("expense_type = ?", f.ExpenseType)
		}
		if f.Status != "" {
			q = q.Where("status = ?", f.Status)
		}
		if f.Month != nil {
			q = q.Where("month = ?", MonthStart(*f.Month))
		}
		return q
	}

	out := &ExpenseList{}
	if err := scope(db).Preload("Category").Preload("Submitter").Preload("Approver").
		Order("expense_date DESC, created_at DESC").Limit(100).Find(&out.Expenses).Error; err != nil {
		return nil, err
	}
	if err := scope(db).Where("status = ?", models.ExpenseStatusPaid).
		Select("COALESCE(SUM(amount), 0)").Row().Scan(&out.TotalPaid); err != nil {
		return nil, err
	}
	if err := scope(db).Where("status = ?", models.ExpenseStatusPending).Count(&out.PendingCount).Error; err != nil {
		return nil, err
	}
	return out, nil
}

type ExpenseGroup struct {
	Key   string          `json:"key"`
	Total decimal.Decimal `json:"total"`
	Count int             `json:"count"`
}

type ExpenseReport struct {
	Expenses []models.Expense `json:"expenses"`
	ByType   []ExpenseGroup   `json:"by_type"`
	ByMonth  []ExpenseGroup   `json:"by_month"`
	Total    decimal.Decimal  `json:"total"`
}

// BuildExpenseReport groups paid expenses dated within [start, end]. Either
// bound may be nil. By-month groups are newest first and limited to twelve.
func BuildExpenseReport(db *gorm.DB, start, end *time.Time) (*ExpenseReport, error) {
	q := db.Where("status = ?", models.ExpenseStatusPaid)
	if start != nil {
		q = q.Where("expense_date >= ?", dateOnly(*start))
	}
	if end != nil {
		q = q.Where("expense_date <= ?", dateOnly(*end))
	}

	var expenses []models.Expense
	if err := q.Order("expense_date DESC").Find(&expenses).Error; err != nil {
		return nil, err
	}

	report := &ExpenseReport{Total: decimal.Zero}
	byType := map[string]*ExpenseGroup{}
	byMonth := map[string]*ExpenseGroup{}
	for _, e := range expenses {
		report.Total = report.Total.Add(e.Amount)
		addToGroup(byType, e.ExpenseType, e.Amount)
		addToGroup(byMonth, MonthStart(e.Month).Format("2006-01"), e.Amount)
	}

	report.ByType = sortedGroups(byType, func(a, b ExpenseGroup) bool { return a.Total.GreaterThan(b.Total) })
	report.ByMonth = sortedGroups(byMonth, func(a, b ExpenseGroup) bool { return a.Key > b.Key })
	if len(report.ByMonth) > 12 {
		report.ByMonth = report.ByMonth[:12]
	}

	if len(expenses) > 100 {
		expenses = expenses[:100]
	}
	report.Expenses = expenses
	return report, nil
}

func addToGroup(groups map[string]*ExpenseGroup, key string, amount decimal.Decimal) {
	g, ok := groups[key]
	if !ok {
		g = &ExpenseGroup{Key: key, Total: decimal.Zero}
		groups[key] = g
	}
	g.Total = g.Total.Add(amount)
	g.Count++
}

func sortedGroups(groups map[string]*ExpenseGroup, less func(a, b ExpenseGroup) bool) []ExpenseGroup {
	out := make([]ExpenseGroup, 0, len(groups))
	for _, g := range groups {
		out = append(out, *g)
	}
	sort.Slice(out, func(i, j int) bool {
		if less(out[i], out[j]) {
			return true
		}
		if less(out[j], out[i]) {
			return false
		}
		return out[i].Key < out[j].Key
	})
	return out
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
