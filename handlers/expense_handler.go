package handlers

import (
	"fmt"
	"time"

	"github.com/anjiri1684/edu_cooperative/database"
	"github.com/anjiri1684/edu_cooperative/middleware"
	"github.com/anjiri1684/edu_cooperative/models"
	"github.com/anjiri1684/edu_cooperative/services"
	"github.com/anjiri1684/edu_cooperative/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ExpenseRequest struct {
	ExpenseType string          `json:"expense_type" validate:"required,oneof=rent utilities supplies maintenance marketing insurance salaries technology other"`
	CategoryID  *uuid.UUID      `json:"category_id"`
	Description string          `json:"description" validate:"required"`
	Amount      decimal.Decimal `json:"amount"`
	ExpenseDate string          `json:"expense_date"`
	Month       string          `json:"month"`
	Notes       string          `json:"notes"`
}

func ListExpenses(c *fiber.Ctx) error {
	filter := services.ExpenseFilter{ExpenseType: c.Query("type"), Status: c.Query("status")}
	if raw := c.Query("month"); raw != "" {
		month, err := monthParam(raw)
		if err != nil {
			return serviceError(c, err)
		}
		filter.Month = &month
	}

	list, err := services.ListExpenses(database.DB, filter)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(list)
}

func CreateExpense(c *fiber.Ctx) error {
	var req ExpenseRequest
	if err := parseBody(c, &req); err != nil {
		return badRequest(c, err)
	}
	expenseDate, err := services.ParseDate(req.ExpenseDate)
	if err != nil {
		return badRequest(c, err)
	}
	if expenseDate == nil {
		today := time.Now()
		expenseDate = &today
	}
	month := services.MonthStart(*expenseDate)
	if req.Month != "" {
		if month, err = monthParam(req.Month); err != nil {
			return serviceError(c, err)
		}
	}

	submitter, ok := middleware.CurrentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token claims"})
	}
	autoApprove := middleware.Can(middleware.CurrentRole(c), middleware.OpExpensesAutoApprove)

	expense, err := services.CreateExpense(database.DB, services.ExpenseInput{
		ExpenseType: req.ExpenseType,
		CategoryID:  req.CategoryID,
		Description: req.Description,
		Amount:      req.Amount,
		ExpenseDate: *expenseDate,
		Month:       month,
		Notes:       req.Notes,
	}, submitter, autoApprove)
	if err != nil {
		return serviceError(c, err)
	}

	audit(c, models.AuditCreate, "Expense", &expense.ID,
		fmt.Sprintf("Created expense: %s - %s DH", expense.Description, expense.Amount.StringFixed(2)), nil)
	ledgerChanged(websocket.EventExpenseUpdated, expense)
	return c.Status(fiber.StatusCreated).JSON(expense)
}

type ExpenseDecisionRequest struct {
	Action string `json:"action" validate:"required,oneof=approve reject"`
	Notes  string `json:"notes"`
}

var decisionLabels = map[string]string{"approve": "Approved", "reject": "Rejected"}

// DecideExpense approves or rejects a pending expense.
func DecideExpense(c *fiber.Ctx) error {
	id, err := paramID(c, "expenseId")
	if err != nil {
		return badRequest(c, err)
	}
	var req ExpenseDecisionRequest
	if err := parseBody(c, &req); err != nil {
		return badRequest(c, err)
	}

	var expense *models.Expense
	action := models.AuditApprove
	if req.Action == "approve" {
		approver, ok := middleware.CurrentUserID(c)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token claims"})
		}
		expense, err = services.ApproveExpense(database.DB, id, approver)
	} else {
		action = models.AuditReject
		expense, err = services.RejectExpense(database.DB, id, req.Notes)
	}
	if err != nil {
		return serviceError(c, err)
	}

	audit(c, action, "Expense", &expense.ID,
		fmt.Sprintf("%s expense: %s - %s DH", decisionLabels[req.Action], expense.Description, expense.Amount.StringFixed(2)), nil)
	ledgerChanged(websocket.EventExpenseUpdated, expense)
	return c.JSON(expense)
}

type MarkExpensePaidRequest struct {
	PaidDate      string `json:"paid_date"`
	PaymentMethod string `json:"payment_method" validate:"max=50"`
	ReceiptNumber string `json:"receipt_number" validate:"max=100"`
}

func MarkExpensePaid(c *fiber.Ctx) error {
	id, err := paramID(c, "expenseId")
	if err != nil {
		return badRequest(c, err)
	}
	var req MarkExpensePaidRequest
	if err := parseBody(c, &req); err != nil {
		return badRequest(c, err)
	}
	paid, err := services.ParseDate(req.PaidDate)
	if err != nil {
		return badRequest(c, err)
	}
	payment := services.ExpensePayment{PaymentMethod: req.PaymentMethod, ReceiptNumber: req.ReceiptNumber}
	if paid != nil {
		payment.PaidDate = *paid
	}

	expense, err := services.MarkExpensePaid(database.DB, id, payment)
	if err != nil {
		return serviceError(c, err)
	}

	audit(c, models.AuditPayment, "Expense", &expense.ID,
		fmt.Sprintf("Marked expense as paid: %s - %s DH", expense.Description, expense.Amount.StringFixed(2)), nil)
	ledgerChanged(websocket.EventExpenseUpdated, expense)
	return c.JSON(expense)
}

func expenseReportFromQuery(c *fiber.Ctx) (*services.ExpenseReport, error) {
	start, err := services.ParseDate(c.Query("start_date"))
	if err != nil {
		return nil, err
	}
	end, err := services.ParseDate(c.Query("end_date"))
	if err != nil {
		return nil, err
	}
	return services.BuildExpenseReport(database.DB, start, end)
}

func ExpenseReport(c *fiber.Ctx) error {
	report, err := expenseReportFromQuery(c)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(report)
}

func ExpenseReportXLSX(c *fiber.Ctx) error {
	report, err := expenseReportFromQuery(c)
	if err != nil {
		return serviceError(c, err)
	}
	data, err := services.ExpenseReportXLSX(report)
	if err != nil {
		return serviceError(c, err)
	}

	fileName := fmt.Sprintf("expense_report_%s.xlsx", time.Now().Format("20060102_150405"))
	c.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set("Content-Disposition", "attachment; filename="+fileName)
	return c.Send(data)
}

type CategoryRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description"`
}

func ListExpenseCategories(c *fiber.Ctx) error {
	var categories []models.ExpenseCategory
	if err := database.DB.Where("is_active = ?", true).Order("name ASC").Find(&categories).Error; err != nil {
		return serviceError(c, err)
	}
	return c.JSON(categories)
}

func CreateExpenseCategory(c *fiber.Ctx) error {
	var req CategoryRequest
	if err := parseBody(c, &req); err != nil {
		return badRequest(c, err)
	}
	category := models.ExpenseCategory{Name: req.Name, Description: req.Description, IsActive: true}
	if err := database.DB.Create(&category).Error; err != nil {
		return serviceError(c, err)
	}
	audit(c, models.AuditCreate, "ExpenseCategory", &category.ID, "Created expense category "+category.Name, nil)
	return c.Status(fiber.StatusCreated).JSON(category)
}

type RecurringExpenseRequest struct {
	Name         string          `json:"name" validate:"required,max=200"`
	ExpenseType  string          `json:"expense_type" validate:"required,oneof=rent utilities supplies maintenance marketing insurance salaries technology other"`
	CategoryID   *uuid.UUID      `json:"category_id"`
	Amount       decimal.Decimal `json:"amount"`
	Frequency    string          `json:"frequency" validate:"omitempty,oneof=monthly quarterly yearly"`
	StartDate    string          `json:"start_date" validate:"required"`
	EndDate      string          `json:"end_date"`
	Description  string          `json:"description"`
	AutoGenerate *bool           `json:"auto_generate"`
}

func ListRecurringExpenses(c *fiber.Ctx) error {
	var recurring []models.RecurringExpense
	if err := database.DB.Preload("Category").Order("name ASC").Find(&recurring).Error; err != nil {
		return serviceError(c, err)
	}
	return c.JSON(recurring)
}

func CreateRecurringExpense(c *fiber.Ctx) error {
	var req RecurringExpenseRequest
	if err := parseBody(c, &req); err != nil {
		return badRequest(c, err)
	}
	if !req.Amount.IsPositive() {
		return serviceError(c, services.ErrInvalidAmount)
	}
	start, err := services.ParseDate(req.StartDate)
	if err != nil {
		return badRequest(c, err)
	}
	end, err := services.ParseDate(req.EndDate)
	if err != nil {
		return badRequest(c, err)
	}
	frequency := req.Frequency
	if frequency == "" {
		frequency = models.FrequencyMonthly
	}

	recurring := models.RecurringExpense{
		Name:         req.Name,
		ExpenseType:  req.ExpenseType,
		CategoryID:   req.CategoryID,
		Amount:       req.Amount,
		Frequency:    frequency,
		StartDate:    *start,
		EndDate:      end,
		Description:  req.Description,
		IsActive:     true,
		AutoGenerate: boolOr(req.AutoGenerate, true),
	}
	if err := database.DB.Create(&recurring).Error; err != nil {
		return serviceError(c, err)
	}

	audit(c, models.AuditCreate, "RecurringExpense", &recurring.ID, "Created recurring expense "+recurring.Name, nil)
	return c.Status(fiber.StatusCreated).JSON(recurring)
}

func GenerateRecurringExpenses(c *fiber.Ctx) error {
	month, err := monthParam(c.Query("month"))
	if err != nil {
		return serviceError(c, err)
	}
	n, err := services.GenerateRecurringExpenses(database.DB, month)
	if err != nil {
		return serviceError(c, err)
	}
	if n > 0 {
		audit(c, models.AuditCreate, "Expense", nil, fmt.Sprintf("Generated %d recurring expenses for %s", n, month.Format("January 2006")), nil)
		ledgerChanged(websocket.EventExpenseUpdated, fiber.Map{"generated": n})
	}
	return c.JSON(fiber.Map{"generated": n, "month": month.Format("2006-01")})
}
