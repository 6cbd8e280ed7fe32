package handlers

import (
	"fmt"
	"time"

	"github.com/anjiri1684/edu_cooperative/database"
	"github.com/anjiri1684/edu_cooperative/models"
	"github.com/anjiri1684/edu_cooperative/notifications"
	"github.com/anjiri1684/edu_cooperative/services"
	"github.com/anjiri1684/edu_cooperative/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

func listBilling(c *fiber.Ctx, paymentType string) error {
	q := database.DB.Preload("Student").Preload("Instructor").Order("month DESC, created_at DESC")
	if paymentType != "" {
		q = q.Where("payment_type = ?", paymentType)
	}
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}
	if raw := c.Query("month"); raw != "" {
		month, err := monthParam(raw)
		if err != nil {
			return serviceError(c, err)
		}
		q = q.Where("month = ?", month)
	}

	var records []models.BillingRecord
	if err := q.Limit(100).Find(&records).Error; err != nil {
		return serviceError(c, err)
	}
	return c.JSON(records)
}

func ListBillingRecords(c *fiber.Ctx) error {
	return listBilling(c, "")
}

func ListStudentFees(c *fiber.Ctx) error {
	return listBilling(c, models.PaymentTypeStudentFee)
}

func ListInstructorPayments(c *fiber.Ctx) error {
	return listBilling(c, models.PaymentTypeInstructorPayment)
}

func GetBillingRecord(c *fiber.Ctx) error {
	id, err := paramID(c, "recordId")
	if err != nil {
		return badRequest(c, err)
	}
	var record models.BillingRecord
	if err := database.DB.Preload("Student").Preload("Instructor").First(&record, "id = ?", id).Error; err != nil {
		return notFound(c, "Billing record")
	}
	return c.JSON(fiber.Map{
		"record":           record,
		"invoice_number":   services.InvoiceNumber(record),
		"remaining_amount": record.RemainingAmount(),
	})
}

type GenerateBillingRequest struct {
	Month string `json:"month"`
}

func GenerateMonthlyBilling(c *fiber.Ctx) error {
	var req GenerateBillingRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
		}
	}
	if req.Month == "" {
		req.Month = c.Query("month")
	}
	month, err := monthParam(req.Month)
	if err != nil {
		return serviceError(c, err)
	}

	result, err := services.GenerateMonthlyBilling(database.DB, month, services.RatesFromConfig())
	if err != nil {
		return serviceError(c, err)
	}

	audit(c, models.AuditCreate, "BillingRecord", nil,
		fmt.Sprintf("Generated %d student fees and %d instructor payments for %s",
			result.StudentFeesCreated, result.InstructorPaysCreated, month.Format("January 2006")),
		map[string]any{"month": month.Format("2006-01"), "hours_created": result.InstructorHoursCreated})
	ledgerChanged(websocket.EventBillingGenerated, result)

	return c.JSON(result)
}

type RecordPaymentRequest struct {
	Amount      decimal.Decimal `json:"amount_paid"`
	PaymentDate string          `json:"payment_date"`
	Notes       string          `json:"notes"`
}

func RecordPayment(c *fiber.Ctx) error {
	id, err := paramID(c, "recordId")
	if err != nil {
		return badRequest(c, err)
	}
	var req RecordPaymentRequest
	if err := parseBody(c, &req); err != nil {
		return badRequest(c, err)
	}
	date, err := services.ParseDate(req.PaymentDate)
	if err != nil {
		return badRequest(c, err)
	}
	entry := services.PaymentEntry{Amount: req.Amount, Notes: req.Notes, PaymentDate: time.Now()}
	if date != nil {
		entry.PaymentDate = *date
	}

	record, err := services.RecordPayment(database.DB, id, entry, services.OverpaymentPolicyFromConfig())
	if err != nil {
		return serviceError(c, err)
	}

	audit(c, models.AuditPayment, "BillingRecord", &record.ID,
		fmt.Sprintf("Recorded payment of %s DH on %s", req.Amount.StringFixed(2), services.InvoiceNumber(*record)),
		map[string]any{"amount": req.Amount.StringFixed(2), "status": record.Status})
	ledgerChanged(websocket.EventPaymentRecorded, record)
	if record.PaymentType == models.PaymentTypeStudentFee && record.Status == models.PaymentStatusPaid {
		go notifications.SendPaymentReceipt(*record)
	}

	return c.JSON(record)
}

func ExportLedgerCSV(c *fiber.Ctx) error {
	month, err := monthParam(c.Query("month"))
	if err != nil {
		return serviceError(c, err)
	}
	data, err := services.ExportLedgerCSV(database.DB, month)
	if err != nil {
		return serviceError(c, err)
	}

	c.Set("Content-Type", "text/csv")
	c.Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"ledger_%s.csv\"", month.Format("2006-01")))
	return c.Send(data)
}

func MarkOverdue(c *fiber.Ctx) error {
	n, err := services.MarkOverdue(database.DB, time.Now())
	if err != nil {
		return serviceError(c, err)
	}
	if n > 0 {
		ledgerChanged(websocket.EventPaymentRecorded, fiber.Map{"overdue": n})
	}
	return c.JSON(fiber.Map{"marked_overdue": n})
}
