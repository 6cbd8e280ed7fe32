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
)

func FinancialOverview(c *fiber.Ctx) error {
	overview, err := services.BuildFinancialOverview(database.DB, time.Now())
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(overview)
}

func ListFinancialReports(c *fiber.Ctx) error {
	var reports []models.FinancialReport
	if err := database.DB.Order("month DESC").Find(&reports).Error; err != nil {
		return serviceError(c, err)
	}
	return c.JSON(reports)
}

func GetFinancialReport(c *fiber.Ctx) error {
	id, err := paramID(c, "reportId")
	if err != nil {
		return badRequest(c, err)
	}
	var report models.FinancialReport
	if err := database.DB.First(&report, "id = ?", id).Error; err != nil {
		return notFound(c, "Financial report")
	}
	detail, err := services.BuildReportDetail(database.DB, report)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(detail)
}

type GenerateReportRequest struct {
	Month string `json:"month"`
}

func GenerateFinancialReport(c *fiber.Ctx) error {
	var req GenerateReportRequest
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

	report, created, err := services.GenerateFinancialReport(database.DB, month, lockFinalized())
	if err != nil {
		return serviceError(c, err)
	}

	action, verb := models.AuditUpdate, "updated"
	status := fiber.StatusOK
	if created {
		action, verb = models.AuditCreate, "generated"
		status = fiber.StatusCreated
	}
	audit(c, action, "FinancialReport", &report.ID,
		fmt.Sprintf("Financial report for %s %s", month.Format("January 2006"), verb),
		map[string]any{"net_profit": report.NetProfit.StringFixed(2)})
	ledgerChanged(websocket.EventReportGenerated, report)

	return c.Status(status).JSON(fiber.Map{"report": report, "created": created})
}

func DistributeProfits(c *fiber.Ctx) error {
	id, err := paramID(c, "reportId")
	if err != nil {
		return badRequest(c, err)
	}

	report, distributions, err := services.DistributeProfits(database.DB, id, lockFinalized())
	if err != nil {
		return serviceError(c, err)
	}

	audit(c, models.AuditUpdate, "FinancialReport", &report.ID,
		fmt.Sprintf("Distributed %s DH to %d members for %s", report.NetProfit.StringFixed(2), len(distributions), report.Month.Format("January 2006")), nil)
	ledgerChanged(websocket.EventProfitsDistributed, fiber.Map{"report_id": report.ID, "members": len(distributions)})
	for _, d := range distributions {
		if d.Member != nil {
			go notifications.SendDistributionNotice(*d.Member, *report, d)
		}
	}

	return c.JSON(fiber.Map{"report": report, "distributions": distributions})
}

type MarkDistributionPaidRequest struct {
	PaymentDate string `json:"payment_date"`
}

func MarkDistributionPaid(c *fiber.Ctx) error {
	id, err := paramID(c, "distributionId")
	if err != nil {
		return badRequest(c, err)
	}
	var req MarkDistributionPaidRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
		}
	}
	date, err := services.ParseDate(req.PaymentDate)
	if err != nil {
		return badRequest(c, err)
	}
	if date == nil {
		today := time.Now().UTC().Truncate(24 * time.Hour)
		date = &today
	}

	var distribution models.ProfitDistribution
	if err := database.DB.First(&distribution, "id = ?", id).Error; err != nil {
		return notFound(c, "Distribution")
	}
	err = database.DB.Model(&distribution).Updates(map[string]any{"is_paid": true, "payment_date": *date}).Error
	if err != nil {
		return serviceError(c, err)
	}
	distribution.IsPaid = true
	distribution.PaymentDate = date

	audit(c, models.AuditPayment, "ProfitDistribution", &distribution.ID,
		fmt.Sprintf("Paid distribution of %s DH", distribution.Amount.StringFixed(2)), nil)
	ledgerChanged(websocket.EventProfitsDistributed, distribution)
	return c.JSON(distribution)
}
