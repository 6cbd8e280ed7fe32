package handlers

import (
	"fmt"
	"time"

	"github.com/anjiri1684/edu_cooperative/database"
	"github.com/anjiri1684/edu_cooperative/models"
	"github.com/anjiri1684/edu_cooperative/services"
	"github.com/gofiber/fiber/v2"
)

// sendPDF renders html and either streams it or, with ?archive=true and
// Cloudinary configured, returns the archived URL.
func sendPDF(c *fiber.Ctx, html, kind, name string) error {
	pdf, err := services.RenderPDF(c.UserContext(), html)
	if err != nil {
		return serviceError(c, fmt.Errorf("rendering %s pdf: %w", kind, err))
	}

	if c.QueryBool("archive") && services.ArchivingEnabled() {
		url, err := services.ArchivePDF(c.UserContext(), pdf, kind, name)
		if err != nil {
			return serviceError(c, fmt.Errorf("archiving %s pdf: %w", kind, err))
		}
		return c.JSON(fiber.Map{"url": url})
	}

	c.Set("Content-Type", "application/pdf")
	c.Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.pdf\"", name))
	return c.Send(pdf)
}

func InvoicePDF(c *fiber.Ctx) error {
	id, err := paramID(c, "recordId")
	if err != nil {
		return badRequest(c, err)
	}
	var record models.BillingRecord
	if err := database.DB.Preload("Student").Preload("Instructor").First(&record, "id = ?", id).Error; err != nil {
		return notFound(c, "Billing record")
	}

	html, err := services.RenderInvoiceHTML(record, time.Now())
	if err != nil {
		return serviceError(c, err)
	}
	return sendPDF(c, html, "invoices", services.InvoiceNumber(record))
}

func ContractPDF(c *fiber.Ctx) error {
	id, err := paramID(c, "instructorId")
	if err != nil {
		return badRequest(c, err)
	}
	var instructor models.Instructor
	if err := database.DB.First(&instructor, "id = ?", id).Error; err != nil {
		return notFound(c, "Instructor")
	}

	var course *models.Course
	courseID, err := optionalUUID(c.Query("course"))
	if err != nil {
		return badRequest(c, err)
	}
	if courseID != nil {
		course = &models.Course{}
		if err := database.DB.First(course, "id = ?", *courseID).Error; err != nil {
			return notFound(c, "Course")
		}
	}

	html, err := services.RenderContractHTML(instructor, course, services.RatesFromConfig(), time.Now())
	if err != nil {
		return serviceError(c, err)
	}
	return sendPDF(c, html, "contracts", fmt.Sprintf("contract_%s_%s", instructor.LastName, time.Now().Format("20060102")))
}

func ReportPDF(c *fiber.Ctx) error {
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

	html, err := services.RenderReportHTML(*detail, time.Now())
	if err != nil {
		return serviceError(c, err)
	}
	return sendPDF(c, html, "reports", "financial_report_"+report.Month.Format("2006_01"))
}
