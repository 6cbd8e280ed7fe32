package handlers

import (
	"time"

	"github.com/anjiri1684/edu_cooperative/cache"
	"github.com/anjiri1684/edu_cooperative/database"
	"github.com/anjiri1684/edu_cooperative/services"
	"github.com/gofiber/fiber/v2"
)

func FinancialSummary(c *fiber.Ctx) error {
	month, err := monthParam(c.Query("month"))
	if err != nil {
		return serviceError(c, err)
	}

	key := cache.SummaryKey("financial", month.Format("2006-01"))
	var summary services.FinancialSummary
	if cache.GetJSON(c.UserContext(), key, &summary) {
		return c.JSON(summary)
	}

	result, err := services.BuildFinancialSummary(database.DB, month)
	if err != nil {
		return serviceError(c, err)
	}
	cache.SetJSON(c.UserContext(), key, result)
	return c.JSON(result)
}

func EnrollmentStats(c *fiber.Ctx) error {
	key := cache.SummaryKey("enrollments")
	var stats services.EnrollmentStats
	if cache.GetJSON(c.UserContext(), key, &stats) {
		return c.JSON(stats)
	}

	result, err := services.BuildEnrollmentStats(database.DB)
	if err != nil {
		return serviceError(c, err)
	}
	cache.SetJSON(c.UserContext(), key, result)
	return c.JSON(result)
}

func Health(c *fiber.Ctx) error {
	status := "ok"
	if sqlDB, err := database.DB.DB(); err != nil || sqlDB.Ping() != nil {
		status = "degraded"
	}
	return c.JSON(fiber.Map{"status": status, "time": time.Now().UTC()})
}
