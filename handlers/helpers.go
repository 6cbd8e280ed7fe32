package handlers

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/anjiri1684/edu_cooperative/cache"
	config "github.com/anjiri1684/edu_cooperative/configs"
	"github.com/anjiri1684/edu_cooperative/database"
	"github.com/anjiri1684/edu_cooperative/middleware"
	"github.com/anjiri1684/edu_cooperative/services"
	"github.com/anjiri1684/edu_cooperative/websocket"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var validate = validator.New()

// parseBody decodes and validates the request body into req.
func parseBody(c *fiber.Ctx, req any) error {
	if err := c.BodyParser(req); err != nil {
		return errors.New("Cannot parse JSON")
	}
	return validate.Struct(req)
}

func paramID(c *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, errors.New("Invalid " + name)
	}
	return id, nil
}

func badRequest(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
}

// monthParam reads a month from the query string or a body value.
func monthParam(raw string) (time.Time, error) {
	return services.ParseMonth(raw, config.Bool("STRICT_MONTH_PARSING"), time.Now())
}

func parseAmount(raw string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, errors.New("invalid amount")
	}
	return d, nil
}

func lockFinalized() bool {
	return config.Bool("LOCK_FINALIZED_REPORTS")
}

// serviceError turns a service error into the matching HTTP response.
func serviceError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrInvalidMonth),
		errors.Is(err, services.ErrNegativePayment),
		errors.Is(err, services.ErrOverpayment),
		errors.Is(err, services.ErrInvalidHours),
		errors.Is(err, services.ErrInvalidAmount):
		status = fiber.StatusBadRequest
	case errors.Is(err, services.ErrRecordNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, services.ErrReportFinalized),
		errors.Is(err, services.ErrInvalidTransition),
		errors.Is(err, gorm.ErrDuplicatedKey):
		status = fiber.StatusConflict
	}

	if status == fiber.StatusInternalServerError {
		log.Printf("🔥 %s %s: %v", c.Method(), c.Path(), err)
		return c.Status(status).JSON(fiber.Map{"error": "Internal server error"})
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return c.Status(status).JSON(fiber.Map{"error": "A record with the same unique value already exists"})
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}

func notFound(c *fiber.Ctx, what string) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": what + " not found"})
}

func currentUserID(c *fiber.Ctx) *uuid.UUID {
	id, ok := middleware.CurrentUserID(c)
	if !ok {
		return nil
	}
	return &id
}

func audit(c *fiber.Ctx, action, modelName string, objectID *uuid.UUID, description string, metadata map[string]any) {
	services.RecordAudit(database.DB, services.AuditEntry{
		UserID:      currentUserID(c),
		Action:      action,
		ModelName:   modelName,
		ObjectID:    objectID,
		Description: description,
		IPAddress:   c.IP(),
		Metadata:    metadata,
	})
}

// ledgerChanged runs the post-commit side effects of any money movement.
func ledgerChanged(event string, data any) {
	websocket.Publish(event, data)
	go cache.InvalidateSummaries(context.Background())
}

func optionalUUID(raw string) (*uuid.UUID, error) {
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, errors.New("invalid id " + raw)
	}
	return &id, nil
}

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}
