package handlers

import (
	"errors"
	"fmt"
	"time"

	"github.com/anjiri1684/edu_cooperative/database"
	"github.com/anjiri1684/edu_cooperative/models"
	"github.com/anjiri1684/edu_cooperative/services"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type MemberRequest struct {
	FirstName     string          `json:"first_name" validate:"required,max=100"`
	LastName      string          `json:"last_name" validate:"required,max=100"`
	Email         string          `json:"email" validate:"required,email"`
	Phone         string          `json:"phone" validate:"max=20"`
	MemberType    string          `json:"member_type" validate:"omitempty,oneof=active passive"`
	CapitalShares decimal.Decimal `json:"capital_shares"`
	JoinDate      string          `json:"join_date"`
	IsActive      *bool           `json:"is_active"`
}

func (r MemberRequest) apply(m *models.Member) error {
	if r.CapitalShares.IsNegative() {
		return errors.New("capital_shares must not be negative")
	}
	joined, err := services.ParseDate(r.JoinDate)
	if err != nil {
		return err
	}

	m.FirstName = r.FirstName
	m.LastName = r.LastName
	m.Email = r.Email
	m.Phone = r.Phone
	m.MemberType = r.MemberType
	if m.MemberType == "" {
		m.MemberType = models.MemberTypeActive
	}
	m.CapitalShares = r.CapitalShares
	if joined != nil {
		m.JoinDate = *joined
	} else if m.JoinDate.IsZero() {
		m.JoinDate = time.Now().UTC().Truncate(24 * time.Hour)
	}
	m.IsActive = boolOr(r.IsActive, true)
	return nil
}

func ListMembers(c *fiber.Ctx) error {
	q := database.DB.Order("last_name ASC, first_name ASC")
	if t := c.Query("type"); t != "" {
		q = q.Where("member_type = ?", t)
	}
	var members []models.Member
	if err := q.Find(&members).Error; err != nil {
		return serviceError(c, err)
	}
	return c.JSON(members)
}

func GetMember(c *fiber.Ctx) error {
	id, err := paramID(c, "memberId")
	if err != nil {
		return badRequest(c, err)
	}

	var member models.Member
	if err := database.DB.First(&member, "id = ?", id).Error; err != nil {
		return notFound(c, "Member")
	}

	var distributions []models.ProfitDistribution
	err = database.DB.Preload("FinancialReport").
		Where("member_id = ?", id).
		Order("created_at DESC").
		Limit(10).
		Find(&distributions).Error
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{"member": member, "distributions": distributions})
}

func CreateMember(c *fiber.Ctx) error {
	var req MemberRequest
	if err := parseBody(c, &req); err != nil {
		return badRequest(c, err)
	}

	var member models.Member
	if err := req.apply(&member); err != nil {
		return badRequest(c, err)
	}
	if err := database.DB.Create(&member).Error; err != nil {
		return serviceError(c, err)
	}

	audit(c, models.AuditCreate, "Member", &member.ID, fmt.Sprintf("Created member %s", member.FullName()), nil)
	return c.Status(fiber.StatusCreated).JSON(member)
}

func UpdateMember(c *fiber.Ctx) error {
	id, err := paramID(c, "memberId")
	if err != nil {
		return badRequest(c, err)
	}
	var req MemberRequest
	if err := parseBody(c, &req); err != nil {
		return badRequest(c, err)
	}

	var member models.Member
	if err := database.DB.First(&member, "id = ?", id).Error; err != nil {
		return notFound(c, "Member")
	}
	if err := req.apply(&member); err != nil {
		return badRequest(c, err)
	}
	if err := database.DB.Save(&member).Error; err != nil {
		return serviceError(c, err)
	}

	audit(c, models.AuditUpdate, "Member", &member.ID, fmt.Sprintf("Updated member %s", member.FullName()), nil)
	return c.JSON(member)
}

func DeleteMember(c *fiber.Ctx) error {
	id, err := paramID(c, "memberId")
	if err != nil {
		return badRequest(c, err)
	}

	var member models.Member
	if err := database.DB.First(&member, "id = ?", id).Error; err != nil {
		return notFound(c, "Member")
	}
	if err := database.DB.Delete(&member).Error; err != nil {
		return serviceError(c, err)
	}

	audit(c, models.AuditDelete, "Member", &member.ID, fmt.Sprintf("Deleted member %s", member.FullName()), nil)
	return c.SendStatus(fiber.StatusNoContent)
}
