package handlers

import (
	"fmt"
	"strings"

	"github.com/anjiri1684/edu_cooperative/database"
	"github.com/anjiri1684/edu_cooperative/models"
	"github.com/anjiri1684/edu_cooperative/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type CreateUserRequest struct {
	FullName     string     `json:"full_name" validate:"required"`
	Email        string     `json:"email" validate:"required,email"`
	Username     string     `json:"username" validate:"required,min=3"`
	Password     string     `json:"password" validate:"required,min=8"`
	Role         string     `json:"role" validate:"required,oneof=admin manager accountant instructor staff"`
	Phone        *string    `json:"phone"`
	InstructorID *uuid.UUID `json:"instructor_id"`
}

func ListUsers(c *fiber.Ctx) error {
	var users []models.User
	if err := database.DB.Order("created_at DESC").Find(&users).Error; err != nil {
		return serviceError(c, err)
	}
	resp := make([]UserResponse, 0, len(users))
	for _, u := range users {
		resp = append(resp, toUserResponse(u))
	}
	return c.JSON(resp)
}

func CreateUser(c *fiber.Ctx) error {
	var req CreateUserRequest
	if err := parseBody(c, &req); err != nil {
		return badRequest(c, err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to hash password"})
	}

	user := models.User{
		FullName:     req.FullName,
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		Username:     req.Username,
		Password:     string(hashed),
		Role:         req.Role,
		Phone:        req.Phone,
		InstructorID: req.InstructorID,
		IsActive:     true,
	}
	if err := database.DB.Create(&user).Error; err != nil {
		return serviceError(c, err)
	}

	audit(c, models.AuditCreate, "User", &user.ID, fmt.Sprintf("Created user %s with role %s", user.Email, user.Role), nil)
	return c.Status(fiber.StatusCreated).JSON(toUserResponse(user))
}

func ListAuditLogs(c *fiber.Ctx) error {
	logs, err := services.ListAuditLogs(database.DB, c.QueryInt("limit", 200))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(logs)
}
