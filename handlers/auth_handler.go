package handlers

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/anjiri1684/edu_cooperative/database"
	"github.com/anjiri1684/edu_cooperative/middleware"
	"github.com/anjiri1684/edu_cooperative/models"
	"github.com/anjiri1684/edu_cooperative/services"
	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UserResponse struct {
	ID           string     `json:"id"`
	FullName     string     `json:"full_name"`
	Email        string     `json:"email"`
	Username     string     `json:"username"`
	Role         string     `json:"role"`
	InstructorID *string    `json:"instructor_id,omitempty"`
	IsActive     bool       `json:"is_active"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

func toUserResponse(u models.User) UserResponse {
	resp := UserResponse{
		ID:          u.ID.String(),
		FullName:    u.FullName,
		Email:       u.Email,
		Username:    u.Username,
		Role:        u.Role,
		IsActive:    u.IsActive,
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
	}
	if u.InstructorID != nil {
		id := u.InstructorID.String()
		resp.InstructorID = &id
	}
	return resp
}

func LoginUser(c *fiber.Ctx) error {
	var req LoginRequest
	if err := parseBody(c, &req); err != nil {
		return badRequest(c, err)
	}

	var user models.User
	err := database.DB.Where("email = ?", strings.ToLower(strings.TrimSpace(req.Email))).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid credentials"})
		}
		return serviceError(c, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid credentials"})
	}
	if !user.IsActive {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Account is disabled"})
	}

	token, err := middleware.IssueToken(user.ID, user.Role)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not login"})
	}

	now := time.Now()
	database.DB.Model(&user).Update("last_login_at", now)
	user.LastLoginAt = &now

	services.RecordAudit(database.DB, services.AuditEntry{
		UserID:      &user.ID,
		Action:      models.AuditLogin,
		ModelName:   "User",
		ObjectID:    &user.ID,
		Description: fmt.Sprintf("%s logged in", user.Email),
		IPAddress:   c.IP(),
	})

	return c.JSON(fiber.Map{"token": token, "user": toUserResponse(user)})
}

func GetMe(c *fiber.Ctx) error {
	id, ok := middleware.CurrentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token claims"})
	}
	var user models.User
	if err := database.DB.Preload("Instructor").First(&user, "id = ?", id).Error; err != nil {
		return notFound(c, "User")
	}
	return c.JSON(toUserResponse(user))
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8"`
}

func ChangePassword(c *fiber.Ctx) error {
	var req ChangePasswordRequest
	if err := parseBody(c, &req); err != nil {
		return badRequest(c, err)
	}

	id, ok := middleware.CurrentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token claims"})
	}
	var user models.User
	if err := database.DB.First(&user, "id = ?", id).Error; err != nil {
		return notFound(c, "User")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.OldPassword)); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Current password is incorrect"})
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to hash password"})
	}
	if err := database.DB.Model(&user).Update("password", string(hashed)).Error; err != nil {
		return serviceError(c, err)
	}

	audit(c, models.AuditUpdate, "User", &user.ID, fmt.Sprintf("Changed password for %s", user.Email), nil)
	return c.JSON(fiber.Map{"message": "Password updated successfully"})
}
