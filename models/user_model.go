package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleAdmin      = "admin"
	RoleManager    = "manager"
	RoleAccountant = "accountant"
	RoleInstructor = "instructor"
	RoleStaff      = "staff"
)

var Roles = []string{RoleAdmin, RoleManager, RoleAccountant, RoleInstructor, RoleStaff}

type User struct {
	Base
	FullName string  `gorm:"size:255;not null" json:"full_name"`
	Email    string  `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Username string  `gorm:"size:150;not null;uniqueIndex" json:"username"`
	Password string  `gorm:"not null" json:"-"`
	Role     string  `gorm:"size:20;not null;default:'staff'" json:"role"`
	Phone    *string `gorm:"size:20" json:"phone,omitempty"`

	InstructorID *uuid.UUID  `gorm:"type:uuid;uniqueIndex" json:"instructor_id,omitempty"`
	Instructor   *Instructor `gorm:"foreignKey:InstructorID" json:"instructor,omitempty"`

	IsActive    bool       `gorm:"not null" json:"is_active"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
}
