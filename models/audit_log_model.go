package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	AuditCreate  = "create"
	AuditUpdate  = "update"
	AuditDelete  = "delete"
	AuditLogin   = "login"
	AuditLogout  = "logout"
	AuditApprove = "approve"
	AuditReject  = "reject"
	AuditPayment = "payment"
)

type AuditLog struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      *uuid.UUID     `gorm:"type:uuid;index" json:"user_id,omitempty"`
	User        *User          `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Action      string         `gorm:"size:20;not null" json:"action"`
	ModelName   string         `gorm:"size:100;not null" json:"model_name"`
	ObjectID    *uuid.UUID     `gorm:"type:uuid" json:"object_id,omitempty"`
	Description string         `gorm:"type:text;not null" json:"description"`
	IPAddress   string         `gorm:"size:45" json:"ip_address"`
	Metadata    datatypes.JSON `json:"metadata,omitempty"`
	Timestamp   time.Time      `gorm:"not null;index" json:"timestamp"`
}
