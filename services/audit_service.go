package services

import (
	"encoding/json"
	"log"
	"time"

	"github.com/anjiri1684/edu_cooperative/models"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type AuditEntry struct {
	UserID      *uuid.UUID
	Action      string
	ModelName   string
	ObjectID    *uuid.UUID
	Description string
	IPAddress   string
	Metadata    map[string]any
}

// RecordAudit appends an audit log row. Failures are logged, not returned,
// so an audit problem never undoes the action being audited.
func RecordAudit(db *gorm.DB, e AuditEntry) {
	entry := models.AuditLog{
		ID:          uuid.New(),
		UserID:      e.UserID,
		Action:      e.Action,
		ModelName:   e.ModelName,
		ObjectID:    e.ObjectID,
		Description: e.Description,
		IPAddress:   e.IPAddress,
		Timestamp:   time.Now().UTC(),
	}
	if len(e.Metadata) > 0 {
		raw, err := json.Marshal(e.Metadata)
		if err != nil {
			log.Printf("⚠️ Could not encode audit metadata: %v", err)
		} else {
			entry.Metadata = datatypes.JSON(raw)
		}
	}
	if err := db.Create(&entry).Error; err != nil {
		log.Printf("🔥 Failed to write audit log (%s %s): %v", e.Action, e.ModelName, err)
	}
}

func ListAuditLogs(db *gorm.DB, limit int) ([]models.AuditLog, error) {
	if limit <= 0 || limit > 200 {
		limit = 200
	}
	var logs []models.AuditLog
	err := db.Preload("User").Order("timestamp DESC").Limit(limit).Find(&logs).Error
	return logs, err
}
