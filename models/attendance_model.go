package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	AttendancePresent = "present"
	AttendanceAbsent  = "absent"
	AttendanceExcused = "excused"
)

type Attendance struct {
	Base
	EnrollmentID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_attendance_enrollment_date,priority:1" json:"enrollment_id"`
	Date         time.Time `gorm:"type:date;not null;uniqueIndex:idx_attendance_enrollment_date,priority:2;index" json:"date"`
	Status       string    `gorm:"size:10;not null;default:'present'" json:"status"`
	Notes        string    `gorm:"type:text" json:"notes"`

	Enrollment *Enrollment `gorm:"foreignKey:EnrollmentID" json:"enrollment,omitempty"`
}

func (Attendance) TableName() string {
	return "attendances"
}
