package models

import (
	"time"

	"github.com/google/uuid"
)

type Enrollment struct {
	Base
	StudentID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_enrollment_student_course,priority:1" json:"student_id"`
	CourseID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_enrollment_student_course,priority:2;index" json:"course_id"`
	EnrollmentDate time.Time `gorm:"type:date;not null" json:"enrollment_date"`
	IsActive       bool      `gorm:"not null;index" json:"is_active"`

	Student *Student `gorm:"foreignKey:StudentID" json:"student,omitempty"`
	Course  *Course  `gorm:"foreignKey:CourseID" json:"course,omitempty"`
}
