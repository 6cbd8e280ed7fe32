package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type InstructorHours struct {
	Base
	InstructorID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_hours_instructor_course_month,priority:1" json:"instructor_id"`
	CourseID     uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_hours_instructor_course_month,priority:2" json:"course_id"`
	Month        time.Time       `gorm:"type:date;not null;uniqueIndex:idx_hours_instructor_course_month,priority:3" json:"month"`
	HoursWorked  decimal.Decimal `gorm:"type:numeric(5,2);not null" json:"hours_worked"`

	Instructor *Instructor `gorm:"foreignKey:InstructorID" json:"instructor,omitempty"`
	Course     *Course     `gorm:"foreignKey:CourseID" json:"course,omitempty"`
}

func (InstructorHours) TableName() string {
	return "instructor_hours"
}
