package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	CourseTypeTutoring = "tutoring"
	CourseTypeIT       = "it_course"
)

const (
	SubjectMath         = "math"
	SubjectPhysics      = "physics"
	SubjectLifeSciences = "life_sciences"
	SubjectITTraining   = "it_training"
)

var CourseTypeLabels = map[string]string{
	CourseTypeTutoring: "Tutoring",
	CourseTypeIT:       "IT Course",
}

var SubjectLabels = map[string]string{
	SubjectMath:         "Mathematics",
	SubjectPhysics:      "Physics",
	SubjectLifeSciences: "Life Sciences",
	SubjectITTraining:   "IT Training",
}

type Course struct {
	Base
	Name            string          `gorm:"size:200;not null" json:"name"`
	CourseType      string          `gorm:"size:20;not null;index" json:"course_type"`
	Subject         string          `gorm:"size:20;not null" json:"subject"`
	Description     string          `gorm:"type:text" json:"description"`
	MonthlyFee      decimal.Decimal `gorm:"type:numeric(8,2);not null" json:"monthly_fee"`
	EnrollmentLimit int             `gorm:"not null" json:"enrollment_limit"`
	DurationHours   int             `gorm:"not null" json:"duration_hours"` // per month
	StartDate       *time.Time      `gorm:"type:date" json:"start_date,omitempty"`
	EndDate         *time.Time      `gorm:"type:date" json:"end_date,omitempty"`
	IsActive        bool            `gorm:"not null;index" json:"is_active"`

	Instructors []*Instructor `gorm:"many2many:course_instructors;" json:"instructors,omitempty"`
	Enrollments []Enrollment  `json:"enrollments,omitempty"`
}

func (c Course) IsTutoring() bool {
	return c.CourseType == CourseTypeTutoring
}
