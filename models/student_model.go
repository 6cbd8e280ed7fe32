package models

import (
	"time"
)

type Student struct {
	Base
	FirstName        string     `gorm:"size:100;not null" json:"first_name"`
	LastName         string     `gorm:"size:100;not null" json:"last_name"`
	Email            string     `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Phone            string     `gorm:"size:20" json:"phone"`
	ParentName       string     `gorm:"size:200" json:"parent_name"`
	ParentPhone      string     `gorm:"size:20" json:"parent_phone"`
	Address          string     `gorm:"type:text" json:"address"`
	DateOfBirth      *time.Time `gorm:"type:date" json:"date_of_birth,omitempty"`
	RegistrationDate time.Time  `gorm:"type:date;not null" json:"registration_date"`
	IsActive         bool       `gorm:"not null;index" json:"is_active"`

	Enrollments []Enrollment `json:"enrollments,omitempty"`
}

func (s Student) FullName() string {
	return s.FirstName + " " + s.LastName
}
