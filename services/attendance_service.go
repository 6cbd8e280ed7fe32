package services

import (
	"errors"
	"time"

	"github.com/anjiri1684/edu_cooperative/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var attendanceStatuses = map[string]bool{
	models.AttendancePresent: true,
	models.AttendanceAbsent:  true,
	models.AttendanceExcused: true,
}

// RecordAttendance upserts one attendance row per active enrollment of the
// course on date. Enrollments missing from statuses are marked present.
func RecordAttendance(db *gorm.DB, courseID uuid.UUID, date time.Time, statuses map[uuid.UUID]string) (int, error) {
	date = dateOnly(date)
	recorded := 0

	err := db.Transaction(func(tx *gorm.DB) error {
		var course models.Course
		if err := tx.First(&course, "id = ?", courseID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRecordNotFound
			}
			return err
		}

		var enrollments []models.Enrollment
		if err := tx.Where("course_id = ? AND is_active = ?", courseID, true).Find(&enrollments).Error; err != nil {
			return err
		}

		for _, e := range enrollments {
			status := statuses[e.ID]
			if !attendanceStatuses[status] {
				status = models.AttendancePresent
			}
			row := models.Attendance{EnrollmentID: e.ID, Date: date, Status: status}
			err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "enrollment_id"}, {Name: "date"}},
				DoUpdates: clause.AssignmentColumns([]string{"status", "updated_at"}),
			}).Create(&row).Error
			if err != nil {
				return err
			}
			recorded++
		}
		return nil
	})
	return recorded, err
}

type AttendanceFilter struct {
	CourseID *uuid.UUID
	Start    *time.Time
	End      *time.Time
}

type AttendanceReport struct {
	Attendances []models.Attendance `json:"attendances"`
	Stats       map[string]int64    `json:"stats"`
}

func BuildAttendanceReport(db *gorm.DB, f AttendanceFilter) (*AttendanceReport, error) {
	scope := func() *gorm.DB {
		q := db.Model(&models.Attendance{}).Joins("JOIN enrollments ON enrollments.id = attendances.enrollment_id")
		if f.CourseID != nil {
			q = q.Where("enrollments.course_id = ?", *f.CourseID)
		}
		if f.Start != nil {
			q = q.Where("attendances.date >= ?", dateOnly(*f.Start))
		}
		if f.End != nil {
			q = q.Where("attendances.date <= ?", dateOnly(*f.End))
		}
		return q
	}

	report := &AttendanceReport{Stats: map[string]int64{}}
	if err := scope().Preload("Enrollment.Student").Preload("Enrollment.Course").
		Order("attendances.date DESC").Limit(200).Find(&report.Attendances).Error; err != nil {
		return nil, err
	}

	var rows []struct {
		Status string
		Count  int64
	}
	if err := scope().Select("attendances.status AS status, COUNT(*) AS count").
		Group("attendances.status").Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, r := range rows {
		report.Stats[r.Status] = r.Count
	}
	return report, nil
}
