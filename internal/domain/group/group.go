package group

import (
	"database/sql"
	"time"
)

// Group is a cohort of students sharing a weekly session schedule.
type Group struct {
	ID           string // UUID
	Name         string
	CourseID     sql.NullString
	Grade        sql.NullString
	MaxStudents  int
	ScheduleDays ScheduleDays // empty means the group meets every day
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
