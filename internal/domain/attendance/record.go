package attendance

import (
	"database/sql"
	"time"

	"absentee_notification_bot/internal/domain/calendar"
)

// Record is one attendance row. At most one exists per (student, date).
type Record struct {
	ID        string
	StudentID string
	GroupID   sql.NullString
	Date      calendar.Date
	Status    Status
	Notes     sql.NullString
	CreatedAt time.Time
}
