package attendance

import (
	"context"

	"absentee_notification_bot/internal/domain/calendar"
)

// Repository defines the read operations needed on attendance records.
type Repository interface {
	// ListByStudentBetween returns the student's records with from <= date <= to,
	// ordered by date ascending.
	ListByStudentBetween(ctx context.Context, studentID string, from, to calendar.Date) ([]*Record, error)
	// ListByStudentsOnDate returns the records of the given students on a single date.
	ListByStudentsOnDate(ctx context.Context, studentIDs []string, date calendar.Date) ([]*Record, error)
}
