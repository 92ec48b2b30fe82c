package database

import (
	"context"
	"database/sql"
	"fmt"

	"absentee_notification_bot/internal/domain/attendance"
	"absentee_notification_bot/internal/domain/calendar"

	"github.com/lib/pq" // For pq.Array
)

const attendanceColumns = `id, student_id, group_id, attendance_date, status, notes, created_at`

type PostgresAttendanceRepository struct {
	db *sql.DB
}

func NewPostgresAttendanceRepository(db *sql.DB) *PostgresAttendanceRepository {
	return &PostgresAttendanceRepository{db: db}
}

// Helper to scan multiple rows
func scanRecords(rows *sql.Rows) ([]*attendance.Record, error) {
	records := make([]*attendance.Record, 0)
	for rows.Next() {
		rec := attendance.Record{}
		if err := rows.Scan(
			&rec.ID, &rec.StudentID, &rec.GroupID, &rec.Date, &rec.Status, &rec.Notes, &rec.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("error scanning attendance row: %w", err)
		}
		records = append(records, &rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating attendance rows: %w", err)
	}
	return records, nil
}

// ListByStudentBetween binds both bounds as calendar.Date, which travels as
// 'YYYY-MM-DD' text, so the comparison is done on DATE values only.
func (r *PostgresAttendanceRepository) ListByStudentBetween(ctx context.Context, studentID string, from, to calendar.Date) ([]*attendance.Record, error) {
	query := `SELECT ` + attendanceColumns + `
               FROM attendance
               WHERE student_id = $1 AND attendance_date BETWEEN $2::date AND $3::date
               ORDER BY attendance_date ASC, created_at ASC`
	rows, err := r.db.QueryContext(ctx, query, studentID, from, to)
	if err != nil {
		return nil, fmt.Errorf("error querying attendance for student %s: %w", studentID, err)
	}
	defer rows.Close()
	return scanRecords(rows)
}

func (r *PostgresAttendanceRepository) ListByStudentsOnDate(ctx context.Context, studentIDs []string, date calendar.Date) ([]*attendance.Record, error) {
	if len(studentIDs) == 0 {
		return []*attendance.Record{}, nil
	}

	query := `SELECT ` + attendanceColumns + `
               FROM attendance
               WHERE student_id = ANY($1::uuid[]) AND attendance_date = $2::date
               ORDER BY created_at ASC`
	rows, err := r.db.QueryContext(ctx, query, pq.Array(studentIDs), date)
	if err != nil {
		return nil, fmt.Errorf("error querying attendance on %s: %w", date, err)
	}
	defer rows.Close()
	return scanRecords(rows)
}
