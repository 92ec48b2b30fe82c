package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"absentee_notification_bot/internal/domain/student"
)

const studentColumns = `id, name, phone, guardian_phone, group_id, is_active, created_at, updated_at`

type PostgresStudentRepository struct {
	db *sql.DB
}

func NewPostgresStudentRepository(db *sql.DB) *PostgresStudentRepository {
	return &PostgresStudentRepository{db: db}
}

func scanStudent(row rowScanner) (*student.Student, error) {
	s := &student.Student{}
	err := row.Scan(&s.ID, &s.Name, &s.Phone, &s.GuardianPhone, &s.GroupID, &s.IsActive, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *PostgresStudentRepository) GetByID(ctx context.Context, id string) (*student.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students WHERE id = $1`
	s, err := scanStudent(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrStudentNotFound
		}
		return nil, fmt.Errorf("error getting student by ID: %w", err)
	}
	return s, nil
}

func (r *PostgresStudentRepository) ListActiveByGroup(ctx context.Context, groupID string) ([]*student.Student, error) {
	query := `SELECT ` + studentColumns + `
               FROM students
               WHERE group_id = $1 AND is_active = TRUE
               ORDER BY name, id`

	rows, err := r.db.QueryContext(ctx, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("error listing group roster: %w", err)
	}
	defer rows.Close()

	roster := make([]*student.Student, 0)
	for rows.Next() {
		s, err := scanStudent(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning roster student: %w", err)
		}
		roster = append(roster, s)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating group roster: %w", err)
	}
	return roster, nil
}
