package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"absentee_notification_bot/internal/domain/group"
)

const groupColumns = `id, name, course_id, grade, max_students, schedule_days, is_active, created_at, updated_at`

type PostgresGroupRepository struct {
	db *sql.DB
}

func NewPostgresGroupRepository(db *sql.DB) *PostgresGroupRepository {
	return &PostgresGroupRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanGroup(row rowScanner) (*group.Group, error) {
	g := &group.Group{}
	var scheduleDays sql.NullString
	if err := row.Scan(&g.ID, &g.Name, &g.CourseID, &g.Grade, &g.MaxStudents, &scheduleDays, &g.IsActive, &g.CreatedAt, &g.UpdatedAt); err != nil {
		return nil, err
	}
	// A NULL or unparseable column means "no schedule configured".
	g.ScheduleDays = group.ParseScheduleDays(scheduleDays.String)
	return g, nil
}

func (r *PostgresGroupRepository) GetByID(ctx context.Context, id string) (*group.Group, error) {
	query := `SELECT ` + groupColumns + ` FROM groups WHERE id = $1`
	g, err := scanGroup(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrGroupNotFound
		}
		return nil, fmt.Errorf("error getting group by ID: %w", err)
	}
	return g, nil
}

func (r *PostgresGroupRepository) ListActive(ctx context.Context) ([]*group.Group, error) {
	query := `SELECT ` + groupColumns + ` FROM groups WHERE is_active = TRUE ORDER BY name`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error listing active groups: %w", err)
	}
	defer rows.Close()

	groups := make([]*group.Group, 0)
	for rows.Next() {
		g, err := scanGroup(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning active group: %w", err)
		}
		groups = append(groups, g)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating active groups: %w", err)
	}
	return groups, nil
}
