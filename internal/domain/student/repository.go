package student

import (
	"context"
)

// Repository defines the read operations needed on students.
type Repository interface {
	GetByID(ctx context.Context, id string) (*Student, error)
	// ListActiveByGroup returns the roster of a group: active students whose
	// group_id matches, ordered by name.
	ListActiveByGroup(ctx context.Context, groupID string) ([]*Student, error)
}
