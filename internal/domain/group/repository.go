package group

import (
	"context"
)

// Repository defines the read operations needed on groups.
type Repository interface {
	GetByID(ctx context.Context, id string) (*Group, error)
	ListActive(ctx context.Context) ([]*Group, error)
}
