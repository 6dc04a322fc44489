package patient

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the boundary to wherever patient snapshots live. The module
// ships only the in-memory implementation; durable stores are external.
type Repository interface {
	Upsert(ctx context.Context, r *Record) error
	GetByID(ctx context.Context, id uuid.UUID) (*Record, error)
	List(ctx context.Context, limit, offset int) ([]*Record, int, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
