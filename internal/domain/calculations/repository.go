package calculations

import "context"

type Repository interface {
	Create(ctx context.Context, r Run) error
	GetByID(ctx context.Context, id string) (Run, error)
	ListByOwner(ctx context.Context, ownerUserID string) ([]Run, error)
}
