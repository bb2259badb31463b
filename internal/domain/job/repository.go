package job

import (
	"context"
)

// MaxListLimit caps a single list-by-owner query.
const MaxListLimit = 500

// Repository is the record store boundary the grid engine saves through.
// Implementations: postgres (server), sqlite (client local mode), HTTP
// (client remote mode).
type Repository interface {
	Create(ctx context.Context, fields Fields, ownerID string) (string, error)
	Update(ctx context.Context, id string, fields Fields) error
	Delete(ctx context.Context, id string) error
	ListByOwner(ctx context.Context, ownerID string, limit int) ([]Record, error)
}
