package repositories

import (
	"context"

	"github.com/google/uuid"
	"strmly.backend/internal/domain/entities"
)

// AccessGrantRepository defines access grant operations. At most one
// grant exists per (user, content, content_type); the unique index in
// the model backs this up against concurrent writers.
type AccessGrantRepository interface {
	Create(ctx context.Context, grant *entities.AccessGrant) error
	// Find returns the grant for (user, content, contentType), or
	// domain ErrNotFound.
	Find(ctx context.Context, userID, contentID uuid.UUID, contentType string) (*entities.AccessGrant, error)
	// Renew refreshes an existing grant in place. Used when an expired
	// creator pass is repurchased, since the unique index forbids a
	// second row for the pair.
	Renew(ctx context.Context, grant *entities.AccessGrant) error
	GetByUserID(ctx context.Context, userID uuid.UUID) ([]*entities.AccessGrant, error)
}
