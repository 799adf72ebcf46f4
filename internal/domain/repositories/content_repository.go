package repositories

import (
	"context"

	"github.com/google/uuid"
	"strmly.backend/internal/domain/entities"
)

// VideoRepository is the content-store surface the wallet core relies
// on. It only reads video documents, plus the gifts counter increment
// which is an eventually-consistent aggregate, not part of the
// financial invariant.
type VideoRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Video, error)
	IncrementGifts(ctx context.Context, id uuid.UUID, amount int64) error
}

// SeriesRepository reads series documents
type SeriesRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Series, error)
}

// CommentRepository reads comment documents
type CommentRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Comment, error)
}

// UserRepository defines user account operations
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
	GetByEmail(ctx context.Context, email string) (*entities.User, error)
	GetByUsername(ctx context.Context, username string) (*entities.User, error)
}
