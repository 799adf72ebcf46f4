package repositories

import (
	"context"
)

// UnitOfWork executes a function within one atomic transaction scope.
// Repositories called with the context passed to fn participate in the
// same transaction; any error aborts the whole unit with no partial
// state left behind.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}
