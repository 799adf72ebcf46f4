package repositories

import (
	"context"

	"github.com/google/uuid"
	"strmly.backend/internal/domain/entities"
)

// LedgerRepository defines append-only ledger operations. Entries are
// never updated or deleted.
type LedgerRepository interface {
	Create(ctx context.Context, entry *entities.LedgerEntry) error
	GetByWalletID(ctx context.Context, walletID uuid.UUID, limit, offset int) ([]*entities.LedgerEntry, int64, error)
	GetByTransferID(ctx context.Context, transferID uuid.UUID) ([]*entities.LedgerEntry, error)
}

// TransferRepository defines transfer record operations. Transfers are
// write-once.
type TransferRepository interface {
	Create(ctx context.Context, transfer *entities.Transfer) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Transfer, error)
	GetByIdempotencyKey(ctx context.Context, senderID uuid.UUID, key string) (*entities.Transfer, error)
	GetByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entities.Transfer, int64, error)
}
