package repositories

import (
	"context"

	"github.com/google/uuid"
	"strmly.backend/internal/domain/entities"
)

// WalletRepository defines wallet data operations
type WalletRepository interface {
	Create(ctx context.Context, wallet *entities.Wallet) error
	GetByUserID(ctx context.Context, userID uuid.UUID) (*entities.Wallet, error)
	// GetByUserIDForUpdate reads the wallet row with a write lock. Only
	// meaningful inside a UnitOfWork scope; used to serialize concurrent
	// transfers touching the same wallet.
	GetByUserIDForUpdate(ctx context.Context, userID uuid.UUID) (*entities.Wallet, error)
	// ApplyBalanceChange persists the balance, lifetime totals and
	// last_transaction_at of a wallet mutated by the orchestrator.
	ApplyBalanceChange(ctx context.Context, wallet *entities.Wallet) error
	UpdateStatus(ctx context.Context, walletID uuid.UUID, status string) error
}
