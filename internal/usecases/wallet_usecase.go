package usecases

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"strmly.backend/internal/domain/entities"
	domainerrors "strmly.backend/internal/domain/errors"
	"strmly.backend/internal/domain/repositories"
	"strmly.backend/pkg/utils"
)

// WalletUsecase serves the read side of a user's wallet: the wallet
// itself, its ledger and its transfer history.
type WalletUsecase struct {
	walletRepo   repositories.WalletRepository
	ledgerRepo   repositories.LedgerRepository
	transferRepo repositories.TransferRepository
}

// NewWalletUsecase creates a new wallet usecase
func NewWalletUsecase(
	walletRepo repositories.WalletRepository,
	ledgerRepo repositories.LedgerRepository,
	transferRepo repositories.TransferRepository,
) *WalletUsecase {
	return &WalletUsecase{
		walletRepo:   walletRepo,
		ledgerRepo:   ledgerRepo,
		transferRepo: transferRepo,
	}
}

// GetWallet returns the user's wallet, creating an empty active one on
// first use.
func (u *WalletUsecase) GetWallet(ctx context.Context, userID uuid.UUID) (*entities.Wallet, error) {
	wallet, err := u.walletRepo.GetByUserID(ctx, userID)
	if err == nil {
		return wallet, nil
	}
	if !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, domainerrors.InternalError(err)
	}

	now := time.Now()
	wallet = &entities.Wallet{
		ID:        utils.GenerateUUIDv7(),
		UserID:    userID,
		Currency:  entities.CurrencyINR,
		Status:    entities.WalletStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := u.walletRepo.Create(ctx, wallet); err != nil {
		if existing, getErr := u.walletRepo.GetByUserID(ctx, userID); getErr == nil {
			return existing, nil
		}
		return nil, domainerrors.InternalError(err)
	}
	return wallet, nil
}

// GetTransactions lists the wallet's ledger entries, newest first
func (u *WalletUsecase) GetTransactions(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entities.LedgerEntry, int64, error) {
	wallet, err := u.GetWallet(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	entries, total, err := u.ledgerRepo.GetByWalletID(ctx, wallet.ID, limit, offset)
	if err != nil {
		return nil, 0, domainerrors.InternalError(err)
	}
	return entries, total, nil
}

// GetTransfers lists transfers the user took part in, newest first
func (u *WalletUsecase) GetTransfers(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entities.Transfer, int64, error) {
	transfers, total, err := u.transferRepo.GetByUserID(ctx, userID, limit, offset)
	if err != nil {
		return nil, 0, domainerrors.InternalError(err)
	}
	return transfers, total, nil
}
