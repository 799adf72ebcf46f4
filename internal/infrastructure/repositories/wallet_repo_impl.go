package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"strmly.backend/internal/domain/entities"
	domainerrors "strmly.backend/internal/domain/errors"
	"strmly.backend/internal/infrastructure/models"
)

// WalletRepository implements wallet data operations
type WalletRepository struct {
	db *gorm.DB
}

// NewWalletRepository creates a new wallet repository
func NewWalletRepository(db *gorm.DB) *WalletRepository {
	return &WalletRepository{db: db}
}

// Create creates a new wallet
func (r *WalletRepository) Create(ctx context.Context, wallet *entities.Wallet) error {
	m := r.toModel(wallet)
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	wallet.ID = m.ID
	return nil
}

// GetByUserID gets a wallet by owner
func (r *WalletRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*entities.Wallet, error) {
	var m models.Wallet
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Where("user_id = ?", userID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// GetByUserIDForUpdate reads the wallet row with a write lock. Callers
// must be inside a unit of work; outside one the lock has no effect.
func (r *WalletRepository) GetByUserIDForUpdate(ctx context.Context, userID uuid.UUID) (*entities.Wallet, error) {
	var m models.Wallet
	db := GetDB(ctx, r.db)
	q := db.WithContext(ctx)
	// sqlite has no FOR UPDATE; writes there are serialized anyway.
	if db.Dialector.Name() != "sqlite" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	if err := q.
		Where("user_id = ?", userID).
		First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// ApplyBalanceChange persists the balance, lifetime totals and
// last_transaction_at of a wallet the orchestrator mutated.
func (r *WalletRepository) ApplyBalanceChange(ctx context.Context, wallet *entities.Wallet) error {
	db := GetDB(ctx, r.db)
	result := db.WithContext(ctx).Model(&models.Wallet{}).
		Where("id = ?", wallet.ID).
		Updates(map[string]interface{}{
			"balance":             wallet.Balance,
			"total_spent":         wallet.TotalSpent,
			"total_received":      wallet.TotalReceived,
			"last_transaction_at": wallet.LastTransactionAt,
			"updated_at":          time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// UpdateStatus changes a wallet's lifecycle status
func (r *WalletRepository) UpdateStatus(ctx context.Context, walletID uuid.UUID, status string) error {
	db := GetDB(ctx, r.db)
	result := db.WithContext(ctx).Model(&models.Wallet{}).
		Where("id = ?", walletID).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *WalletRepository) toModel(w *entities.Wallet) *models.Wallet {
	return &models.Wallet{
		ID:                w.ID,
		UserID:            w.UserID,
		Balance:           w.Balance,
		TotalSpent:        w.TotalSpent,
		TotalReceived:     w.TotalReceived,
		Currency:          w.Currency,
		Status:            w.Status,
		LastTransactionAt: w.LastTransactionAt,
		CreatedAt:         w.CreatedAt,
		UpdatedAt:         w.UpdatedAt,
	}
}

func (r *WalletRepository) toEntity(m *models.Wallet) *entities.Wallet {
	return &entities.Wallet{
		ID:                m.ID,
		UserID:            m.UserID,
		Balance:           m.Balance,
		TotalSpent:        m.TotalSpent,
		TotalReceived:     m.TotalReceived,
		Currency:          m.Currency,
		Status:            m.Status,
		LastTransactionAt: m.LastTransactionAt,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}
