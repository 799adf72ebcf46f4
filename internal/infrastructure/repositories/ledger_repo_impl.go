package repositories

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"strmly.backend/internal/domain/entities"
	"strmly.backend/internal/infrastructure/models"
)

// LedgerRepository implements append-only ledger operations
type LedgerRepository struct {
	db *gorm.DB
}

// NewLedgerRepository creates a new ledger repository
func NewLedgerRepository(db *gorm.DB) *LedgerRepository {
	return &LedgerRepository{db: db}
}

// Create appends one ledger entry
func (r *LedgerRepository) Create(ctx context.Context, entry *entities.LedgerEntry) error {
	m := r.toModel(entry)
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	entry.ID = m.ID
	return nil
}

// GetByWalletID lists a wallet's entries newest first, with pagination
func (r *LedgerRepository) GetByWalletID(ctx context.Context, walletID uuid.UUID, limit, offset int) ([]*entities.LedgerEntry, int64, error) {
	db := GetDB(ctx, r.db)

	var total int64
	if err := db.WithContext(ctx).Model(&models.WalletTransaction{}).
		Where("wallet_id = ?", walletID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ms []models.WalletTransaction
	if err := db.WithContext(ctx).
		Where("wallet_id = ?", walletID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&ms).Error; err != nil {
		return nil, 0, err
	}

	var entries []*entities.LedgerEntry
	for _, m := range ms {
		model := m
		entries = append(entries, r.toEntity(&model))
	}
	return entries, total, nil
}

// GetByTransferID returns both sides of a transfer
func (r *LedgerRepository) GetByTransferID(ctx context.Context, transferID uuid.UUID) ([]*entities.LedgerEntry, error) {
	db := GetDB(ctx, r.db)
	var ms []models.WalletTransaction
	if err := db.WithContext(ctx).
		Where("transfer_id = ?", transferID).
		Order("created_at ASC").
		Find(&ms).Error; err != nil {
		return nil, err
	}

	var entries []*entities.LedgerEntry
	for _, m := range ms {
		model := m
		entries = append(entries, r.toEntity(&model))
	}
	return entries, nil
}

func (r *LedgerRepository) toModel(e *entities.LedgerEntry) *models.WalletTransaction {
	return &models.WalletTransaction{
		ID:            e.ID,
		WalletID:      e.WalletID,
		UserID:        e.UserID,
		Direction:     e.Direction,
		Category:      e.Category,
		Amount:        e.Amount,
		Currency:      e.Currency,
		Description:   e.Description,
		BalanceBefore: e.BalanceBefore,
		BalanceAfter:  e.BalanceAfter,
		ContentID:     e.ContentID,
		ContentType:   e.ContentType,
		TransferID:    e.TransferID,
		Status:        e.Status,
		CreatedAt:     e.CreatedAt,
	}
}

func (r *LedgerRepository) toEntity(m *models.WalletTransaction) *entities.LedgerEntry {
	return &entities.LedgerEntry{
		ID:            m.ID,
		WalletID:      m.WalletID,
		UserID:        m.UserID,
		Direction:     m.Direction,
		Category:      m.Category,
		Amount:        m.Amount,
		Currency:      m.Currency,
		Description:   m.Description,
		BalanceBefore: m.BalanceBefore,
		BalanceAfter:  m.BalanceAfter,
		ContentID:     m.ContentID,
		ContentType:   m.ContentType,
		TransferID:    m.TransferID,
		Status:        m.Status,
		CreatedAt:     m.CreatedAt,
	}
}
