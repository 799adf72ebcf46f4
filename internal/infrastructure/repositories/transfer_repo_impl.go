package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"strmly.backend/internal/domain/entities"
	domainerrors "strmly.backend/internal/domain/errors"
	"strmly.backend/internal/infrastructure/models"
)

// TransferRepository implements transfer record operations
type TransferRepository struct {
	db *gorm.DB
}

// NewTransferRepository creates a new transfer repository
func NewTransferRepository(db *gorm.DB) *TransferRepository {
	return &TransferRepository{db: db}
}

// Create writes one transfer record
func (r *TransferRepository) Create(ctx context.Context, transfer *entities.Transfer) error {
	m := r.toModel(transfer)
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	transfer.ID = m.ID
	return nil
}

// GetByID gets a transfer by ID
func (r *TransferRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Transfer, error) {
	var m models.WalletTransfer
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// GetByIdempotencyKey finds the sender's earlier transfer carrying the
// same idempotency key, if any.
func (r *TransferRepository) GetByIdempotencyKey(ctx context.Context, senderID uuid.UUID, key string) (*entities.Transfer, error) {
	var m models.WalletTransfer
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).
		Where("sender_id = ? AND idempotency_key = ?", senderID, key).
		First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// GetByUserID lists transfers where the user is sender or receiver,
// newest first.
func (r *TransferRepository) GetByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entities.Transfer, int64, error) {
	db := GetDB(ctx, r.db)

	var total int64
	if err := db.WithContext(ctx).Model(&models.WalletTransfer{}).
		Where("sender_id = ? OR receiver_id = ?", userID, userID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ms []models.WalletTransfer
	if err := db.WithContext(ctx).
		Where("sender_id = ? OR receiver_id = ?", userID, userID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&ms).Error; err != nil {
		return nil, 0, err
	}

	var transfers []*entities.Transfer
	for _, m := range ms {
		model := m
		transfers = append(transfers, r.toEntity(&model))
	}
	return transfers, total, nil
}

func (r *TransferRepository) toModel(t *entities.Transfer) *models.WalletTransfer {
	return &models.WalletTransfer{
		ID:                     t.ID,
		SenderID:               t.SenderID,
		ReceiverID:             t.ReceiverID,
		SenderWalletID:         t.SenderWalletID,
		ReceiverWalletID:       t.ReceiverWalletID,
		TotalAmount:            t.TotalAmount,
		CreatorAmount:          t.CreatorAmount,
		PlatformAmount:         t.PlatformAmount,
		Currency:               t.Currency,
		TransferType:           t.TransferType,
		ContentID:              t.ContentID,
		ContentType:            t.ContentType,
		Description:            t.Description,
		SenderBalanceBefore:    t.SenderBalanceBefore,
		SenderBalanceAfter:     t.SenderBalanceAfter,
		ReceiverBalanceBefore:  t.ReceiverBalanceBefore,
		ReceiverBalanceAfter:   t.ReceiverBalanceAfter,
		PlatformFeePercentage:  t.PlatformFeePercentage,
		CreatorSharePercentage: t.CreatorSharePercentage,
		Status:                 t.Status,
		IdempotencyKey:         t.IdempotencyKey.Ptr(),
		TransferNote:           t.TransferNote.Ptr(),
		CreatedAt:              t.CreatedAt,
	}
}

func (r *TransferRepository) toEntity(m *models.WalletTransfer) *entities.Transfer {
	return &entities.Transfer{
		ID:                     m.ID,
		SenderID:               m.SenderID,
		ReceiverID:             m.ReceiverID,
		SenderWalletID:         m.SenderWalletID,
		ReceiverWalletID:       m.ReceiverWalletID,
		TotalAmount:            m.TotalAmount,
		CreatorAmount:          m.CreatorAmount,
		PlatformAmount:         m.PlatformAmount,
		Currency:               m.Currency,
		TransferType:           m.TransferType,
		ContentID:              m.ContentID,
		ContentType:            m.ContentType,
		Description:            m.Description,
		SenderBalanceBefore:    m.SenderBalanceBefore,
		SenderBalanceAfter:     m.SenderBalanceAfter,
		ReceiverBalanceBefore:  m.ReceiverBalanceBefore,
		ReceiverBalanceAfter:   m.ReceiverBalanceAfter,
		PlatformFeePercentage:  m.PlatformFeePercentage,
		CreatorSharePercentage: m.CreatorSharePercentage,
		Status:                 m.Status,
		IdempotencyKey:         null.StringFromPtr(m.IdempotencyKey),
		TransferNote:           null.StringFromPtr(m.TransferNote),
		CreatedAt:              m.CreatedAt,
	}
}
