package models

import (
	"time"

	"github.com/google/uuid"
)

// WalletTransfer is one logical monetary movement. Rows are write-once.
// The unique index on (sender_id, idempotency_key) backs the
// orchestrator's per-sender replay detection; keys chosen by different
// senders never collide.
type WalletTransfer struct {
	ID                     uuid.UUID `gorm:"type:uuid;primaryKey"`
	SenderID               uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_sender_idempotency"`
	ReceiverID             uuid.UUID `gorm:"type:uuid;not null;index"`
	SenderWalletID         uuid.UUID `gorm:"type:uuid;not null"`
	ReceiverWalletID       uuid.UUID `gorm:"type:uuid;not null"`
	TotalAmount            int64     `gorm:"not null"`
	CreatorAmount          int64     `gorm:"not null"`
	PlatformAmount         int64     `gorm:"not null"`
	Currency               string    `gorm:"type:varchar(3);not null"`
	TransferType           string    `gorm:"type:varchar(30);not null"`
	ContentID              *uuid.UUID `gorm:"type:uuid;index"`
	ContentType            string     `gorm:"type:varchar(20)"`
	Description            string     `gorm:"type:varchar(512)"`
	SenderBalanceBefore    int64      `gorm:"not null"`
	SenderBalanceAfter     int64      `gorm:"not null"`
	ReceiverBalanceBefore  int64      `gorm:"not null"`
	ReceiverBalanceAfter   int64      `gorm:"not null"`
	PlatformFeePercentage  int        `gorm:"not null"`
	CreatorSharePercentage int        `gorm:"not null"`
	Status                 string     `gorm:"type:varchar(20);not null"`
	IdempotencyKey         *string    `gorm:"type:varchar(128);uniqueIndex:idx_sender_idempotency"`
	TransferNote           *string    `gorm:"type:varchar(200)"`
	CreatedAt              time.Time
}

func (WalletTransfer) TableName() string {
	return "wallet_transfers"
}
