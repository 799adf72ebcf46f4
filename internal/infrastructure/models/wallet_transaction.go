package models

import (
	"time"

	"github.com/google/uuid"
)

// WalletTransaction is one ledger entry. Rows are append-only.
type WalletTransaction struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	WalletID      uuid.UUID `gorm:"type:uuid;not null;index"`
	UserID        uuid.UUID `gorm:"type:uuid;not null;index"`
	Direction     string    `gorm:"type:varchar(10);not null"`
	Category      string    `gorm:"type:varchar(30);not null"`
	Amount        int64     `gorm:"not null"`
	Currency      string    `gorm:"type:varchar(3);not null"`
	Description   string    `gorm:"type:varchar(512)"`
	BalanceBefore int64     `gorm:"not null"`
	BalanceAfter  int64     `gorm:"not null"`
	ContentID     *uuid.UUID `gorm:"type:uuid;index"`
	ContentType   string     `gorm:"type:varchar(20)"`
	TransferID    uuid.UUID  `gorm:"type:uuid;not null;index"`
	Status        string     `gorm:"type:varchar(20);not null"`
	CreatedAt     time.Time
}

func (WalletTransaction) TableName() string {
	return "wallet_transactions"
}
