package models

import (
	"time"

	"github.com/google/uuid"
)

type Wallet struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID            uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	Balance           int64     `gorm:"not null;default:0"`
	TotalSpent        int64     `gorm:"not null;default:0"`
	TotalReceived     int64     `gorm:"not null;default:0"`
	Currency          string    `gorm:"type:varchar(3);not null"`
	Status            string    `gorm:"type:varchar(20);not null;default:active"`
	LastTransactionAt *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
