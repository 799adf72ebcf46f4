package models

import (
	"time"

	"github.com/google/uuid"
)

// UserAccess is an access grant. The composite unique index enforces at
// most one grant per (user, content, content_type) pair, closing the
// check-then-act race between concurrent purchases.
type UserAccess struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID        uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_content"`
	ContentID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_content"`
	ContentType   string    `gorm:"type:varchar(20);not null;uniqueIndex:idx_user_content"`
	AccessType    string    `gorm:"type:varchar(20);not null"`
	PaymentID     *uuid.UUID `gorm:"type:uuid"`
	PaymentAmount int64      `gorm:"not null;default:0"`
	GrantedAt     time.Time  `gorm:"not null"`
	ExpiresAt     *time.Time
}

func (UserAccess) TableName() string {
	return "user_access"
}
