package models

import (
	"time"

	"github.com/google/uuid"
)

type Video struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedBy    uuid.UUID `gorm:"type:uuid;not null;index"`
	Title        string    `gorm:"type:varchar(255);not null"`
	Description  string    `gorm:"type:text"`
	Type         string    `gorm:"type:varchar(10);not null;default:Free"`
	Price        int64     `gorm:"not null;default:0"`
	IsMonetized  bool      `gorm:"default:false"`
	Visibility   string    `gorm:"type:varchar(20);not null;default:public"`
	HiddenReason string    `gorm:"type:varchar(50)"`
	SeriesID     *uuid.UUID `gorm:"type:uuid;index"`
	Gifts        int64      `gorm:"not null;default:0"`
	Views        int64      `gorm:"not null;default:0"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Series struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedBy     uuid.UUID `gorm:"type:uuid;not null;index"`
	Title         string    `gorm:"type:varchar(255);not null"`
	Type          string    `gorm:"type:varchar(10);not null;default:Free"`
	Price         int64     `gorm:"not null;default:0"`
	TotalEpisodes int       `gorm:"not null;default:0"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (Series) TableName() string {
	return "series"
}

type Comment struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	VideoID         uuid.UUID `gorm:"type:uuid;not null;index"`
	UserID          uuid.UUID `gorm:"type:uuid;not null;index"`
	Content         string    `gorm:"type:text;not null"`
	IsMonetized     bool      `gorm:"default:false"`
	ParentCommentID *uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt       time.Time
}
