package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"strmly.backend/internal/domain/entities"
	domainerrors "strmly.backend/internal/domain/errors"
	"strmly.backend/internal/infrastructure/models"
)

// VideoRepository implements the read side of the video store plus the
// gifts counter increment.
type VideoRepository struct {
	db *gorm.DB
}

// NewVideoRepository creates a new video repository
func NewVideoRepository(db *gorm.DB) *VideoRepository {
	return &VideoRepository{db: db}
}

// GetByID gets a video by ID
func (r *VideoRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Video, error) {
	var m models.Video
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return videoToEntity(&m), nil
}

// IncrementGifts bumps the video's gift total by amount
func (r *VideoRepository) IncrementGifts(ctx context.Context, id uuid.UUID, amount int64) error {
	db := GetDB(ctx, r.db)
	result := db.WithContext(ctx).Model(&models.Video{}).
		Where("id = ?", id).
		Update("gifts", gorm.Expr("gifts + ?", amount))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func videoToEntity(m *models.Video) *entities.Video {
	return &entities.Video{
		ID:           m.ID,
		CreatedBy:    m.CreatedBy,
		Title:        m.Title,
		Description:  m.Description,
		Type:         m.Type,
		Price:        m.Price,
		IsMonetized:  m.IsMonetized,
		Visibility:   m.Visibility,
		HiddenReason: m.HiddenReason,
		SeriesID:     m.SeriesID,
		Gifts:        m.Gifts,
		Views:        m.Views,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

// SeriesRepository implements series reads
type SeriesRepository struct {
	db *gorm.DB
}

// NewSeriesRepository creates a new series repository
func NewSeriesRepository(db *gorm.DB) *SeriesRepository {
	return &SeriesRepository{db: db}
}

// GetByID gets a series by ID
func (r *SeriesRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Series, error) {
	var m models.Series
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return &entities.Series{
		ID:            m.ID,
		CreatedBy:     m.CreatedBy,
		Title:         m.Title,
		Type:          m.Type,
		Price:         m.Price,
		TotalEpisodes: m.TotalEpisodes,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}, nil
}

// CommentRepository implements comment reads
type CommentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new comment repository
func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

// GetByID gets a comment by ID
func (r *CommentRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Comment, error) {
	var m models.Comment
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return &entities.Comment{
		ID:              m.ID,
		VideoID:         m.VideoID,
		UserID:          m.UserID,
		Content:         m.Content,
		IsMonetized:     m.IsMonetized,
		ParentCommentID: m.ParentCommentID,
		CreatedAt:       m.CreatedAt,
	}, nil
}
