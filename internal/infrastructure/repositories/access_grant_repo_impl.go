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

// AccessGrantRepository implements access grant operations
type AccessGrantRepository struct {
	db *gorm.DB
}

// NewAccessGrantRepository creates a new access grant repository
func NewAccessGrantRepository(db *gorm.DB) *AccessGrantRepository {
	return &AccessGrantRepository{db: db}
}

// Create writes one access grant. A duplicate (user, content,
// content_type) surfaces as ErrAlreadyExists via the unique index.
func (r *AccessGrantRepository) Create(ctx context.Context, grant *entities.AccessGrant) error {
	m := r.toModel(grant)
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Create(m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domainerrors.ErrAlreadyExists
		}
		return err
	}
	grant.ID = m.ID
	return nil
}

// Find returns the grant for (user, content, contentType)
func (r *AccessGrantRepository) Find(ctx context.Context, userID, contentID uuid.UUID, contentType string) (*entities.AccessGrant, error) {
	var m models.UserAccess
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).
		Where("user_id = ? AND content_id = ? AND content_type = ?", userID, contentID, contentType).
		First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// Renew refreshes an existing grant's payment reference and expiry
func (r *AccessGrantRepository) Renew(ctx context.Context, grant *entities.AccessGrant) error {
	db := GetDB(ctx, r.db)
	result := db.WithContext(ctx).Model(&models.UserAccess{}).
		Where("id = ?", grant.ID).
		Updates(map[string]interface{}{
			"access_type":    grant.AccessType,
			"payment_id":     grant.PaymentID,
			"payment_amount": grant.PaymentAmount,
			"granted_at":     grant.GrantedAt,
			"expires_at":     grant.ExpiresAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// GetByUserID lists all of a user's grants, newest first
func (r *AccessGrantRepository) GetByUserID(ctx context.Context, userID uuid.UUID) ([]*entities.AccessGrant, error) {
	db := GetDB(ctx, r.db)
	var ms []models.UserAccess
	if err := db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("granted_at DESC").
		Find(&ms).Error; err != nil {
		return nil, err
	}

	var grants []*entities.AccessGrant
	for _, m := range ms {
		model := m
		grants = append(grants, r.toEntity(&model))
	}
	return grants, nil
}

func (r *AccessGrantRepository) toModel(g *entities.AccessGrant) *models.UserAccess {
	return &models.UserAccess{
		ID:            g.ID,
		UserID:        g.UserID,
		ContentID:     g.ContentID,
		ContentType:   g.ContentType,
		AccessType:    g.AccessType,
		PaymentID:     g.PaymentID,
		PaymentAmount: g.PaymentAmount,
		GrantedAt:     g.GrantedAt,
		ExpiresAt:     g.ExpiresAt,
	}
}

func (r *AccessGrantRepository) toEntity(m *models.UserAccess) *entities.AccessGrant {
	return &entities.AccessGrant{
		ID:            m.ID,
		UserID:        m.UserID,
		ContentID:     m.ContentID,
		ContentType:   m.ContentType,
		AccessType:    m.AccessType,
		PaymentID:     m.PaymentID,
		PaymentAmount: m.PaymentAmount,
		GrantedAt:     m.GrantedAt,
		ExpiresAt:     m.ExpiresAt,
	}
}
