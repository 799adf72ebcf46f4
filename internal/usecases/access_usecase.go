package usecases

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"strmly.backend/internal/config"
	"strmly.backend/internal/domain/entities"
	domainerrors "strmly.backend/internal/domain/errors"
	"strmly.backend/internal/domain/repositories"
)

// Access types reported by the check that are not stored on grants.
// Grant rows carry access_type "paid"; the decision distinguishes how
// the right was obtained.
const (
	accessTypeOwner     = "owner"
	accessTypePurchased = "purchased"
	accessTypeSeries    = "series"
)

// AccessUsecase answers "may this user view this content". It is read
// only; the transfer orchestrator re-validates everything at purchase
// time.
type AccessUsecase struct {
	grantRepo  repositories.AccessGrantRepository
	videoRepo  repositories.VideoRepository
	seriesRepo repositories.SeriesRepository
	cfg        config.WalletConfig
}

// NewAccessUsecase creates a new access usecase
func NewAccessUsecase(
	grantRepo repositories.AccessGrantRepository,
	videoRepo repositories.VideoRepository,
	seriesRepo repositories.SeriesRepository,
	cfg config.WalletConfig,
) *AccessUsecase {
	return &AccessUsecase{
		grantRepo:  grantRepo,
		videoRepo:  videoRepo,
		seriesRepo: seriesRepo,
		cfg:        cfg,
	}
}

// CheckVideoAccess resolves a user's right to watch a video. Sources
// are checked in order: ownership, free content, creator pass, direct
// purchase, series purchase. With no source, the decision lists the
// ways the video can be unlocked.
func (u *AccessUsecase) CheckVideoAccess(ctx context.Context, userID, videoID uuid.UUID) (*entities.AccessDecision, error) {
	video, err := u.videoRepo.GetByID(ctx, videoID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("VIDEO_NOT_FOUND", "video not found")
		}
		return nil, domainerrors.InternalError(err)
	}
	if video.IsDeleted() {
		return nil, domainerrors.NotFound("VIDEO_NOT_FOUND", "video not found")
	}

	summary := &entities.VideoSummary{
		ID:          video.ID,
		Title:       video.Title,
		Description: video.Description,
		CreatorID:   video.CreatedBy,
		Type:        video.Type,
		Price:       video.Price,
	}

	if video.CreatedBy == userID {
		return &entities.AccessDecision{HasAccess: true, AccessType: accessTypeOwner, Video: summary}, nil
	}
	if video.Type == entities.VideoTypeFree {
		return &entities.AccessDecision{HasAccess: true, AccessType: entities.AccessTypeFree, Video: summary}, nil
	}

	now := time.Now()
	if grant, err := u.grantRepo.Find(ctx, userID, video.CreatedBy, entities.ContentTypeCreator); err == nil {
		if !grant.IsExpired(now) {
			return &entities.AccessDecision{HasAccess: true, AccessType: entities.AccessTypeCreatorPass, Video: summary}, nil
		}
	} else if !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, domainerrors.InternalError(err)
	}

	if _, err := u.grantRepo.Find(ctx, userID, video.ID, entities.ContentTypeVideo); err == nil {
		return &entities.AccessDecision{HasAccess: true, AccessType: accessTypePurchased, Video: summary}, nil
	} else if !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, domainerrors.InternalError(err)
	}

	var series *entities.Series
	if video.SeriesID != nil {
		if _, err := u.grantRepo.Find(ctx, userID, *video.SeriesID, entities.ContentTypeSeries); err == nil {
			return &entities.AccessDecision{HasAccess: true, AccessType: accessTypeSeries, Video: summary}, nil
		} else if !errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.InternalError(err)
		}
		if s, err := u.seriesRepo.GetByID(ctx, *video.SeriesID); err == nil {
			series = s
		} else if !errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.InternalError(err)
		}
	}

	return &entities.AccessDecision{
		HasAccess:      false,
		Video:          summary,
		PaymentOptions: u.paymentOptions(video, series),
		Message:        "purchase required to watch this video",
	}, nil
}

// paymentOptions lists the ways a locked video can be unlocked
func (u *AccessUsecase) paymentOptions(video *entities.Video, series *entities.Series) []entities.PaymentOption {
	price := video.Price
	if price <= 0 {
		price = u.cfg.DefaultVideoPrice
	}
	options := []entities.PaymentOption{
		{
			Type:        "individual",
			Price:       price,
			Description: "Buy this video",
			Endpoint:    fmt.Sprintf("/api/v1/videos/%s/purchase", video.ID),
		},
	}
	if series != nil && series.Type == entities.VideoTypePaid {
		options = append(options, entities.PaymentOption{
			Type:        "series",
			Price:       series.Price,
			Description: fmt.Sprintf("Buy the full series (%d episodes)", series.TotalEpisodes),
			Endpoint:    fmt.Sprintf("/api/v1/series/%s/purchase", series.ID),
			SeriesID:    series.ID,
		})
	}
	options = append(options, entities.PaymentOption{
		Type:        "creator_pass",
		Price:       u.cfg.CreatorPassPrice,
		Description: "Buy the creator's pass for their whole catalog",
		Endpoint:    fmt.Sprintf("/api/v1/creators/%s/pass", video.CreatedBy),
	})
	return options
}
