package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"strmly.backend/internal/domain/entities"
	domainerrors "strmly.backend/internal/domain/errors"
	"strmly.backend/internal/interfaces/http/middleware"
	"strmly.backend/internal/interfaces/http/response"
)

type PurchaseService interface {
	PurchaseVideo(ctx context.Context, buyerID, videoID uuid.UUID, input *entities.PurchaseInput, idempotencyKey string) (*entities.TransferResult, error)
	PurchaseSeries(ctx context.Context, buyerID, seriesID uuid.UUID, input *entities.PurchaseInput, idempotencyKey string) (*entities.TransferResult, error)
	PurchaseCreatorPass(ctx context.Context, buyerID, creatorID uuid.UUID, input *entities.PurchaseInput, idempotencyKey string) (*entities.TransferResult, error)
}

type AccessService interface {
	CheckVideoAccess(ctx context.Context, userID, videoID uuid.UUID) (*entities.AccessDecision, error)
}

// PurchaseHandler handles content purchase and access check endpoints
type PurchaseHandler struct {
	transferUsecase PurchaseService
	accessUsecase   AccessService
}

// NewPurchaseHandler creates a new purchase handler
func NewPurchaseHandler(transferUsecase PurchaseService, accessUsecase AccessService) *PurchaseHandler {
	return &PurchaseHandler{
		transferUsecase: transferUsecase,
		accessUsecase:   accessUsecase,
	}
}

// CheckVideoAccess reports whether the user may watch the video
// GET /api/v1/videos/:id/access
func (h *PurchaseHandler) CheckVideoAccess(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("user not authenticated"))
		return
	}

	videoID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("INVALID_VIDEO_ID", "invalid video id"))
		return
	}

	decision, err := h.accessUsecase.CheckVideoAccess(c.Request.Context(), userID, videoID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, decision)
}

// PurchaseVideo buys permanent access to a single paid video
// POST /api/v1/videos/:id/purchase
func (h *PurchaseHandler) PurchaseVideo(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("user not authenticated"))
		return
	}

	videoID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("INVALID_VIDEO_ID", "invalid video id"))
		return
	}

	var input entities.PurchaseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest("MISSING_REQUIRED_FIELDS", err.Error()))
		return
	}

	result, err := h.transferUsecase.PurchaseVideo(c.Request.Context(), userID, videoID, &input, c.GetHeader(middleware.IdempotencyHeader))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"message": "video purchased successfully",
		"result":  result,
	})
}

// PurchaseSeries buys permanent access to a series and its videos
// POST /api/v1/series/:id/purchase
func (h *PurchaseHandler) PurchaseSeries(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("user not authenticated"))
		return
	}

	seriesID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("INVALID_SERIES_ID", "invalid series id"))
		return
	}

	var input entities.PurchaseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest("MISSING_REQUIRED_FIELDS", err.Error()))
		return
	}

	result, err := h.transferUsecase.PurchaseSeries(c.Request.Context(), userID, seriesID, &input, c.GetHeader(middleware.IdempotencyHeader))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"message": "series purchased successfully",
		"result":  result,
	})
}

// PurchaseCreatorPass buys time-limited access to a creator's full catalog
// POST /api/v1/creators/:id/pass
func (h *PurchaseHandler) PurchaseCreatorPass(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("user not authenticated"))
		return
	}

	creatorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("INVALID_CREATOR_ID", "invalid creator id"))
		return
	}

	var input entities.PurchaseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest("MISSING_REQUIRED_FIELDS", err.Error()))
		return
	}

	result, err := h.transferUsecase.PurchaseCreatorPass(c.Request.Context(), userID, creatorID, &input, c.GetHeader(middleware.IdempotencyHeader))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"message": "creator pass purchased successfully",
		"result":  result,
	})
}
