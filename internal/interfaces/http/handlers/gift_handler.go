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

type GiftService interface {
	GiftVideo(ctx context.Context, gifterID uuid.UUID, input *entities.GiftVideoInput, idempotencyKey string) (*entities.TransferResult, error)
	GiftComment(ctx context.Context, gifterID uuid.UUID, input *entities.GiftCommentInput, idempotencyKey string) (*entities.TransferResult, error)
}

// GiftHandler handles gifting endpoints
type GiftHandler struct {
	transferUsecase GiftService
}

// NewGiftHandler creates a new gift handler
func NewGiftHandler(transferUsecase GiftService) *GiftHandler {
	return &GiftHandler{transferUsecase: transferUsecase}
}

// GiftVideo transfers a gift from the viewer to the video's creator
// POST /api/v1/interactions/gift-video
func (h *GiftHandler) GiftVideo(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("user not authenticated"))
		return
	}

	var input entities.GiftVideoInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest("MISSING_REQUIRED_FIELDS", err.Error()))
		return
	}

	result, err := h.transferUsecase.GiftVideo(c.Request.Context(), userID, &input, c.GetHeader(middleware.IdempotencyHeader))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"message": "gift sent successfully",
		"result":  result,
	})
}

// GiftComment transfers a gift from the viewer to a comment's author
// POST /api/v1/interactions/gift-comment
func (h *GiftHandler) GiftComment(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("user not authenticated"))
		return
	}

	var input entities.GiftCommentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest("MISSING_REQUIRED_FIELDS", err.Error()))
		return
	}

	result, err := h.transferUsecase.GiftComment(c.Request.Context(), userID, &input, c.GetHeader(middleware.IdempotencyHeader))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"message": "gift sent successfully",
		"result":  result,
	})
}
