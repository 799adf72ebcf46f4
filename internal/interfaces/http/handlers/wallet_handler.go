package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"strmly.backend/internal/domain/entities"
	domainerrors "strmly.backend/internal/domain/errors"
	"strmly.backend/internal/interfaces/http/middleware"
	"strmly.backend/internal/interfaces/http/response"
	"strmly.backend/pkg/utils"
)

type WalletService interface {
	GetWallet(ctx context.Context, userID uuid.UUID) (*entities.Wallet, error)
	GetTransactions(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entities.LedgerEntry, int64, error)
	GetTransfers(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entities.Transfer, int64, error)
}

// WalletHandler handles wallet read endpoints
type WalletHandler struct {
	walletUsecase WalletService
}

// NewWalletHandler creates a new wallet handler
func NewWalletHandler(walletUsecase WalletService) *WalletHandler {
	return &WalletHandler{walletUsecase: walletUsecase}
}

// GetWallet returns the user's wallet, creating it on first use
// GET /api/v1/wallet
func (h *WalletHandler) GetWallet(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("user not authenticated"))
		return
	}

	wallet, err := h.walletUsecase.GetWallet(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"wallet": wallet})
}

// GetTransactions lists the wallet's ledger entries
// GET /api/v1/wallet/transactions
func (h *WalletHandler) GetTransactions(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("user not authenticated"))
		return
	}

	params := paginationFromQuery(c)
	entries, total, err := h.walletUsecase.GetTransactions(c.Request.Context(), userID, params.Limit, params.CalculateOffset())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"transactions": entries,
		"pagination":   utils.CalculateMeta(total, params.Page, params.Limit),
	})
}

// GetTransfers lists transfers the user took part in
// GET /api/v1/wallet/transfers
func (h *WalletHandler) GetTransfers(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("user not authenticated"))
		return
	}

	params := paginationFromQuery(c)
	transfers, total, err := h.walletUsecase.GetTransfers(c.Request.Context(), userID, params.Limit, params.CalculateOffset())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"transfers":  transfers,
		"pagination": utils.CalculateMeta(total, params.Page, params.Limit),
	})
}

func paginationFromQuery(c *gin.Context) utils.PaginationParams {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return utils.GetPaginationParams(page, limit)
}
