package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// Transfer types
const (
	TransferTypeVideoGift           = "video_gift"
	TransferTypeCommentGift         = "comment_gift"
	TransferTypeVideoPurchase       = "video_purchase"
	TransferTypeSeriesPurchase      = "series_purchase"
	TransferTypeCreatorPassPurchase = "creator_pass_purchase"
)

// TransferStatusCompleted is the only reachable transfer status: a
// transfer row is only written inside a committed unit of work.
const TransferStatusCompleted = "completed"

// Transfer records one complete monetary movement between two wallets,
// including the fee split. Write-once audit data.
type Transfer struct {
	ID                     uuid.UUID   `json:"id"`
	SenderID               uuid.UUID   `json:"senderId"`
	ReceiverID             uuid.UUID   `json:"receiverId"`
	SenderWalletID         uuid.UUID   `json:"senderWalletId"`
	ReceiverWalletID       uuid.UUID   `json:"receiverWalletId"`
	TotalAmount            int64       `json:"totalAmount"`
	CreatorAmount          int64       `json:"creatorAmount"`
	PlatformAmount         int64       `json:"platformAmount"`
	Currency               string      `json:"currency"`
	TransferType           string      `json:"transferType"`
	ContentID              *uuid.UUID  `json:"contentId,omitempty"`
	ContentType            string      `json:"contentType,omitempty"`
	Description            string      `json:"description"`
	SenderBalanceBefore    int64       `json:"senderBalanceBefore"`
	SenderBalanceAfter     int64       `json:"senderBalanceAfter"`
	ReceiverBalanceBefore  int64       `json:"receiverBalanceBefore"`
	ReceiverBalanceAfter   int64       `json:"receiverBalanceAfter"`
	PlatformFeePercentage  int         `json:"platformFeePercentage"`
	CreatorSharePercentage int         `json:"creatorSharePercentage"`
	Status                 string      `json:"status"`
	IdempotencyKey         null.String `json:"-"`
	TransferNote           null.String `json:"transferNote,omitempty"`
	CreatedAt              time.Time   `json:"createdAt"`
}

// GiftVideoInput represents input for gifting a video's creator
type GiftVideoInput struct {
	VideoID string `json:"videoId" binding:"required"`
	Amount  int64  `json:"amount" binding:"required"`
}

// GiftCommentInput represents input for gifting a comment's author
type GiftCommentInput struct {
	VideoID   string `json:"videoId" binding:"required"`
	CommentID string `json:"commentId" binding:"required"`
	Amount    int64  `json:"amount" binding:"required"`
	GiftNote  string `json:"giftNote"`
}

// PurchaseInput represents input for a content purchase
type PurchaseInput struct {
	Amount       int64  `json:"amount" binding:"required"`
	TransferNote string `json:"transferNote"`
}

// PartyBalances reports one party's balance movement in a result
type PartyBalances struct {
	BalanceBefore int64 `json:"balanceBefore"`
	BalanceAfter  int64 `json:"balanceAfter"`
}

// TransferResult is the orchestrator's success shape
type TransferResult struct {
	TransferID     uuid.UUID     `json:"transferId"`
	TransferType   string        `json:"transferType"`
	TotalAmount    int64         `json:"totalAmount"`
	CreatorAmount  int64         `json:"creatorAmount"`
	PlatformAmount int64         `json:"platformAmount"`
	Sender         PartyBalances `json:"sender"`
	Receiver       PartyBalances `json:"receiver"`
	Replayed       bool          `json:"replayed,omitempty"`
	CreatedAt      time.Time     `json:"createdAt"`
}
