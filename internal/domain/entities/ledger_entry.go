package entities

import (
	"time"

	"github.com/google/uuid"
)

// Ledger entry directions
const (
	DirectionDebit  = "debit"
	DirectionCredit = "credit"
)

// Ledger entry categories
const (
	CategoryVideoGift           = "video_gift"
	CategoryCommentGift         = "comment_gift"
	CategoryGiftReceived        = "gift_received"
	CategoryVideoPurchase       = "video_purchase"
	CategorySeriesPurchase      = "series_purchase"
	CategoryCreatorPassPurchase = "creator_pass_purchase"
	CategoryCreatorEarning      = "creator_earning"
)

// LedgerEntry is one side (debit or credit) of a transfer against one
// wallet. Entries are append-only and never mutated: each carries the
// wallet balance before and after, so the ledger can always be
// reconciled against the cached wallet balance.
type LedgerEntry struct {
	ID            uuid.UUID  `json:"id"`
	WalletID      uuid.UUID  `json:"walletId"`
	UserID        uuid.UUID  `json:"userId"`
	Direction     string     `json:"direction"`
	Category      string     `json:"category"`
	Amount        int64      `json:"amount"`
	Currency      string     `json:"currency"`
	Description   string     `json:"description"`
	BalanceBefore int64      `json:"balanceBefore"`
	BalanceAfter  int64      `json:"balanceAfter"`
	ContentID     *uuid.UUID `json:"contentId,omitempty"`
	ContentType   string     `json:"contentType,omitempty"`
	TransferID    uuid.UUID  `json:"transferId"`
	Status        string     `json:"status"`
	CreatedAt     time.Time  `json:"createdAt"`
}
