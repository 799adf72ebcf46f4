package entities

import (
	"time"

	"github.com/google/uuid"
)

// Wallet statuses
const (
	WalletStatusActive    = "active"
	WalletStatusSuspended = "suspended"
	WalletStatusClosed    = "closed"
)

// CurrencyINR is the only currency the wallet operates in. Amounts are
// integer minor units.
const CurrencyINR = "INR"

// Wallet holds a user's spendable balance and lifetime totals. The
// balance is only ever mutated inside a transfer unit of work.
type Wallet struct {
	ID                uuid.UUID  `json:"id"`
	UserID            uuid.UUID  `json:"userId"`
	Balance           int64      `json:"balance"`
	TotalSpent        int64      `json:"totalSpent"`
	TotalReceived     int64      `json:"totalReceived"`
	Currency          string     `json:"currency"`
	Status            string     `json:"status"`
	LastTransactionAt *time.Time `json:"lastTransactionAt,omitempty"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`
}

// IsActive reports whether the wallet may take part in transfers
func (w *Wallet) IsActive() bool {
	return w.Status == WalletStatusActive
}
