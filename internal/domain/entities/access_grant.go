package entities

import (
	"time"

	"github.com/google/uuid"
)

// Content types a grant can point at
const (
	ContentTypeVideo   = "video"
	ContentTypeSeries  = "series"
	ContentTypeCreator = "creator"
)

// Access types
const (
	AccessTypeFree        = "free"
	AccessTypePaid        = "paid"
	AccessTypeCreatorPass = "creator_pass"
	AccessTypeStrmlyPass  = "strmly_pass"
)

// AccessGrant is the durable record that a user has unlocked a piece of
// paid content. It outlives the transfer that funded it and is the
// source of truth for "may this user view this content".
type AccessGrant struct {
	ID            uuid.UUID  `json:"id"`
	UserID        uuid.UUID  `json:"userId"`
	ContentID     uuid.UUID  `json:"contentId"`
	ContentType   string     `json:"contentType"`
	AccessType    string     `json:"accessType"`
	PaymentID     *uuid.UUID `json:"paymentId,omitempty"`
	PaymentAmount int64      `json:"paymentAmount"`
	GrantedAt     time.Time  `json:"grantedAt"`
	ExpiresAt     *time.Time `json:"expiresAt,omitempty"`
}

// IsExpired reports whether a time-bound grant (creator pass) has lapsed
func (g *AccessGrant) IsExpired(now time.Time) bool {
	return g.ExpiresAt != nil && now.After(*g.ExpiresAt)
}

// PaymentOption is one way to unlock content the caller cannot view yet
type PaymentOption struct {
	Type        string    `json:"type"`
	Price       int64     `json:"price"`
	Description string    `json:"description"`
	Endpoint    string    `json:"endpoint"`
	SeriesID    uuid.UUID `json:"seriesId,omitempty"`
}

// AccessDecision is the read-only answer of the access check
type AccessDecision struct {
	HasAccess      bool            `json:"hasAccess"`
	AccessType     string          `json:"accessType"`
	Video          *VideoSummary   `json:"video,omitempty"`
	PaymentOptions []PaymentOption `json:"paymentOptions,omitempty"`
	Message        string          `json:"message,omitempty"`
}
