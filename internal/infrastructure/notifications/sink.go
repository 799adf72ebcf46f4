package notifications

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Event is the payload published after a transfer commits. Delivery is
// best effort; a lost event never affects wallet state.
type Event struct {
	Type           string     `json:"type"`
	TransferID     uuid.UUID  `json:"transferId"`
	SenderID       uuid.UUID  `json:"senderId"`
	ReceiverID     uuid.UUID  `json:"receiverId"`
	Amount         int64      `json:"amount"`
	CreatorAmount  int64      `json:"creatorAmount"`
	PlatformAmount int64      `json:"platformAmount"`
	ContentID      *uuid.UUID `json:"contentId,omitempty"`
	ContentType    string     `json:"contentType,omitempty"`
	Message        string     `json:"message,omitempty"`
	OccurredAt     time.Time  `json:"occurredAt"`
}

// Sink receives transfer events after commit
type Sink interface {
	Publish(ctx context.Context, event Event) error
}

// NoopSink drops every event. Used when no broker is configured and in
// tests.
type NoopSink struct{}

func (NoopSink) Publish(ctx context.Context, event Event) error { return nil }
