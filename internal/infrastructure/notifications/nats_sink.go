package notifications

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"
)

// SubjectPrefix is the root of the wallet event subject hierarchy.
// Events publish to "<prefix>.<event type>", e.g. wallet.events.video_gift.
const SubjectPrefix = "wallet.events"

// NATSSink publishes transfer events to a NATS subject per event type
type NATSSink struct {
	nc *nats.Conn
}

// NewNATSSink creates a sink over an established NATS connection
func NewNATSSink(nc *nats.Conn) *NATSSink {
	return &NATSSink{nc: nc}
}

// Publish serializes the event and fires it at its subject
func (s *NATSSink) Publish(ctx context.Context, event Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	subject := fmt.Sprintf("%s.%s", SubjectPrefix, event.Type)
	if err := s.nc.Publish(subject, data); err != nil {
		return fmt.Errorf("failed to publish %s: %w", subject, err)
	}
	return nil
}

// Connect dials NATS. An empty URL means notifications are disabled and
// the caller should fall back to NoopSink.
func Connect(url string) (*nats.Conn, error) {
	if url == "" {
		return nil, nil
	}
	return nats.Connect(url)
}
