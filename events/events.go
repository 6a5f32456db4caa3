// Package events carries lifecycle notifications out of the services: an in-process bus that
// UI streams subscribe to, and a Kafka publisher for downstream consumers.
package events

import (
	"context"
	"time"
)

// Event types published by the lifecycle services. Kafka topics use the same names.
const (
	PaperSubmitted       = "paper.submitted"
	PaperReviewed        = "paper.reviewed"
	PaymentRecorded      = "payment.recorded"
	PaymentStatusChanged = "payment.status_changed"
	MessageReceived      = "message.received"
	MessageRead          = "message.read"
	MessageResponded     = "message.responded"
	MessageRemoved       = "message.removed"
	ProfileUpdated       = "profile.updated"
)

// Event describes a committed change to one entity.
type Event struct {
	Type       string         `json:"type"`
	EntityID   string         `json:"entity_id"`
	ActorID    string         `json:"actor_id,omitempty"`
	OccurredAt time.Time      `json:"occurred_at"`
	Payload    map[string]any `json:"payload,omitempty"`
}

// Publisher delivers events. Implementations must be safe for concurrent use.
type Publisher interface {
	Publish(ctx context.Context, evt Event) error
}

// Nop discards every event.
type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }

// Fanout publishes to every publisher and reports the first failure after trying all of them.
type Fanout []Publisher

func (f Fanout) Publish(ctx context.Context, evt Event) error {
	var first error
	for _, p := range f {
		if p == nil {
			continue
		}
		if err := p.Publish(ctx, evt); err != nil && first == nil {
			first = err
		}
	}
	return first
}
