// Package services holds the workflow rules of the portal: the paper, payment and inquiry
// lifecycles, profiles, authentication and the dashboard read side. Services hold no state of
// their own; every record lives behind the gateway.
package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"conference-portal-api/events"
	"conference-portal-api/gateway"
	"conference-portal-api/storage"
)

// Deps are the collaborators shared by every service.
type Deps struct {
	Gateway gateway.Gateway
	Files   storage.FileStore
	Events  events.Publisher
	Logger  *slog.Logger
	Now     func() time.Time
}

type base struct {
	gw     gateway.Gateway
	files  storage.FileStore
	events events.Publisher
	log    *slog.Logger
	clock  func() time.Time
}

func newBase(d Deps) base {
	b := base{
		gw:     d.Gateway,
		files:  d.Files,
		events: d.Events,
		log:    d.Logger,
		clock:  d.Now,
	}
	if b.events == nil {
		b.events = events.Nop{}
	}
	if b.log == nil {
		b.log = slog.Default()
	}
	if b.clock == nil {
		b.clock = time.Now
	}
	return b
}

func (b base) now() time.Time {
	return b.clock().UTC()
}

// fail translates a gateway error and logs the ones the caller cannot act on.
func (b base) fail(ctx context.Context, op, entity, id string, err error) error {
	translated := translateGatewayError(op, entity, id, err)
	var gwErr *GatewayError
	if errors.As(translated, &gwErr) {
		b.log.ErrorContext(ctx, "gateway failure", "op", op, "entity", entity, "id", id, "error", err)
	}
	return translated
}

func (b base) publish(ctx context.Context, evt events.Event) {
	if evt.OccurredAt.IsZero() {
		evt.OccurredAt = b.now()
	}
	if err := b.events.Publish(persistentContext(ctx), evt); err != nil {
		b.log.WarnContext(ctx, "event publish failed", "type", evt.Type, "entity_id", evt.EntityID, "error", err)
	}
}

// discard removes a blob whose record could not be written.
func (b base) discard(ctx context.Context, storedPath string) {
	if b.files == nil || storedPath == "" {
		return
	}
	if err := b.files.Remove(persistentContext(ctx), storedPath); err != nil {
		b.log.WarnContext(ctx, "failed to remove orphaned upload", "path", storedPath, "error", err)
	}
}
