package audit

import (
	"context"

	"govportal/pkg/requestcontext"
)

// Publisher captures structured audit events. It is append-only and writes
// through a Store so tests and deployments can swap sinks.
type Publisher struct {
	store Store
}

func NewPublisher(store Store) *Publisher {
	return &Publisher{store: store}
}

// Emit stamps the event with the request time and correlation ID when they
// are missing, then appends it.
func (p *Publisher) Emit(ctx context.Context, base Event) error {
	if base.Timestamp.IsZero() {
		base.Timestamp = requestcontext.Now(ctx)
	}
	if base.RequestID == "" {
		base.RequestID = requestcontext.RequestID(ctx)
	}
	return p.store.Append(ctx, base)
}
