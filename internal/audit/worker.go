package audit

import (
	"context"
	"log/slog"
	"time"
)

const (
	drainTimeout         = 5 * time.Second
	defaultAppendTimeout = 10 * time.Second
)

// Worker drains events from a channel into a Store. A failed append is
// logged and dropped; audit delivery is best-effort.
type Worker struct {
	store         Store
	inbox         <-chan Event
	logger        *slog.Logger
	appendTimeout time.Duration
}

// WorkerOption configures a Worker.
type WorkerOption func(*Worker)

// WithAppendTimeout bounds each call to the downstream store.
func WithAppendTimeout(d time.Duration) WorkerOption {
	return func(w *Worker) {
		if d > 0 {
			w.appendTimeout = d
		}
	}
}

func NewWorker(store Store, inbox <-chan Event, logger *slog.Logger, opts ...WorkerOption) *Worker {
	w := &Worker{store: store, inbox: inbox, logger: logger, appendTimeout: defaultAppendTimeout}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run consumes until ctx is cancelled or the inbox is closed, then flushes
// whatever is still buffered.
func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			w.drain()
			return ctx.Err()
		case event, ok := <-w.inbox:
			if !ok {
				return nil
			}
			w.append(ctx, event)
		}
	}
}

func (w *Worker) drain() {
	ctx, cancel := context.WithTimeout(context.Background(), drainTimeout)
	defer cancel()
	for {
		select {
		case event, ok := <-w.inbox:
			if !ok {
				return
			}
			w.append(ctx, event)
		default:
			return
		}
	}
}

func (w *Worker) append(ctx context.Context, event Event) {
	ctx, cancel := context.WithTimeout(ctx, w.appendTimeout)
	defer cancel()
	if err := w.store.Append(ctx, event); err != nil {
		w.logger.WarnContext(ctx, "failed to append audit event",
			"action", string(event.Action),
			"case_id", event.CaseID,
			"error", err.Error(),
		)
	}
}
