package audit

import (
	"context"
	"errors"
	"sync"
)

// ErrOutboxFull is returned by ChannelStore when the worker has fallen behind
// and the event was dropped.
var ErrOutboxFull = errors.New("audit outbox full, event dropped")

// Store appends audit events to a sink.
type Store interface {
	Append(ctx context.Context, event Event) error
}

// InMemoryStore keeps events in process memory. With a limit set it keeps
// only the most recent limit events.
type InMemoryStore struct {
	mu     sync.RWMutex
	events []Event
	limit  int
}

// MemoryOption configures an InMemoryStore.
type MemoryOption func(*InMemoryStore)

// WithLimit caps the number of retained events. Zero or less keeps everything.
func WithLimit(n int) MemoryOption {
	return func(s *InMemoryStore) {
		s.limit = n
	}
}

func NewInMemoryStore(opts ...MemoryOption) *InMemoryStore {
	s := &InMemoryStore{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *InMemoryStore) Append(_ context.Context, event Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	// Compact once the backlog reaches twice the limit.
	if s.limit > 0 && len(s.events) >= 2*s.limit {
		s.events = append([]Event(nil), s.recent()...)
	}
	return nil
}

// recent returns the retained window. Callers hold the lock.
func (s *InMemoryStore) recent() []Event {
	if s.limit > 0 && len(s.events) > s.limit {
		return s.events[len(s.events)-s.limit:]
	}
	return s.events
}

// ListByCase returns the events recorded for caseID, oldest first.
func (s *InMemoryStore) ListByCase(_ context.Context, caseID string) ([]Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Event, 0)
	for _, e := range s.recent() {
		if e.CaseID == caseID {
			out = append(out, e)
		}
	}
	return out, nil
}

// ListAll returns every recorded event, oldest first.
func (s *InMemoryStore) ListAll(_ context.Context) ([]Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Event(nil), s.recent()...), nil
}

// ChannelStore hands events to a Worker through a buffered channel. Append
// never blocks: when the buffer is full the event is dropped.
type ChannelStore struct {
	outbox chan<- Event
}

func NewChannelStore(outbox chan<- Event) *ChannelStore {
	return &ChannelStore{outbox: outbox}
}

func (s *ChannelStore) Append(ctx context.Context, event Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	select {
	case s.outbox <- event:
		return nil
	default:
		return ErrOutboxFull
	}
}
