package audit

import (
	"context"
	"log/slog"

	"govportal/pkg/platform/circuit"
)

// FallbackStore appends to primary and, once the breaker has opened,
// diverts events primary rejects to fallback. Primary is still tried on
// every append so the breaker can observe its recovery.
type FallbackStore struct {
	primary  Store
	fallback Store
	breaker  *circuit.Breaker
	logger   *slog.Logger
}

func NewFallbackStore(primary, fallback Store, breaker *circuit.Breaker, logger *slog.Logger) *FallbackStore {
	return &FallbackStore{primary: primary, fallback: fallback, breaker: breaker, logger: logger}
}

func (s *FallbackStore) Append(ctx context.Context, event Event) error {
	err := s.primary.Append(ctx, event)
	if err == nil {
		if _, change := s.breaker.RecordSuccess(); change.Closed {
			s.logger.InfoContext(ctx, "audit sink recovered", "sink", s.breaker.Name())
		}
		return nil
	}

	useFallback, change := s.breaker.RecordFailure()
	if change.Opened {
		s.logger.WarnContext(ctx, "audit sink failing, diverting to fallback",
			"sink", s.breaker.Name(),
			"error", err.Error(),
		)
	}
	if !useFallback {
		return err
	}
	return s.fallback.Append(ctx, event)
}
