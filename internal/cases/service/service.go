// Package service runs the case lifecycles: submission, officer status
// updates, complaint assignment and the officer dashboard.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"

	"govportal/internal/audit"
	"govportal/internal/cases/metrics"
	"govportal/internal/cases/models"
	"govportal/internal/cases/trackingid"
	dErrors "govportal/pkg/domain-errors"
	"govportal/pkg/platform/sentinel"
	"govportal/pkg/requestcontext"
)

var tracer = otel.Tracer("govportal/cases")

// FamilyConfig is the per-family wiring of a case service.
type FamilyConfig struct {
	Collection string
	Policy     models.Policy
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

type options struct {
	logger         *slog.Logger
	auditPublisher AuditPublisher
	metrics        *metrics.Metrics
	trackingIDs    *trackingid.Generator
}

type Option func(o *options)

func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(o *options) {
		o.auditPublisher = publisher
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(o *options) {
		o.metrics = m
	}
}

// WithTrackingIDs replaces the default generator, which formats without reserving.
func WithTrackingIDs(g *trackingid.Generator) Option {
	return func(o *options) {
		o.trackingIDs = g
	}
}

func newOptions(opts []Option) options {
	o := options{
		logger:      slog.New(slog.DiscardHandler),
		trackingIDs: trackingid.NewGenerator(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func (o *options) logAudit(ctx context.Context, event audit.Event, attributes ...any) {
	if requestID := requestcontext.RequestID(ctx); requestID != "" {
		attributes = append(attributes, "request_id", requestID)
	}
	args := append(attributes, "event", string(event.Action), "log_type", "audit")
	o.logger.InfoContext(ctx, string(event.Action), args...)
	if o.auditPublisher == nil {
		return
	}
	if err := o.auditPublisher.Emit(ctx, event); err != nil {
		o.logger.WarnContext(ctx, "failed to emit audit event",
			"event", string(event.Action),
			"case_id", event.CaseID,
			"error", err.Error(),
		)
	}
}

func (o *options) incrementSubmitted(family models.Family) {
	if o.metrics != nil {
		o.metrics.IncrementSubmitted(string(family))
	}
}

func (o *options) incrementStatusChange(family models.Family, status models.Status) {
	if o.metrics != nil {
		o.metrics.IncrementStatusChange(string(family), string(status))
	}
}

func (o *options) incrementAssigned() {
	if o.metrics != nil {
		o.metrics.IncrementAssigned()
	}
}

func (o *options) observe(family models.Family, operation string, start time.Time) {
	if o.metrics != nil {
		o.metrics.ObserveOperation(string(family), operation, start)
	}
}

// storeError translates store sentinels into domain errors for family.
func storeError(err error, family models.Family, action string) error {
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		return dErrors.New(dErrors.CodeNotFound, family.Label()+" not found")
	case errors.Is(err, sentinel.ErrConflict):
		return dErrors.New(dErrors.CodeConflict, family.Label()+" already exists")
	case errors.Is(err, sentinel.ErrUnavailable):
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "case store unavailable")
	default:
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to "+action+" "+family.Label())
	}
}
