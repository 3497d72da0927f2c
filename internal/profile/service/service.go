// Package service keeps citizen profiles and their derived scheme eligibility.
package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"govportal/internal/audit"
	"govportal/internal/docstore"
	"govportal/internal/eligibility"
	"govportal/internal/profile/metrics"
	"govportal/internal/profile/models"
	"govportal/internal/profile/store"
	dErrors "govportal/pkg/domain-errors"
	"govportal/pkg/platform/sentinel"
	"govportal/pkg/requestcontext"
)

var tracer = otel.Tracer("govportal/profile")

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Service creates, replaces and reads citizen profiles.
type Service struct {
	store          *store.Store
	logger         *slog.Logger
	auditPublisher AuditPublisher
	metrics        *metrics.Metrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(s *Service) {
		s.auditPublisher = publisher
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func New(docs docstore.Store, collection string, opts ...Option) *Service {
	s := &Service{
		store:  store.New(docs, collection),
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateOrUpdate writes the user's profile, keeping the ID and CreatedAt of
// an existing one, and recomputes the eligible schemes.
func (s *Service) CreateOrUpdate(ctx context.Context, req models.UpsertRequest) (*models.Profile, error) {
	ctx, span := tracer.Start(ctx, "profile.create_or_update")
	defer span.End()

	if err := req.Validate(); err != nil {
		return nil, fail(span, err)
	}
	schemes, err := eligibility.Evaluate(req.Attributes())
	if err != nil {
		return nil, fail(span, err)
	}

	now := requestcontext.Now(ctx)
	profile := models.NewProfile(req)
	profile.EligibleSchemes = schemes
	profile.UpdatedAt = now

	existing, err := s.store.FindByUserID(ctx, req.UserID)
	switch {
	case err == nil:
		profile.ID = existing.ID
		profile.CreatedAt = existing.CreatedAt
	case errors.Is(err, sentinel.ErrNotFound):
		profile.ID = uuid.NewString()
		profile.CreatedAt = now
	default:
		return nil, fail(span, storeError(err, "load"))
	}
	created := existing == nil
	span.SetAttributes(attribute.String("profile.id", profile.ID), attribute.Bool("profile.created", created))

	if err := s.store.Save(ctx, profile); err != nil {
		return nil, fail(span, storeError(err, "save"))
	}

	s.logAudit(ctx, audit.Event{Action: audit.ActionProfileSaved, UserID: profile.UserID},
		"profile_id", profile.ID,
		"user_id", profile.UserID,
		"created", created,
		"eligible_schemes", len(schemes),
	)
	if s.metrics != nil {
		s.metrics.IncrementSaved(created)
		s.metrics.ObserveSchemes(schemes)
	}
	return profile, nil
}

// GetByUserID returns the profile owned by userID.
func (s *Service) GetByUserID(ctx context.Context, userID string) (*models.Profile, error) {
	ctx, span := tracer.Start(ctx, "profile.get_by_user")
	defer span.End()

	p, err := s.store.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fail(span, storeError(err, "load"))
	}
	return p, nil
}

// Get returns the profile stored under id.
func (s *Service) Get(ctx context.Context, id string) (*models.Profile, error) {
	ctx, span := tracer.Start(ctx, "profile.get", trace.WithAttributes(attribute.String("profile.id", id)))
	defer span.End()

	p, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, fail(span, storeError(err, "load"))
	}
	return p, nil
}

func fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}

func (s *Service) logAudit(ctx context.Context, event audit.Event, attributes ...any) {
	if requestID := requestcontext.RequestID(ctx); requestID != "" {
		attributes = append(attributes, "request_id", requestID)
	}
	args := append(attributes, "event", string(event.Action), "log_type", "audit")
	s.logger.InfoContext(ctx, string(event.Action), args...)
	if s.auditPublisher == nil {
		return
	}
	if err := s.auditPublisher.Emit(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "failed to emit audit event",
			"event", string(event.Action),
			"user_id", event.UserID,
			"error", err.Error(),
		)
	}
}

func storeError(err error, action string) error {
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		return dErrors.New(dErrors.CodeNotFound, "profile not found")
	case errors.Is(err, sentinel.ErrUnavailable):
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "profile store unavailable")
	default:
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to "+action+" profile")
	}
}
