package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"govportal/internal/audit"
	"govportal/internal/cases/models"
	"govportal/internal/cases/store"
	dErrors "govportal/pkg/domain-errors"
	"govportal/pkg/requestcontext"
)

// engine holds the lifecycle steps every case family shares.
type engine[T models.Case] struct {
	repo      *store.Repository[T]
	lifecycle models.Lifecycle
	policy    models.Policy
	options
}

func newEngine[T models.Case](repo *store.Repository[T], lifecycle models.Lifecycle, policy models.Policy, opts []Option) *engine[T] {
	if policy == "" {
		policy = models.PolicyPermissive
	}
	return &engine[T]{
		repo:      repo,
		lifecycle: lifecycle,
		policy:    policy,
		options:   newOptions(opts),
	}
}

func (e *engine[T]) family() models.Family {
	return e.lifecycle.Family()
}

func (e *engine[T]) startSpan(ctx context.Context, operation string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	attrs = append(attrs, attribute.String("case.family", string(e.family())))
	return tracer.Start(ctx, "cases."+operation, trace.WithAttributes(attrs...))
}

func fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}

// submit stamps a new case with its identity and first timeline entry and creates it.
func (e *engine[T]) submit(ctx context.Context, c T, prefix string) (T, error) {
	ctx, span := e.startSpan(ctx, "submit")
	defer span.End()
	defer e.observe(e.family(), "submit", time.Now())

	var zero T
	now := requestcontext.Now(ctx)
	trackingID, err := e.trackingIDs.Next(ctx, prefix, now)
	if err != nil {
		return zero, fail(span, dErrors.Wrap(err, dErrors.CodeInternal, "failed to allocate tracking id"))
	}

	rec := c.Base()
	rec.ApplySubmission(uuid.NewString(), trackingID, now)
	span.SetAttributes(attribute.String("case.id", rec.ID), attribute.String("case.tracking_id", trackingID))

	if err := e.repo.Create(ctx, c); err != nil {
		return zero, fail(span, storeError(err, e.family(), "save"))
	}

	e.logAudit(ctx, audit.Event{
		Action:     audit.ActionCaseSubmitted,
		Family:     string(e.family()),
		CaseID:     rec.ID,
		TrackingID: rec.TrackingID,
		UserID:     rec.UserID,
		ToStatus:   string(rec.Status),
	},
		"case_id", rec.ID,
		"tracking_id", rec.TrackingID,
		"user_id", rec.UserID,
	)
	e.incrementSubmitted(e.family())
	return c, nil
}

// Get loads a case by ID.
func (e *engine[T]) Get(ctx context.Context, id string) (T, error) {
	ctx, span := e.startSpan(ctx, "get", attribute.String("case.id", id))
	defer span.End()

	c, err := e.repo.FindByID(ctx, id)
	if err != nil {
		var zero T
		return zero, fail(span, storeError(err, e.family(), "load"))
	}
	return c, nil
}

// GetByTrackingID loads a case by its citizen-facing tracking ID.
func (e *engine[T]) GetByTrackingID(ctx context.Context, trackingID string) (T, error) {
	ctx, span := e.startSpan(ctx, "get_by_tracking_id", attribute.String("case.tracking_id", trackingID))
	defer span.End()

	c, err := e.repo.FindByTrackingID(ctx, trackingID)
	if err != nil {
		var zero T
		return zero, fail(span, storeError(err, e.family(), "load"))
	}
	return c, nil
}

// ListByUser returns the user's cases; none is an empty slice, not an error.
func (e *engine[T]) ListByUser(ctx context.Context, userID string) ([]T, error) {
	ctx, span := e.startSpan(ctx, "list_by_user")
	defer span.End()

	cases, err := e.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fail(span, storeError(err, e.family(), "list"))
	}
	return cases, nil
}

// ListAll returns every case of the family for the officer queue.
func (e *engine[T]) ListAll(ctx context.Context) ([]T, error) {
	ctx, span := e.startSpan(ctx, "list_all")
	defer span.End()

	cases, err := e.repo.ListAll(ctx)
	if err != nil {
		return nil, fail(span, storeError(err, e.family(), "list"))
	}
	return cases, nil
}

// derive applies family-specific fields after a status change and returns
// the extra document fields it touched.
type derive[T models.Case] func(c T, upd models.StatusUpdate, now time.Time) []string

// updateStatus re-reads the case, checks the transition, appends the
// timeline entry and writes the changed fields.
func (e *engine[T]) updateStatus(ctx context.Context, id string, upd models.StatusUpdate, apply derive[T]) (T, error) {
	ctx, span := e.startSpan(ctx, "update_status", attribute.String("case.id", id))
	defer span.End()
	defer e.observe(e.family(), "update_status", time.Now())

	var zero T
	status, err := models.ParseStatus(upd.Status)
	if err != nil {
		return zero, fail(span, err)
	}

	c, err := e.repo.FindByID(ctx, id)
	if err != nil {
		return zero, fail(span, storeError(err, e.family(), "load"))
	}

	rec := c.Base()
	from := rec.Status
	if err := e.lifecycle.CheckTransition(e.policy, from, status); err != nil {
		return zero, fail(span, err)
	}

	officer := upd.Officer()
	rec.ApplyStatus(status, officer, requestcontext.Now(ctx))
	fields := []string{store.FieldStatus, store.FieldUpdatedAt, store.FieldTimeline}
	if upd.OfficerName != "" {
		fields = append(fields, store.FieldAssignedOfficer)
	}
	if upd.Remarks != "" {
		rec.Remarks = upd.Remarks
		fields = append(fields, store.FieldRemarks)
	}
	if apply != nil {
		fields = append(fields, apply(c, upd, rec.UpdatedAt)...)
	}

	if err := e.repo.Save(ctx, c, fields...); err != nil {
		return zero, fail(span, storeError(err, e.family(), "update"))
	}

	e.logAudit(ctx, audit.Event{
		Action:     audit.ActionCaseStatusChanged,
		Family:     string(e.family()),
		CaseID:     rec.ID,
		TrackingID: rec.TrackingID,
		UserID:     rec.UserID,
		ActorID:    officer.ID,
		FromStatus: string(from),
		ToStatus:   string(status),
	},
		"case_id", rec.ID,
		"from_status", string(from),
		"to_status", string(status),
		"officer_id", officer.ID,
	)
	e.incrementStatusChange(e.family(), status)
	return c, nil
}
