package service

import (
	"context"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"govportal/internal/audit"
	"govportal/internal/cases/models"
	"govportal/internal/cases/store"
	"govportal/internal/cases/trackingid"
	"govportal/internal/docstore"
	dErrors "govportal/pkg/domain-errors"
	"govportal/pkg/requestcontext"
)

// ComplaintService runs the grievance lifecycle.
type ComplaintService struct {
	*engine[*models.Complaint]
}

func NewComplaintService(docs docstore.Store, cfg FamilyConfig, opts ...Option) *ComplaintService {
	repo := store.NewComplaintRepository(docs, cfg.Collection)
	return &ComplaintService{engine: newEngine(repo, models.ComplaintLifecycle, cfg.Policy, opts)}
}

// Submit files a new complaint in status submitted. Priority defaults to medium.
func (s *ComplaintService) Submit(ctx context.Context, req models.ComplaintSubmission) (*models.Complaint, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.submit(ctx, models.NewComplaint(req), trackingid.PrefixComplaint)
}

// UpdateStatus moves a complaint, recording a resolution when given and the
// resolution time once it is resolved or closed.
func (s *ComplaintService) UpdateStatus(ctx context.Context, id string, upd models.StatusUpdate) (*models.Complaint, error) {
	return s.updateStatus(ctx, id, upd, func(c *models.Complaint, upd models.StatusUpdate, now time.Time) []string {
		before := c.ResolvedAt
		if !c.ApplyResolution(upd.Resolution, now) {
			return nil
		}
		var fields []string
		if upd.Resolution != "" {
			fields = append(fields, store.FieldResolution)
		}
		if before == nil && c.ResolvedAt != nil {
			fields = append(fields, store.FieldResolvedAt)
		}
		return fields
	})
}

// Assign hands a complaint to an officer and forces status assigned. No
// timeline entry is written; the stored complaint is re-read and returned.
func (s *ComplaintService) Assign(ctx context.Context, id, officerID string) (*models.Complaint, error) {
	ctx, span := s.startSpan(ctx, "assign", attribute.String("case.id", id))
	defer span.End()
	defer s.observe(s.family(), "assign", time.Now())

	officerID = strings.TrimSpace(officerID)
	if officerID == "" {
		return nil, fail(span, dErrors.New(dErrors.CodeValidation, "officerId is required"))
	}

	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fail(span, storeError(err, s.family(), "load"))
	}
	from := c.Status
	if err := c.CanAssign(s.policy); err != nil {
		return nil, fail(span, err)
	}

	c.ApplyAssignment(officerID, requestcontext.Now(ctx))
	if err := s.repo.Save(ctx, c, store.FieldAssignedTo, store.FieldStatus, store.FieldUpdatedAt); err != nil {
		return nil, fail(span, storeError(err, s.family(), "assign"))
	}

	s.logAudit(ctx, audit.Event{
		Action:     audit.ActionComplaintAssigned,
		Family:     string(s.family()),
		CaseID:     c.ID,
		TrackingID: c.TrackingID,
		UserID:     c.UserID,
		ActorID:    officerID,
		FromStatus: string(from),
		ToStatus:   string(c.Status),
	},
		"case_id", c.ID,
		"officer_id", officerID,
	)
	s.incrementAssigned()

	return s.Get(ctx, id)
}
