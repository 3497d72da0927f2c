package service

import (
	"context"

	"govportal/internal/cases/models"
	"govportal/internal/cases/store"
	"govportal/internal/cases/trackingid"
	"govportal/internal/docstore"
)

// ApplicationService runs the welfare scheme application lifecycle.
type ApplicationService struct {
	*engine[*models.Application]
}

func NewApplicationService(docs docstore.Store, cfg FamilyConfig, opts ...Option) *ApplicationService {
	repo := store.NewApplicationRepository(docs, cfg.Collection)
	return &ApplicationService{engine: newEngine(repo, models.ApplicationLifecycle, cfg.Policy, opts)}
}

// Submit files a new application in status submitted.
func (s *ApplicationService) Submit(ctx context.Context, req models.ApplicationSubmission) (*models.Application, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.submit(ctx, models.NewApplication(req), trackingid.PrefixApplication)
}

// UpdateStatus moves an application. The acting officer is recorded in the timeline.
func (s *ApplicationService) UpdateStatus(ctx context.Context, id string, upd models.StatusUpdate) (*models.Application, error) {
	return s.updateStatus(ctx, id, upd, nil)
}
