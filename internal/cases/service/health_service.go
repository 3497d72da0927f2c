package service

import (
	"context"
	"time"

	"govportal/internal/cases/models"
	"govportal/internal/cases/store"
	"govportal/internal/cases/trackingid"
	"govportal/internal/docstore"
)

// HealthService runs the health document request lifecycle.
type HealthService struct {
	*engine[*models.HealthService]
}

func NewHealthService(docs docstore.Store, cfg FamilyConfig, opts ...Option) *HealthService {
	repo := store.NewHealthServiceRepository(docs, cfg.Collection)
	return &HealthService{engine: newEngine(repo, models.HealthServiceLifecycle, cfg.Policy, opts)}
}

// Submit files a new request. The tracking prefix follows the service type.
func (s *HealthService) Submit(ctx context.Context, req models.HealthServiceSubmission) (*models.HealthService, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.submit(ctx, models.NewHealthService(req), trackingid.HealthPrefix(req.ServiceType))
}

// UpdateStatus moves a request, recording a certificate number when given
// and the issue time once it is issued.
func (s *HealthService) UpdateStatus(ctx context.Context, id string, upd models.StatusUpdate) (*models.HealthService, error) {
	return s.updateStatus(ctx, id, upd, func(h *models.HealthService, upd models.StatusUpdate, now time.Time) []string {
		before := h.IssuedAt
		if !h.ApplyCertificate(upd.CertificateNumber, now) {
			return nil
		}
		var fields []string
		if upd.CertificateNumber != "" {
			fields = append(fields, store.FieldCertificateNumber)
		}
		if before == nil && h.IssuedAt != nil {
			fields = append(fields, store.FieldIssuedAt)
		}
		return fields
	})
}
