// Package handler exposes the case lifecycles over HTTP: citizen submission
// and tracking, and the officer console.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"govportal/internal/cases/models"
	"govportal/internal/cases/service"
	"govportal/pkg/platform/httputil"
	"govportal/pkg/requestcontext"
)

// CaseService is the lifecycle of one case family as the handlers use it.
type CaseService[T models.Case, R any] interface {
	Submit(ctx context.Context, req R) (T, error)
	Get(ctx context.Context, id string) (T, error)
	GetByTrackingID(ctx context.Context, trackingID string) (T, error)
	ListByUser(ctx context.Context, userID string) ([]T, error)
	ListAll(ctx context.Context) ([]T, error)
	UpdateStatus(ctx context.Context, id string, upd models.StatusUpdate) (T, error)
}

type ApplicationService = CaseService[*models.Application, models.ApplicationSubmission]

type HealthService = CaseService[*models.HealthService, models.HealthServiceSubmission]

type ComplaintService interface {
	CaseService[*models.Complaint, models.ComplaintSubmission]
	Assign(ctx context.Context, id, officerID string) (*models.Complaint, error)
}

type Dashboard interface {
	Stats(ctx context.Context) (*service.DashboardStats, error)
}

// Handler wires the case endpoints to the family services.
type Handler struct {
	applications *family[*models.Application, models.ApplicationSubmission, *models.ApplicationSubmission]
	complaints   *family[*models.Complaint, models.ComplaintSubmission, *models.ComplaintSubmission]
	health       *family[*models.HealthService, models.HealthServiceSubmission, *models.HealthServiceSubmission]
	assigner     ComplaintService
	dashboard    Dashboard
	logger       *slog.Logger
}

func New(
	applications ApplicationService,
	complaints ComplaintService,
	health HealthService,
	dashboard Dashboard,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		applications: newFamily[*models.Application, models.ApplicationSubmission, *models.ApplicationSubmission](
			models.FamilyApplication, applications, func(a *models.Application) any { return FromApplication(a) }, logger),
		complaints: newFamily[*models.Complaint, models.ComplaintSubmission, *models.ComplaintSubmission](
			models.FamilyComplaint, complaints, func(c *models.Complaint) any { return FromComplaint(c) }, logger),
		health: newFamily[*models.HealthService, models.HealthServiceSubmission, *models.HealthServiceSubmission](
			models.FamilyHealthService, health, func(h *models.HealthService) any { return FromHealthService(h) }, logger),
		assigner:  complaints,
		dashboard: dashboard,
		logger:    logger,
	}
}

// Register mounts the citizen and officer case endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Route("/api/applications", h.applications.register)
	r.Route("/api/complaints", func(r chi.Router) {
		h.complaints.register(r)
		r.Put("/{id}/assign", h.HandleAssign)
	})
	r.Route("/api/health-services", h.health.register)

	r.Route("/api/officer", func(r chi.Router) {
		r.Get("/dashboard/stats", h.HandleDashboardStats)
		r.Get("/applications", h.applications.handleListAll)
		r.Put("/applications/{id}/status", h.applications.handleUpdateStatus)
		r.Get("/complaints", h.complaints.handleListAll)
		r.Put("/complaints/{id}/status", h.complaints.handleUpdateStatus)
		r.Put("/complaints/{id}/assign", h.HandleAssign)
		r.Get("/health-services", h.health.handleListAll)
		r.Put("/health-services/{id}/status", h.health.handleUpdateStatus)
	})
}

// HandleAssign handles PUT /api/complaints/{id}/assign.
func (h *Handler) HandleAssign(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	id := chi.URLParam(r, "id")

	req, ok := httputil.DecodeAndPrepare[models.Assignment](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	c, err := h.assigner.Assign(ctx, id, req.OfficerID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to assign complaint",
			"request_id", requestID,
			"case_id", id,
			"officer_id", req.OfficerID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromComplaint(c))
}

// HandleDashboardStats handles GET /api/officer/dashboard/stats.
func (h *Handler) HandleDashboardStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	stats, err := h.dashboard.Stats(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to compute dashboard stats",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromDashboardStats(stats))
}
