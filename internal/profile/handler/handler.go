package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"govportal/internal/profile/models"
	"govportal/pkg/platform/httputil"
	"govportal/pkg/requestcontext"
)

// Service defines the profile operations the handler needs.
type Service interface {
	CreateOrUpdate(ctx context.Context, req models.UpsertRequest) (*models.Profile, error)
	GetByUserID(ctx context.Context, userID string) (*models.Profile, error)
	Get(ctx context.Context, id string) (*models.Profile, error)
}

// Handler wires profile endpoints to the profile service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts profile endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Route("/api/profiles", func(r chi.Router) {
		r.Post("/", h.HandleUpsert)
		r.Get("/user/{userID}", h.HandleGetByUser)
		r.Get("/{id}", h.HandleGet)
	})
}

// HandleUpsert handles POST /api/profiles.
func (h *Handler) HandleUpsert(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	req, ok := httputil.DecodeAndPrepare[models.UpsertRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	profile, err := h.service.CreateOrUpdate(ctx, *req)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to save profile",
			"request_id", requestID,
			"user_id", req.UserID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "profile saved",
		"request_id", requestID,
		"user_id", profile.UserID,
		"eligible_schemes", len(profile.EligibleSchemes),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusCreated, FromProfile(profile))
}

// HandleGetByUser handles GET /api/profiles/user/{userID}.
func (h *Handler) HandleGetByUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := chi.URLParam(r, "userID")
	profile, err := h.service.GetByUserID(ctx, userID)
	if err != nil {
		h.logger.WarnContext(ctx, "failed to load profile",
			"request_id", requestcontext.RequestID(ctx),
			"user_id", userID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromProfile(profile))
}

// HandleGet handles GET /api/profiles/{id}.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")
	profile, err := h.service.Get(ctx, id)
	if err != nil {
		h.logger.WarnContext(ctx, "failed to load profile",
			"request_id", requestcontext.RequestID(ctx),
			"profile_id", id,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromProfile(profile))
}
