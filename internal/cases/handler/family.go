package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"govportal/internal/cases/models"
	"govportal/pkg/platform/httputil"
	"govportal/pkg/requestcontext"
)

// family serves the endpoints every case family shares. R is the
// submission body and PR its pointer, which validates itself.
type family[T models.Case, R any, PR interface {
	*R
	httputil.Validatable
}] struct {
	name    models.Family
	service CaseService[T, R]
	respond func(T) any
	logger  *slog.Logger
}

func newFamily[T models.Case, R any, PR interface {
	*R
	httputil.Validatable
}](name models.Family, svc CaseService[T, R], respond func(T) any, logger *slog.Logger) *family[T, R, PR] {
	return &family[T, R, PR]{name: name, service: svc, respond: respond, logger: logger}
}

func (f *family[T, R, PR]) register(r chi.Router) {
	r.Post("/", f.handleSubmit)
	r.Get("/{id}", f.handleGet)
	r.Get("/track/{trackingID}", f.handleTrack)
	r.Get("/user/{userID}", f.handleListByUser)
	r.Put("/{id}/status", f.handleUpdateStatus)
}

func (f *family[T, R, PR]) handleSubmit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[R, PR](w, r, f.logger, ctx, requestID)
	if !ok {
		return
	}

	c, err := f.service.Submit(ctx, *req)
	if err != nil {
		f.logger.ErrorContext(ctx, "failed to submit case",
			"request_id", requestID,
			"family", string(f.name),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	f.logger.InfoContext(ctx, "case submitted",
		"request_id", requestID,
		"family", string(f.name),
		"case_id", c.Base().ID,
		"tracking_id", c.Base().TrackingID,
	)
	httputil.WriteJSON(w, http.StatusCreated, f.respond(c))
}

func (f *family[T, R, PR]) handleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")
	c, err := f.service.Get(ctx, id)
	if err != nil {
		f.writeError(w, r, "failed to load case", err, "case_id", id)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, f.respond(c))
}

func (f *family[T, R, PR]) handleTrack(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	trackingID := chi.URLParam(r, "trackingID")
	c, err := f.service.GetByTrackingID(ctx, trackingID)
	if err != nil {
		f.writeError(w, r, "failed to track case", err, "tracking_id", trackingID)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, f.respond(c))
}

func (f *family[T, R, PR]) handleListByUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	cases, err := f.service.ListByUser(r.Context(), userID)
	if err != nil {
		f.writeError(w, r, "failed to list user cases", err, "user_id", userID)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, f.respondAll(cases))
}

func (f *family[T, R, PR]) handleListAll(w http.ResponseWriter, r *http.Request) {
	cases, err := f.service.ListAll(r.Context())
	if err != nil {
		f.writeError(w, r, "failed to list cases", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, f.respondAll(cases))
}

func (f *family[T, R, PR]) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	id := chi.URLParam(r, "id")

	req, ok := httputil.DecodeAndPrepare[models.StatusUpdate](w, r, f.logger, ctx, requestID)
	if !ok {
		return
	}

	c, err := f.service.UpdateStatus(ctx, id, *req)
	if err != nil {
		f.writeError(w, r, "failed to update case status", err, "case_id", id, "status", req.Status)
		return
	}

	f.logger.InfoContext(ctx, "case status updated",
		"request_id", requestID,
		"family", string(f.name),
		"case_id", id,
		"status", c.Base().Status.String(),
		"officer_id", req.OfficerID,
	)
	httputil.WriteJSON(w, http.StatusOK, f.respond(c))
}

func (f *family[T, R, PR]) respondAll(cases []T) []any {
	out := make([]any, 0, len(cases))
	for _, c := range cases {
		out = append(out, f.respond(c))
	}
	return out
}

func (f *family[T, R, PR]) writeError(w http.ResponseWriter, r *http.Request, msg string, err error, attrs ...any) {
	ctx := r.Context()
	args := append([]any{
		"request_id", requestcontext.RequestID(ctx),
		"family", string(f.name),
	}, attrs...)
	args = append(args, "error", err)
	f.logger.ErrorContext(ctx, msg, args...)
	httputil.WriteError(w, err)
}
