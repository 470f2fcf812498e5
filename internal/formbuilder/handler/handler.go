package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"formbuilder/internal/formbuilder/models"
	"formbuilder/internal/formbuilder/service"
	id "formbuilder/pkg/domain"
	dErrors "formbuilder/pkg/domain-errors"
	"formbuilder/pkg/platform/httputil"
)

const defaultIncidentLimit = 50

// Service is the submission surface the handler exposes.
type Service interface {
	Forms() []models.FormConfig
	Submit(ctx context.Context, formID string, fields map[string]any) (*service.Submission, error)
	Run(ctx context.Context, submissionID id.SubmissionID) (*models.Run, error)
	Incidents(ctx context.Context, limit int) ([]models.Run, error)
}

type Handler struct {
	svc    Service
	logger *slog.Logger
}

func New(svc Service, logger *slog.Logger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

// Register mounts the form routes on r.
func (h *Handler) Register(r chi.Router) {
	r.Get("/forms", h.handleListForms)
	r.Post("/forms/{formID}/submissions", h.handleSubmit)
}

// RegisterOperator mounts the run inspection routes used by administrators.
func (h *Handler) RegisterOperator(r chi.Router) {
	r.Get("/submissions/{submissionID}", h.handleGetSubmission)
	r.Get("/incidents", h.handleListIncidents)
}

func (h *Handler) handleListForms(w http.ResponseWriter, _ *http.Request) {
	forms := h.svc.Forms()
	out := make([]formResponse, 0, len(forms))
	for _, f := range forms {
		out = append(out, toFormResponse(f))
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"forms": out})
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	fields := map[string]any{}
	if r.ContentLength != 0 {
		if err := httputil.DecodeJSON(r, &fields); err != nil {
			httputil.WriteError(w, err)
			return
		}
	}

	sub, err := h.svc.Submit(ctx, chi.URLParam(r, "formID"), fields)
	if sub == nil {
		httputil.WriteError(w, err)
		return
	}

	resp := toSubmissionResponse(sub)
	if err == nil {
		httputil.WriteJSON(w, http.StatusCreated, resp)
		return
	}

	code := dErrors.CodeOf(err)
	resp.Reason = string(code)
	if httputil.Exposes(code) {
		resp.ReasonDescription = err.Error()
	}
	if h.logger != nil {
		h.logger.WarnContext(ctx, "submission failed",
			"submission_id", sub.ID,
			"failed_step", sub.FailedStep,
			"code", code,
		)
	}
	httputil.WriteJSON(w, httputil.StatusFor(code), resp)
}

func (h *Handler) handleGetSubmission(w http.ResponseWriter, r *http.Request) {
	submissionID, err := id.ParseSubmissionID(chi.URLParam(r, "submissionID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	run, err := h.svc.Run(r.Context(), submissionID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, run)
}

func (h *Handler) handleListIncidents(w http.ResponseWriter, r *http.Request) {
	limit := defaultIncidentLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "limit must be a positive integer"))
			return
		}
		limit = n
	}
	runs, err := h.svc.Incidents(r.Context(), limit)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if runs == nil {
		runs = []models.Run{}
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"incidents": runs})
}
