package application

import (
	"errors"
	"log/slog"
	"net/http"

	"internship-service/internal/httputil"
	"internship-service/internal/identity"
	"internship-service/internal/internship"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	service Service
	logger  *slog.Logger
}

func NewHandler(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

func (h *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/applications", h.ListOwn)
	router.Get("/internships/{id}/applications", h.ListForInternship)
}

func (h *Handler) ListOwn(w http.ResponseWriter, r *http.Request) {
	caller, ok := identity.FromContext(r.Context())
	if !ok {
		httputil.RespondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	if !caller.IsStudent() {
		httputil.RespondWithError(w, http.StatusForbidden, "student role required")
		return
	}

	apps, err := h.service.ListForStudent(r.Context(), caller.ProfileID)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	httputil.RespondWithJSON(w, http.StatusOK, apps)
}

func (h *Handler) ListForInternship(w http.ResponseWriter, r *http.Request) {
	caller, ok := identity.FromContext(r.Context())
	if !ok {
		httputil.RespondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	if !caller.IsEmployer() {
		httputil.RespondWithError(w, http.StatusForbidden, "employer role required")
		return
	}
	id, ok := httputil.IDParam(r, "id")
	if !ok {
		httputil.RespondWithError(w, http.StatusBadRequest, "Invalid internship ID")
		return
	}

	apps, err := h.service.ListForInternship(r.Context(), caller.ProfileID, id)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	httputil.RespondWithJSON(w, http.StatusOK, apps)
}

func (h *Handler) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, internship.ErrInternshipNotFound):
		httputil.RespondWithError(w, http.StatusNotFound, "Internship not found")
	case errors.Is(err, internship.ErrForbidden):
		httputil.RespondWithError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, ErrInvalidInput), errors.Is(err, internship.ErrInvalidInput):
		httputil.RespondWithError(w, http.StatusBadRequest, err.Error())
	default:
		h.logger.ErrorContext(r.Context(), "internal error", "error", err)
		httputil.RespondWithError(w, http.StatusInternalServerError, "internal server error")
	}
}
