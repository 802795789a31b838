package internship

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"internship-service/internal/httputil"
	"internship-service/internal/identity"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

type Handler struct {
	service  Service
	validate *validator.Validate
	logger   *slog.Logger
}

func NewHandler(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		service:  service,
		validate: validator.New(),
		logger:   logger,
	}
}

func (h *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/internships", h.ListInternships)
	router.Post("/internships", h.CreateInternship)
	router.Get("/internships/mine", h.ListOwn)
	router.Get("/internships/{id}", h.GetInternship)
	router.Put("/internships/{id}", h.UpdateInternship)
	router.Delete("/internships/{id}", h.DeleteInternship)
	router.Get("/internships/{id}/questions", h.ListQuestions)
	router.Put("/internships/{id}/questions", h.SaveQuestions)
}

func (h *Handler) ListInternships(w http.ResponseWriter, r *http.Request) {
	internships, err := h.service.ListInternships(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	httputil.RespondWithJSON(w, http.StatusOK, internships)
}

func (h *Handler) ListOwn(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.employer(w, r)
	if !ok {
		return
	}

	internships, err := h.service.ListOwn(r.Context(), caller.ProfileID)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	httputil.RespondWithJSON(w, http.StatusOK, internships)
}

func (h *Handler) GetInternship(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.IDParam(r, "id")
	if !ok {
		httputil.RespondWithError(w, http.StatusBadRequest, "Invalid internship ID")
		return
	}

	internship, err := h.service.GetInternship(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	httputil.RespondWithJSON(w, http.StatusOK, internship)
}

func (h *Handler) CreateInternship(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.employer(w, r)
	if !ok {
		return
	}

	var req InternshipRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || h.validate.Struct(&req) != nil {
		httputil.RespondWithError(w, http.StatusBadRequest, "Invalid request")
		return
	}

	h.logger.InfoContext(r.Context(), "creating internship", "employer_id", caller.ProfileID, "title", req.Title)
	internship, err := h.service.CreateInternship(r.Context(), caller.ProfileID, req)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	httputil.RespondWithJSON(w, http.StatusCreated, internship)
}

func (h *Handler) UpdateInternship(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.employer(w, r)
	if !ok {
		return
	}
	id, ok := httputil.IDParam(r, "id")
	if !ok {
		httputil.RespondWithError(w, http.StatusBadRequest, "Invalid internship ID")
		return
	}

	var req InternshipRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || h.validate.Struct(&req) != nil {
		httputil.RespondWithError(w, http.StatusBadRequest, "Invalid request")
		return
	}

	h.logger.InfoContext(r.Context(), "updating internship", "internship_id", id, "employer_id", caller.ProfileID)
	internship, err := h.service.UpdateInternship(r.Context(), caller.ProfileID, id, req)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	httputil.RespondWithJSON(w, http.StatusOK, internship)
}

func (h *Handler) DeleteInternship(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.employer(w, r)
	if !ok {
		return
	}
	id, ok := httputil.IDParam(r, "id")
	if !ok {
		httputil.RespondWithError(w, http.StatusBadRequest, "Invalid internship ID")
		return
	}

	h.logger.InfoContext(r.Context(), "deleting internship", "internship_id", id, "employer_id", caller.ProfileID)
	if err := h.service.DeleteInternship(r.Context(), caller.ProfileID, id); err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ListQuestions(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.employer(w, r)
	if !ok {
		return
	}
	id, ok := httputil.IDParam(r, "id")
	if !ok {
		httputil.RespondWithError(w, http.StatusBadRequest, "Invalid internship ID")
		return
	}

	questions, err := h.service.ListQuestions(r.Context(), caller.ProfileID, id)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	httputil.RespondWithJSON(w, http.StatusOK, questions)
}

// SaveQuestions replaces the internship's technical questions with the submitted set.
func (h *Handler) SaveQuestions(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.employer(w, r)
	if !ok {
		return
	}
	id, ok := httputil.IDParam(r, "id")
	if !ok {
		httputil.RespondWithError(w, http.StatusBadRequest, "Invalid internship ID")
		return
	}

	var req QuestionsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || h.validate.Struct(&req) != nil {
		httputil.RespondWithError(w, http.StatusBadRequest, "Invalid request")
		return
	}

	h.logger.InfoContext(r.Context(), "saving technical questions", "internship_id", id, "count", len(req.Questions))
	questions, err := h.service.SaveQuestions(r.Context(), caller.ProfileID, id, req)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	httputil.RespondWithJSON(w, http.StatusOK, questions)
}

func (h *Handler) employer(w http.ResponseWriter, r *http.Request) (identity.Caller, bool) {
	caller, ok := identity.FromContext(r.Context())
	if !ok {
		httputil.RespondWithError(w, http.StatusUnauthorized, "unauthorized")
		return identity.Caller{}, false
	}
	if !caller.IsEmployer() {
		httputil.RespondWithError(w, http.StatusForbidden, "employer role required")
		return identity.Caller{}, false
	}
	return caller, true
}

func (h *Handler) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrInternshipNotFound):
		httputil.RespondWithError(w, http.StatusNotFound, "Internship not found")
	case errors.Is(err, ErrForbidden):
		httputil.RespondWithError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, ErrInvalidInput):
		httputil.RespondWithError(w, http.StatusBadRequest, err.Error())
	default:
		h.logger.ErrorContext(r.Context(), "internal error", "error", err)
		httputil.RespondWithError(w, http.StatusInternalServerError, "internal server error")
	}
}
