package matching

import (
	"errors"
	"log/slog"
	"net/http"

	"internship-service/internal/httputil"
	"internship-service/internal/identity"
	"internship-service/internal/profile"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	service *Service
	logger  *slog.Logger
}

func NewHandler(service *Service, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

func (h *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/matches", h.GetMatches)
}

func (h *Handler) GetMatches(w http.ResponseWriter, r *http.Request) {
	caller, ok := identity.FromContext(r.Context())
	if !ok {
		httputil.RespondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	matches, err := h.service.ForStudent(r.Context(), caller.ProfileID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotStudent):
			httputil.RespondWithError(w, http.StatusForbidden, err.Error())
		case errors.Is(err, profile.ErrProfileNotFound):
			httputil.RespondWithError(w, http.StatusNotFound, "Profile not found")
		default:
			h.logger.ErrorContext(r.Context(), "failed to rank internships", "error", err)
			httputil.RespondWithError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	h.logger.InfoContext(r.Context(), "ranked internships", "student_id", caller.ProfileID, "count", len(matches))
	httputil.RespondWithJSON(w, http.StatusOK, matches)
}
