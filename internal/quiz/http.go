package quiz

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"internship-service/internal/application"
	"internship-service/internal/httputil"
	"internship-service/internal/identity"
	"internship-service/internal/internship"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

// PresentedQuestion is what the student sees: no expected answer, no notes.
type PresentedQuestion struct {
	ID   string `json:"id"`
	Kind Kind   `json:"kind"`
	Text string `json:"text"`
}

type QuizResponse struct {
	Token        string              `json:"token"`
	InternshipID int                 `json:"internshipId"`
	ExpiresAt    time.Time           `json:"expiresAt"`
	Questions    []PresentedQuestion `json:"questions"`
}

type SubmitRequest struct {
	Answers map[string]Answer `json:"answers" validate:"required,dive,keys,required,endkeys,oneof=yes no"`
}

type Handler struct {
	service  *Service
	validate *validator.Validate
	logger   *slog.Logger
	limit    func(http.Handler) http.Handler
}

// NewHandler wires the quiz routes; limit may be nil to disable rate limiting.
func NewHandler(service *Service, limit func(http.Handler) http.Handler, logger *slog.Logger) *Handler {
	if limit == nil {
		limit = func(next http.Handler) http.Handler { return next }
	}
	return &Handler{
		service:  service,
		validate: validator.New(),
		logger:   logger,
		limit:    limit,
	}
}

func (h *Handler) RegisterRoutes(router chi.Router) {
	router.With(h.limit).Post("/internships/{id}/quiz", h.GenerateQuiz)
	router.With(h.limit).Post("/quiz/{token}/submit", h.SubmitQuiz)
}

func (h *Handler) GenerateQuiz(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.student(w, r)
	if !ok {
		return
	}
	id, ok := httputil.IDParam(r, "id")
	if !ok {
		httputil.RespondWithError(w, http.StatusBadRequest, "Invalid internship ID")
		return
	}

	attempt, err := h.service.Generate(r.Context(), id, caller.ProfileID)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	resp := QuizResponse{
		Token:        attempt.Token,
		InternshipID: attempt.InternshipID,
		ExpiresAt:    attempt.ExpiresAt,
		Questions:    make([]PresentedQuestion, len(attempt.Questions)),
	}
	for i, q := range attempt.Questions {
		resp.Questions[i] = PresentedQuestion{ID: q.ID, Kind: q.Kind, Text: q.Text}
	}

	httputil.RespondWithJSON(w, http.StatusCreated, resp)
}

func (h *Handler) SubmitQuiz(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.student(w, r)
	if !ok {
		return
	}
	token := chi.URLParam(r, "token")

	var req SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondWithError(w, http.StatusBadRequest, "Invalid request")
		return
	}
	for k, v := range req.Answers {
		req.Answers[k] = Answer(strings.ToLower(strings.TrimSpace(string(v))))
	}
	if err := h.validate.Struct(&req); err != nil {
		httputil.RespondWithError(w, http.StatusBadRequest, "answers must be yes or no")
		return
	}

	submission, err := h.service.Submit(r.Context(), token, caller.ProfileID, req.Answers)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	status := http.StatusOK
	if submission.Application != nil {
		status = http.StatusCreated
	}
	httputil.RespondWithJSON(w, status, submission)
}

func (h *Handler) student(w http.ResponseWriter, r *http.Request) (identity.Caller, bool) {
	caller, ok := identity.FromContext(r.Context())
	if !ok {
		httputil.RespondWithError(w, http.StatusUnauthorized, "unauthorized")
		return identity.Caller{}, false
	}
	if !caller.IsStudent() {
		httputil.RespondWithError(w, http.StatusForbidden, "student role required")
		return identity.Caller{}, false
	}
	return caller, true
}

func (h *Handler) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, internship.ErrInternshipNotFound):
		httputil.RespondWithError(w, http.StatusNotFound, "Internship not found")
	case errors.Is(err, ErrAttemptNotFound), errors.Is(err, application.ErrStudentNotFound):
		httputil.RespondWithError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, application.ErrAlreadyApplied):
		httputil.RespondWithError(w, http.StatusConflict, err.Error())
	case errors.Is(err, ErrInsufficientQuestions):
		httputil.RespondWithError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, internship.ErrInvalidInput):
		httputil.RespondWithError(w, http.StatusBadRequest, err.Error())
	default:
		h.logger.ErrorContext(r.Context(), "internal error", "error", err)
		httputil.RespondWithError(w, http.StatusInternalServerError, "internal server error")
	}
}
