package internship

import (
	"context"
	"errors"
	"strings"

	"internship-service/internal/metrics"
	"internship-service/internal/skillset"
)

var (
	ErrInternshipNotFound = errors.New("internship not found")
	ErrForbidden          = errors.New("internship belongs to another employer")
	ErrInvalidInput       = errors.New("invalid input")
)

type Service interface {
	ListInternships(ctx context.Context) ([]Internship, error)
	ListOwn(ctx context.Context, employerID int) ([]Internship, error)
	GetInternship(ctx context.Context, id int) (*Internship, error)
	CreateInternship(ctx context.Context, employerID int, req InternshipRequest) (*Internship, error)
	UpdateInternship(ctx context.Context, employerID, id int, req InternshipRequest) (*Internship, error)
	DeleteInternship(ctx context.Context, employerID, id int) error
	ListQuestions(ctx context.Context, employerID, id int) ([]TechnicalQuestion, error)
	SaveQuestions(ctx context.Context, employerID, id int, req QuestionsRequest) ([]TechnicalQuestion, error)
	// Owned returns the internship if employerID owns it.
	Owned(ctx context.Context, employerID, id int) (*Internship, error)
}

type service struct {
	repo    Repository
	metrics *metrics.Metrics
}

func NewService(repo Repository, m *metrics.Metrics) Service {
	return &service{
		repo:    repo,
		metrics: m,
	}
}

func (s *service) ListInternships(ctx context.Context) ([]Internship, error) {
	return s.repo.GetAll(ctx)
}

func (s *service) ListOwn(ctx context.Context, employerID int) ([]Internship, error) {
	if employerID <= 0 {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByEmployer(ctx, employerID)
}

func (s *service) GetInternship(ctx context.Context, id int) (*Internship, error) {
	if id <= 0 {
		return nil, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

func (s *service) CreateInternship(ctx context.Context, employerID int, req InternshipRequest) (*Internship, error) {
	if employerID <= 0 || strings.TrimSpace(req.Title) == "" {
		return nil, ErrInvalidInput
	}

	internship := &Internship{EmployerID: employerID}
	apply(internship, req)

	created, err := s.repo.Create(ctx, internship)
	if err != nil {
		return nil, err
	}
	s.metrics.RecordInternshipPosted(ctx)
	return created, nil
}

func (s *service) UpdateInternship(ctx context.Context, employerID, id int, req InternshipRequest) (*Internship, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, ErrInvalidInput
	}

	internship, err := s.Owned(ctx, employerID, id)
	if err != nil {
		return nil, err
	}

	apply(internship, req)
	if err := s.repo.Update(ctx, internship); err != nil {
		return nil, err
	}
	return internship, nil
}

func (s *service) DeleteInternship(ctx context.Context, employerID, id int) error {
	if _, err := s.Owned(ctx, employerID, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *service) ListQuestions(ctx context.Context, employerID, id int) ([]TechnicalQuestion, error) {
	if _, err := s.Owned(ctx, employerID, id); err != nil {
		return nil, err
	}
	return s.repo.ListQuestions(ctx, id)
}

func (s *service) SaveQuestions(ctx context.Context, employerID, id int, req QuestionsRequest) ([]TechnicalQuestion, error) {
	if _, err := s.Owned(ctx, employerID, id); err != nil {
		return nil, err
	}

	questions := make([]TechnicalQuestion, 0, len(req.Questions))
	for _, q := range req.Questions {
		text := strings.TrimSpace(q.Question)
		if text == "" || q.CorrectAnswer == nil {
			return nil, ErrInvalidInput
		}
		questions = append(questions, TechnicalQuestion{
			Question:      text,
			CorrectAnswer: *q.CorrectAnswer,
			Notes:         strings.TrimSpace(q.Notes),
		})
	}

	if err := s.repo.ReplaceQuestions(ctx, id, questions); err != nil {
		return nil, err
	}
	return s.repo.ListQuestions(ctx, id)
}

func (s *service) Owned(ctx context.Context, employerID, id int) (*Internship, error) {
	if employerID <= 0 || id <= 0 {
		return nil, ErrInvalidInput
	}

	internship, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if internship.EmployerID != employerID {
		return nil, ErrForbidden
	}
	return internship, nil
}

func apply(internship *Internship, req InternshipRequest) {
	internship.Title = strings.TrimSpace(req.Title)
	internship.Description = strings.TrimSpace(req.Description)
	internship.Department = strings.TrimSpace(req.Department)
	internship.Location = strings.TrimSpace(req.Location)
	internship.RequiredSkills = skillset.Normalize(req.RequiredSkills)
}
