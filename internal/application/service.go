package application

import (
	"context"
	"errors"

	"internship-service/internal/internship"
)

var (
	ErrAlreadyApplied  = errors.New("student already applied to this internship")
	ErrStudentNotFound = errors.New("student profile not found")
	ErrInvalidInput    = errors.New("invalid input")
)

// Ownership resolves an internship only for the employer who posted it.
type Ownership interface {
	Owned(ctx context.Context, employerID, id int) (*internship.Internship, error)
}

type Service interface {
	ListForStudent(ctx context.Context, studentID int) ([]Application, error)
	ListForInternship(ctx context.Context, employerID, internshipID int) ([]Application, error)
}

type service struct {
	repo        Repository
	internships Ownership
}

func NewService(repo Repository, internships Ownership) Service {
	return &service{
		repo:        repo,
		internships: internships,
	}
}

func (s *service) ListForStudent(ctx context.Context, studentID int) ([]Application, error) {
	if studentID <= 0 {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByStudent(ctx, studentID)
}

func (s *service) ListForInternship(ctx context.Context, employerID, internshipID int) ([]Application, error) {
	if _, err := s.internships.Owned(ctx, employerID, internshipID); err != nil {
		return nil, err
	}
	return s.repo.ListByInternship(ctx, internshipID)
}
