package matching

import (
	"context"
	"errors"

	"internship-service/internal/internship"
	"internship-service/internal/metrics"
	"internship-service/internal/profile"
)

var ErrNotStudent = errors.New("matches are only available to students")

type ProfileGetter interface {
	GetByID(ctx context.Context, id int) (*profile.Profile, error)
}

type InternshipLister interface {
	GetAll(ctx context.Context) ([]internship.Internship, error)
}

type Service struct {
	profiles    ProfileGetter
	internships InternshipLister
	metrics     *metrics.Metrics
}

func NewService(profiles ProfileGetter, internships InternshipLister, m *metrics.Metrics) *Service {
	return &Service{
		profiles:    profiles,
		internships: internships,
		metrics:     m,
	}
}

// ForStudent ranks every posted internship against the student's skills.
func (s *Service) ForStudent(ctx context.Context, studentID int) ([]Match, error) {
	p, err := s.profiles.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if !p.IsStudent() {
		return nil, ErrNotStudent
	}

	all, err := s.internships.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	s.metrics.RecordMatchesViewed(ctx)
	return Rank(p.Skills, all), nil
}
