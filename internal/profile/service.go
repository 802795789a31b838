package profile

import (
	"context"
	"errors"
	"strings"
)

var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrEmailExists     = errors.New("email already exists")
	ErrInvalidInput    = errors.New("invalid input")
)

type Service interface {
	GetProfile(ctx context.Context, id int) (*Profile, error)
	UpdateProfile(ctx context.Context, id int, req UpdateRequest) (*Profile, error)
	DeleteProfile(ctx context.Context, id int) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{
		repo: repo,
	}
}

func (s *service) GetProfile(ctx context.Context, id int) (*Profile, error) {
	if id <= 0 {
		return nil, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

func (s *service) UpdateProfile(ctx context.Context, id int, req UpdateRequest) (*Profile, error) {
	if id <= 0 || strings.TrimSpace(req.FullName) == "" {
		return nil, ErrInvalidInput
	}

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	existing.FullName = strings.TrimSpace(req.FullName)
	existing.Department = strings.TrimSpace(req.Department)
	existing.Skills = req.Skills
	existing.CompanyName = strings.TrimSpace(req.CompanyName)
	existing.ApplyRole()

	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *service) DeleteProfile(ctx context.Context, id int) error {
	if id <= 0 {
		return ErrInvalidInput
	}
	return s.repo.Delete(ctx, id)
}
