package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"internship-service/internal/metrics"
	"internship-service/internal/profile"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailExists         = errors.New("email already exists")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrInvalidRefreshToken = errors.New("invalid or expired refresh token")
)

type Service struct {
	repo       *Repository
	profiles   profile.Repository
	tokens     *TokenIssuer
	refreshTTL time.Duration
	metrics    *metrics.Metrics
}

func NewService(repo *Repository, profiles profile.Repository, tokens *TokenIssuer, refreshTTL time.Duration, m *metrics.Metrics) *Service {
	return &Service{
		repo:       repo,
		profiles:   profiles,
		tokens:     tokens,
		refreshTTL: refreshTTL,
		metrics:    m,
	}
}

// Register creates a student or employer profile and signs it in.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	p := &profile.Profile{
		Role:        profile.Role(req.Role),
		FullName:    strings.TrimSpace(req.FullName),
		Email:       strings.ToLower(strings.TrimSpace(req.Email)),
		Password:    string(hashed),
		Department:  strings.TrimSpace(req.Department),
		Skills:      req.Skills,
		CompanyName: strings.TrimSpace(req.CompanyName),
	}
	p.ApplyRole()

	created, err := s.profiles.Create(ctx, p)
	if err != nil {
		if errors.Is(err, profile.ErrEmailExists) {
			return nil, ErrEmailExists
		}
		return nil, err
	}

	s.metrics.RecordProfileRegistered(ctx, req.Role)

	return s.issue(ctx, created)
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	p, err := s.profiles.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, profile.ErrProfileNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(p.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.issue(ctx, p)
}

// RefreshAccessToken rotates the refresh token and issues a new access token.
func (s *Service) RefreshAccessToken(ctx context.Context, refreshToken string) (*AuthResponse, error) {
	stored, err := s.repo.GetRefreshToken(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	p, err := s.profiles.GetByID(ctx, stored.ProfileID)
	if err != nil {
		if errors.Is(err, profile.ErrProfileNotFound) {
			return nil, ErrInvalidRefreshToken
		}
		return nil, err
	}

	if err := s.repo.DeleteRefreshToken(ctx, refreshToken); err != nil {
		return nil, err
	}

	return s.issue(ctx, p)
}

func (s *Service) Logout(ctx context.Context, refreshToken string) error {
	return s.repo.DeleteRefreshToken(ctx, refreshToken)
}

// ValidateAccessToken is used by the middleware.
func (s *Service) ValidateAccessToken(token string) (*Claims, error) {
	return s.tokens.ValidateAccessToken(token)
}

func (s *Service) issue(ctx context.Context, p *profile.Profile) (*AuthResponse, error) {
	accessToken, err := s.tokens.GenerateAccessToken(p.ID, string(p.Role))
	if err != nil {
		return nil, err
	}

	refreshToken := uuid.NewString()
	if err := s.repo.CreateRefreshToken(ctx, p.ID, refreshToken, time.Now().Add(s.refreshTTL)); err != nil {
		return nil, fmt.Errorf("store refresh token: %w", err)
	}

	return &AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		Profile:      p,
	}, nil
}
