package auth

import (
	"time"

	"internship-service/internal/profile"

	"github.com/uptrace/bun"
)

// RefreshToken is a long-lived opaque token exchanged for new access tokens.
type RefreshToken struct {
	bun.BaseModel `bun:"table:refresh_tokens,alias:rt"`

	ID        int       `bun:"id,pk,autoincrement"`
	ProfileID int       `bun:"profile_id,notnull"`
	Token     string    `bun:"token,unique,notnull"`
	ExpiresAt time.Time `bun:"expires_at,notnull"`
	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp"`
}

type RegisterRequest struct {
	Role        string   `json:"role" validate:"required,oneof=student employer"`
	FullName    string   `json:"fullName" validate:"required,max=100"`
	Email       string   `json:"email" validate:"required,email"`
	Password    string   `json:"password" validate:"required,min=8,max=72"`
	Department  string   `json:"department" validate:"max=100"`
	Skills      []string `json:"skills" validate:"max=50,dive,max=64"`
	CompanyName string   `json:"companyName" validate:"required_if=Role employer,max=100"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

type AuthResponse struct {
	AccessToken  string           `json:"accessToken"`
	RefreshToken string           `json:"refreshToken"`
	Profile      *profile.Profile `json:"profile"`
}
