package profile

import (
	"time"

	"internship-service/internal/identity"
	"internship-service/internal/skillset"

	"github.com/uptrace/bun"
)

type Role string

const (
	RoleStudent  Role = identity.RoleStudent
	RoleEmployer Role = identity.RoleEmployer
)

type Profile struct {
	bun.BaseModel `bun:"table:profiles,alias:p"`

	ID          int       `bun:"id,pk,autoincrement" json:"id"`
	Role        Role      `bun:"role,notnull" json:"role"`
	FullName    string    `bun:"full_name,notnull" json:"fullName"`
	Email       string    `bun:"email,unique,notnull" json:"email"`
	Password    string    `bun:"password,notnull" json:"-"` // bcrypt hash, never exposed
	Department  string    `bun:"department,nullzero" json:"department,omitempty"`
	Skills      []string  `bun:"skills,array" json:"skills,omitempty"`
	CompanyName string    `bun:"company_name,nullzero" json:"companyName,omitempty"`
	CreatedAt   time.Time `bun:"created_at,notnull,default:current_timestamp" json:"createdAt"`
}

func (p *Profile) IsStudent() bool { return p.Role == RoleStudent }

// ApplyRole clears the fields that don't belong to the profile's role and
// normalizes the student's skills.
func (p *Profile) ApplyRole() {
	switch p.Role {
	case RoleStudent:
		p.CompanyName = ""
		p.Skills = skillset.Normalize(p.Skills)
	case RoleEmployer:
		p.Department = ""
		p.Skills = nil
	}
}

// UpdateRequest is the body of a self-edit. Fields outside the caller's role are ignored.
type UpdateRequest struct {
	FullName    string   `json:"fullName" validate:"required,max=100"`
	Department  string   `json:"department" validate:"max=100"`
	Skills      []string `json:"skills" validate:"max=50,dive,max=64"`
	CompanyName string   `json:"companyName" validate:"max=100"`
}
