package internship

import (
	"time"

	"github.com/uptrace/bun"
)

type Internship struct {
	bun.BaseModel `bun:"table:internships,alias:i"`

	ID             int       `bun:"id,pk,autoincrement" json:"id"`
	EmployerID     int       `bun:"employer_id,notnull" json:"employerId"`
	Title          string    `bun:"title,notnull" json:"title"`
	Description    string    `bun:"description" json:"description"`
	Department     string    `bun:"department" json:"department"`
	Location       string    `bun:"location" json:"location"`
	RequiredSkills []string  `bun:"required_skills,array" json:"requiredSkills"`
	CreatedAt      time.Time `bun:"created_at,notnull,default:current_timestamp" json:"createdAt"`
}

// TechnicalQuestion is an employer-authored yes/no screening question.
type TechnicalQuestion struct {
	bun.BaseModel `bun:"table:technical_questions,alias:tq"`

	ID            int    `bun:"id,pk,autoincrement" json:"id"`
	InternshipID  int    `bun:"internship_id,notnull" json:"internshipId"`
	Question      string `bun:"question,notnull" json:"question"`
	CorrectAnswer bool   `bun:"correct_answer,notnull" json:"correctAnswer"`
	Notes         string `bun:"notes" json:"notes"`
}

type InternshipRequest struct {
	Title          string   `json:"title" validate:"required,max=100"`
	Description    string   `json:"description" validate:"max=5000"`
	Department     string   `json:"department" validate:"max=100"`
	Location       string   `json:"location" validate:"max=100"`
	RequiredSkills []string `json:"requiredSkills" validate:"max=50,dive,max=64"`
}

type QuestionRequest struct {
	Question      string `json:"question" validate:"required,max=500"`
	CorrectAnswer *bool  `json:"correctAnswer" validate:"required"`
	Notes         string `json:"notes" validate:"max=1000"`
}

type QuestionsRequest struct {
	Questions []QuestionRequest `json:"questions" validate:"max=100,dive"`
}
