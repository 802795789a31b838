package application

import (
	"time"

	"github.com/uptrace/bun"
)

// Application is the record of a student's scored quiz for one internship.
// A (student, internship) pair appears at most once and is never updated.
type Application struct {
	bun.BaseModel `bun:"table:applications,alias:a"`

	ID           int       `bun:"id,pk,autoincrement" json:"id"`
	StudentID    int       `bun:"student_id,notnull,unique:student_internship" json:"studentId"`
	InternshipID int       `bun:"internship_id,notnull,unique:student_internship" json:"internshipId"`
	AppliedAt    time.Time `bun:"applied_at,notnull,default:current_timestamp" json:"appliedAt"`
	QuizPassed   bool      `bun:"quiz_passed,notnull" json:"quizPassed"`
	QuizScore    int       `bun:"quiz_score,notnull" json:"quizScore"`
}
