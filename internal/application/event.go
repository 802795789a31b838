package application

import "time"

// SubmittedEvent is published after an application is recorded.
type SubmittedEvent struct {
	ApplicationID int       `json:"applicationId"`
	StudentID     int       `json:"studentId"`
	InternshipID  int       `json:"internshipId"`
	QuizScore     int       `json:"quizScore"`
	QuizPassed    bool      `json:"quizPassed"`
	AppliedAt     time.Time `json:"appliedAt"`
}

func NewSubmittedEvent(app *Application) SubmittedEvent {
	return SubmittedEvent{
		ApplicationID: app.ID,
		StudentID:     app.StudentID,
		InternshipID:  app.InternshipID,
		QuizScore:     app.QuizScore,
		QuizPassed:    app.QuizPassed,
		AppliedAt:     app.AppliedAt,
	}
}
