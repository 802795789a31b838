package quiz

import (
	"context"
	"errors"
	"log/slog"

	"internship-service/internal/application"
	"internship-service/internal/internship"
	"internship-service/internal/metrics"
)

type InternshipSource interface {
	GetByID(ctx context.Context, id int) (*internship.Internship, error)
	ListQuestions(ctx context.Context, internshipID int) ([]internship.TechnicalQuestion, error)
}

type ApplicationStore interface {
	Find(ctx context.Context, studentID, internshipID int) (*application.Application, error)
	Create(ctx context.Context, app *application.Application) (*application.Application, error)
}

type Attempts interface {
	Save(ctx context.Context, a *Attempt) error
	Consume(ctx context.Context, token string, studentID int) (*Attempt, error)
}

// Publisher announces recorded applications (NATS or Kafka).
type Publisher interface {
	Publish(ctx context.Context, event application.SubmittedEvent) error
}

// Submission is the outcome of a scored attempt. Application is nil when the
// attempt failed and failed attempts are not recorded.
type Submission struct {
	Result      Result                   `json:"result"`
	Application *application.Application `json:"application,omitempty"`
	// Review holds the presented questions with their expected answers and notes.
	Review []Question `json:"review"`
}

type Options struct {
	// RecordFailedAttempts stores an Application for failing scores too, which
	// blocks the student from retaking the quiz.
	RecordFailedAttempts bool
}

type Service struct {
	internships  InternshipSource
	applications ApplicationStore
	attempts     Attempts
	engine       *Engine
	publisher    Publisher
	opts         Options
	metrics      *metrics.Metrics
	logger       *slog.Logger
}

func NewService(
	internships InternshipSource,
	applications ApplicationStore,
	attempts Attempts,
	engine *Engine,
	publisher Publisher,
	opts Options,
	m *metrics.Metrics,
	logger *slog.Logger,
) *Service {
	return &Service{
		internships:  internships,
		applications: applications,
		attempts:     attempts,
		engine:       engine,
		publisher:    publisher,
		opts:         opts,
		metrics:      m,
		logger:       logger,
	}
}

// Generate draws a quiz for the student and stores it as a pending attempt.
func (s *Service) Generate(ctx context.Context, internshipID, studentID int) (*Attempt, error) {
	if internshipID <= 0 || studentID <= 0 {
		return nil, internship.ErrInvalidInput
	}

	if _, err := s.internships.GetByID(ctx, internshipID); err != nil {
		return nil, err
	}

	existing, err := s.applications.Find(ctx, studentID, internshipID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		s.metrics.RecordQuizRejected(ctx, "already_applied")
		return nil, application.ErrAlreadyApplied
	}

	technical, err := s.internships.ListQuestions(ctx, internshipID)
	if err != nil {
		return nil, err
	}

	q, err := s.engine.Assemble(technical)
	if err != nil {
		if errors.Is(err, ErrInsufficientQuestions) {
			s.metrics.RecordQuizRejected(ctx, "insufficient_questions")
		}
		return nil, err
	}

	attempt := &Attempt{
		StudentID:    studentID,
		InternshipID: internshipID,
		Questions:    q.Questions,
	}
	if err := s.attempts.Save(ctx, attempt); err != nil {
		return nil, err
	}

	s.metrics.RecordQuizGenerated(ctx)
	s.logger.InfoContext(ctx, "quiz generated",
		"internship_id", internshipID,
		"student_id", studentID,
		"questions", len(attempt.Questions),
	)
	return attempt, nil
}

// Submit scores the attempt identified by token and records the application.
func (s *Service) Submit(ctx context.Context, token string, studentID int, answers map[string]Answer) (*Submission, error) {
	attempt, err := s.attempts.Consume(ctx, token, studentID)
	if err != nil {
		return nil, err
	}

	result := Score(attempt.Questions, answers)
	s.metrics.RecordQuizSubmitted(ctx, result.Score, result.Passed)
	s.logger.InfoContext(ctx, "quiz scored",
		"internship_id", attempt.InternshipID,
		"student_id", studentID,
		"score", result.Score,
		"passed", result.Passed,
	)

	if !result.Passed && !s.opts.RecordFailedAttempts {
		return &Submission{Result: result, Review: attempt.Questions}, nil
	}

	app, err := s.applications.Create(ctx, &application.Application{
		StudentID:    studentID,
		InternshipID: attempt.InternshipID,
		QuizPassed:   result.Passed,
		QuizScore:    result.Score,
	})
	if err != nil {
		return nil, err
	}

	s.metrics.RecordApplicationCreated(ctx, app.QuizPassed)
	s.publish(ctx, app)

	return &Submission{Result: result, Application: app, Review: attempt.Questions}, nil
}

func (s *Service) publish(ctx context.Context, app *application.Application) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, application.NewSubmittedEvent(app)); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish application event",
			"application_id", app.ID,
			"error", err,
		)
	}
}
