package application

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"internship-service/internal/db"
	"internship-service/internal/internship"
	"internship-service/internal/metrics"

	"github.com/uptrace/bun"
)

// Postgres' default name for the applications.student_id foreign key.
const studentForeignKey = "applications_student_id_fkey"

type Repository interface {
	// Find returns the application for the pair, or nil when there is none.
	Find(ctx context.Context, studentID, internshipID int) (*Application, error)
	Create(ctx context.Context, app *Application) (*Application, error)
	ListByStudent(ctx context.Context, studentID int) ([]Application, error)
	ListByInternship(ctx context.Context, internshipID int) ([]Application, error)
}

type repository struct {
	db      *bun.DB
	metrics *metrics.Metrics
}

func NewRepository(db *bun.DB, m *metrics.Metrics) Repository {
	return &repository{
		db:      db,
		metrics: m,
	}
}

func (r *repository) Find(ctx context.Context, studentID, internshipID int) (*Application, error) {
	start := time.Now()
	app := new(Application)
	err := r.db.NewSelect().
		Model(app).
		Where("student_id = ?", studentID).
		Where("internship_id = ?", internshipID).
		Scan(ctx)

	r.metrics.Database.RecordQuery(ctx, "select", "applications", time.Since(start), err)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return app, nil
}

// Create inserts the application unless the pair already applied. The unique
// constraint decides the race: the loser gets ErrAlreadyApplied.
func (r *repository) Create(ctx context.Context, app *Application) (*Application, error) {
	start := time.Now()
	res, err := r.db.NewInsert().
		Model(app).
		On("CONFLICT (student_id, internship_id) DO NOTHING").
		Returning("*").
		Exec(ctx)

	r.metrics.Database.RecordQuery(ctx, "insert", "applications", time.Since(start), err)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || db.IsUniqueViolation(err) {
			return nil, ErrAlreadyApplied
		}
		// The student or internship was deleted after the quiz was drawn.
		if constraint, ok := db.ForeignKeyViolation(err); ok {
			if constraint == studentForeignKey {
				return nil, ErrStudentNotFound
			}
			return nil, internship.ErrInternshipNotFound
		}
		return nil, err
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if rowsAffected == 0 {
		return nil, ErrAlreadyApplied
	}
	return app, nil
}

func (r *repository) ListByStudent(ctx context.Context, studentID int) ([]Application, error) {
	start := time.Now()
	apps := make([]Application, 0)
	err := r.db.NewSelect().
		Model(&apps).
		Where("student_id = ?", studentID).
		Order("applied_at DESC", "id DESC").
		Scan(ctx)

	r.metrics.Database.RecordQuery(ctx, "select", "applications", time.Since(start), err)

	return apps, err
}

func (r *repository) ListByInternship(ctx context.Context, internshipID int) ([]Application, error) {
	start := time.Now()
	apps := make([]Application, 0)
	err := r.db.NewSelect().
		Model(&apps).
		Where("internship_id = ?", internshipID).
		Order("quiz_score DESC", "applied_at ASC").
		Scan(ctx)

	r.metrics.Database.RecordQuery(ctx, "select", "applications", time.Since(start), err)

	return apps, err
}
