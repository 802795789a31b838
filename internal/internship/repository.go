package internship

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"internship-service/internal/metrics"

	"github.com/uptrace/bun"
)

type Repository interface {
	Create(ctx context.Context, internship *Internship) (*Internship, error)
	GetAll(ctx context.Context) ([]Internship, error)
	GetByID(ctx context.Context, id int) (*Internship, error)
	ListByEmployer(ctx context.Context, employerID int) ([]Internship, error)
	Update(ctx context.Context, internship *Internship) error
	Delete(ctx context.Context, id int) error
	ListQuestions(ctx context.Context, internshipID int) ([]TechnicalQuestion, error)
	ReplaceQuestions(ctx context.Context, internshipID int, questions []TechnicalQuestion) error
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

func (r *repository) Create(ctx context.Context, internship *Internship) (*Internship, error) {
	start := time.Now()
	_, err := r.db.NewInsert().Model(internship).Returning("*").Exec(ctx)

	r.metrics.Database.RecordQuery(ctx, "insert", "internships", time.Since(start), err)

	if err != nil {
		return nil, err
	}
	return internship, nil
}

// GetAll returns every posting in insertion order; the matcher relies on a stable input order.
func (r *repository) GetAll(ctx context.Context) ([]Internship, error) {
	start := time.Now()
	internships := make([]Internship, 0)
	err := r.db.NewSelect().Model(&internships).Order("id ASC").Scan(ctx)

	r.metrics.Database.RecordQuery(ctx, "select", "internships", time.Since(start), err)

	return internships, err
}

func (r *repository) GetByID(ctx context.Context, id int) (*Internship, error) {
	start := time.Now()
	internship := new(Internship)
	err := r.db.NewSelect().Model(internship).Where("id = ?", id).Scan(ctx)

	r.metrics.Database.RecordQuery(ctx, "select", "internships", time.Since(start), err)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInternshipNotFound
		}
		return nil, err
	}
	return internship, nil
}

func (r *repository) ListByEmployer(ctx context.Context, employerID int) ([]Internship, error) {
	start := time.Now()
	internships := make([]Internship, 0)
	err := r.db.NewSelect().
		Model(&internships).
		Where("employer_id = ?", employerID).
		Order("id ASC").
		Scan(ctx)

	r.metrics.Database.RecordQuery(ctx, "select", "internships", time.Since(start), err)

	return internships, err
}

func (r *repository) Update(ctx context.Context, internship *Internship) error {
	start := time.Now()
	result, err := r.db.NewUpdate().
		Model(internship).
		Column("title", "description", "department", "location", "required_skills").
		WherePK().
		Exec(ctx)

	r.metrics.Database.RecordQuery(ctx, "update", "internships", time.Since(start), err)

	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrInternshipNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id int) error {
	start := time.Now()
	result, err := r.db.NewDelete().Model((*Internship)(nil)).Where("id = ?", id).Exec(ctx)

	r.metrics.Database.RecordQuery(ctx, "delete", "internships", time.Since(start), err)

	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrInternshipNotFound
	}
	return nil
}

func (r *repository) ListQuestions(ctx context.Context, internshipID int) ([]TechnicalQuestion, error) {
	start := time.Now()
	questions := make([]TechnicalQuestion, 0)
	err := r.db.NewSelect().
		Model(&questions).
		Where("internship_id = ?", internshipID).
		Order("id ASC").
		Scan(ctx)

	r.metrics.Database.RecordQuery(ctx, "select", "technical_questions", time.Since(start), err)

	return questions, err
}

// ReplaceQuestions swaps the whole question set in one transaction.
func (r *repository) ReplaceQuestions(ctx context.Context, internshipID int, questions []TechnicalQuestion) error {
	start := time.Now()
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewDelete().
			Model((*TechnicalQuestion)(nil)).
			Where("internship_id = ?", internshipID).
			Exec(ctx); err != nil {
			return err
		}
		if len(questions) == 0 {
			return nil
		}
		for i := range questions {
			questions[i].ID = 0
			questions[i].InternshipID = internshipID
		}
		_, err := tx.NewInsert().Model(&questions).Exec(ctx)
		return err
	})

	r.metrics.Database.RecordQuery(ctx, "replace", "technical_questions", time.Since(start), err)

	return err
}
