package profile

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"internship-service/internal/db"
	"internship-service/internal/metrics"

	"github.com/uptrace/bun"
)

type Repository interface {
	Create(ctx context.Context, profile *Profile) (*Profile, error)
	GetByID(ctx context.Context, id int) (*Profile, error)
	GetByEmail(ctx context.Context, email string) (*Profile, error)
	Update(ctx context.Context, profile *Profile) error
	Delete(ctx context.Context, id int) error
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

func (r *repository) Create(ctx context.Context, profile *Profile) (*Profile, error) {
	start := time.Now()
	_, err := r.db.NewInsert().Model(profile).Returning("*").Exec(ctx)

	r.metrics.Database.RecordQuery(ctx, "insert", "profiles", time.Since(start), err)

	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, ErrEmailExists
		}
		return nil, err
	}
	return profile, nil
}

func (r *repository) GetByID(ctx context.Context, id int) (*Profile, error) {
	start := time.Now()
	profile := new(Profile)
	err := r.db.NewSelect().Model(profile).Where("id = ?", id).Scan(ctx)

	r.metrics.Database.RecordQuery(ctx, "select", "profiles", time.Since(start), err)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return profile, nil
}

func (r *repository) GetByEmail(ctx context.Context, email string) (*Profile, error) {
	start := time.Now()
	profile := new(Profile)
	err := r.db.NewSelect().
		Model(profile).
		Where("email = ?", email).
		Scan(ctx)

	r.metrics.Database.RecordQuery(ctx, "select", "profiles", time.Since(start), err)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return profile, nil
}

// Update writes the self-editable columns only; role, email and password are immutable here.
func (r *repository) Update(ctx context.Context, profile *Profile) error {
	start := time.Now()
	result, err := r.db.NewUpdate().
		Model(profile).
		Column("full_name", "department", "skills", "company_name").
		WherePK().
		Exec(ctx)

	r.metrics.Database.RecordQuery(ctx, "update", "profiles", time.Since(start), err)

	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrProfileNotFound
	}
	return nil
}

// Delete removes the profile; foreign keys cascade to internships, questions and applications.
func (r *repository) Delete(ctx context.Context, id int) error {
	start := time.Now()
	result, err := r.db.NewDelete().Model((*Profile)(nil)).Where("id = ?", id).Exec(ctx)

	r.metrics.Database.RecordQuery(ctx, "delete", "profiles", time.Since(start), err)

	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrProfileNotFound
	}
	return nil
}
