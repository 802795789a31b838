package application_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"internship-service/internal/application"
	"internship-service/internal/identity"
	"internship-service/internal/internship"
	"internship-service/internal/logger"
	"internship-service/internal/metrics"
	"internship-service/internal/profile"
	"internship-service/internal/schema"
	"internship-service/testing/testdb"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplications_Shared(t *testing.T) {
	pgContainer := testdb.SetupSharedPostgres(t)
	defer pgContainer.Cleanup(t)

	pgContainer.RunMigrations(t, schema.Tables()...)

	ctx := context.Background()
	mockMetrics := metrics.NewMock()
	repo := application.NewRepository(pgContainer.DB, mockMetrics)
	internshipRepo := internship.NewRepository(pgContainer.DB, mockMetrics)
	profileRepo := profile.NewRepository(pgContainer.DB, mockMetrics)
	service := application.NewService(repo, internship.NewService(internshipRepo, mockMetrics))
	router := chi.NewRouter()
	application.NewHandler(service, logger.Discard()).RegisterRoutes(router)

	createProfile := func(t *testing.T, role profile.Role, email string) *profile.Profile {
		t.Helper()
		p, err := profileRepo.Create(ctx, &profile.Profile{Role: role, FullName: "Test", Email: email, Password: "hash"})
		require.NoError(t, err)
		return p
	}

	createInternship := func(t *testing.T, employerID int, title string) *internship.Internship {
		t.Helper()
		in, err := internshipRepo.Create(ctx, &internship.Internship{EmployerID: employerID, Title: title})
		require.NoError(t, err)
		return in
	}

	get := func(caller *profile.Profile, path string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req = req.WithContext(identity.WithCaller(req.Context(), identity.Caller{
			ProfileID: caller.ID,
			Role:      string(caller.Role),
		}))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	t.Run("Create_And_Find", func(t *testing.T) {
		testdb.CleanupTables(t, pgContainer.DB, schema.TableNames()...)
		employer := createProfile(t, profile.RoleEmployer, "hr@acme.example")
		student := createProfile(t, profile.RoleStudent, "ada@uni.example")
		in := createInternship(t, employer.ID, "Backend Intern")

		found, err := repo.Find(ctx, student.ID, in.ID)
		require.NoError(t, err)
		assert.Nil(t, found)

		created, err := repo.Create(ctx, &application.Application{
			StudentID:    student.ID,
			InternshipID: in.ID,
			QuizScore:    88,
			QuizPassed:   true,
		})
		require.NoError(t, err)
		assert.NotZero(t, created.ID)
		assert.False(t, created.AppliedAt.IsZero())

		found, err = repo.Find(ctx, student.ID, in.ID)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, created.ID, found.ID)
		assert.Equal(t, 88, found.QuizScore)
		assert.True(t, found.QuizPassed)
	})

	t.Run("Create_Duplicate", func(t *testing.T) {
		testdb.CleanupTables(t, pgContainer.DB, schema.TableNames()...)
		employer := createProfile(t, profile.RoleEmployer, "hr@acme.example")
		student := createProfile(t, profile.RoleStudent, "ada@uni.example")
		in := createInternship(t, employer.ID, "Backend Intern")

		_, err := repo.Create(ctx, &application.Application{StudentID: student.ID, InternshipID: in.ID, QuizScore: 50})
		require.NoError(t, err)

		_, err = repo.Create(ctx, &application.Application{StudentID: student.ID, InternshipID: in.ID, QuizScore: 100, QuizPassed: true})
		assert.ErrorIs(t, err, application.ErrAlreadyApplied)

		found, err := repo.Find(ctx, student.ID, in.ID)
		require.NoError(t, err)
		assert.Equal(t, 50, found.QuizScore, "first application is never overwritten")
	})

	t.Run("Create_InternshipDeleted", func(t *testing.T) {
		testdb.CleanupTables(t, pgContainer.DB, schema.TableNames()...)
		employer := createProfile(t, profile.RoleEmployer, "hr@acme.example")
		student := createProfile(t, profile.RoleStudent, "ada@uni.example")
		in := createInternship(t, employer.ID, "Backend Intern")
		require.NoError(t, internshipRepo.Delete(ctx, in.ID))

		_, err := repo.Create(ctx, &application.Application{StudentID: student.ID, InternshipID: in.ID, QuizScore: 100, QuizPassed: true})
		assert.ErrorIs(t, err, internship.ErrInternshipNotFound)
		assert.NotErrorIs(t, err, application.ErrAlreadyApplied)
	})

	t.Run("Create_StudentDeleted", func(t *testing.T) {
		testdb.CleanupTables(t, pgContainer.DB, schema.TableNames()...)
		employer := createProfile(t, profile.RoleEmployer, "hr@acme.example")
		student := createProfile(t, profile.RoleStudent, "ada@uni.example")
		in := createInternship(t, employer.ID, "Backend Intern")
		require.NoError(t, profileRepo.Delete(ctx, student.ID))

		_, err := repo.Create(ctx, &application.Application{StudentID: student.ID, InternshipID: in.ID, QuizScore: 100, QuizPassed: true})
		assert.ErrorIs(t, err, application.ErrStudentNotFound)
		assert.NotErrorIs(t, err, application.ErrAlreadyApplied)
	})

	t.Run("Create_ConcurrentDuplicates", func(t *testing.T) {
		testdb.CleanupTables(t, pgContainer.DB, schema.TableNames()...)
		employer := createProfile(t, profile.RoleEmployer, "hr@acme.example")
		student := createProfile(t, profile.RoleStudent, "ada@uni.example")
		in := createInternship(t, employer.ID, "Backend Intern")

		const attempts = 10
		var (
			wg        sync.WaitGroup
			mu        sync.Mutex
			succeeded int
			rejected  int
		)
		for i := 0; i < attempts; i++ {
			wg.Add(1)
			go func(score int) {
				defer wg.Done()
				_, err := repo.Create(ctx, &application.Application{
					StudentID:    student.ID,
					InternshipID: in.ID,
					QuizScore:    score,
				})
				mu.Lock()
				defer mu.Unlock()
				switch {
				case err == nil:
					succeeded++
				case errors.Is(err, application.ErrAlreadyApplied):
					rejected++
				default:
					t.Errorf("unexpected error: %v", err)
				}
			}(i * 10)
		}
		wg.Wait()

		assert.Equal(t, 1, succeeded)
		assert.Equal(t, attempts-1, rejected)

		count, err := pgContainer.DB.NewSelect().Model((*application.Application)(nil)).
			Where("student_id = ?", student.ID).
			Where("internship_id = ?", in.ID).
			Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("ListOwn_Student", func(t *testing.T) {
		testdb.CleanupTables(t, pgContainer.DB, schema.TableNames()...)
		employer := createProfile(t, profile.RoleEmployer, "hr@acme.example")
		student := createProfile(t, profile.RoleStudent, "ada@uni.example")
		other := createProfile(t, profile.RoleStudent, "bob@uni.example")
		first := createInternship(t, employer.ID, "First")
		second := createInternship(t, employer.ID, "Second")

		for _, app := range []*application.Application{
			{StudentID: student.ID, InternshipID: first.ID, QuizScore: 75, QuizPassed: true},
			{StudentID: student.ID, InternshipID: second.ID, QuizScore: 50},
			{StudentID: other.ID, InternshipID: first.ID, QuizScore: 100, QuizPassed: true},
		} {
			_, err := repo.Create(ctx, app)
			require.NoError(t, err)
		}

		w := get(student, "/applications")
		assert.Equal(t, http.StatusOK, w.Code)

		var apps []application.Application
		require.NoError(t, json.NewDecoder(w.Body).Decode(&apps))
		require.Len(t, apps, 2)
		for _, app := range apps {
			assert.Equal(t, student.ID, app.StudentID)
		}

		denied := get(employer, "/applications")
		assert.Equal(t, http.StatusForbidden, denied.Code)
	})

	t.Run("ListForInternship_OwnerOnly", func(t *testing.T) {
		testdb.CleanupTables(t, pgContainer.DB, schema.TableNames()...)
		owner := createProfile(t, profile.RoleEmployer, "hr@acme.example")
		rival := createProfile(t, profile.RoleEmployer, "hr@globex.example")
		ada := createProfile(t, profile.RoleStudent, "ada@uni.example")
		bob := createProfile(t, profile.RoleStudent, "bob@uni.example")
		in := createInternship(t, owner.ID, "Backend Intern")

		_, err := repo.Create(ctx, &application.Application{StudentID: ada.ID, InternshipID: in.ID, QuizScore: 63})
		require.NoError(t, err)
		_, err = repo.Create(ctx, &application.Application{StudentID: bob.ID, InternshipID: in.ID, QuizScore: 100, QuizPassed: true})
		require.NoError(t, err)

		path := fmt.Sprintf("/internships/%d/applications", in.ID)
		w := get(owner, path)
		assert.Equal(t, http.StatusOK, w.Code)

		var apps []application.Application
		require.NoError(t, json.NewDecoder(w.Body).Decode(&apps))
		require.Len(t, apps, 2)
		assert.Equal(t, bob.ID, apps[0].StudentID, "highest score first")
		assert.Equal(t, ada.ID, apps[1].StudentID)

		assert.Equal(t, http.StatusForbidden, get(rival, path).Code)
		assert.Equal(t, http.StatusForbidden, get(ada, path).Code)
		assert.Equal(t, http.StatusNotFound, get(owner, "/internships/999/applications").Code)
	})

	t.Run("DeleteProfile_Cascades", func(t *testing.T) {
		testdb.CleanupTables(t, pgContainer.DB, schema.TableNames()...)
		employer := createProfile(t, profile.RoleEmployer, "hr@acme.example")
		student := createProfile(t, profile.RoleStudent, "ada@uni.example")
		in := createInternship(t, employer.ID, "Backend Intern")

		_, err := repo.Create(ctx, &application.Application{StudentID: student.ID, InternshipID: in.ID, QuizScore: 75, QuizPassed: true})
		require.NoError(t, err)

		require.NoError(t, profileRepo.Delete(ctx, student.ID))

		apps, err := repo.ListByInternship(ctx, in.ID)
		require.NoError(t, err)
		assert.Empty(t, apps)
	})

	t.Run("DeleteInternship_Cascades", func(t *testing.T) {
		testdb.CleanupTables(t, pgContainer.DB, schema.TableNames()...)
		employer := createProfile(t, profile.RoleEmployer, "hr@acme.example")
		student := createProfile(t, profile.RoleStudent, "ada@uni.example")
		in := createInternship(t, employer.ID, "Backend Intern")

		_, err := repo.Create(ctx, &application.Application{StudentID: student.ID, InternshipID: in.ID, QuizScore: 75, QuizPassed: true})
		require.NoError(t, err)

		require.NoError(t, internshipRepo.Delete(ctx, in.ID))

		apps, err := repo.ListByStudent(ctx, student.ID)
		require.NoError(t, err)
		assert.Empty(t, apps)
	})
}
