package internship

import (
	"context"
	"sort"
	"testing"

	"internship-service/internal/metrics"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	internships map[int]*Internship
	questions   map[int][]TechnicalQuestion
	nextID      int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		internships: make(map[int]*Internship),
		questions:   make(map[int][]TechnicalQuestion),
	}
}

func (f *fakeRepo) Create(_ context.Context, in *Internship) (*Internship, error) {
	f.nextID++
	in.ID = f.nextID
	stored := *in
	f.internships[in.ID] = &stored
	return in, nil
}

func (f *fakeRepo) GetAll(_ context.Context) ([]Internship, error) {
	out := make([]Internship, 0, len(f.internships))
	for _, in := range f.internships {
		out = append(out, *in)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeRepo) GetByID(_ context.Context, id int) (*Internship, error) {
	in, ok := f.internships[id]
	if !ok {
		return nil, ErrInternshipNotFound
	}
	cp := *in
	return &cp, nil
}

func (f *fakeRepo) ListByEmployer(ctx context.Context, employerID int) ([]Internship, error) {
	all, _ := f.GetAll(ctx)
	out := make([]Internship, 0)
	for _, in := range all {
		if in.EmployerID == employerID {
			out = append(out, in)
		}
	}
	return out, nil
}

func (f *fakeRepo) Update(_ context.Context, in *Internship) error {
	if _, ok := f.internships[in.ID]; !ok {
		return ErrInternshipNotFound
	}
	stored := *in
	f.internships[in.ID] = &stored
	return nil
}

func (f *fakeRepo) Delete(_ context.Context, id int) error {
	if _, ok := f.internships[id]; !ok {
		return ErrInternshipNotFound
	}
	delete(f.internships, id)
	delete(f.questions, id)
	return nil
}

func (f *fakeRepo) ListQuestions(_ context.Context, internshipID int) ([]TechnicalQuestion, error) {
	return append([]TechnicalQuestion{}, f.questions[internshipID]...), nil
}

func (f *fakeRepo) ReplaceQuestions(_ context.Context, internshipID int, questions []TechnicalQuestion) error {
	stored := make([]TechnicalQuestion, len(questions))
	for i, q := range questions {
		q.ID = i + 1
		q.InternshipID = internshipID
		stored[i] = q
	}
	f.questions[internshipID] = stored
	return nil
}

func boolPtr(b bool) *bool { return &b }

func TestService_CreateInternship(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newFakeRepo(), metrics.NewMock())

	t.Run("normalizes fields", func(t *testing.T) {
		created, err := svc.CreateInternship(ctx, 10, InternshipRequest{
			Title:          "  Backend Intern ",
			Location:       " Remote",
			RequiredSkills: []string{"Go", " Go", "", "SQL"},
		})
		require.NoError(t, err)
		assert.Equal(t, 10, created.EmployerID)
		assert.Equal(t, "Backend Intern", created.Title)
		assert.Equal(t, "Remote", created.Location)
		assert.Equal(t, []string{"Go", "SQL"}, created.RequiredSkills)
	})

	t.Run("blank title", func(t *testing.T) {
		_, err := svc.CreateInternship(ctx, 10, InternshipRequest{Title: "   "})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("no employer", func(t *testing.T) {
		_, err := svc.CreateInternship(ctx, 0, InternshipRequest{Title: "Intern"})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestService_Ownership(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	svc := NewService(repo, metrics.NewMock())

	owned, err := svc.CreateInternship(ctx, 1, InternshipRequest{Title: "Data Intern"})
	require.NoError(t, err)
	other, err := svc.CreateInternship(ctx, 2, InternshipRequest{Title: "Ops Intern"})
	require.NoError(t, err)

	t.Run("owner updates", func(t *testing.T) {
		updated, err := svc.UpdateInternship(ctx, 1, owned.ID, InternshipRequest{
			Title:          "Senior Data Intern",
			RequiredSkills: []string{"Python"},
		})
		require.NoError(t, err)
		assert.Equal(t, "Senior Data Intern", updated.Title)
		assert.Equal(t, 1, updated.EmployerID)

		stored, err := svc.GetInternship(ctx, owned.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{"Python"}, stored.RequiredSkills)
	})

	t.Run("other employer cannot update", func(t *testing.T) {
		_, err := svc.UpdateInternship(ctx, 1, other.ID, InternshipRequest{Title: "Hijacked"})
		assert.ErrorIs(t, err, ErrForbidden)

		stored, err := svc.GetInternship(ctx, other.ID)
		require.NoError(t, err)
		assert.Equal(t, "Ops Intern", stored.Title)
	})

	t.Run("other employer cannot delete", func(t *testing.T) {
		assert.ErrorIs(t, svc.DeleteInternship(ctx, 1, other.ID), ErrForbidden)
		_, err := svc.GetInternship(ctx, other.ID)
		assert.NoError(t, err)
	})

	t.Run("other employer cannot read questions", func(t *testing.T) {
		_, err := svc.ListQuestions(ctx, 2, owned.ID)
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("missing internship", func(t *testing.T) {
		_, err := svc.Owned(ctx, 1, 999)
		assert.ErrorIs(t, err, ErrInternshipNotFound)
	})

	t.Run("ListOwn", func(t *testing.T) {
		mine, err := svc.ListOwn(ctx, 2)
		require.NoError(t, err)
		require.Len(t, mine, 1)
		assert.Equal(t, other.ID, mine[0].ID)
	})

	t.Run("owner deletes", func(t *testing.T) {
		require.NoError(t, svc.DeleteInternship(ctx, 2, other.ID))
		_, err := svc.GetInternship(ctx, other.ID)
		assert.ErrorIs(t, err, ErrInternshipNotFound)
	})
}

func TestService_SaveQuestions(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newFakeRepo(), metrics.NewMock())

	in, err := svc.CreateInternship(ctx, 1, InternshipRequest{Title: "QA Intern"})
	require.NoError(t, err)

	t.Run("replaces the set", func(t *testing.T) {
		_, err := svc.SaveQuestions(ctx, 1, in.ID, QuestionsRequest{Questions: []QuestionRequest{
			{Question: "Old?", CorrectAnswer: boolPtr(true)},
		}})
		require.NoError(t, err)

		saved, err := svc.SaveQuestions(ctx, 1, in.ID, QuestionsRequest{Questions: []QuestionRequest{
			{Question: " Is Go compiled? ", CorrectAnswer: boolPtr(true), Notes: " yes "},
			{Question: "Is HTML a programming language?", CorrectAnswer: boolPtr(false)},
		}})
		require.NoError(t, err)
		require.Len(t, saved, 2)
		assert.Equal(t, "Is Go compiled?", saved[0].Question)
		assert.Equal(t, "yes", saved[0].Notes)
		assert.False(t, saved[1].CorrectAnswer)
		assert.Equal(t, in.ID, saved[1].InternshipID)
	})

	t.Run("missing answer", func(t *testing.T) {
		_, err := svc.SaveQuestions(ctx, 1, in.ID, QuestionsRequest{Questions: []QuestionRequest{
			{Question: "No answer?"},
		}})
		assert.ErrorIs(t, err, ErrInvalidInput)

		kept, err := svc.ListQuestions(ctx, 1, in.ID)
		require.NoError(t, err)
		assert.Len(t, kept, 2)
	})

	t.Run("empty set clears", func(t *testing.T) {
		saved, err := svc.SaveQuestions(ctx, 1, in.ID, QuestionsRequest{})
		require.NoError(t, err)
		assert.Empty(t, saved)
	})
}
