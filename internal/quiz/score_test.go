package quiz

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func eightQuestions() []Question {
	qs := make([]Question, 8)
	for i := range qs {
		qs[i] = Question{ID: fmt.Sprintf("q%d", i), ExpectedAnswer: AnswerOf(i%2 == 0)}
	}
	return qs
}

// answersWithCorrect answers the first n questions correctly and the rest wrong.
func answersWithCorrect(qs []Question, n int) map[string]Answer {
	answers := make(map[string]Answer, len(qs))
	for i, q := range qs {
		if i < n {
			answers[q.ID] = q.ExpectedAnswer
			continue
		}
		if q.ExpectedAnswer == AnswerYes {
			answers[q.ID] = AnswerNo
		} else {
			answers[q.ID] = AnswerYes
		}
	}
	return answers
}

func TestScore(t *testing.T) {
	qs := eightQuestions()

	tests := []struct {
		correct int
		score   int
		passed  bool
	}{
		{correct: 8, score: 100, passed: true},
		{correct: 7, score: 88, passed: true},
		{correct: 6, score: 75, passed: true},
		{correct: 5, score: 63, passed: false},
		{correct: 4, score: 50, passed: false},
		{correct: 0, score: 0, passed: false},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d of 8", tt.correct), func(t *testing.T) {
			res := Score(qs, answersWithCorrect(qs, tt.correct))

			assert.Equal(t, tt.correct, res.Correct)
			assert.Equal(t, 8, res.Total)
			assert.Equal(t, tt.score, res.Score)
			assert.Equal(t, tt.passed, res.Passed)
		})
	}

	t.Run("missing answers are wrong", func(t *testing.T) {
		answers := answersWithCorrect(qs, 8)
		delete(answers, qs[0].ID)
		delete(answers, qs[1].ID)
		delete(answers, qs[2].ID)

		res := Score(qs, answers)

		assert.Equal(t, 5, res.Correct)
		assert.Equal(t, 63, res.Score)
		assert.False(t, res.Passed)
	})

	t.Run("unknown question ids are ignored", func(t *testing.T) {
		answers := answersWithCorrect(qs, 6)
		answers["not-presented"] = AnswerYes

		res := Score(qs, answers)

		assert.Equal(t, 75, res.Score)
		assert.True(t, res.Passed)
	})

	t.Run("answers compare exactly", func(t *testing.T) {
		answers := answersWithCorrect(qs, 8)
		answers[qs[0].ID] = Answer("YES")

		res := Score(qs, answers)

		assert.Equal(t, 7, res.Correct)
	})

	t.Run("scoring is independent per call", func(t *testing.T) {
		answers := answersWithCorrect(qs, 6)

		first := Score(qs, answers)
		second := Score(qs, answers)

		assert.Equal(t, first, second)
	})

	t.Run("no questions", func(t *testing.T) {
		res := Score(nil, nil)

		assert.Zero(t, res.Score)
		assert.False(t, res.Passed)
	})
}
