package quiz

import (
	"errors"
	"math/rand/v2"
	"sync"

	"internship-service/internal/internship"
)

const (
	GeneralPerQuiz   = 4
	TechnicalPerQuiz = 4
)

var ErrInsufficientQuestions = errors.New("internship needs at least 4 technical questions")

// Quiz is an assembled, shuffled set of questions.
type Quiz struct {
	Questions []Question `json:"questions"`
}

// Engine draws quizzes. It is safe for concurrent use.
type Engine struct {
	mu      sync.Mutex
	rng     *rand.Rand
	general []Question
}

// NewEngine uses src for every draw; a nil src seeds from the runtime.
func NewEngine(src rand.Source) *Engine {
	if src == nil {
		src = rand.NewPCG(rand.Uint64(), rand.Uint64())
	}
	return &Engine{
		rng:     rand.New(src),
		general: GeneralPool,
	}
}

// Assemble draws 4 general and 4 technical questions without replacement and
// shuffles them together.
func (e *Engine) Assemble(technical []internship.TechnicalQuestion) (*Quiz, error) {
	if len(technical) < TechnicalPerQuiz {
		return nil, ErrInsufficientQuestions
	}

	tech := make([]Question, len(technical))
	for i, q := range technical {
		tech[i] = FromTechnical(q)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	questions := make([]Question, 0, GeneralPerQuiz+TechnicalPerQuiz)
	questions = append(questions, e.sample(e.general, GeneralPerQuiz)...)
	questions = append(questions, e.sample(tech, TechnicalPerQuiz)...)
	e.rng.Shuffle(len(questions), func(i, j int) {
		questions[i], questions[j] = questions[j], questions[i]
	})

	return &Quiz{Questions: questions}, nil
}

// sample picks n distinct elements uniformly; callers hold e.mu.
func (e *Engine) sample(pool []Question, n int) []Question {
	idx := e.rng.Perm(len(pool))[:n]
	out := make([]Question, n)
	for i, j := range idx {
		out[i] = pool[j]
	}
	return out
}
