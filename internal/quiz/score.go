package quiz

import "math"

const PassingScore = 75

type Result struct {
	Score   int  `json:"score"`
	Passed  bool `json:"passed"`
	Correct int  `json:"correct"`
	Total   int  `json:"total"`
}

// Score grades answers (keyed by question ID) against the presented questions.
// Missing answers are wrong. The score is the rounded percentage correct.
func Score(presented []Question, answers map[string]Answer) Result {
	res := Result{Total: len(presented)}
	if res.Total == 0 {
		return res
	}

	for _, q := range presented {
		if a, ok := answers[q.ID]; ok && a == q.ExpectedAnswer {
			res.Correct++
		}
	}

	res.Score = int(math.Round(float64(res.Correct) / float64(res.Total) * 100))
	res.Passed = res.Score >= PassingScore
	return res
}
