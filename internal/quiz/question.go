package quiz

import (
	"fmt"

	"internship-service/internal/internship"
)

type Kind string

const (
	KindGeneral   Kind = "general"
	KindTechnical Kind = "technical"
)

type Answer string

const (
	AnswerYes Answer = "yes"
	AnswerNo  Answer = "no"
)

func AnswerOf(b bool) Answer {
	if b {
		return AnswerYes
	}
	return AnswerNo
}

// Question is one presented yes/no item. Notes are informational and never scored.
type Question struct {
	ID             string `json:"id"`
	Kind           Kind   `json:"kind"`
	Text           string `json:"text"`
	ExpectedAnswer Answer `json:"expectedAnswer"`
	Notes          string `json:"notes"`
}

// GeneralPool is the fixed internship-independent screening set.
var GeneralPool = []Question{
	{
		ID: "g1", Kind: KindGeneral, ExpectedAnswer: AnswerYes,
		Text:  "Is it acceptable to ask a mentor for clarification when a task is unclear?",
		Notes: "Asking early saves both sides time.",
	},
	{
		ID: "g2", Kind: KindGeneral, ExpectedAnswer: AnswerNo,
		Text:  "Should confidential company data be shared on personal social media?",
		Notes: "Interns are usually bound by the same confidentiality rules as staff.",
	},
	{
		ID: "g3", Kind: KindGeneral, ExpectedAnswer: AnswerYes,
		Text:  "Should you notify your supervisor in advance if you cannot meet a deadline?",
		Notes: "Early notice lets the team re-plan.",
	},
	{
		ID: "g4", Kind: KindGeneral, ExpectedAnswer: AnswerNo,
		Text:  "Is it fine to skip team meetings when you have no updates?",
		Notes: "Meetings are also where you hear about blockers and changes.",
	},
	{
		ID: "g5", Kind: KindGeneral, ExpectedAnswer: AnswerYes,
		Text:  "Is constructive feedback an expected part of an internship?",
		Notes: "Feedback is how most of the learning happens.",
	},
	{
		ID: "g6", Kind: KindGeneral, ExpectedAnswer: AnswerNo,
		Text:  "Can you present a colleague's work as your own if it helps the project?",
		Notes: "Attribution matters regardless of the outcome.",
	},
	{
		ID: "g7", Kind: KindGeneral, ExpectedAnswer: AnswerYes,
		Text:  "Should you keep notes on what you learn during the internship?",
		Notes: "Notes make the final report and later interviews easier.",
	},
	{
		ID: "g8", Kind: KindGeneral, ExpectedAnswer: AnswerNo,
		Text:  "Is punctuality irrelevant when working remotely?",
		Notes: "Remote teams depend on people being available when agreed.",
	},
}

// FromTechnical converts an employer's question into a presented question.
func FromTechnical(q internship.TechnicalQuestion) Question {
	return Question{
		ID:             fmt.Sprintf("t%d", q.ID),
		Kind:           KindTechnical,
		Text:           q.Question,
		ExpectedAnswer: AnswerOf(q.CorrectAnswer),
		Notes:          q.Notes,
	}
}
