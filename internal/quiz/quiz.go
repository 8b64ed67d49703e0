package quiz

import (
	"errors"
	"fmt"
	"strings"
)

// OptionCount is the number of options every canonical question carries.
const OptionCount = 4

// Difficulty is the requested or reported difficulty of a quiz.
type Difficulty string

const (
	Easy   Difficulty = "Easy"
	Medium Difficulty = "Medium"
	Hard   Difficulty = "Hard"
)

// Difficulties lists the supported difficulties in ascending order.
var Difficulties = []Difficulty{Easy, Medium, Hard}

// ParseDifficulty accepts a difficulty label in any letter case
// ("easy", "MEDIUM", " Hard ").
func ParseDifficulty(s string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy":
		return Easy, nil
	case "medium":
		return Medium, nil
	case "hard":
		return Hard, nil
	}
	return "", fmt.Errorf("invalid difficulty %q: must be easy, medium or hard", s)
}

func (d Difficulty) String() string { return string(d) }

// Quiz is a canonical multiple-choice quiz. Once produced it is treated as
// immutable; answers are tracked by the caller.
type Quiz struct {
	Title      string     `json:"quiz_title"`
	Difficulty Difficulty `json:"difficulty"`
	Questions  []Question `json:"questions"`
}

// Question is a single multiple-choice question.
type Question struct {
	Text        string   `json:"question"`
	Options     []string `json:"options"`
	AnswerIndex int      `json:"answer_index"`
	Explanation string   `json:"explanation"`
}

// Correct returns the text of the correct option.
func (q Question) Correct() string {
	if q.AnswerIndex < 0 || q.AnswerIndex >= len(q.Options) {
		return ""
	}
	return q.Options[q.AnswerIndex]
}

// ErrNoQuestions is returned by Validate for a quiz without questions.
var ErrNoQuestions = errors.New("quiz has no questions")

// Validate checks the canonical invariants: at least one question, exactly
// four options per question and an answer index pointing into them.
func (q *Quiz) Validate() error {
	if q == nil || len(q.Questions) == 0 {
		return ErrNoQuestions
	}
	for i, qq := range q.Questions {
		if len(qq.Options) != OptionCount {
			return fmt.Errorf("question %d: expected %d options, got %d", i+1, OptionCount, len(qq.Options))
		}
		if qq.AnswerIndex < 0 || qq.AnswerIndex >= OptionCount {
			return fmt.Errorf("question %d: answer_index %d out of range", i+1, qq.AnswerIndex)
		}
	}
	return nil
}
