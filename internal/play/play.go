// Package play tracks one interactive pass through a quiz: the current
// question, the option under the cursor, recorded answers and the score.
// State lives only in memory.
package play

import "github.com/abhisek/quizcraft/internal/quiz"

// Placeholders used by Feedback.
const (
	NoAnswer      = "(no answer)"
	UnknownAnswer = "(unknown)"
)

// State is the progress through a quiz. The zero value is not usable; call
// New.
type State struct {
	Quiz *quiz.Quiz

	// Current is the index of the displayed question.
	Current int

	// Answers maps question index to the chosen option index. Questions
	// the user never left or submitted from have no entry.
	Answers map[int]int

	// Selected is the option under the cursor for the current question.
	Selected int

	Completed       bool
	Score           int
	ShowExplanation bool
}

// New starts a session on q at the first question.
func New(q *quiz.Quiz) *State {
	s := &State{Quiz: q}
	s.Restart()
	return s
}

// Total returns the number of questions.
func (s *State) Total() int {
	if s.Quiz == nil {
		return 0
	}
	return len(s.Quiz.Questions)
}

// Question returns the displayed question.
func (s *State) Question() quiz.Question {
	return s.Quiz.Questions[s.Current]
}

// Progress returns the fraction of questions before the current one, in
// [0, 1). A completed session reports 1.
func (s *State) Progress() float64 {
	if s.Completed {
		return 1
	}
	return float64(s.Current) / float64(max(1, s.Total()))
}

// Move shifts the cursor by delta, wrapping around the options.
func (s *State) Move(delta int) {
	if s.Completed {
		return
	}
	n := len(s.Question().Options)
	if n == 0 {
		return
	}
	s.Selected = ((s.Selected+delta)%n + n) % n
}

// Choose records option i for the current question.
func (s *State) Choose(i int) bool {
	if s.Completed || i < 0 || i >= len(s.Question().Options) {
		return false
	}
	s.Selected = i
	s.Answers[s.Current] = i
	return true
}

// Next records the selection and moves to the following question. It
// reports false on the last question.
func (s *State) Next() bool {
	return s.jump(s.Current + 1)
}

// Prev records the selection and moves to the previous question. It
// reports false on the first question.
func (s *State) Prev() bool {
	return s.jump(s.Current - 1)
}

func (s *State) jump(to int) bool {
	if s.Completed || to < 0 || to >= s.Total() {
		return false
	}
	s.Answers[s.Current] = s.Selected
	s.Current = to
	s.ShowExplanation = false
	s.Selected = 0
	if a, ok := s.Answers[to]; ok {
		s.Selected = a
	}
	return true
}

// Submit records the selection, scores every question and completes the
// session. Submitting twice is a no-op.
func (s *State) Submit() int {
	if s.Completed {
		return s.Score
	}
	s.Answers[s.Current] = s.Selected

	score := 0
	for i, q := range s.Quiz.Questions {
		if a, ok := s.Answers[i]; ok && a == q.AnswerIndex {
			score++
		}
	}
	s.Score = score
	s.Completed = true
	return score
}

// ToggleExplanation shows or hides the current question's explanation.
func (s *State) ToggleExplanation() {
	s.ShowExplanation = !s.ShowExplanation
}

// Restart clears all answers and returns to the first question.
func (s *State) Restart() {
	s.Current = 0
	s.Answers = make(map[int]int)
	s.Selected = 0
	s.Completed = false
	s.Score = 0
	s.ShowExplanation = false
}

// FeedbackRow is the outcome of one question.
type FeedbackRow struct {
	Number      int // 1-based
	Question    string
	YourAnswer  string
	Correct     string
	Explanation string
	IsCorrect   bool
	Answered    bool
}

// Feedback returns one row per question.
func (s *State) Feedback() []FeedbackRow {
	rows := make([]FeedbackRow, 0, s.Total())
	for i, q := range s.Quiz.Questions {
		row := FeedbackRow{
			Number:      i + 1,
			Question:    q.Text,
			YourAnswer:  NoAnswer,
			Correct:     optionText(q.Options, q.AnswerIndex, UnknownAnswer),
			Explanation: q.Explanation,
		}
		if a, ok := s.Answers[i]; ok {
			row.Answered = true
			row.YourAnswer = optionText(q.Options, a, NoAnswer)
			row.IsCorrect = a == q.AnswerIndex
		}
		rows = append(rows, row)
	}
	return rows
}

func optionText(options []string, i int, missing string) string {
	if i < 0 || i >= len(options) {
		return missing
	}
	return options[i]
}
