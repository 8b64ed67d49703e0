package quizgen

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/abhisek/quizcraft/internal/quiz"
)

const (
	// DefaultTitle names quizzes the model returned without a title.
	DefaultTitle = "Quiz on provided content"

	// PlaceholderOption pads questions with fewer than four options.
	PlaceholderOption = "(option)"
)

// Normalize narrows a value accepted by IsValidQuiz into a canonical quiz.
// difficulty is used when the value carries no usable difficulty of its own.
// Non-object question entries are skipped, so a value that failed validation
// may yield a quiz without questions; callers check Quiz.Validate.
// v is never modified.
func Normalize(v any, difficulty quiz.Difficulty) *quiz.Quiz {
	if difficulty == "" {
		difficulty = quiz.Medium
	}

	out := &quiz.Quiz{
		Title:      DefaultTitle,
		Difficulty: difficulty,
	}

	if m, ok := v.(map[string]any); ok {
		if title := strings.TrimSpace(stringify(m["quiz_title"])); title != "" {
			out.Title = title
		}
		if d, err := quiz.ParseDifficulty(stringify(m["difficulty"])); err == nil {
			out.Difficulty = d
		}
	}

	for _, item := range questionItems(v) {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		out.Questions = append(out.Questions, normalizeQuestion(m))
	}

	return out
}

func normalizeQuestion(m map[string]any) quiz.Question {
	var options []string
	if raw, ok := m["options"].([]any); ok {
		options = make([]string, 0, max(len(raw), quiz.OptionCount))
		for _, o := range raw {
			options = append(options, stringify(o))
		}
	}
	for len(options) < quiz.OptionCount {
		options = append(options, PlaceholderOption)
	}

	idx, ok := answerIndex(m["answer_index"], len(options))
	if !ok {
		idx = 0
		if answer, present := m["answer"]; present {
			idx = indexOf(options, stringify(answer))
		}
	}

	if len(options) > quiz.OptionCount {
		if idx >= quiz.OptionCount {
			// Keep the correct option by moving it into the last slot.
			options[quiz.OptionCount-1] = options[idx]
			idx = quiz.OptionCount - 1
		}
		options = options[:quiz.OptionCount]
	}

	return quiz.Question{
		Text:        stringify(m["question"]),
		Options:     options,
		AnswerIndex: idx,
		Explanation: stringify(m["explanation"]),
	}
}

// answerIndex reads a usable answer_index: an integral number, or a string
// holding one, inside [0, n).
func answerIndex(v any, n int) (int, bool) {
	var f float64
	switch t := v.(type) {
	case float64:
		f = t
	case int:
		f = float64(t)
	case json.Number:
		parsed, err := t.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case string:
		parsed, err := strconv.Atoi(strings.TrimSpace(t))
		if err != nil {
			return 0, false
		}
		f = float64(parsed)
	default:
		return 0, false
	}

	if f != math.Trunc(f) || f < 0 || f >= float64(n) {
		return 0, false
	}
	return int(f), true
}

// indexOf returns the position of s in options, or 0 when absent.
func indexOf(options []string, s string) int {
	for i, o := range options {
		if o == s {
			return i
		}
	}
	return 0
}

// stringify renders a scalar JSON value as text. Missing values and null
// become "". Nested arrays and objects are re-encoded as JSON.
func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case json.Number:
		return t.String()
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return ""
		}
		return string(b)
	}
}
