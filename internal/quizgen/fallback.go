package quizgen

import (
	"math/rand/v2"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/abhisek/quizcraft/internal/quiz"
)

const (
	// FallbackTitle names quizzes built without the model.
	FallbackTitle = "Fallback Quiz (generated locally)"

	// MissingDistractor pads questions when the text has too few sentences.
	MissingDistractor = "Option not in text"

	minSentenceLen = 30
	optionLen      = 130
	questionLen    = 200
)

var sentenceEnd = regexp.MustCompile(`[.!?]\s+`)

// Fallback builds multiple-choice questions from the source sentences
// themselves. It cannot fail. A Fallback is not safe for concurrent use
// when it owns a *rand.Rand.
type Fallback struct {
	rng *rand.Rand
}

// NewFallback creates a Fallback. A nil rng uses the unseeded global source.
func NewFallback(rng *rand.Rand) *Fallback {
	return &Fallback{rng: rng}
}

// Generate returns a canonical quiz with up to count questions (at least
// one). Each question asks for a sentence of the source and offers other
// sentences as distractors.
func (f *Fallback) Generate(source string, count int, difficulty quiz.Difficulty) *quiz.Quiz {
	if difficulty == "" {
		difficulty = quiz.Medium
	}
	count = max(1, count)

	sentences := candidateSentences(source)
	f.shuffle(len(sentences), func(i, j int) {
		sentences[i], sentences[j] = sentences[j], sentences[i]
	})

	n := min(count, max(1, len(sentences)))
	questions := make([]quiz.Question, 0, n)
	for i := 0; i < n; i++ {
		questions = append(questions, f.question(sentences, i))
	}

	return &quiz.Quiz{
		Title:      FallbackTitle,
		Difficulty: difficulty,
		Questions:  questions,
	}
}

func (f *Fallback) question(sentences []string, i int) quiz.Question {
	correct := sentences[i]

	others := make([]string, 0, len(sentences)-1)
	for j, s := range sentences {
		if j != i {
			others = append(others, s)
		}
	}
	f.shuffle(len(others), func(a, b int) {
		others[a], others[b] = others[b], others[a]
	})

	distractors := others
	if len(distractors) > quiz.OptionCount-1 {
		distractors = distractors[:quiz.OptionCount-1]
	}

	answer := truncate(correct, optionLen)
	options := make([]string, 0, quiz.OptionCount)
	options = append(options, answer)
	for _, d := range distractors {
		options = append(options, truncate(d, optionLen))
	}
	for len(options) < quiz.OptionCount {
		options = append(options, MissingDistractor)
	}

	f.shuffle(len(options), func(a, b int) {
		options[a], options[b] = options[b], options[a]
	})

	return quiz.Question{
		Text:        strings.ReplaceAll(truncate(correct, questionLen), `"`, "'"),
		Options:     options,
		AnswerIndex: indexOf(options, answer),
		Explanation: "",
	}
}

func (f *Fallback) shuffle(n int, swap func(i, j int)) {
	if f.rng == nil {
		rand.Shuffle(n, swap)
		return
	}
	f.rng.Shuffle(n, swap)
}

// candidateSentences splits text after sentence punctuation and keeps the
// trimmed sentences longer than minSentenceLen runes. With none left, the
// whole trimmed text is the only candidate.
func candidateSentences(text string) []string {
	var out []string
	start := 0
	for _, loc := range sentenceEnd.FindAllStringIndex(text, -1) {
		out = appendSentence(out, text[start:loc[0]+1])
		start = loc[1]
	}
	out = appendSentence(out, text[start:])

	if len(out) == 0 {
		return []string{strings.TrimSpace(text)}
	}
	return out
}

func appendSentence(out []string, s string) []string {
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) > minSentenceLen {
		out = append(out, s)
	}
	return out
}

// truncate trims s and cuts it to n runes, marking the cut with "...".
func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n]) + "..."
}
