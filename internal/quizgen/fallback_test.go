package quizgen

import (
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/quizcraft/internal/quiz"
)

const twoSentences = "Mitochondria are the powerhouse of the cell in most organisms. " +
	"Ribosomes translate messenger RNA into chains of amino acids! Short one. Tiny?"

func seeded() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

func TestFallback_BoundedByCandidates(t *testing.T) {
	got := NewFallback(seeded()).Generate(twoSentences, 5, quiz.Easy)

	require.NoError(t, got.Validate())
	assert.Equal(t, FallbackTitle, got.Title)
	assert.Equal(t, quiz.Easy, got.Difficulty)
	require.Len(t, got.Questions, 2)

	for _, q := range got.Questions {
		assert.Len(t, q.Options, quiz.OptionCount)
		assert.Equal(t, "", q.Explanation)
		assert.Equal(t, q.Text, q.Correct(), "the question asks for its own sentence")
		// One other sentence plus two placeholders.
		placeholders := 0
		for _, o := range q.Options {
			if o == MissingDistractor {
				placeholders++
			}
		}
		assert.Equal(t, 2, placeholders)
	}
	assert.NotEqual(t, got.Questions[0].Text, got.Questions[1].Text)
}

func TestFallback_UnseededStillValid(t *testing.T) {
	for i := 0; i < 20; i++ {
		got := NewFallback(nil).Generate(twoSentences, 5, quiz.Medium)
		require.NoError(t, got.Validate())
		assert.Len(t, got.Questions, 2)
	}
}

func TestFallback_EmptyInput(t *testing.T) {
	for _, in := range []string{"", "   ", "Too short."} {
		got := NewFallback(seeded()).Generate(in, 5, quiz.Hard)
		require.NoError(t, got.Validate(), "input %q", in)
		require.Len(t, got.Questions, 1)
		q := got.Questions[0]
		assert.Equal(t, strings.TrimSpace(in), q.Text)
		assert.Equal(t, strings.TrimSpace(in), q.Correct())
	}
}

func TestFallback_CountClamped(t *testing.T) {
	got := NewFallback(seeded()).Generate(twoSentences, 0, "")
	require.Len(t, got.Questions, 1)
	assert.Equal(t, quiz.Medium, got.Difficulty)
}

func TestFallback_Deterministic(t *testing.T) {
	text := strings.Repeat("This sentence number is long enough to qualify for use. ", 1) +
		"Second sentence that is certainly long enough to count here. " +
		"Third sentence which also passes the thirty character limit. " +
		"Fourth sentence is included to give three full distractors. " +
		"Fifth and final sentence closes out the sample paragraph."

	a := NewFallback(seeded()).Generate(text, 3, quiz.Medium)
	b := NewFallback(seeded()).Generate(text, 3, quiz.Medium)
	assert.Equal(t, a, b)

	require.Len(t, a.Questions, 3)
	for _, q := range a.Questions {
		assert.NotContains(t, q.Options, MissingDistractor)
		assert.Equal(t, q.Text, q.Correct())
	}
}

func TestFallback_TruncatesAndQuotes(t *testing.T) {
	long := `He said "` + strings.Repeat("x", 250) + `" loudly.`
	got := NewFallback(seeded()).Generate(long, 1, quiz.Medium)
	q := got.Questions[0]

	assert.NotContains(t, q.Text, `"`)
	assert.Equal(t, 203, len([]rune(q.Text)))
	assert.True(t, strings.HasSuffix(q.Text, "..."))

	correct := q.Correct()
	assert.Equal(t, 133, len([]rune(correct)))
	assert.True(t, strings.HasPrefix(correct, `He said "`))
}

func TestCandidateSentences(t *testing.T) {
	got := candidateSentences("First sentence is long enough to be kept here. short. " +
		"Is this question also long enough to keep?  Yes!\nAnother line that should be kept too!")
	assert.Equal(t, []string{
		"First sentence is long enough to be kept here.",
		"Is this question also long enough to keep?",
		"Another line that should be kept too!",
	}, got)

	assert.Equal(t, []string{"tiny"}, candidateSentences("  tiny  "))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("  abc  ", 5))
	assert.Equal(t, "ab...", truncate("abcdef", 2))
	assert.Equal(t, "héll...", truncate("héllo wörld", 4))
}
