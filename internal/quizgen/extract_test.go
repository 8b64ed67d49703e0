package quizgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleObject = `{"quiz_title":"T","difficulty":"Medium","questions":[{"question":"Q1?","options":["a","b","c","d"],"answer_index":1}]}`

func sampleValue() map[string]any {
	return map[string]any{
		"quiz_title": "T",
		"difficulty": "Medium",
		"questions": []any{
			map[string]any{
				"question":     "Q1?",
				"options":      []any{"a", "b", "c", "d"},
				"answer_index": float64(1),
			},
		},
	}
}

func TestExtractJSON_RecoversObject(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"bare", sampleObject},
		{"padded", "\n  " + sampleObject + "  \n"},
		{"prose before", "Here you go: " + sampleObject},
		{"prose around", "Sure! " + sampleObject + " Let me know if you need more."},
		{"fenced json", "Here you go:\n```json\n" + sampleObject + "\n```"},
		{"fenced uppercase tag", "```JSON\n" + sampleObject + "\n```"},
		{"fenced untagged", "```\n" + sampleObject + "\n```\nThanks"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, ok := ExtractJSON(tt.raw)
			require.True(t, ok)
			assert.Equal(t, sampleValue(), v)
		})
	}
}

func TestExtractJSON_TopLevelArray(t *testing.T) {
	v, ok := ExtractJSON(`The questions: [{"question":"Q","options":["a","b"],"answer":"a"}] done.`)
	require.True(t, ok)
	arr, isArr := v.([]any)
	require.True(t, isArr)
	assert.Len(t, arr, 1)
}

func TestExtractJSON_NoneFound(t *testing.T) {
	for _, raw := range []string{
		"",
		"   ",
		"I cannot comply.",
		"null",
		"The answer is {not json} and [neither is this",
		"{ unbalanced",
	} {
		v, ok := ExtractJSON(raw)
		assert.False(t, ok, "ExtractJSON(%q)", raw)
		assert.Nil(t, v)
	}
}

func TestExtractJSON_BalancedFailureFallsThrough(t *testing.T) {
	// The first '{' opens a span that is not JSON; the fenced block still wins.
	raw := "Use {braces} carefully.\n```json\n{\"quiz_title\": \"x\"}\n```"
	v, ok := ExtractJSON(raw)
	require.True(t, ok)
	assert.Equal(t, map[string]any{"quiz_title": "x"}, v)
}

func TestExtractJSON_GreedyLastResort(t *testing.T) {
	// The balanced scan stops at the brace inside the string value; only the
	// greedy match spans the whole object.
	v, ok := ExtractJSON(`Answer: {"a": "}"} end`)
	require.True(t, ok)
	assert.Equal(t, map[string]any{"a": "}"}, v)

	// "[x]" fails, '{' is absent, there is no fence and the greedy span
	// `[x] then ["a", "b"]` is not JSON either.
	v, ok = ExtractJSON(`note [x] then ["a", "b"]`)
	assert.False(t, ok)
	assert.Nil(t, v)

	_, ok = ExtractJSON("Result: [[1, 2], [3, oops\n]")
	assert.False(t, ok)
}

func TestExtractJSON_Scalars(t *testing.T) {
	v, ok := ExtractJSON("42")
	require.True(t, ok)
	assert.Equal(t, float64(42), v)
	assert.False(t, IsValidQuiz(v, 1))
}
