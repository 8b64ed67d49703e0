package quizgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"   ", ""},
		{"one", "one"},
		{"  leading and trailing  ", "leading and trailing"},
		{"line one\nline two\r\n\tline three", "line one line two line three"},
		{"many     spaces and nbsp", "many spaces and nbsp"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeText(tt.in), "NormalizeText(%q)", tt.in)
	}
}
