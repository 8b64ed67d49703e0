package quizgen

import "strings"

// NormalizeText collapses every run of whitespace (including newlines and
// tabs) into a single space and trims both ends.
func NormalizeText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
