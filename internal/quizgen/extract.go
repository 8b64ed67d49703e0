package quizgen

import (
	"encoding/json"
	"regexp"
	"strings"
)

var (
	fencedJSON = regexp.MustCompile("(?i)```(?:json)?\\s*(\\{[\\s\\S]*\\}|\\[[\\s\\S]*\\])\\s*```")
	greedyJSON = regexp.MustCompile(`(\{[\s\S]*\}|\[[\s\S]*\])`)
)

// ExtractJSON locates a JSON value inside raw model output. It tries, in
// order: the whole string, the first balanced bracket span, a fenced code
// block, and a greedy bracket match. It never fails; ok is
// false when no strategy produced a value. A top-level JSON null counts as
// nothing found.
func ExtractJSON(raw string) (any, bool) {
	if strings.TrimSpace(raw) == "" {
		return nil, false
	}

	if v, ok := parseJSON(raw); ok {
		return v, true
	}
	if looksLikeNull(raw) {
		return nil, false
	}

	for _, open := range openers(raw) {
		if v, ok := balancedSpan(raw, open); ok {
			return v, true
		}
	}

	if m := fencedJSON.FindStringSubmatch(raw); m != nil {
		if v, ok := parseJSON(m[1]); ok {
			return v, true
		}
	}

	if m := greedyJSON.FindStringSubmatch(raw); m != nil {
		if v, ok := parseJSON(m[1]); ok {
			return v, true
		}
	}

	return nil, false
}

// openers orders '[' and '{' by their first position in s. An object that
// contains arrays is found before its inner arrays; '[' wins when the text
// starts with an array.
func openers(s string) []byte {
	sq, cu := strings.IndexByte(s, '['), strings.IndexByte(s, '{')
	if cu >= 0 && (sq < 0 || cu < sq) {
		return []byte{'{', '['}
	}
	return []byte{'[', '{'}
}

// balancedSpan scans from the first occurrence of open, tracking depth of
// that bracket pair only. The first span that closes back to depth 0 is
// parsed; later occurrences of open are never tried.
func balancedSpan(s string, open byte) (any, bool) {
	start := strings.IndexByte(s, open)
	if start < 0 {
		return nil, false
	}
	closer := byte('}')
	if open == '[' {
		closer = ']'
	}

	depth := 0
	for i := start; i < len(s); i++ {
		switch s[i] {
		case open:
			depth++
		case closer:
			depth--
			if depth == 0 {
				return parseJSON(s[start : i+1])
			}
		}
	}
	return nil, false
}

func parseJSON(s string) (any, bool) {
	var v any
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		return nil, false
	}
	if v == nil {
		return nil, false
	}
	return v, true
}

func looksLikeNull(s string) bool {
	return strings.TrimSpace(s) == "null"
}
