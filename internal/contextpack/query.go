package contextpack

import (
	"strings"
	"unicode"
)

// minTermLength is the shortest term kept by NormalizeQuery; shorter words are
// treated as noise.
const minTermLength = 3

// NormalizeQuery turns a free-text query into its distinct significant terms, in
// first-seen order. The query is lowercased, every character outside
// [a-z0-9] and whitespace is removed, and terms of two characters or fewer are
// dropped. An empty result makes scoring fall back to type priority alone.
func NormalizeQuery(query string) []string {
	var b strings.Builder
	for _, r := range strings.ToLower(query) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		}
	}

	fields := strings.Fields(b.String())
	terms := make([]string, 0, len(fields))
	seen := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		if len(f) < minTermLength {
			continue
		}
		if _, dup := seen[f]; dup {
			continue
		}
		seen[f] = struct{}{}
		terms = append(terms, f)
	}
	return terms
}
