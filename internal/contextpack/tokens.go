package contextpack

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	charsPerToken = 4

	// TruncationMarker is appended to every shortened block.
	TruncationMarker = "\n[...]"

	// boundaryFraction is how far into the kept text a word boundary must be
	// for the cut to move back to it.
	boundaryFraction = 0.75
)

// EstimateTokens approximates the token count of text as ceil(chars / 4).
// Characters are Unicode code points, so a character outside the Basic
// Multilingual Plane such as an emoji counts once, not as two UTF-16 units.
func EstimateTokens(text string) int {
	n := utf8.RuneCountInString(text)
	return (n + charsPerToken - 1) / charsPerToken
}

// TruncateToTokens shortens text to fit within targetTokens. Room for the
// TruncationMarker is reserved first; the cut then moves back to the last space or
// newline when one falls in the final quarter of the kept text, so words are not
// severed. Shortened text always ends with TruncationMarker and, for targets of at
// least two tokens, never estimates above targetTokens.
func TruncateToTokens(text string, targetTokens int) string {
	if targetTokens < 0 {
		targetTokens = 0
	}
	targetChars := targetTokens * charsPerToken
	if utf8.RuneCountInString(text) <= targetChars {
		return text
	}

	limit := targetChars - utf8.RuneCountInString(TruncationMarker)
	if limit < 0 {
		limit = 0
	}

	runes := []rune(text)
	kept := runes[:limit]
	if cut := lastBoundary(kept); cut >= 0 && float64(cut) >= boundaryFraction*float64(limit) {
		kept = kept[:cut]
	}

	return strings.TrimRightFunc(string(kept), unicode.IsSpace) + TruncationMarker
}

// lastBoundary returns the index of the last space or newline, or -1.
func lastBoundary(runes []rune) int {
	for i := len(runes) - 1; i >= 0; i-- {
		if runes[i] == ' ' || runes[i] == '\n' {
			return i
		}
	}
	return -1
}
