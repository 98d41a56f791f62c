package contextpack

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestEstimateTokens(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{name: "empty", text: "", want: 0},
		{name: "one char", text: "a", want: 1},
		{name: "exact multiple", text: "abcd", want: 1},
		{name: "rounds up", text: "abcde", want: 2},
		{name: "counts code points", text: "héllo", want: 2},
		{name: "emoji counts once", text: "😀😀😀😀😀", want: 2},
		{name: "longer text", text: strings.Repeat("x", 4001), want: 1001},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EstimateTokens(tt.text); got != tt.want {
				t.Errorf("EstimateTokens(%q) = %d, want %d", tt.text, got, tt.want)
			}
		})
	}
}

func TestTruncateToTokens_ShortTextUnchanged(t *testing.T) {
	text := "The harbor was quiet."
	if got := TruncateToTokens(text, 100); got != text {
		t.Errorf("expected text unchanged, got %q", got)
	}

	exact := strings.Repeat("a", 40)
	if got := TruncateToTokens(exact, 10); got != exact {
		t.Errorf("expected text at the limit unchanged, got %q", got)
	}
}

func TestTruncateToTokens_CutsAtWordBoundary(t *testing.T) {
	text := strings.Repeat("word ", 100)

	got := TruncateToTokens(text, 10)

	want := "word word word word word word" + TruncationMarker
	if got != want {
		t.Errorf("unexpected truncation:\n got %q\nwant %q", got, want)
	}
	if EstimateTokens(got) > 10 {
		t.Errorf("truncated text estimates %d tokens, want <= 10", EstimateTokens(got))
	}
}

func TestTruncateToTokens_HardCutWithoutBoundary(t *testing.T) {
	text := strings.Repeat("x", 200)

	got := TruncateToTokens(text, 10)

	if !strings.HasSuffix(got, "[...]") {
		t.Fatalf("expected marker suffix, got %q", got)
	}
	body := strings.TrimSuffix(got, TruncationMarker)
	if body != strings.Repeat("x", 34) {
		t.Errorf("expected a 34-char hard cut, got %d chars", len(body))
	}
	if EstimateTokens(got) != 10 {
		t.Errorf("expected exactly 10 tokens, got %d", EstimateTokens(got))
	}
}

func TestTruncateToTokens_IgnoresEarlyBoundary(t *testing.T) {
	// The only space sits well before the final quarter, so the cut stays hard.
	text := "ab " + strings.Repeat("y", 200)

	got := TruncateToTokens(text, 20)

	body := strings.TrimSuffix(got, TruncationMarker)
	if utf8.RuneCountInString(body) != 74 {
		t.Errorf("expected hard cut at 74 chars, got %d", utf8.RuneCountInString(body))
	}
}

func TestTruncateToTokens_TrimsTrailingWhitespace(t *testing.T) {
	text := strings.Repeat("line of prose\n\n", 20)

	got := TruncateToTokens(text, 12)

	body := strings.TrimSuffix(got, TruncationMarker)
	if strings.TrimRight(body, " \n") != body {
		t.Errorf("expected trailing whitespace trimmed, got %q", body)
	}
}

func TestTruncateToTokens_NeverSplitsRunes(t *testing.T) {
	text := strings.Repeat("é", 500)

	got := TruncateToTokens(text, 25)

	if !utf8.ValidString(got) {
		t.Fatal("truncated text is not valid UTF-8")
	}
	if EstimateTokens(got) > 25 {
		t.Errorf("expected <= 25 tokens, got %d", EstimateTokens(got))
	}
}

func TestTruncateToTokens_StaysWithinTarget(t *testing.T) {
	texts := []string{
		strings.Repeat("The dragon circled the tower twice. ", 300),
		strings.Repeat("z", 5000),
		strings.Repeat("a b\n", 900),
	}

	for _, text := range texts {
		for _, target := range []int{2, 3, 10, 250, 777} {
			got := TruncateToTokens(text, target)
			if EstimateTokens(got) > target {
				t.Errorf("target %d: got %d tokens", target, EstimateTokens(got))
			}
		}
	}
}
