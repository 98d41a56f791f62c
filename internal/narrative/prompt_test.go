package narrative

import (
	"strings"
	"testing"

	"github.com/Sai-Roopesh/becomeAnAuthor-sub003/internal/contextpack"
)

func testPack() *contextpack.Result {
	r := contextpack.Pack([]contextpack.Source{
		{ID: "c-aria", Type: contextpack.SourceCodex, Label: "Aria Blackwood", Content: "A pilot from the northern reaches."},
		{ID: "s-launch", Type: contextpack.SourceScene, Label: "Launch", Content: "The engines roared as Aria took off."},
	}, contextpack.Options{Query: "Who is Aria?", Model: "gpt-4o"})
	return &r
}

func TestAssemblePrompt_MissingInputs(t *testing.T) {
	if _, err := AssemblePrompt("  ", testPack()); err != ErrMissingQuestion {
		t.Fatalf("expected ErrMissingQuestion, got %v", err)
	}
	if _, err := AssemblePrompt("Who is Aria?", nil); err != ErrMissingContext {
		t.Fatalf("expected ErrMissingContext, got %v", err)
	}
}

func TestAssemblePrompt_Smoke(t *testing.T) {
	pack := testPack()

	prompt, err := AssemblePrompt(" Who is Aria? ", pack)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if prompt.User != "Who is Aria?" {
		t.Fatalf("unexpected user segment: %q", prompt.User)
	}
	if !strings.Contains(prompt.System, pack.Serialized) {
		t.Fatal("system segment is missing the serialized context")
	}
	if !strings.Contains(prompt.System, "# Story Context") {
		t.Fatal("missing context section")
	}
	if strings.Contains(prompt.System, "# Context Notes") {
		t.Fatal("complete pack should not carry context notes")
	}
	if !strings.Contains(prompt.System, "# Task") {
		t.Fatal("missing task instructions")
	}
	// Ranked order survives into the prompt
	if strings.Index(prompt.System, "id=c-aria") > strings.Index(prompt.System, "id=s-launch") {
		t.Fatal("context blocks out of ranked order")
	}
}

func TestAssemblePrompt_EmptyPack(t *testing.T) {
	r := contextpack.Pack(nil, contextpack.Options{Model: "gpt-4o"})

	prompt, err := AssemblePrompt("What happens next?", &r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(prompt.System, "No story context is available") {
		t.Fatal("expected empty-context notice")
	}
	if !strings.Contains(prompt.System, "No context sources with content were available.") {
		t.Fatal("expected pack warning in context notes")
	}
}

func TestAssemblePrompt_TruncatedPack(t *testing.T) {
	r := contextpack.Pack([]contextpack.Source{
		{ID: "n1", Type: contextpack.SourceNovel, Label: "Skyfall", Content: strings.Repeat("prose ", 2000)},
	}, contextpack.Options{Model: "gpt-4o", MaxContextTokens: contextpack.Int(1500)})

	prompt, err := AssemblePrompt("Summarize the book.", &r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(prompt.System, "# Context Notes") {
		t.Fatal("expected context notes for a trimmed pack")
	}
	if !strings.Contains(prompt.System, "truncated=yes") {
		t.Fatal("expected truncated block header")
	}
}
