package narrative

import (
	"errors"
	"strings"

	"github.com/Sai-Roopesh/becomeAnAuthor-sub003/internal/contextpack"
)

var (
	ErrMissingQuestion = errors.New("question is required")
	ErrMissingContext  = errors.New("context pack is required")
)

// AssemblePrompt builds the chat prompt for a question. The pack's serialized
// evidence goes into the system segment and the question becomes the user
// segment. An empty pack still yields a prompt that tells the model no story
// context was available.
func AssemblePrompt(question string, pack *contextpack.Result) (Prompt, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return Prompt{}, ErrMissingQuestion
	}
	if pack == nil {
		return Prompt{}, ErrMissingContext
	}

	return Prompt{
		System: assembleSystemPrompt(pack),
		User:   question,
	}, nil
}

func assembleSystemPrompt(pack *contextpack.Result) string {
	var b strings.Builder

	b.WriteString("You are a writing assistant helping an author with their novel. ")
	b.WriteString("Answer the author's question using the story context below.\n\n")

	if len(pack.Blocks) == 0 {
		b.WriteString("# Story Context\n\n")
		b.WriteString("No story context is available for this question.\n\n")
	} else {
		b.WriteString("# Story Context\n\n")
		b.WriteString("Each block starts with a header naming its type, id, label, relevance score and size, ")
		b.WriteString("then a provenance line with the time the source was last edited.\n\n")
		b.WriteString(pack.Serialized)
		b.WriteString("\n\n")
	}

	if pack.WarningMessage != nil {
		b.WriteString("# Context Notes\n\n")
		b.WriteString(*pack.WarningMessage)
		b.WriteString(" Blocks marked truncated=yes end early; do not assume what follows the cut.\n\n")
	}

	b.WriteString("# Task\n\n")
	b.WriteString("Answer in a few clear paragraphs. ")
	b.WriteString("Base every statement strictly on the story context; do not invent characters, events or motivations. ")
	b.WriteString("Prefer codex entries for facts about characters, places and lore, and scenes for what actually happened. ")
	b.WriteString("When sources disagree, trust the one edited most recently and point out the conflict. ")
	b.WriteString("If the context does not contain the answer, say so plainly.\n")

	return b.String()
}
