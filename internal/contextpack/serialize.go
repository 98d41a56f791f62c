package contextpack

import (
	"fmt"
	"strings"
	"time"
)

// isoMillis matches the ISO-8601 form used for provenance lines.
const isoMillis = "2006-01-02T15:04:05.000Z07:00"

// Serialize renders blocks as evidence text. Each block is a pipe-separated
// header line, a provenance line, a "---" separator and the content verbatim;
// blocks are separated by a blank line.
func Serialize(blocks []Block) string {
	parts := make([]string, 0, len(blocks))
	for i, b := range blocks {
		var sb strings.Builder
		fmt.Fprintf(&sb, "#%d | type=%s | id=%s | label=%s | score=%.3f | tokens=%d | truncated=%s\n",
			i+1, b.Type, b.ID, b.Label, b.Score, b.Tokens, yesNo(b.Truncated))
		sb.WriteString("source_updated_at=")
		sb.WriteString(formatUpdatedAt(b.UpdatedAt))
		sb.WriteString("\n---\n")
		sb.WriteString(b.Content)
		parts = append(parts, sb.String())
	}
	return strings.Join(parts, "\n\n")
}

func formatUpdatedAt(t *time.Time) string {
	if t == nil {
		return "unknown"
	}
	return t.UTC().Format(isoMillis)
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
