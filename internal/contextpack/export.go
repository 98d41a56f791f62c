package contextpack

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gowebpki/jcs"
)

// ExportFormat represents supported export formats
type ExportFormat string

const (
	FormatJSON ExportFormat = "json"
	FormatText ExportFormat = "text"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported export format")
)

// ResultExport is the exported view of a pack. Blocks carry their content so
// the export is a complete record of what the model was shown.
type ResultExport struct {
	Signature      string        `json:"signature"`
	TokenBudget    int           `json:"token_budget"`
	TotalTokens    int           `json:"total_tokens"`
	Truncated      bool          `json:"truncated"`
	WarningMessage *string       `json:"warning_message"`
	Excluded       []string      `json:"excluded"`
	Blocks         []BlockExport `json:"blocks"`
}

// BlockExport is one exported evidence block.
type BlockExport struct {
	Position  int        `json:"position"`
	ID        string     `json:"id"`
	Type      SourceType `json:"type"`
	Label     string     `json:"label"`
	Score     float64    `json:"score"`
	Tokens    int        `json:"tokens"`
	Truncated bool       `json:"truncated"`
	UpdatedAt string     `json:"updated_at"`
	Content   string     `json:"content"`
}

// ExportResult writes a pack in the given format. JSON output is RFC 8785
// canonical so identical packs export byte-for-byte identically.
func ExportResult(result Result, format string, writer io.Writer) error {
	switch ExportFormat(strings.ToLower(strings.TrimSpace(format))) {
	case FormatJSON:
		return exportJSON(buildExport(result), writer)
	case FormatText:
		_, err := io.WriteString(writer, result.Serialized+"\n")
		return err
	default:
		return fmt.Errorf("%w: %s (supported: json, text)", ErrUnsupportedFormat, format)
	}
}

func buildExport(result Result) ResultExport {
	blocks := make([]BlockExport, len(result.Blocks))
	for i, b := range result.Blocks {
		blocks[i] = BlockExport{
			Position:  i + 1,
			ID:        b.ID,
			Type:      b.Type,
			Label:     b.Label,
			Score:     b.Score,
			Tokens:    b.Tokens,
			Truncated: b.Truncated,
			UpdatedAt: formatUpdatedAt(b.UpdatedAt),
			Content:   b.Content,
		}
	}

	excluded := result.Excluded
	if excluded == nil {
		excluded = []string{}
	}

	return ResultExport{
		Signature:      result.Signature,
		TokenBudget:    result.TokenBudget,
		TotalTokens:    result.TotalTokens,
		Truncated:      result.Truncated,
		WarningMessage: result.WarningMessage,
		Excluded:       excluded,
		Blocks:         blocks,
	}
}

func exportJSON(export ResultExport, writer io.Writer) error {
	raw, err := json.Marshal(export)
	if err != nil {
		return fmt.Errorf("marshal export: %w", err)
	}
	canonical, err := jcs.Transform(raw)
	if err != nil {
		return fmt.Errorf("canonicalize export: %w", err)
	}
	if _, err := writer.Write(append(canonical, '\n')); err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	return nil
}
