package manuscript

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// CodexEntry is a reference entry about a character, location, item or piece of
// lore.
type CodexEntry struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Category    string            `json:"category"`
	Aliases     []string          `json:"aliases"`
	Description string            `json:"description"`
	Attributes  map[string]string `json:"attributes"`
	AIContext   string            `json:"aiContext"`
	UpdatedAtMs int64             `json:"updatedAt"`

	// fileTime is the entry file's modification time.
	fileTime time.Time
}

// UpdatedAt returns the entry's updatedAt stamp. Entries without one report
// their file's modification time, or the zero time when neither is known.
func (e CodexEntry) UpdatedAt() time.Time {
	if e.UpdatedAtMs <= 0 {
		return e.fileTime
	}
	return time.UnixMilli(e.UpdatedAtMs).UTC()
}

// Render formats the entry as plain text for a prompt.
func (e CodexEntry) Render() string {
	var lines []string
	if e.Category != "" {
		lines = append(lines, "Category: "+e.Category)
	}
	if len(e.Aliases) > 0 {
		lines = append(lines, "Aliases: "+strings.Join(e.Aliases, ", "))
	}
	if d := strings.TrimSpace(e.Description); d != "" {
		lines = append(lines, d)
	}
	if len(e.Attributes) > 0 {
		keys := make([]string, 0, len(e.Attributes))
		for k := range e.Attributes {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		lines = append(lines, "Attributes:")
		for _, k := range keys {
			lines = append(lines, fmt.Sprintf("- %s: %s", k, e.Attributes[k]))
		}
	}
	if c := strings.TrimSpace(e.AIContext); c != "" {
		lines = append(lines, "AI context: "+c)
	}
	return strings.Join(lines, "\n")
}

func loadCodex(dir string) ([]CodexEntry, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("list codex: %w", err)
	}

	entries := make([]CodexEntry, 0, len(paths))
	for _, path := range paths {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read codex entry: %w", err)
		}
		var entry CodexEntry
		if err := json.Unmarshal(raw, &entry); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidCodex, path, err)
		}
		if entry.ID == "" {
			entry.ID = strings.TrimSuffix(filepath.Base(path), ".json")
		}
		if entry.fileTime, err = modTime(path); err != nil {
			return nil, err
		}
		if entry.Name == "" {
			entry.Name = entry.ID
		}
		entries = append(entries, entry)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		ni, nj := strings.ToLower(entries[i].Name), strings.ToLower(entries[j].Name)
		if ni != nj {
			return ni < nj
		}
		return entries[i].ID < entries[j].ID
	})
	return entries, nil
}
