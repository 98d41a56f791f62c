package orchestrator

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Sai-Roopesh/becomeAnAuthor-sub003/internal/contextpack"
)

// ParseSourceTypes parses a comma-separated list of source types. An empty
// list selects every type.
func ParseSourceTypes(list string) ([]contextpack.SourceType, error) {
	var types []contextpack.SourceType
	for _, part := range strings.Split(list, ",") {
		name := strings.ToLower(strings.TrimSpace(part))
		if name == "" {
			continue
		}
		known := false
		for _, t := range contextpack.SourceTypes {
			if string(t) == name {
				known = true
				break
			}
		}
		if !known {
			return nil, fmt.Errorf("unknown source type %q", name)
		}
		types = append(types, contextpack.SourceType(name))
	}
	return types, nil
}

// projectKey names a project for answer storage. It uses the absolute project
// path so the same book opened from different working directories shares
// answers.
func projectKey(dir string) string {
	if dir == "" {
		dir = "."
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return filepath.Clean(dir)
	}
	return abs
}
