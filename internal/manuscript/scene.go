package manuscript

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const frontmatterDelim = "---"

// Scene is a single unit of prose.
type Scene struct {
	ID            string
	Title         string
	Order         int
	Status        string
	POVCharacter  string
	ExcludeFromAI bool
	UpdatedAt     time.Time
	Content       string
	Path          string
}

type sceneMeta struct {
	ID            string `yaml:"id"`
	Title         string `yaml:"title"`
	Order         int    `yaml:"order"`
	Status        string `yaml:"status"`
	POVCharacter  string `yaml:"povCharacter"`
	ExcludeFromAI bool   `yaml:"excludeFromAI"`
	UpdatedAt     string `yaml:"updatedAt"`
}

func loadScenes(dir string) ([]Scene, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.md"))
	if err != nil {
		return nil, fmt.Errorf("list scenes: %w", err)
	}

	scenes := make([]Scene, 0, len(paths))
	for _, path := range paths {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read scene: %w", err)
		}
		scene, err := ParseScene(string(raw))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		if scene.ID == "" {
			scene.ID = strings.TrimSuffix(filepath.Base(path), ".md")
		}
		if scene.UpdatedAt.IsZero() {
			if scene.UpdatedAt, err = modTime(path); err != nil {
				return nil, err
			}
		}
		scene.Path = path
		scenes = append(scenes, scene)
	}
	return scenes, nil
}

// ParseScene splits a scene file into its YAML frontmatter and prose body.
func ParseScene(raw string) (Scene, error) {
	parts := strings.SplitN(raw, frontmatterDelim, 3)
	if len(parts) < 3 || strings.TrimSpace(parts[0]) != "" {
		return Scene{}, fmt.Errorf("%w: missing frontmatter", ErrInvalidScene)
	}

	var meta sceneMeta
	if err := yaml.Unmarshal([]byte(parts[1]), &meta); err != nil {
		return Scene{}, fmt.Errorf("%w: %v", ErrInvalidScene, err)
	}

	status := meta.Status
	if status == "" {
		status = "draft"
	}

	return Scene{
		ID:            meta.ID,
		Title:         meta.Title,
		Order:         meta.Order,
		Status:        status,
		POVCharacter:  meta.POVCharacter,
		ExcludeFromAI: meta.ExcludeFromAI,
		UpdatedAt:     parseTime(meta.UpdatedAt),
		Content:       strings.TrimSpace(parts[2]),
	}, nil
}
