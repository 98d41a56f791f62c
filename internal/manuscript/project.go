// Package manuscript loads a novel project from disk and turns it into context
// sources.
//
// A project directory holds a project.yaml describing the book's structure, a
// scenes/ directory of Markdown files with YAML frontmatter and a codex/
// directory of JSON entries for characters, places and lore.
package manuscript

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	projectFile = "project.yaml"
	scenesDir   = "scenes"
	codexDir    = "codex"
)

var (
	ErrProjectNotFound = errors.New("project not found")
	ErrInvalidProject  = errors.New("invalid project file")
	ErrInvalidScene    = errors.New("invalid scene file")
	ErrInvalidCodex    = errors.New("invalid codex entry")
)

// Project is a loaded novel.
type Project struct {
	Dir       string
	Title     string
	Author    string
	Outline   string
	UpdatedAt time.Time
	Acts      []Act
	Scenes    []Scene
	Codex     []CodexEntry
}

// Act groups chapters.
type Act struct {
	ID        string
	Title     string
	Summary   string
	UpdatedAt time.Time
	Chapters  []Chapter
}

// Chapter lists the ids of its scenes in reading order.
type Chapter struct {
	ID        string
	Title     string
	Summary   string
	UpdatedAt time.Time
	SceneIDs  []string
}

type projectYAML struct {
	Title     string    `yaml:"title"`
	Author    string    `yaml:"author"`
	Outline   string    `yaml:"outline"`
	UpdatedAt string    `yaml:"updated_at"`
	Acts      []actYAML `yaml:"acts"`
}

type actYAML struct {
	ID        string        `yaml:"id"`
	Title     string        `yaml:"title"`
	Summary   string        `yaml:"summary"`
	UpdatedAt string        `yaml:"updated_at"`
	Chapters  []chapterYAML `yaml:"chapters"`
}

type chapterYAML struct {
	ID        string   `yaml:"id"`
	Title     string   `yaml:"title"`
	Summary   string   `yaml:"summary"`
	UpdatedAt string   `yaml:"updated_at"`
	Scenes    []string `yaml:"scenes"`
}

// Load reads the project rooted at dir.
func Load(dir string) (*Project, error) {
	path := filepath.Join(dir, projectFile)
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: no %s in %s", ErrProjectNotFound, projectFile, dir)
		}
		return nil, fmt.Errorf("read project: %w", err)
	}

	var doc projectYAML
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidProject, projectFile, err)
	}
	fileTime, err := modTime(path)
	if err != nil {
		return nil, err
	}

	p := &Project{
		Dir:       dir,
		Title:     strings.TrimSpace(doc.Title),
		Author:    strings.TrimSpace(doc.Author),
		Outline:   doc.Outline,
		UpdatedAt: parseTimeOr(doc.UpdatedAt, fileTime),
	}
	if p.Title == "" {
		p.Title = filepath.Base(filepath.Clean(dir))
	}

	for i, a := range doc.Acts {
		act := Act{
			ID:        a.ID,
			Title:     a.Title,
			Summary:   a.Summary,
			UpdatedAt: parseTimeOr(a.UpdatedAt, fileTime),
		}
		if act.ID == "" {
			act.ID = fmt.Sprintf("act-%d", i+1)
		}
		for j, c := range a.Chapters {
			ch := Chapter{
				ID:        c.ID,
				Title:     c.Title,
				Summary:   c.Summary,
				UpdatedAt: parseTimeOr(c.UpdatedAt, fileTime),
				SceneIDs:  c.Scenes,
			}
			if ch.ID == "" {
				ch.ID = fmt.Sprintf("%s-chapter-%d", act.ID, j+1)
			}
			act.Chapters = append(act.Chapters, ch)
		}
		p.Acts = append(p.Acts, act)
	}

	if p.Scenes, err = loadScenes(filepath.Join(dir, scenesDir)); err != nil {
		return nil, err
	}
	if p.Codex, err = loadCodex(filepath.Join(dir, codexDir)); err != nil {
		return nil, err
	}
	p.orderScenes()

	log.Printf("[Manuscript] Loaded %q: %d acts, %d scenes, %d codex entries", p.Title, len(p.Acts), len(p.Scenes), len(p.Codex))
	return p, nil
}

// Chapters returns every chapter across all acts in reading order.
func (p *Project) Chapters() []Chapter {
	var out []Chapter
	for _, a := range p.Acts {
		out = append(out, a.Chapters...)
	}
	return out
}

// orderScenes sorts scenes into reading order. Scenes placed in a chapter come
// first in structure order; the rest follow by their frontmatter order.
func (p *Project) orderScenes() {
	position := make(map[string]int)
	for _, ch := range p.Chapters() {
		for _, id := range ch.SceneIDs {
			if _, seen := position[id]; !seen {
				position[id] = len(position)
			}
		}
	}

	sort.SliceStable(p.Scenes, func(i, j int) bool {
		pi, iPlaced := position[p.Scenes[i].ID]
		pj, jPlaced := position[p.Scenes[j].ID]
		switch {
		case iPlaced && jPlaced:
			return pi < pj
		case iPlaced != jPlaced:
			return iPlaced
		case p.Scenes[i].Order != p.Scenes[j].Order:
			return p.Scenes[i].Order < p.Scenes[j].Order
		default:
			return p.Scenes[i].ID < p.Scenes[j].ID
		}
	})
}

// parseTime accepts RFC 3339 text and returns the zero time for anything else.
func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}
	}
	return t
}

// parseTimeOr is parseTime with a fallback for missing or malformed values.
func parseTimeOr(s string, fallback time.Time) time.Time {
	if t := parseTime(s); !t.IsZero() {
		return t
	}
	return fallback
}

// modTime returns the file's modification time in UTC. Undated material falls
// back to it so that edits still change the pack signature.
func modTime(path string) (time.Time, error) {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}, fmt.Errorf("stat %s: %w", path, err)
	}
	return info.ModTime().UTC(), nil
}
