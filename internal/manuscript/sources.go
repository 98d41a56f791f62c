package manuscript

import (
	"strings"
	"time"

	"github.com/Sai-Roopesh/becomeAnAuthor-sub003/internal/contextpack"
)

const (
	OutlineID = "outline"
	NovelID   = "novel"
)

// SourceOptions filters the sources a project emits. Empty fields match
// everything.
type SourceOptions struct {
	Types []contextpack.SourceType
	IDs   []string
}

func (o SourceOptions) wantType(t contextpack.SourceType) bool {
	if len(o.Types) == 0 {
		return true
	}
	for _, want := range o.Types {
		if want == t {
			return true
		}
	}
	return false
}

func (o SourceOptions) wantID(id string) bool {
	if len(o.IDs) == 0 {
		return true
	}
	for _, want := range o.IDs {
		if want == id {
			return true
		}
	}
	return false
}

// Sources converts the project into context sources: scenes in reading order,
// codex entries by name, chapters, acts, the outline and finally the whole
// manuscript. Scenes marked excludeFromAI are left out everywhere.
func (p *Project) Sources(opts SourceOptions) []contextpack.Source {
	var out []contextpack.Source
	add := func(s contextpack.Source) {
		if opts.wantType(s.Type) && opts.wantID(s.ID) {
			out = append(out, s)
		}
	}

	scenes := p.aiScenes()
	for _, s := range scenes {
		add(contextpack.Source{
			ID:        s.ID,
			Type:      contextpack.SourceScene,
			Label:     labelOr(s.Title, s.ID),
			Content:   s.Content,
			UpdatedAt: timePtr(s.UpdatedAt),
		})
	}

	for _, e := range p.Codex {
		add(contextpack.Source{
			ID:        e.ID,
			Type:      contextpack.SourceCodex,
			Label:     e.Name,
			Content:   e.Render(),
			UpdatedAt: timePtr(e.UpdatedAt()),
		})
	}

	for _, ch := range p.Chapters() {
		add(contextpack.Source{
			ID:        ch.ID,
			Type:      contextpack.SourceChapter,
			Label:     labelOr(ch.Title, ch.ID),
			Content:   ch.Summary,
			UpdatedAt: timePtr(ch.UpdatedAt),
		})
	}

	for _, a := range p.Acts {
		add(contextpack.Source{
			ID:        a.ID,
			Type:      contextpack.SourceAct,
			Label:     labelOr(a.Title, a.ID),
			Content:   a.Summary,
			UpdatedAt: timePtr(a.UpdatedAt),
		})
	}

	add(contextpack.Source{
		ID:        OutlineID,
		Type:      contextpack.SourceOutline,
		Label:     p.Title + " outline",
		Content:   p.Outline,
		UpdatedAt: timePtr(p.UpdatedAt),
	})

	add(contextpack.Source{
		ID:        NovelID,
		Type:      contextpack.SourceNovel,
		Label:     p.Title,
		Content:   manuscriptText(scenes),
		UpdatedAt: timePtr(latest(scenes)),
	})

	return out
}

func (p *Project) aiScenes() []Scene {
	scenes := make([]Scene, 0, len(p.Scenes))
	for _, s := range p.Scenes {
		if !s.ExcludeFromAI {
			scenes = append(scenes, s)
		}
	}
	return scenes
}

func manuscriptText(scenes []Scene) string {
	parts := make([]string, 0, len(scenes))
	for _, s := range scenes {
		if s.Content != "" {
			parts = append(parts, s.Content)
		}
	}
	return strings.Join(parts, "\n\n")
}

func latest(scenes []Scene) time.Time {
	var t time.Time
	for _, s := range scenes {
		if s.UpdatedAt.After(t) {
			t = s.UpdatedAt
		}
	}
	return t
}

func labelOr(label, fallback string) string {
	if strings.TrimSpace(label) == "" {
		return fallback
	}
	return label
}

func timePtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
