package contextpack

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestBasePriority(t *testing.T) {
	tests := []struct {
		typ  SourceType
		want float64
	}{
		{SourceCodex, 7},
		{SourceScene, 6},
		{SourceChapter, 5},
		{SourceAct, 4},
		{SourceOutline, 3},
		{SourceNovel, 2},
		{SourceType("sticky-note"), 1},
	}

	for _, tt := range tests {
		t.Run(string(tt.typ), func(t *testing.T) {
			if got := BasePriority(tt.typ); got != tt.want {
				t.Errorf("BasePriority(%s) = %v, want %v", tt.typ, got, tt.want)
			}
		})
	}
}

func TestLexicalScore(t *testing.T) {
	src := Source{
		ID:      "c1",
		Type:    SourceCodex,
		Label:   "Aria Blackwood",
		Content: "A pilot from the northern reaches.",
	}

	tests := []struct {
		name  string
		terms []string
		want  float64
	}{
		{
			name:  "no terms",
			terms: nil,
			want:  0,
		},
		{
			name:  "label match",
			terms: []string{"aria"},
			want:  5 + 1.5*3,
		},
		{
			name:  "content match",
			terms: []string{"pilot"},
			want:  5 + 1*3,
		},
		{
			name:  "no match across label and content",
			terms: []string{"blackwooda"},
			want:  0,
		},
		{
			name:  "absent term",
			terms: []string{"dragon"},
			want:  0,
		},
		{
			name:  "mixed terms",
			terms: []string{"aria", "pilot", "dragon"},
			want:  (2.0/3.0)*5 + (2.5/3.0)*3,
		},
		{
			name:  "substring match is case-insensitive",
			terms: []string{"northern", "blackwood"},
			want:  5 + ((1.0+1.5)/2)*3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LexicalScore(src, tt.terms); !almostEqual(got, tt.want) {
				t.Errorf("LexicalScore() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestScoreSources_DropsEmptyContent(t *testing.T) {
	sources := []Source{
		{ID: "s1", Type: SourceScene, Label: "Empty", Content: ""},
		{ID: "s2", Type: SourceScene, Label: "Blank", Content: " \n\t "},
		{ID: "s3", Type: SourceScene, Label: "Real", Content: "Text."},
	}

	scored := ScoreSources(sources, nil)

	if len(scored) != 1 {
		t.Fatalf("expected 1 scored source, got %d", len(scored))
	}
	if scored[0].Source.ID != "s3" || scored[0].Index != 2 {
		t.Errorf("unexpected survivor: %+v", scored[0])
	}
}

func TestScoreSources_OrdersByScoreThenIndex(t *testing.T) {
	sources := []Source{
		{ID: "n1", Type: SourceNovel, Label: "Manuscript", Content: "All of it."},
		{ID: "s1", Type: SourceScene, Label: "Scene one", Content: "First."},
		{ID: "c1", Type: SourceCodex, Label: "Aria", Content: "Pilot."},
		{ID: "s2", Type: SourceScene, Label: "Scene two", Content: "Second."},
	}

	scored := ScoreSources(sources, nil)

	wantOrder := []string{"c1", "s1", "s2", "n1"}
	for i, id := range wantOrder {
		if scored[i].Source.ID != id {
			t.Fatalf("position %d: expected %s, got %s", i, id, scored[i].Source.ID)
		}
	}
}

func TestScoreSources_QueryLiftsRelevantSource(t *testing.T) {
	sources := []Source{
		{ID: "c1", Type: SourceCodex, Label: "Harbor", Content: "Fishing boats."},
		{ID: "s1", Type: SourceScene, Label: "The duel", Content: "Aria drew her sword at the lighthouse."},
	}

	scored := ScoreSources(sources, NormalizeQuery("lighthouse sword"))

	if scored[0].Source.ID != "s1" {
		t.Errorf("expected matching scene to outrank codex, got %s first", scored[0].Source.ID)
	}
	if !almostEqual(scored[0].Score, 6+5+3) {
		t.Errorf("expected score 14, got %v", scored[0].Score)
	}
}
