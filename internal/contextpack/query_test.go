package contextpack

import (
	"reflect"
	"testing"
)

func TestNormalizeQuery(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{
			name:  "strips punctuation and lowercases",
			query: "Where is Aria's ship?!",
			want:  []string{"where", "arias", "ship"},
		},
		{
			name:  "drops short terms",
			query: "a to an of it",
			want:  []string{},
		},
		{
			name:  "empty query",
			query: "",
			want:  []string{},
		},
		{
			name:  "deduplicates in first-seen order",
			query: "Dragon tower DRAGON dragon tower",
			want:  []string{"dragon", "tower"},
		},
		{
			name:  "removes non-ascii letters",
			query: "café au lait",
			want:  []string{"caf", "lait"},
		},
		{
			name:  "splits on any whitespace",
			query: "chapter12\nscene\tthree",
			want:  []string{"chapter12", "scene", "three"},
		},
		{
			name:  "digits count as terms",
			query: "year 1987",
			want:  []string{"year", "1987"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeQuery(tt.query)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("NormalizeQuery(%q) = %#v, want %#v", tt.query, got, tt.want)
			}
		})
	}
}
