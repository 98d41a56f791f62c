package contextpack

import (
	"sort"
	"strings"
)

const (
	coverageWeight      = 5.0
	weightedWeight      = 3.0
	labelTermWeight     = 1.5
	contentTermWeight   = 1.0
	unknownTypePriority = 1.0
)

// basePriorities favors specific, directly authored facts over broad aggregate text.
var basePriorities = map[SourceType]float64{
	SourceCodex:   7,
	SourceScene:   6,
	SourceChapter: 5,
	SourceAct:     4,
	SourceOutline: 3,
	SourceNovel:   2,
}

// BasePriority returns the fixed ranking weight of a source type.
func BasePriority(t SourceType) float64 {
	if p, ok := basePriorities[t]; ok {
		return p
	}
	return unknownTypePriority
}

// ScoredSource is a candidate source with its relevance score and input position.
type ScoredSource struct {
	Source Source
	Score  float64
	Index  int
}

// LexicalScore rates how well a source covers the query terms. It returns 0 for
// an empty term set.
func LexicalScore(s Source, terms []string) float64 {
	if len(terms) == 0 {
		return 0
	}

	label := strings.ToLower(s.Label)
	haystack := label + "\n" + strings.ToLower(s.Content)

	matched := 0
	weight := 0.0
	for _, term := range terms {
		switch {
		case strings.Contains(label, term):
			matched++
			weight += labelTermWeight
		case strings.Contains(haystack, term):
			matched++
			weight += contentTermWeight
		}
	}

	n := float64(len(terms))
	termCoverage := float64(matched) / n
	weightedCoverage := weight / n
	return termCoverage*coverageWeight + weightedCoverage*weightedWeight
}

// ScoreSources drops sources without content, scores the rest against terms and
// returns them best first. Equal scores keep their input order.
func ScoreSources(sources []Source, terms []string) []ScoredSource {
	scored := make([]ScoredSource, 0, len(sources))
	for i, s := range sources {
		if strings.TrimSpace(s.Content) == "" {
			continue
		}
		scored = append(scored, ScoredSource{
			Source: s,
			Score:  BasePriority(s.Type) + LexicalScore(s, terms),
			Index:  i,
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].Index < scored[j].Index
	})
	return scored
}
