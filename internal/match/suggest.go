package match

import (
	"sort"
	"strings"
)

// DefaultMinSimilarity is the lowest normalized similarity Suggest accepts.
const DefaultMinSimilarity = 0.6

// Suggest returns up to limit candidates similar to name, best first.
// Comparison ignores case and underscores; ties keep the candidate order stable
// by name. An exact candidate match returns nothing.
func Suggest(name string, candidates []string, limit int) []string {
	type scored struct {
		name  string
		score float64
	}

	norm := normalize(name)

	var hits []scored

	for _, c := range candidates {
		if c == name {
			return nil
		}

		score := Similarity(norm, normalize(c))
		if score >= DefaultMinSimilarity {
			hits = append(hits, scored{name: c, score: score})
		}
	}

	sort.Slice(hits, func(i, j int) bool {
		if hits[i].score != hits[j].score {
			return hits[i].score > hits[j].score
		}

		return hits[i].name < hits[j].name
	})

	if limit > 0 && len(hits) > limit {
		hits = hits[:limit]
	}

	out := make([]string, 0, len(hits))
	for _, h := range hits {
		out = append(out, h.name)
	}

	return out
}

func normalize(s string) string {
	return strings.ReplaceAll(strings.ToLower(s), "_", "")
}
