package evidence

import (
	"sort"
	"strings"
)

// Trust maps publishers to authority scores using fuzzy fragment
// matching, so "www.lequipe.fr" and "L'Équipe" both land on the
// "lequipe" entry.
type Trust struct {
	scores       map[string]float64
	orderedKeys  []string
	defaultScore float64
}

// NewTrust builds a trust table. Keys are compared after lowercasing
// and stripping non-alphanumerics.
func NewTrust(publishers map[string]float64, defaultScore float64) *Trust {
	scores := make(map[string]float64, len(publishers))
	keys := make([]string, 0, len(publishers))
	for key, score := range publishers {
		normalized := normalizePublisher(key)
		if normalized == "" {
			continue
		}
		scores[normalized] = score
		keys = append(keys, normalized)
	}
	sort.Strings(keys)
	return &Trust{scores: scores, orderedKeys: keys, defaultScore: defaultScore}
}

// Score returns the trust score for a publisher. A table key matches
// when either string contains the other.
func (t *Trust) Score(publisher string) float64 {
	normalized := normalizePublisher(publisher)
	if normalized == "" {
		return t.defaultScore
	}
	for _, key := range t.orderedKeys {
		if strings.Contains(normalized, key) || strings.Contains(key, normalized) {
			return t.scores[key]
		}
	}
	return t.defaultScore
}

func normalizePublisher(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
