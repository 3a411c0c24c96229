package ranking

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/afriquesports/factsheet/internal/model"
)

// ordinalPattern matches ranked list lines such as "1. Pedri",
// "#3 Bellingham" or "**2. Camavinga**".
var ordinalPattern = regexp.MustCompile(`(?m)^\s*(?:\*\*)?#?(\d+)[.\s\-:]+(?:\*\*)?([^,\n(]+)`)

// Verification reports whether generated text keeps the locked order.
// Unverified lists ranks that could not be checked because the text
// names the same rank more than once with different players.
type Verification struct {
	Valid      bool
	Errors     []string
	Unverified []int
}

// VerifyOrder extracts ordinal lines from generated content and
// checks each against the sheet's locked ranking. The captured line
// tail usually carries prose after the name ("3. Camavinga complète
// le podium."), so comparison is token based: any word of the
// expected name appearing on the line verifies the rank.
func VerifyOrder(fs *model.FactSheet, content string) Verification {
	locked := fs.LockedFacts.RankingLocked
	v := Verification{Valid: true}
	if len(locked) == 0 {
		return v
	}

	namesByRank := make(map[int][]string)
	for _, match := range ordinalPattern.FindAllStringSubmatch(content, -1) {
		rank, err := strconv.Atoi(match[1])
		if err != nil || rank < 1 || rank > len(locked) {
			continue
		}
		name := strings.TrimSpace(strings.ReplaceAll(match[2], "**", ""))
		if name == "" {
			continue
		}
		namesByRank[rank] = append(namesByRank[rank], name)
	}

	for rank := 1; rank <= len(locked); rank++ {
		candidates := namesByRank[rank]
		if len(candidates) == 0 {
			continue
		}
		if len(candidates) > 1 && !allEqualFold(candidates) {
			v.Unverified = append(v.Unverified, rank)
			continue
		}

		entity := fs.EntityByRef(locked[rank-1])
		if entity == nil {
			continue
		}
		expected := strings.ToLower(entity.Name)
		found := strings.ToLower(candidates[0])
		if !nameMatches(expected, found) {
			v.Valid = false
			v.Errors = append(v.Errors,
				fmt.Sprintf("rank %d: expected %q, found %q", rank, entity.Name, candidates[0]))
		}
	}

	return v
}

// nameMatches reports whether a lowercased line tail names the
// expected player: full containment either way, or any shared name
// token. Trailing punctuation on line words is ignored.
func nameMatches(expected, found string) bool {
	if strings.Contains(found, expected) || strings.Contains(expected, found) {
		return true
	}
	words := make(map[string]bool)
	for _, w := range strings.Fields(found) {
		words[strings.Trim(w, ".,:;!?*'\"")] = true
	}
	for _, token := range strings.Fields(expected) {
		// Particles like "de" or "van" collide with ordinary prose.
		if len(token) < 3 {
			continue
		}
		if words[token] {
			return true
		}
	}
	return false
}

func allEqualFold(names []string) bool {
	for _, name := range names[1:] {
		if !strings.EqualFold(name, names[0]) {
			return false
		}
	}
	return true
}
