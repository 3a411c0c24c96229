package builder

import (
	"fmt"
	"strings"

	"github.com/afriquesports/factsheet/internal/model"
	"github.com/afriquesports/factsheet/internal/ranking"
)

const (
	promptEvidenceMax  = 15
	promptPerEntityMax = 2
)

// FormatForPrompt projects the sheet as the factual context block for
// the generation prompt: meta, the locked ranking when present,
// verified player data and grouped evidence snippets. For ranking
// sheets it fails if the ranking stage never ran.
func FormatForPrompt(fs *model.FactSheet) (string, error) {
	if fs.Meta.PostType == model.PostRanking && len(fs.LockedFacts.RankingLocked) == 0 {
		return "", ErrRankingNotComputed
	}

	var sections []string
	sections = append(sections,
		fmt.Sprintf("TYPE: %s", strings.ToUpper(string(fs.Meta.PostType))),
		fmt.Sprintf("TITRE: %s", fs.Meta.Title),
		fmt.Sprintf("LANGUE: %s", fs.Meta.Language),
		fmt.Sprintf("SAISON: %s", fs.Constraints.Season),
		"")

	if fs.Meta.PostType == model.PostRanking {
		sections = append(sections, ranking.FormatLocked(fs), "")
	}

	if len(fs.StructuredFacts.Players) > 0 {
		sections = append(sections, "DONNÉES VÉRIFIÉES:", "")
		for _, ref := range factOrder(fs) {
			fact := fs.PlayerFactByRef(ref)
			entity := fs.EntityByRef(ref)
			if fact == nil || entity == nil {
				continue
			}
			f := fact.Fields
			sections = append(sections,
				fmt.Sprintf("**%s** (%s)", entity.Name, f.Nationality),
				fmt.Sprintf("  - Club: %s | Position: %s", f.CurrentClub, f.Position))
			if f.Age != nil {
				sections = append(sections, fmt.Sprintf("  - Âge: %d ans | Valeur: %s", *f.Age, f.MarketValue))
			} else {
				sections = append(sections, fmt.Sprintf("  - Valeur: %s", f.MarketValue))
			}
			if f.Stats != nil {
				sections = append(sections, fmt.Sprintf("  - Stats %s: %dG, %dA en %d matchs",
					f.Season, f.Stats.Goals, f.Stats.Assists, f.Stats.Appearances))
				if f.Stats.Rating != nil {
					sections = append(sections, fmt.Sprintf("  - Note moyenne: %.2f/10", *f.Stats.Rating))
				}
			}
			sections = append(sections, "")
		}
	}

	if len(fs.Evidence) > 0 {
		sections = append(sections, "CONTEXTE ACTUALITÉS:", "")

		items := fs.Evidence
		if len(items) > promptEvidenceMax {
			items = items[:promptEvidenceMax]
		}

		byRef := make(map[string][]model.EvidenceItem)
		var refOrder []string
		for _, ev := range items {
			for _, ref := range ev.EntityRefs {
				if _, seen := byRef[ref]; !seen {
					refOrder = append(refOrder, ref)
				}
				byRef[ref] = append(byRef[ref], ev)
			}
		}

		for _, ref := range refOrder {
			entity := fs.EntityByRef(ref)
			if entity == nil {
				continue
			}
			sections = append(sections, entity.Name+":")
			evs := byRef[ref]
			if len(evs) > promptPerEntityMax {
				evs = evs[:promptPerEntityMax]
			}
			for _, ev := range evs {
				sections = append(sections, fmt.Sprintf("  - %s (%s)", ev.Snippet, ev.Publisher))
			}
			sections = append(sections, "")
		}
	}

	return strings.Join(sections, "\n"), nil
}

// factOrder lists player refs in locked-ranking order when a ranking
// exists, otherwise in fact insertion order.
func factOrder(fs *model.FactSheet) []string {
	if len(fs.LockedFacts.RankingLocked) > 0 {
		return fs.LockedFacts.RankingLocked
	}
	refs := make([]string, 0, len(fs.StructuredFacts.Players))
	for _, fact := range fs.StructuredFacts.Players {
		refs = append(refs, fact.EntityRef)
	}
	return refs
}
