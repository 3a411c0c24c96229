package ranking

import (
	"fmt"
	"strings"

	"github.com/afriquesports/factsheet/internal/model"
)

// FormatLocked renders the locked ranking as the read-only block that
// goes into the generation prompt.
func FormatLocked(fs *model.FactSheet) string {
	var b strings.Builder
	b.WriteString("CLASSEMENT DÉFINITIF (ne pas modifier):\n\n")

	scoreByRef := make(map[string]model.RankingEntry, len(fs.Decisions.Scores))
	for _, entry := range fs.Decisions.Scores {
		scoreByRef[entry.EntityRef] = entry
	}

	for i, ref := range fs.LockedFacts.RankingLocked {
		entity := fs.EntityByRef(ref)
		fact := fs.PlayerFactByRef(ref)
		if entity == nil || fact == nil {
			continue
		}
		f := fact.Fields

		fmt.Fprintf(&b, "%d. **%s** (%s, %s)\n", i+1, entity.Name, f.CurrentClub, f.Nationality)
		if entry, ok := scoreByRef[ref]; ok {
			fmt.Fprintf(&b, "   Score: %.2f pts | Valeur: %s\n", entry.Score, f.MarketValue)
		} else {
			fmt.Fprintf(&b, "   Score: N/A | Valeur: %s\n", f.MarketValue)
		}
		if f.Stats != nil {
			fmt.Fprintf(&b, "   Stats %s: %dG, %dA en %d matchs\n",
				f.Season, f.Stats.Goals, f.Stats.Assists, f.Stats.Appearances)
		}
		b.WriteString("\n")
	}

	return b.String()
}
