package builder

import (
	"fmt"
	"strings"

	"github.com/afriquesports/factsheet/internal/model"
	"github.com/afriquesports/factsheet/internal/quality"
)

// DebugString renders the full sheet for inspection: meta, entities
// with their external ids, fact records, evidence and the quality
// report.
func DebugString(fs *model.FactSheet) string {
	var b strings.Builder
	rule := strings.Repeat("=", 60)

	b.WriteString(rule + "\n")
	b.WriteString("FACTSHEET DEBUG OUTPUT\n")
	b.WriteString(rule + "\n\n")

	b.WriteString("META:\n")
	fmt.Fprintf(&b, "  ID: %s\n", fs.Meta.ID)
	fmt.Fprintf(&b, "  Type: %s\n", fs.Meta.PostType)
	fmt.Fprintf(&b, "  Title: %s\n", fs.Meta.Title)
	fmt.Fprintf(&b, "  Hash: %s\n\n", fs.Meta.SourceHash)

	b.WriteString(fmt.Sprintf("ENTITIES (%d):\n", len(fs.Entities)))
	for _, e := range fs.Entities {
		fmt.Fprintf(&b, "  [%s] %s (conf: %.2f)\n", e.Kind, e.Name, e.Confidence)
		if tm := e.ExternalIDs["transfermarkt"]; tm != "" {
			fmt.Fprintf(&b, "    transfermarkt: %s\n", tm)
		}
		if e.DisambiguationNote != "" {
			fmt.Fprintf(&b, "    note: %s\n", e.DisambiguationNote)
		}
	}
	b.WriteString("\n")

	b.WriteString(fmt.Sprintf("PLAYER FACTS (%d):\n", len(fs.StructuredFacts.Players)))
	for _, fact := range fs.StructuredFacts.Players {
		entity := fs.EntityByRef(fact.EntityRef)
		name := fact.EntityRef
		if entity != nil {
			name = entity.Name
		}
		f := fact.Fields
		fmt.Fprintf(&b, "  %s: %s, %s, %s\n", name, f.CurrentClub, f.Position, f.MarketValue)
		if f.Stats != nil {
			fmt.Fprintf(&b, "    %s: %dG %dA in %d apps\n",
				f.Season, f.Stats.Goals, f.Stats.Assists, f.Stats.Appearances)
		}
	}
	b.WriteString("\n")

	b.WriteString(fmt.Sprintf("EVIDENCE (%d):\n", len(fs.Evidence)))
	for _, ev := range fs.Evidence {
		names := make([]string, 0, len(ev.EntityRefs))
		for _, ref := range ev.EntityRefs {
			if entity := fs.EntityByRef(ref); entity != nil {
				names = append(names, entity.Name)
			} else {
				names = append(names, ref)
			}
		}
		scope := "topic-level"
		if len(names) > 0 {
			scope = strings.Join(names, ", ")
		}
		fmt.Fprintf(&b, "  [%s] %s (trust: %.2f)\n", ev.ID, ev.Publisher, ev.TrustScore)
		fmt.Fprintf(&b, "    tags: %s | %s\n", strings.Join(ev.ClaimTags, ", "), scope)
	}
	b.WriteString("\n")

	b.WriteString(quality.FormatReport(fs))
	b.WriteString(rule + "\n")
	return b.String()
}
