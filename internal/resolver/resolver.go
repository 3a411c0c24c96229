// Package resolver maps free-text names to canonical, deduplicated
// entities with a confidence score. Resolution is synchronous and
// in-memory; the registry behind it is injected and read-only.
package resolver

import (
	"fmt"
	"sort"
	"strings"

	"github.com/afriquesports/factsheet/internal/model"
)

// Confidence levels assigned by match quality.
const (
	confidenceExact       = 1.0
	confidencePlayerAlias = 0.95
	confidenceTeamAlias   = 0.9
	confidencePartial     = 0.8
	confidenceUnresolved  = 0.3
)

// Resolver resolves names against an injected registry.
type Resolver struct {
	registry Registry
}

// New creates a resolver backed by the given registry.
func New(registry Registry) *Resolver {
	if registry == nil {
		registry = DefaultRegistry()
	}
	return &Resolver{registry: registry}
}

// Resolved pairs a resolved entity with the ref it received when added
// to a FactSheet.
type Resolved struct {
	Name       string
	Ref        string
	Confidence float64
}

// Resolve maps a free-text name to an entity candidate. Match order:
// exact normalized name, alias, last-token partial (penalized and
// flagged, since last names collide), then an unresolved placeholder.
func (r *Resolver) Resolve(name string, kind model.EntityKind) model.Entity {
	normalized := Normalize(name)
	entries := r.registry.Entries(kind)

	// Exact canonical match.
	if entry, ok := entries[normalized]; ok {
		return entryToEntity(entry, kind, confidenceExact, "")
	}

	// Alias match. Iterate in sorted key order so resolution stays
	// deterministic when two entries share an alias.
	aliasConfidence := confidencePlayerAlias
	if kind == model.KindTeam {
		aliasConfidence = confidenceTeamAlias
	}
	for _, key := range sortedKeys(entries) {
		entry := entries[key]
		for _, alias := range entry.Aliases {
			aliasNorm := Normalize(alias)
			match := aliasNorm == normalized
			if kind == model.KindTeam {
				// Team names appear embedded in longer strings
				// ("Manchester City FC"), so substring both ways.
				match = match || strings.Contains(normalized, aliasNorm) || strings.Contains(aliasNorm, normalized)
			}
			if match {
				return entryToEntity(entry, kind, aliasConfidence, "")
			}
		}
	}

	// Last-token partial match. Known misattribution risk: two players
	// sharing a surname resolve to whichever sorts first, hence the
	// penalty and the note.
	if kind == model.KindPlayer {
		for _, key := range sortedKeys(entries) {
			entry := entries[key]
			last := lastToken(Normalize(entry.Name))
			if last != "" && (normalized == last || strings.Contains(normalized, last)) {
				note := fmt.Sprintf("Matched by last name: %s", name)
				return entryToEntity(entry, kind, confidencePartial, note)
			}
		}
	}

	// Unresolved placeholder.
	return model.Entity{
		Kind:               kind,
		Name:               name,
		Aliases:            []string{},
		ExternalIDs:        map[string]string{},
		Confidence:         confidenceUnresolved,
		DisambiguationNote: "UNRESOLVED - needs manual mapping or API lookup",
	}
}

// ResolveAll resolves player and team names and adds them to the
// FactSheet through its idempotent AddEntity.
func (r *Resolver) ResolveAll(fs *model.FactSheet, playerNames, teamNames []string) (players, teams []Resolved) {
	for _, name := range playerNames {
		entity := r.Resolve(name, model.KindPlayer)
		ref := fs.AddEntity(entity)
		players = append(players, Resolved{Name: entity.Name, Ref: ref, Confidence: entity.Confidence})
	}
	for _, name := range teamNames {
		entity := r.Resolve(name, model.KindTeam)
		ref := fs.AddEntity(entity)
		teams = append(teams, Resolved{Name: entity.Name, Ref: ref, Confidence: entity.Confidence})
	}
	return players, teams
}

func entryToEntity(entry Entry, kind model.EntityKind, confidence float64, note string) model.Entity {
	if note == "" {
		note = entry.DisambiguationNote
	}
	ids := make(map[string]string, len(entry.ExternalIDs))
	for k, v := range entry.ExternalIDs {
		ids[k] = v
	}
	aliases := make([]string, len(entry.Aliases))
	copy(aliases, entry.Aliases)

	return model.Entity{
		Kind:               kind,
		Name:               entry.Name,
		Aliases:            aliases,
		ExternalIDs:        ids,
		Confidence:         confidence,
		DisambiguationNote: note,
	}
}

func sortedKeys(entries map[string]Entry) []string {
	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
