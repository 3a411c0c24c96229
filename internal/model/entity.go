package model

import (
	"strings"

	"github.com/google/uuid"
)

// EntityKind classifies the real-world subject behind an entity
type EntityKind string

const (
	KindPlayer      EntityKind = "player"
	KindTeam        EntityKind = "team"
	KindCompetition EntityKind = "competition"
	KindMatch       EntityKind = "match"
	KindCoach       EntityKind = "coach"
	KindStadium     EntityKind = "stadium"
	KindOther       EntityKind = "other"
)

// Entity is a disambiguated subject with a stable internal identifier.
// ExternalIDs maps provider names (e.g. "transfermarkt") to provider ids.
type Entity struct {
	Kind               EntityKind        `json:"kind"`
	Name               string            `json:"name"`
	Aliases            []string          `json:"aliases,omitempty"`
	InternalID         string            `json:"internalId"`
	ExternalIDs        map[string]string `json:"externalIds,omitempty"`
	Confidence         float64           `json:"confidence"`
	DisambiguationNote string            `json:"disambiguationNote,omitempty"`
}

// NewInternalID generates a stable entity identifier of the form
// "<kind>_<8 hex chars>".
func NewInternalID(kind EntityKind) string {
	return string(kind) + "_" + uuid.NewString()[:8]
}

// matches reports whether two candidates describe the same entity:
// any shared external id, or case-insensitive name equality within the
// same kind.
func (e *Entity) matches(other *Entity) bool {
	for provider, id := range e.ExternalIDs {
		if id == "" {
			continue
		}
		if otherID, ok := other.ExternalIDs[provider]; ok && otherID == id {
			return true
		}
	}
	return e.Kind == other.Kind && strings.EqualFold(e.Name, other.Name)
}

// merge folds an equivalent candidate into the existing entity:
// aliases are unioned, external ids from the candidate win, confidence
// takes the maximum, and an empty disambiguation note is filled in.
func (e *Entity) merge(other *Entity) {
	seen := make(map[string]bool, len(e.Aliases))
	for _, a := range e.Aliases {
		seen[strings.ToLower(a)] = true
	}
	for _, a := range other.Aliases {
		if !seen[strings.ToLower(a)] {
			seen[strings.ToLower(a)] = true
			e.Aliases = append(e.Aliases, a)
		}
	}

	if other.ExternalIDs != nil {
		if e.ExternalIDs == nil {
			e.ExternalIDs = make(map[string]string, len(other.ExternalIDs))
		}
		for provider, id := range other.ExternalIDs {
			if id != "" {
				e.ExternalIDs[provider] = id
			}
		}
	}

	if other.Confidence > e.Confidence {
		e.Confidence = other.Confidence
	}
	if e.DisambiguationNote == "" {
		e.DisambiguationNote = other.DisambiguationNote
	}
}
