package model

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// PostType identifies the kind of content a FactSheet backs.
type PostType string

const (
	PostRanking   PostType = "ranking"
	PostNews      PostType = "news"
	PostRecap     PostType = "recap"
	PostProfile   PostType = "profile"
	PostTactical  PostType = "tactical"
	PostEvergreen PostType = "evergreen"
	PostListicle  PostType = "listicle"
	PostOther     PostType = "other"
)

// FactSheet is the data contract built per content request before
// generation. It owns all child records; stages only append or merge,
// and the locked ranking is authoritative once set.
type FactSheet struct {
	Meta            Meta            `json:"meta"`
	Constraints     Constraints     `json:"constraints"`
	Entities        []Entity        `json:"entities"`
	StructuredFacts StructuredFacts `json:"structuredFacts"`
	Evidence        []EvidenceItem  `json:"evidence"`
	LockedFacts     LockedFacts     `json:"lockedFacts"`
	Decisions       Decisions       `json:"decisions"`
	Quality         Quality         `json:"quality"`
}

// Meta identifies one FactSheet build.
type Meta struct {
	ID         string    `json:"id"`
	CreatedAt  time.Time `json:"createdAt"`
	SourceHash string    `json:"sourceLogHash"`
	PostType   PostType  `json:"postType"`
	Language   string    `json:"language"`
	Title      string    `json:"title"`
}

// Constraints scope what generation may talk about.
type Constraints struct {
	Locale           string    `json:"locale"`
	TargetYear       int       `json:"targetYear"`
	Season           string    `json:"season"`
	DateRange        DateRange `json:"dateRange"`
	CompetitionLocks []string  `json:"competitionLocks,omitempty"`
	LockedTerms      []string  `json:"lockedTerms,omitempty"`
}

// DateRange bounds the period facts and evidence may cover.
type DateRange struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// StructuredFacts groups verified per-entity records by entity kind.
type StructuredFacts struct {
	Players []StructuredFact `json:"players"`
	Teams   []StructuredFact `json:"teams"`
}

// LockedFacts carries data the writer must not alter.
type LockedFacts struct {
	RankingLocked []string          `json:"rankingLocked"`
	EventFacts    map[string]string `json:"eventFacts,omitempty"`
}

// Decisions records the deterministic choices made during the build.
type Decisions struct {
	ScoringModel string         `json:"scoringModel,omitempty"`
	Scores       []RankingEntry `json:"scores,omitempty"`
	Outline      []string       `json:"outline,omitempty"`
}

// Options configures a new FactSheet.
type Options struct {
	PostType     PostType
	Title        string
	Language     string
	Locale       string
	Season       string
	TargetYear   int
	DateFrom     string
	DateTo       string
	Competitions []string
	LockedTerms  []string
}

// New creates an empty FactSheet with defaults filled in from the
// current clock (season, date range) where options are silent.
func New(opts Options) *FactSheet {
	now := time.Now().UTC()

	postType := opts.PostType
	if postType == "" {
		postType = PostOther
	}
	language := opts.Language
	if language == "" {
		language = "fr-FR"
	}
	locale := opts.Locale
	if locale == "" {
		locale = language
	}
	season := opts.Season
	if season == "" {
		season = CurrentSeason(now)
	}
	targetYear := opts.TargetYear
	if targetYear == 0 {
		targetYear = now.Year()
	}
	from := opts.DateFrom
	if from == "" {
		from = SeasonStart(now)
	}
	to := opts.DateTo
	if to == "" {
		to = now.Format("2006-01-02")
	}

	return &FactSheet{
		Meta: Meta{
			ID:        uuid.NewString(),
			CreatedAt: now,
			PostType:  postType,
			Language:  language,
			Title:     opts.Title,
		},
		Constraints: Constraints{
			Locale:           locale,
			TargetYear:       targetYear,
			Season:           season,
			DateRange:        DateRange{From: from, To: to},
			CompetitionLocks: opts.Competitions,
			LockedTerms:      opts.LockedTerms,
		},
		Entities:        []Entity{},
		StructuredFacts: StructuredFacts{Players: []StructuredFact{}, Teams: []StructuredFact{}},
		Evidence:        []EvidenceItem{},
		LockedFacts:     LockedFacts{RankingLocked: []string{}},
		Quality:         Quality{ValidationStatus: StatusPending, Checks: []QualityCheck{}},
	}
}

// AddEntity adds a candidate with deduplication. Re-adding an
// equivalent candidate merges aliases and external ids, keeps the
// maximum confidence, and returns the existing internal id.
func (fs *FactSheet) AddEntity(candidate Entity) string {
	for i := range fs.Entities {
		if fs.Entities[i].matches(&candidate) {
			fs.Entities[i].merge(&candidate)
			return fs.Entities[i].InternalID
		}
	}

	if candidate.InternalID == "" {
		candidate.InternalID = NewInternalID(candidate.Kind)
	}
	if candidate.Aliases == nil {
		candidate.Aliases = []string{}
	}
	fs.Entities = append(fs.Entities, candidate)
	return candidate.InternalID
}

// EntityByRef returns the entity with the given internal id, or nil.
func (fs *FactSheet) EntityByRef(ref string) *Entity {
	for i := range fs.Entities {
		if fs.Entities[i].InternalID == ref {
			return &fs.Entities[i]
		}
	}
	return nil
}

// EntitiesOfKind returns all entities of one kind in insertion order.
func (fs *FactSheet) EntitiesOfKind(kind EntityKind) []Entity {
	var out []Entity
	for _, e := range fs.Entities {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}

// SetPlayerFact stores the fact record for an entity, replacing any
// previous record for the same ref wholesale.
func (fs *FactSheet) SetPlayerFact(entityRef string, fields PlayerFields, source string, ttl time.Duration) {
	fact := StructuredFact{
		EntityRef:   entityRef,
		Fields:      fields,
		RetrievedAt: time.Now().UTC(),
		TTLSeconds:  int(ttl.Seconds()),
		Source:      source,
	}
	for i := range fs.StructuredFacts.Players {
		if fs.StructuredFacts.Players[i].EntityRef == entityRef {
			fs.StructuredFacts.Players[i] = fact
			return
		}
	}
	fs.StructuredFacts.Players = append(fs.StructuredFacts.Players, fact)
}

// PlayerFactByRef returns the fact record for an entity ref, or nil.
func (fs *FactSheet) PlayerFactByRef(ref string) *StructuredFact {
	for i := range fs.StructuredFacts.Players {
		if fs.StructuredFacts.Players[i].EntityRef == ref {
			return &fs.StructuredFacts.Players[i]
		}
	}
	return nil
}

// AddEvidence appends an evidence item, assigning it an id.
func (fs *FactSheet) AddEvidence(item EvidenceItem) string {
	if item.ID == "" {
		item.ID = "ev_" + uuid.NewString()[:8]
	}
	if item.RetrievedAt.IsZero() {
		item.RetrievedAt = time.Now().UTC()
	}
	fs.Evidence = append(fs.Evidence, item)
	return item.ID
}

// LockRanking replaces the locked ranking wholesale with the given
// ordered entity refs. Nothing else may reorder the list.
func (fs *FactSheet) LockRanking(orderedRefs []string) {
	locked := make([]string, len(orderedRefs))
	copy(locked, orderedRefs)
	fs.LockedFacts.RankingLocked = locked
}

// ComputeSourceHash recomputes the reproducibility hash over the
// serialized entities, structured facts and evidence. The hash never
// feeds itself: meta (which stores it) is excluded from the input.
func (fs *FactSheet) ComputeSourceHash() (string, error) {
	input := struct {
		Entities        []Entity        `json:"entities"`
		StructuredFacts StructuredFacts `json:"structuredFacts"`
		Evidence        []EvidenceItem  `json:"evidence"`
	}{fs.Entities, fs.StructuredFacts, fs.Evidence}

	data, err := json.Marshal(input)
	if err != nil {
		return "", fmt.Errorf("marshal hash input: %w", err)
	}

	sum := sha256.Sum256(data)
	fs.Meta.SourceHash = hex.EncodeToString(sum[:])[:16]
	return fs.Meta.SourceHash, nil
}

// ToJSON exports the FactSheet as a transportable document, recomputing
// the source hash first.
func (fs *FactSheet) ToJSON() ([]byte, error) {
	if _, err := fs.ComputeSourceHash(); err != nil {
		return nil, err
	}
	data, err := json.MarshalIndent(fs, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal factsheet: %w", err)
	}
	return data, nil
}

// FromJSON rehydrates an exported FactSheet document.
func FromJSON(data []byte) (*FactSheet, error) {
	var fs FactSheet
	if err := json.Unmarshal(data, &fs); err != nil {
		return nil, fmt.Errorf("parse factsheet: %w", err)
	}
	return &fs, nil
}

// CurrentSeason formats the football season containing t; seasons roll
// over in August ("2025-2026").
func CurrentSeason(t time.Time) string {
	year := t.Year()
	if t.Month() >= time.August {
		return fmt.Sprintf("%d-%d", year, year+1)
	}
	return fmt.Sprintf("%d-%d", year-1, year)
}

// SeasonStart returns the first day of the season containing t.
func SeasonStart(t time.Time) string {
	year := t.Year()
	if t.Month() < time.August {
		year--
	}
	return fmt.Sprintf("%d-08-01", year)
}
