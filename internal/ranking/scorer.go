// Package ranking computes the deterministic player ranking and
// verifies that generated text respects it. Scores come from stats
// and market data only; the language model never reorders anything.
package ranking

import (
	"math"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/afriquesports/factsheet/internal/model"
)

// ScoringModel tags every locked ranking with the algorithm version
// that produced it.
const ScoringModel = "v1.0-weighted-stats"

const (
	defaultRating = 7.0
	defaultValue  = 1.0
	defaultAge    = 28
)

// Options narrows and bounds one ranking computation.
type Options struct {
	// Limit caps the ranking length. Zero means the configured default.
	Limit int
	// PositionFilter keeps only players whose position contains one of
	// the fragments, case-insensitively.
	PositionFilter []string
}

// Scorer ranks players by weighted season statistics.
type Scorer struct {
	cfg model.RankingConfig
	log *zap.SugaredLogger
}

// NewScorer creates a scorer from ranking configuration.
func NewScorer(cfg model.RankingConfig, log *zap.SugaredLogger) *Scorer {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Scorer{cfg: cfg, log: log}
}

// Score computes the weighted score for one player record.
func (s *Scorer) Score(fields model.PlayerFields) model.RankingEntry {
	weights := s.weightsFor(fields.Position)

	var stats model.SeasonStats
	if fields.Stats != nil {
		stats = *fields.Stats
	}

	rating := defaultRating
	if stats.Rating != nil {
		rating = *stats.Rating
	}
	value := defaultValue
	if fields.MarketValueNumeric != nil {
		value = *fields.MarketValueNumeric
	}
	age := defaultAge
	if fields.Age != nil {
		age = *fields.Age
	}

	components := map[string]float64{
		"goals":         float64(stats.Goals) * weights.Goals,
		"assists":       float64(stats.Assists) * weights.Assists,
		"appearances":   float64(stats.Appearances) * weights.Appearances,
		"rating":        (rating - s.cfg.RatingFloor) * weights.Rating * 10,
		"marketValue":   math.Log10(value+1) * weights.MarketValue * 10,
		"age":           math.Max(0, float64(s.cfg.PeakAgeCeiling-age)) * weights.Age,
		"minutesPlayed": float64(stats.MinutesPlayed) / 100 * weights.MinutesPlayed,
	}

	multiplier := s.leagueMultiplier(stats.Competition)

	var base float64
	for _, v := range components {
		base += v
	}

	return model.RankingEntry{
		Score:            math.Round(base*multiplier*100) / 100,
		Components:       components,
		LeagueMultiplier: multiplier,
	}
}

// Compute ranks every player with a fact record, writes the scores to
// the sheet's decisions and locks the order. Equal scores keep the
// sheet's fact order, so reruns over identical input agree.
func (s *Scorer) Compute(fs *model.FactSheet, opts Options) []model.RankingEntry {
	limit := opts.Limit
	if limit <= 0 {
		limit = s.cfg.DefaultLimit
	}

	var entries []model.RankingEntry
	for _, fact := range fs.StructuredFacts.Players {
		entity := fs.EntityByRef(fact.EntityRef)
		if entity == nil {
			continue
		}
		if !matchesFilter(fact.Fields.Position, opts.PositionFilter) {
			continue
		}

		entry := s.Score(fact.Fields)
		entry.EntityRef = fact.EntityRef
		entry.Name = entity.Name
		entries = append(entries, entry)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})
	if len(entries) > limit {
		entries = entries[:limit]
	}

	fs.Decisions.ScoringModel = ScoringModel
	fs.Decisions.Scores = entries

	refs := make([]string, len(entries))
	for i, e := range entries {
		refs[i] = e.EntityRef
	}
	fs.LockRanking(refs)

	s.log.Infow("ranking computed", "players", len(entries), "model", ScoringModel)
	return entries
}

func (s *Scorer) weightsFor(position string) model.Weights {
	if w, ok := s.cfg.PositionWeights[position]; ok {
		return w
	}
	return s.cfg.PositionWeights["default"]
}

// leagueMultiplier looks the competition up case-insensitively; a
// configured league name matching anywhere in the string counts.
func (s *Scorer) leagueMultiplier(competition string) float64 {
	if competition == "" {
		return s.cfg.DefaultMultiplier
	}
	lowered := strings.ToLower(competition)

	keys := make([]string, 0, len(s.cfg.LeagueMultipliers))
	for key := range s.cfg.LeagueMultipliers {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if strings.Contains(lowered, strings.ToLower(key)) {
			return s.cfg.LeagueMultipliers[key]
		}
	}
	return s.cfg.DefaultMultiplier
}

func matchesFilter(position string, filter []string) bool {
	if len(filter) == 0 {
		return true
	}
	lowered := strings.ToLower(position)
	for _, fragment := range filter {
		if strings.Contains(lowered, strings.ToLower(fragment)) {
			return true
		}
	}
	return false
}
