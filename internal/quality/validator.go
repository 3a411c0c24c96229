// Package quality runs the pre-generation check battery and decides
// whether a sheet is fit for text generation.
package quality

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/afriquesports/factsheet/internal/model"
)

const staleAfter = 30 * 24 * time.Hour

// Summary is the outcome of one validation pass.
type Summary struct {
	Status   model.CheckStatus
	Passed   bool
	Failures []string
	Warnings []string
}

// Validator runs the check battery against post-type requirement
// profiles.
type Validator struct {
	cfg *model.Config
	log *zap.SugaredLogger
	now func() time.Time
}

// NewValidator creates a validator. A degraded evidence pass shows up
// as warnings, never as a hard failure on its own.
func NewValidator(cfg *model.Config, log *zap.SugaredLogger) *Validator {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Validator{cfg: cfg, log: log, now: time.Now}
}

// Validate clears any previous checks and runs the full battery. The
// sheet's quality block is rewritten in place.
func (v *Validator) Validate(fs *model.FactSheet) Summary {
	reqs := v.cfg.RequirementsFor(fs.Meta.PostType)

	fs.Quality.Checks = nil
	fs.Quality.ValidationStatus = model.StatusPending

	add := func(name string, status model.CheckStatus, detail string) {
		fs.Quality.Checks = append(fs.Quality.Checks, model.QualityCheck{
			Name:   name,
			Status: status,
			Detail: detail,
		})
	}

	entityCount := len(fs.Entities)
	add("entity_count", passOrFail(entityCount >= reqs.MinEntities),
		fmt.Sprintf("found %d entities (min: %d)", entityCount, reqs.MinEntities))

	playerFacts := len(fs.StructuredFacts.Players)
	add("player_facts", passOrFail(playerFacts >= reqs.MinPlayerFacts),
		fmt.Sprintf("found %d player facts (min: %d)", playerFacts, reqs.MinPlayerFacts))

	evidenceCount := len(fs.Evidence)
	add("evidence_count", passOrWarn(evidenceCount >= reqs.MinEvidence),
		fmt.Sprintf("found %d evidence items (min: %d)", evidenceCount, reqs.MinEvidence))

	if reqs.RequiresLockedRanking {
		locked := len(fs.LockedFacts.RankingLocked)
		detail := "no locked ranking"
		if locked > 0 {
			detail = fmt.Sprintf("ranking locked with %d items", locked)
		}
		add("locked_ranking", passOrFail(locked > 0), detail)
	}

	var lowConfidence []string
	for _, e := range fs.Entities {
		if e.Confidence < reqs.MinConfidence {
			lowConfidence = append(lowConfidence, e.Name)
		}
	}
	detail := "all entities have sufficient confidence"
	if len(lowConfidence) > 0 {
		detail = fmt.Sprintf("%d entities with low confidence: %s",
			len(lowConfidence), strings.Join(lowConfidence, ", "))
	}
	add("entity_confidence", passOrWarn(len(lowConfidence) == 0), detail)

	var unresolved []string
	for _, e := range fs.Entities {
		if e.Kind == model.KindPlayer && e.ExternalIDs["transfermarkt"] == "" {
			unresolved = append(unresolved, e.Name)
		}
	}
	detail = "all player entities have Transfermarkt IDs"
	if len(unresolved) > 0 {
		detail = fmt.Sprintf("%d unresolved: %s", len(unresolved), strings.Join(unresolved, ", "))
	}
	add("entity_resolution", passOrWarn(len(unresolved) == 0), detail)

	stale := 0
	for _, ev := range fs.Evidence {
		if v.now().Sub(ev.PublishedAt) > staleAfter {
			stale++
		}
	}
	detail = "all evidence is fresh (under 30 days)"
	if stale > 0 {
		detail = fmt.Sprintf("%d stale evidence items", stale)
	}
	add("evidence_freshness", passOrWarn(stale*2 <= len(fs.Evidence)), detail)

	avgTrust := 0.0
	if len(fs.Evidence) > 0 {
		for _, ev := range fs.Evidence {
			avgTrust += ev.TrustScore
		}
		avgTrust /= float64(len(fs.Evidence))
	}
	trustStatus := model.StatusFail
	switch {
	case avgTrust >= 0.6:
		trustStatus = model.StatusPass
	case avgTrust >= 0.4:
		trustStatus = model.StatusWarn
	}
	add("evidence_trust", trustStatus, fmt.Sprintf("average trust score: %.0f%%", avgTrust*100))

	incomplete := 0
	for _, fact := range fs.StructuredFacts.Players {
		f := fact.Fields
		if f.CurrentClub == "" || f.Position == "" || f.MarketValue == "" {
			incomplete++
		}
	}
	detail = "all player facts are complete"
	if incomplete > 0 {
		detail = fmt.Sprintf("%d players with incomplete facts", incomplete)
	}
	add("facts_completeness", passOrWarn(incomplete == 0), detail)

	if fs.Meta.PostType == model.PostRanking {
		missingStats := 0
		for _, fact := range fs.StructuredFacts.Players {
			if fact.Fields.Stats == nil {
				missingStats++
			}
		}
		detail = "all players have stats"
		if missingStats > 0 {
			detail = fmt.Sprintf("%d players missing stats", missingStats)
		}
		add("stats_availability", passOrWarn(missingStats*3 <= len(fs.StructuredFacts.Players)), detail)
	}

	fs.Quality.ValidationStatus = model.AggregateStatus(fs.Quality.Checks)

	summary := Summary{
		Status: fs.Quality.ValidationStatus,
		Passed: true,
	}
	for _, check := range fs.Quality.Checks {
		switch check.Status {
		case model.StatusFail:
			summary.Passed = false
			summary.Failures = append(summary.Failures, check.Name)
		case model.StatusWarn:
			summary.Warnings = append(summary.Warnings, check.Name)
		}
	}
	sort.Strings(summary.Failures)
	sort.Strings(summary.Warnings)

	v.log.Infow("quality validated",
		"status", string(summary.Status),
		"failures", len(summary.Failures),
		"warnings", len(summary.Warnings))

	return summary
}

// IsReadyForGeneration reports whether the sheet may feed generation.
// Warnings are acceptable; failures are not.
func IsReadyForGeneration(fs *model.FactSheet) bool {
	return fs.Quality.ValidationStatus != model.StatusFail
}

// FormatReport renders the check battery as a readable report.
func FormatReport(fs *model.FactSheet) string {
	var b strings.Builder
	fmt.Fprintf(&b, "QUALITY REPORT: %s\n", strings.ToUpper(string(fs.Quality.ValidationStatus)))
	b.WriteString(strings.Repeat("-", 50))
	b.WriteString("\n")
	for _, check := range fs.Quality.Checks {
		fmt.Fprintf(&b, "[%s] %s: %s\n", strings.ToUpper(string(check.Status)), check.Name, check.Detail)
	}
	return b.String()
}

func passOrFail(ok bool) model.CheckStatus {
	if ok {
		return model.StatusPass
	}
	return model.StatusFail
}

func passOrWarn(ok bool) model.CheckStatus {
	if ok {
		return model.StatusPass
	}
	return model.StatusWarn
}
