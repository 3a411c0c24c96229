package quality

import (
	"fmt"
	"testing"
	"time"

	"github.com/afriquesports/factsheet/internal/model"
)

func checkByName(fs *model.FactSheet, name string) *model.QualityCheck {
	for i := range fs.Quality.Checks {
		if fs.Quality.Checks[i].Name == name {
			return &fs.Quality.Checks[i]
		}
	}
	return nil
}

func readyRankingSheet() *model.FactSheet {
	fs := model.New(model.Options{PostType: model.PostRanking, Title: "Top 5"})
	var refs []string
	for i, name := range []string{"Pedri", "Rodri", "Vitinha", "Jude Bellingham", "Declan Rice"} {
		ref := fs.AddEntity(model.Entity{
			Kind:        model.KindPlayer,
			Name:        name,
			ExternalIDs: map[string]string{"transfermarkt": fmt.Sprintf("%d", i+1)},
			Confidence:  1.0,
		})
		rating := 7.4
		fs.SetPlayerFact(ref, model.PlayerFields{
			CurrentClub: "Club",
			Position:    "Central Midfield",
			MarketValue: "€50.00m",
			Stats:       &model.SeasonStats{Rating: &rating},
		}, "transfermarkt", time.Hour)
		refs = append(refs, ref)
	}
	for i := 0; i < 3; i++ {
		fs.AddEvidence(model.EvidenceItem{
			URL:         "https://lequipe.fr/a",
			Publisher:   "lequipe",
			PublishedAt: time.Now().UTC(),
			TrustScore:  0.9,
			ClaimTags:   []string{"performance"},
		})
	}
	fs.LockRanking(refs)
	return fs
}

func TestValidate_ReadyRankingSheet(t *testing.T) {
	v := NewValidator(model.DefaultConfig(), nil)
	fs := readyRankingSheet()

	summary := v.Validate(fs)

	if summary.Status != model.StatusPass {
		t.Errorf("expected pass, got %s (failures: %v, warnings: %v)",
			summary.Status, summary.Failures, summary.Warnings)
	}
	if !IsReadyForGeneration(fs) {
		t.Error("expected sheet ready for generation")
	}
	// Ranking profile runs the full battery including the two
	// ranking-only checks.
	if len(fs.Quality.Checks) != 10 {
		t.Errorf("expected 10 checks for ranking, got %d", len(fs.Quality.Checks))
	}
}

func TestValidate_TooFewEntitiesFails(t *testing.T) {
	v := NewValidator(model.DefaultConfig(), nil)
	fs := model.New(model.Options{PostType: model.PostRanking})
	fs.AddEntity(model.Entity{Kind: model.KindPlayer, Name: "Pedri", Confidence: 1.0})

	summary := v.Validate(fs)

	if summary.Status != model.StatusFail {
		t.Errorf("expected fail, got %s", summary.Status)
	}
	check := checkByName(fs, "entity_count")
	if check == nil || check.Status != model.StatusFail {
		t.Errorf("expected entity_count fail, got %+v", check)
	}
	if IsReadyForGeneration(fs) {
		t.Error("failed sheet must not be ready for generation")
	}
}

func TestValidate_MissingEvidenceOnlyWarns(t *testing.T) {
	v := NewValidator(model.DefaultConfig(), nil)
	fs := readyRankingSheet()
	fs.Evidence = nil

	summary := v.Validate(fs)

	check := checkByName(fs, "evidence_count")
	if check == nil || check.Status != model.StatusWarn {
		t.Errorf("expected evidence_count warn, got %+v", check)
	}
	// Degraded evidence also drags the trust average to zero, still a
	// warn/fail mix that must not pass silently.
	if summary.Status == model.StatusPass {
		t.Error("expected degraded sheet not to pass clean")
	}
}

func TestValidate_MissingRankingFails(t *testing.T) {
	v := NewValidator(model.DefaultConfig(), nil)
	fs := readyRankingSheet()
	fs.LockedFacts.RankingLocked = nil

	v.Validate(fs)

	check := checkByName(fs, "locked_ranking")
	if check == nil || check.Status != model.StatusFail {
		t.Errorf("expected locked_ranking fail, got %+v", check)
	}
}

func TestValidate_NewsProfileSkipsRankingChecks(t *testing.T) {
	v := NewValidator(model.DefaultConfig(), nil)
	fs := model.New(model.Options{PostType: model.PostNews})
	fs.AddEntity(model.Entity{
		Kind: model.KindPlayer, Name: "Pedri",
		ExternalIDs: map[string]string{"transfermarkt": "1"},
		Confidence:  1.0,
	})
	fs.AddEvidence(model.EvidenceItem{
		URL: "https://bbc.com/a", Publisher: "bbc",
		PublishedAt: time.Now().UTC(), TrustScore: 0.95,
	})

	v.Validate(fs)

	if checkByName(fs, "locked_ranking") != nil {
		t.Error("news sheets must not run the locked_ranking check")
	}
	if checkByName(fs, "stats_availability") != nil {
		t.Error("news sheets must not run the stats_availability check")
	}
}

func TestValidate_StaleEvidenceWarns(t *testing.T) {
	v := NewValidator(model.DefaultConfig(), nil)
	fs := readyRankingSheet()
	for i := range fs.Evidence {
		fs.Evidence[i].PublishedAt = time.Now().Add(-60 * 24 * time.Hour)
	}

	v.Validate(fs)

	check := checkByName(fs, "evidence_freshness")
	if check == nil || check.Status != model.StatusWarn {
		t.Errorf("expected evidence_freshness warn, got %+v", check)
	}
}

func TestValidate_LowTrustFails(t *testing.T) {
	v := NewValidator(model.DefaultConfig(), nil)
	fs := readyRankingSheet()
	for i := range fs.Evidence {
		fs.Evidence[i].TrustScore = 0.2
	}

	v.Validate(fs)

	check := checkByName(fs, "evidence_trust")
	if check == nil || check.Status != model.StatusFail {
		t.Errorf("expected evidence_trust fail below 0.4, got %+v", check)
	}
}

func TestValidate_RevalidationClearsOldChecks(t *testing.T) {
	v := NewValidator(model.DefaultConfig(), nil)
	fs := readyRankingSheet()

	v.Validate(fs)
	first := len(fs.Quality.Checks)
	v.Validate(fs)

	if len(fs.Quality.Checks) != first {
		t.Errorf("expected checks rewritten, got %d after %d", len(fs.Quality.Checks), first)
	}
}
