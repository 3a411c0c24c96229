package model

import (
	"strings"
	"testing"
	"time"
)

func TestNew_Defaults(t *testing.T) {
	fs := New(Options{PostType: PostRanking, Title: "Top 5 milieux"})

	if fs.Meta.ID == "" {
		t.Error("expected generated id")
	}
	if fs.Meta.Language != "fr-FR" {
		t.Errorf("expected default language fr-FR, got %s", fs.Meta.Language)
	}
	if fs.Constraints.Season == "" {
		t.Error("expected season to be filled from the clock")
	}
	if fs.Quality.ValidationStatus != StatusPending {
		t.Errorf("expected pending status, got %s", fs.Quality.ValidationStatus)
	}
}

func TestAddEntity_IdempotentMerge(t *testing.T) {
	fs := New(Options{PostType: PostNews})

	first := fs.AddEntity(Entity{
		Kind:        KindPlayer,
		Name:        "Pedri",
		Aliases:     []string{"Pedri González"},
		ExternalIDs: map[string]string{"transfermarktId": "683840"},
		Confidence:  0.95,
	})
	second := fs.AddEntity(Entity{
		Kind:       KindPlayer,
		Name:       "pedri",
		Aliases:    []string{"Pedro González López"},
		Confidence: 0.8,
	})

	if first != second {
		t.Fatalf("expected same ref for equivalent entities, got %s and %s", first, second)
	}
	if len(fs.Entities) != 1 {
		t.Fatalf("expected 1 entity, got %d", len(fs.Entities))
	}

	entity := fs.EntityByRef(first)
	if entity.Confidence != 0.95 {
		t.Errorf("expected max confidence 0.95, got %f", entity.Confidence)
	}
	if len(entity.Aliases) != 2 {
		t.Errorf("expected merged aliases, got %v", entity.Aliases)
	}
}

func TestInternalID_Format(t *testing.T) {
	id := NewInternalID(KindPlayer)
	if !strings.HasPrefix(id, "player_") {
		t.Errorf("expected player_ prefix, got %s", id)
	}
	if len(id) != len("player_")+8 {
		t.Errorf("expected 8-char suffix, got %s", id)
	}
}

func TestComputeSourceHash_Reproducible(t *testing.T) {
	build := func() *FactSheet {
		fs := New(Options{PostType: PostRanking, Title: "t"})
		fs.Entities = nil
		age := 23
		fs.AddEntity(Entity{Kind: KindPlayer, Name: "Pedri", InternalID: "player_fixed001", Confidence: 1.0})
		fs.SetPlayerFact("player_fixed001", PlayerFields{CurrentClub: "FC Barcelone", Age: &age}, "transfermarkt", time.Hour)
		return fs
	}

	a := build()
	b := build()

	// Retrieval timestamps differ between builds; pin them.
	b.StructuredFacts.Players[0].RetrievedAt = a.StructuredFacts.Players[0].RetrievedAt

	hashA, err := a.ComputeSourceHash()
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	hashB, err := b.ComputeSourceHash()
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	if hashA != hashB {
		t.Errorf("expected identical hashes, got %s and %s", hashA, hashB)
	}
	if len(hashA) != 16 {
		t.Errorf("expected 16 hex chars, got %q", hashA)
	}
}

func TestComputeSourceHash_ExcludesMeta(t *testing.T) {
	fs := New(Options{PostType: PostNews, Title: "a"})
	fs.AddEntity(Entity{Kind: KindPlayer, Name: "Pedri", InternalID: "player_fixed001"})

	before, _ := fs.ComputeSourceHash()
	fs.Meta.Title = "completely different"
	after, _ := fs.ComputeSourceHash()

	if before != after {
		t.Error("meta changes must not affect the source hash")
	}
}

func TestJSONRoundTrip(t *testing.T) {
	fs := New(Options{PostType: PostRanking, Title: "Top 5"})
	ref := fs.AddEntity(Entity{Kind: KindPlayer, Name: "Bellingham", Confidence: 1.0})
	fs.SetPlayerFact(ref, PlayerFields{CurrentClub: "Real Madrid", Position: "Central Midfield"}, "transfermarkt", time.Hour)
	fs.AddEvidence(EvidenceItem{URL: "https://lequipe.fr/a", Publisher: "lequipe", TrustScore: 0.9, ClaimTags: []string{"performance"}})
	fs.LockRanking([]string{ref})

	data, err := fs.ToJSON()
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	restored, err := FromJSON(data)
	if err != nil {
		t.Fatalf("import: %v", err)
	}

	if restored.Meta.ID != fs.Meta.ID {
		t.Errorf("id mismatch: %s vs %s", restored.Meta.ID, fs.Meta.ID)
	}
	if restored.Meta.SourceHash != fs.Meta.SourceHash {
		t.Errorf("hash mismatch: %s vs %s", restored.Meta.SourceHash, fs.Meta.SourceHash)
	}
	if len(restored.LockedFacts.RankingLocked) != 1 || restored.LockedFacts.RankingLocked[0] != ref {
		t.Errorf("locked ranking lost: %v", restored.LockedFacts.RankingLocked)
	}
	if restored.StructuredFacts.Players[0].Fields.CurrentClub != "Real Madrid" {
		t.Error("player fact lost in round trip")
	}
}

func TestCurrentSeason_AugustRollover(t *testing.T) {
	july := time.Date(2026, time.July, 15, 0, 0, 0, 0, time.UTC)
	august := time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC)

	if got := CurrentSeason(july); got != "2025-2026" {
		t.Errorf("july: expected 2025-2026, got %s", got)
	}
	if got := CurrentSeason(august); got != "2026-2027" {
		t.Errorf("august: expected 2026-2027, got %s", got)
	}
	if got := SeasonStart(july); got != "2025-08-01" {
		t.Errorf("july start: expected 2025-08-01, got %s", got)
	}
}

func TestAggregateStatus(t *testing.T) {
	cases := []struct {
		name   string
		checks []QualityCheck
		want   CheckStatus
	}{
		{"empty", nil, StatusPass},
		{"all pass", []QualityCheck{{Status: StatusPass}}, StatusPass},
		{"warn wins over pass", []QualityCheck{{Status: StatusPass}, {Status: StatusWarn}}, StatusWarn},
		{"fail wins over warn", []QualityCheck{{Status: StatusWarn}, {Status: StatusFail}}, StatusFail},
	}
	for _, tc := range cases {
		if got := AggregateStatus(tc.checks); got != tc.want {
			t.Errorf("%s: expected %s, got %s", tc.name, tc.want, got)
		}
	}
}
