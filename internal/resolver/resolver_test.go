package resolver

import (
	"strings"
	"testing"

	"github.com/afriquesports/factsheet/internal/model"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Pedri", "pedri"},
		{"Martin Ødegaard", "martin odegaard"},
		{"  Luka   Modrić ", "luka modric"},
		{"Saint-Germain", "saintgermain"},
		{"N'Golo Kanté", "ngolo kante"},
		{"Robert Lewandowski", "robert lewandowski"},
		{"Grzegorz Krychowiak", "grzegorz krychowiak"},
		{"Łukasz Fabiański", "lukasz fabianski"},
		{"Max Großkreutz", "max grosskreutz"},
		{"Bjørn Æresvær", "bjorn aeresvaer"},
	}
	for _, tc := range cases {
		if got := Normalize(tc.in); got != tc.want {
			t.Errorf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestResolve_ExactMatch(t *testing.T) {
	r := New(nil)
	entity := r.Resolve("Pedri", model.KindPlayer)

	if entity.Confidence != 1.0 {
		t.Errorf("expected confidence 1.0, got %f", entity.Confidence)
	}
	if entity.ExternalIDs["transfermarkt"] == "" {
		t.Error("expected transfermarkt id on exact match")
	}
}

func TestResolve_ExactMatchIgnoresDiacritics(t *testing.T) {
	r := New(nil)
	entity := r.Resolve("martin odegaard", model.KindPlayer)

	if entity.Name != "Martin Ødegaard" {
		t.Errorf("expected canonical name, got %s", entity.Name)
	}
	if entity.Confidence != 1.0 {
		t.Errorf("expected confidence 1.0, got %f", entity.Confidence)
	}
}

func TestResolve_PlayerAlias(t *testing.T) {
	r := New(nil)
	entity := r.Resolve("KDB", model.KindPlayer)

	if entity.Name != "Kevin De Bruyne" {
		t.Errorf("expected Kevin De Bruyne, got %s", entity.Name)
	}
	if entity.Confidence != 0.95 {
		t.Errorf("expected confidence 0.95, got %f", entity.Confidence)
	}
}

func TestResolve_TeamAliasSubstring(t *testing.T) {
	r := New(nil)
	entity := r.Resolve("Manchester City FC", model.KindTeam)

	if entity.Name != "Manchester City" {
		t.Errorf("expected Manchester City, got %s", entity.Name)
	}
	if entity.Confidence != 0.9 {
		t.Errorf("expected confidence 0.9, got %f", entity.Confidence)
	}
}

func TestResolve_LastNamePartial(t *testing.T) {
	r := New(nil)
	entity := r.Resolve("Bellingham", model.KindPlayer)

	if entity.Name != "Jude Bellingham" {
		t.Errorf("expected Jude Bellingham, got %s", entity.Name)
	}
	if entity.Confidence != 0.8 {
		t.Errorf("expected confidence 0.8, got %f", entity.Confidence)
	}
	if !strings.Contains(entity.DisambiguationNote, "Matched by last name") {
		t.Errorf("expected last-name note, got %q", entity.DisambiguationNote)
	}
}

func TestResolve_Unresolved(t *testing.T) {
	r := New(nil)
	entity := r.Resolve("Unknown Player XYZ", model.KindPlayer)

	if entity.Confidence != 0.3 {
		t.Errorf("expected confidence 0.3, got %f", entity.Confidence)
	}
	if entity.Name != "Unknown Player XYZ" {
		t.Errorf("expected input name kept, got %s", entity.Name)
	}
	if !strings.Contains(entity.DisambiguationNote, "UNRESOLVED") {
		t.Errorf("expected unresolved note, got %q", entity.DisambiguationNote)
	}
}

func TestResolveAll_Idempotent(t *testing.T) {
	r := New(nil)
	fs := model.New(model.Options{PostType: model.PostRanking})

	first, _ := r.ResolveAll(fs, []string{"Pedri", "Rodri"}, []string{"Barcelona"})
	second, _ := r.ResolveAll(fs, []string{"Pedri"}, nil)

	if len(fs.Entities) != 3 {
		t.Fatalf("expected 3 entities after repeated resolution, got %d", len(fs.Entities))
	}
	if first[0].Ref != second[0].Ref {
		t.Errorf("expected stable ref for Pedri, got %s and %s", first[0].Ref, second[0].Ref)
	}
}

func TestLoadRegistry_MissingFile(t *testing.T) {
	if _, err := LoadRegistry("/nonexistent/registry.yaml"); err == nil {
		t.Error("expected error for missing registry file")
	}
}
