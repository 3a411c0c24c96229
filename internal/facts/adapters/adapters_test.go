package adapters

import (
	"testing"
)

func TestTransfermarktAdapter_Normalize(t *testing.T) {
	adapter := NewTransfermarktAdapter()
	fields := adapter.Normalize(map[string]any{
		"name":        "Pedri",
		"age":         23,
		"nationality": "Spain",
		"currentClub": "FC Barcelona",
		"position":    "Central Midfield",
		"shirtNumber": "8",
		"marketValue": "€140.00m",
		"stats": map[string]any{
			"season":        "2025-2026",
			"competition":   "LaLiga",
			"appearances":   30,
			"goals":         6,
			"assists":       8,
			"minutesPlayed": 2520,
			"rating":        7.45,
		},
	})

	if fields.FullName != "Pedri" {
		t.Errorf("expected name Pedri, got %q", fields.FullName)
	}
	if fields.Age == nil || *fields.Age != 23 {
		t.Errorf("expected age 23, got %v", fields.Age)
	}
	if fields.ShirtNumber == nil || *fields.ShirtNumber != 8 {
		t.Errorf("expected shirt number 8 from string input, got %v", fields.ShirtNumber)
	}
	if fields.MarketValue != "€140.00m" {
		t.Errorf("expected display value kept, got %q", fields.MarketValue)
	}
	if fields.MarketValueNumeric == nil || *fields.MarketValueNumeric != 140.0 {
		t.Errorf("expected numeric value 140.0, got %v", fields.MarketValueNumeric)
	}
	if fields.Stats == nil {
		t.Fatal("expected stats")
	}
	if fields.Stats.Goals != 6 || fields.Stats.Assists != 8 {
		t.Errorf("expected 6G 8A, got %dG %dA", fields.Stats.Goals, fields.Stats.Assists)
	}
	if fields.Stats.Rating == nil || *fields.Stats.Rating != 7.45 {
		t.Errorf("expected rating 7.45, got %v", fields.Stats.Rating)
	}
}

func TestTransfermarktAdapter_MissingFieldsStayNil(t *testing.T) {
	adapter := NewTransfermarktAdapter()
	fields := adapter.Normalize(map[string]any{"name": "Someone"})

	if fields.Age != nil {
		t.Errorf("expected nil age, got %v", *fields.Age)
	}
	if fields.MarketValueNumeric != nil {
		t.Errorf("expected nil numeric value, got %v", *fields.MarketValueNumeric)
	}
	if fields.Stats != nil {
		t.Error("expected nil stats")
	}
}

func TestESPNAdapter_Normalize(t *testing.T) {
	adapter := NewESPNAdapter()
	fields := adapter.Normalize(map[string]any{
		"displayName": "Jude Bellingham",
		"age":         22.0,
		"citizenship": "England",
		"team":        "Real Madrid",
		"position":    "Attacking Midfield",
		"jersey":      5,
		"statistics": map[string]any{
			"season":        "2025-2026",
			"league":        "LaLiga",
			"appearances":   28,
			"goals":         14,
			"assists":       9,
			"averageRating": 7.9,
		},
	})

	if fields.FullName != "Jude Bellingham" {
		t.Errorf("expected display name mapped, got %q", fields.FullName)
	}
	if fields.CurrentClub != "Real Madrid" {
		t.Errorf("expected team mapped to club, got %q", fields.CurrentClub)
	}
	if fields.Stats == nil || fields.Stats.Competition != "LaLiga" {
		t.Errorf("expected league mapped to competition, got %+v", fields.Stats)
	}
	if fields.Stats.Rating == nil || *fields.Stats.Rating != 7.9 {
		t.Errorf("expected averageRating mapped, got %v", fields.Stats.Rating)
	}
}

func TestRegistry_ForSource(t *testing.T) {
	r := NewRegistry()

	if got := r.ForSource("transfermarkt").Name(); got != "transfermarkt" {
		t.Errorf("expected transfermarkt adapter, got %s", got)
	}
	if got := r.ForSource("transfermarkt+espn").Name(); got != "transfermarkt" {
		t.Errorf("expected composite tag to match first component, got %s", got)
	}
	if got := r.ForSource("somewhere-else").Name(); got != "generic" {
		t.Errorf("expected generic fallback, got %s", got)
	}
}
