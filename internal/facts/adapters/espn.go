package adapters

import (
	"github.com/afriquesports/factsheet/internal/facts/marketvalue"
	"github.com/afriquesports/factsheet/internal/model"
)

// ESPNAdapter normalizes player payloads from the ESPN stats feed,
// which uses different key names than the Transfermarkt profile shape.
//
// Input contract (all optional):
//
//	scalars: displayName, age, citizenship, dateOfBirth, team, position,
//	jersey, marketValue, espnUrl
//	statistics object: season, league, appearances, goals, assists,
//	minutes, yellowCards, redCards, averageRating
type ESPNAdapter struct{}

// NewESPNAdapter creates the ESPN adapter.
func NewESPNAdapter() *ESPNAdapter {
	return &ESPNAdapter{}
}

func (a *ESPNAdapter) Name() string { return "espn" }

func (a *ESPNAdapter) Normalize(raw map[string]any) model.PlayerFields {
	mv := getString(raw, "marketValue")

	fields := model.PlayerFields{
		FullName:    getString(raw, "displayName", "name"),
		Age:         getInt(raw, "age"),
		Nationality: getString(raw, "citizenship"),
		BirthDate:   getString(raw, "dateOfBirth"),

		CurrentClub: getString(raw, "team"),
		Position:    getString(raw, "position"),
		ShirtNumber: getInt(raw, "jersey"),

		MarketValue:        mv,
		MarketValueNumeric: marketvalue.Parse(mv),

		ESPNURL: getString(raw, "espnUrl"),
	}

	if stats := getMap(raw, "statistics"); stats != nil {
		fields.Season = getString(stats, "season")
		fields.Stats = &model.SeasonStats{
			Competition:   getString(stats, "league"),
			Appearances:   intOrZero(getInt(stats, "appearances")),
			Goals:         intOrZero(getInt(stats, "goals")),
			Assists:       intOrZero(getInt(stats, "assists")),
			MinutesPlayed: intOrZero(getInt(stats, "minutes")),
			YellowCards:   intOrZero(getInt(stats, "yellowCards")),
			RedCards:      intOrZero(getInt(stats, "redCards")),
			Rating:        getFloat(stats, "averageRating"),
		}
	}

	return fields
}
