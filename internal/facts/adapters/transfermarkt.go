package adapters

import (
	"github.com/afriquesports/factsheet/internal/facts/marketvalue"
	"github.com/afriquesports/factsheet/internal/model"
)

// TransfermarktAdapter normalizes profile payloads scraped from
// Transfermarkt pages.
//
// Input contract (all optional):
//
//	scalars: name, age, nationality, birthDate, currentClub, position,
//	shirtNumber, preferredFoot, contractUntil, marketValue, height,
//	weight, agent, transfermarktUrl
//	stats object: season, competition, appearances, goals, assists,
//	minutesPlayed, yellowCards, redCards, rating
type TransfermarktAdapter struct{}

// NewTransfermarktAdapter creates the Transfermarkt adapter.
func NewTransfermarktAdapter() *TransfermarktAdapter {
	return &TransfermarktAdapter{}
}

func (a *TransfermarktAdapter) Name() string { return "transfermarkt" }

func (a *TransfermarktAdapter) Normalize(raw map[string]any) model.PlayerFields {
	mv := getString(raw, "marketValue")

	fields := model.PlayerFields{
		FullName:    getString(raw, "name"),
		Age:         getInt(raw, "age"),
		Nationality: getString(raw, "nationality"),
		BirthDate:   getString(raw, "birthDate"),

		CurrentClub:   getString(raw, "currentClub"),
		Position:      getString(raw, "position"),
		ShirtNumber:   getInt(raw, "shirtNumber"),
		PreferredFoot: getString(raw, "preferredFoot"),
		ContractUntil: getString(raw, "contractUntil"),

		MarketValue:        mv,
		MarketValueNumeric: marketvalue.Parse(mv),

		Height: getString(raw, "height"),
		Weight: getString(raw, "weight"),
		Agent:  getString(raw, "agent"),

		TransfermarktURL: getString(raw, "transfermarktUrl"),
	}

	if stats := getMap(raw, "stats"); stats != nil {
		fields.Season = getString(stats, "season")
		fields.Stats = &model.SeasonStats{
			Competition:   getString(stats, "competition"),
			Appearances:   intOrZero(getInt(stats, "appearances")),
			Goals:         intOrZero(getInt(stats, "goals")),
			Assists:       intOrZero(getInt(stats, "assists")),
			MinutesPlayed: intOrZero(getInt(stats, "minutesPlayed")),
			YellowCards:   intOrZero(getInt(stats, "yellowCards")),
			RedCards:      intOrZero(getInt(stats, "redCards")),
			Rating:        getFloat(stats, "rating"),
		}
	}

	return fields
}
