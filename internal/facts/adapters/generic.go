package adapters

import (
	"github.com/afriquesports/factsheet/internal/facts/marketvalue"
	"github.com/afriquesports/factsheet/internal/model"
)

// GenericAdapter is the fallback for unknown sources. It tries the
// common key spellings across known feeds; anything it cannot find
// stays missing.
type GenericAdapter struct{}

// NewGenericAdapter creates the fallback adapter.
func NewGenericAdapter() *GenericAdapter {
	return &GenericAdapter{}
}

func (a *GenericAdapter) Name() string { return "generic" }

func (a *GenericAdapter) Normalize(raw map[string]any) model.PlayerFields {
	mv := getString(raw, "marketValue", "market_value")

	fields := model.PlayerFields{
		FullName:    getString(raw, "name", "fullName", "displayName"),
		Age:         getInt(raw, "age"),
		Nationality: getString(raw, "nationality", "citizenship"),
		BirthDate:   getString(raw, "birthDate", "dateOfBirth"),

		CurrentClub: getString(raw, "currentClub", "club", "team"),
		Position:    getString(raw, "position"),
		ShirtNumber: getInt(raw, "shirtNumber", "jersey"),

		MarketValue:        mv,
		MarketValueNumeric: marketvalue.Parse(mv),
	}

	stats := getMap(raw, "stats")
	if stats == nil {
		stats = getMap(raw, "statistics")
	}
	if stats != nil {
		fields.Season = getString(stats, "season")
		fields.Stats = &model.SeasonStats{
			Competition:   getString(stats, "competition", "league"),
			Appearances:   intOrZero(getInt(stats, "appearances")),
			Goals:         intOrZero(getInt(stats, "goals")),
			Assists:       intOrZero(getInt(stats, "assists")),
			MinutesPlayed: intOrZero(getInt(stats, "minutesPlayed", "minutes")),
			YellowCards:   intOrZero(getInt(stats, "yellowCards")),
			RedCards:      intOrZero(getInt(stats, "redCards")),
			Rating:        getFloat(stats, "rating", "averageRating"),
		}
	}

	return fields
}
