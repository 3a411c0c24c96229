package model

import "time"

// StructuredFact holds the verified attribute record for one entity.
// Re-collection replaces the whole record; there is never more than
// one fact record per entity ref.
type StructuredFact struct {
	EntityRef   string       `json:"entityRef"`
	Fields      PlayerFields `json:"fields"`
	RetrievedAt time.Time    `json:"retrievedAt"`
	TTLSeconds  int          `json:"ttlSeconds"`
	Source      string       `json:"source"`
}

// PlayerFields is the canonical fact schema adapters normalize into.
// Optional fields are pointers so that "missing" stays distinguishable
// from zero values.
type PlayerFields struct {
	FullName    string `json:"fullName,omitempty"`
	Age         *int   `json:"age,omitempty"`
	Nationality string `json:"nationality,omitempty"`
	BirthDate   string `json:"birthDate,omitempty"`

	CurrentClub   string `json:"currentClub,omitempty"`
	Position      string `json:"position,omitempty"`
	ShirtNumber   *int   `json:"shirtNumber,omitempty"`
	PreferredFoot string `json:"preferredFoot,omitempty"`
	ContractUntil string `json:"contractUntil,omitempty"`

	MarketValue        string   `json:"marketValue,omitempty"`
	MarketValueNumeric *float64 `json:"marketValueNumeric,omitempty"`

	Season string       `json:"season,omitempty"`
	Stats  *SeasonStats `json:"stats,omitempty"`

	Height string `json:"height,omitempty"`
	Weight string `json:"weight,omitempty"`
	Agent  string `json:"agent,omitempty"`

	TransfermarktURL string `json:"transfermarktUrl,omitempty"`
	ESPNURL          string `json:"espnUrl,omitempty"`
}

// SeasonStats is the per-season performance sub-record.
type SeasonStats struct {
	Competition   string   `json:"competition,omitempty"`
	Appearances   int      `json:"appearances"`
	Goals         int      `json:"goals"`
	Assists       int      `json:"assists"`
	MinutesPlayed int      `json:"minutesPlayed"`
	YellowCards   int      `json:"yellowCards"`
	RedCards      int      `json:"redCards"`
	Rating        *float64 `json:"rating,omitempty"`
}
