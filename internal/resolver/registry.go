package resolver

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/afriquesports/factsheet/internal/model"
)

// Entry is one canonical record in an entity registry.
type Entry struct {
	Name               string            `yaml:"name"`
	Aliases            []string          `yaml:"aliases"`
	ExternalIDs        map[string]string `yaml:"ids"`
	Team               string            `yaml:"team,omitempty"`
	Nationality        string            `yaml:"nationality,omitempty"`
	Position           string            `yaml:"position,omitempty"`
	Country            string            `yaml:"country,omitempty"`
	League             string            `yaml:"league,omitempty"`
	DisambiguationNote string            `yaml:"disambiguation,omitempty"`
}

// Registry is the read-only lookup service behind entity resolution.
// Implementations return entries keyed by normalized canonical name.
type Registry interface {
	Entries(kind model.EntityKind) map[string]Entry
}

// StaticRegistry is an in-memory Registry built from fixture data or a
// YAML file. It is immutable after construction.
type StaticRegistry struct {
	players map[string]Entry
	teams   map[string]Entry
}

// NewStaticRegistry builds a registry from canonical entries; map keys
// are recomputed with Normalize so callers can pass display names.
func NewStaticRegistry(players, teams []Entry) *StaticRegistry {
	r := &StaticRegistry{
		players: make(map[string]Entry, len(players)),
		teams:   make(map[string]Entry, len(teams)),
	}
	for _, e := range players {
		r.players[Normalize(e.Name)] = e
	}
	for _, e := range teams {
		r.teams[Normalize(e.Name)] = e
	}
	return r
}

// Entries returns the entry map for a kind; unknown kinds resolve to
// an empty map so matching simply finds nothing.
func (r *StaticRegistry) Entries(kind model.EntityKind) map[string]Entry {
	switch kind {
	case model.KindPlayer:
		return r.players
	case model.KindTeam:
		return r.teams
	default:
		return map[string]Entry{}
	}
}

type registryFile struct {
	Players []Entry `yaml:"players"`
	Teams   []Entry `yaml:"teams"`
}

// LoadRegistry reads a YAML registry file with top-level players and
// teams lists.
func LoadRegistry(path string) (*StaticRegistry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read registry: %w", err)
	}

	var file registryFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse registry: %w", err)
	}

	return NewStaticRegistry(file.Players, file.Teams), nil
}

// DefaultRegistry returns the built-in registry covering the players
// and clubs the editorial pipeline writes about most often.
func DefaultRegistry() *StaticRegistry {
	players := []Entry{
		{Name: "Pedri", Aliases: []string{"Pedro González López", "Pedri González"},
			ExternalIDs: map[string]string{"transfermarkt": "901292", "fbref": "pedri", "sofascore": "934235"},
			Team:        "Barcelona", Nationality: "Spain", Position: "Central Midfield"},
		{Name: "Jude Bellingham", Aliases: []string{"Jude Victor William Bellingham"},
			ExternalIDs: map[string]string{"transfermarkt": "581678", "fbref": "jude-bellingham", "sofascore": "914561"},
			Team:        "Real Madrid", Nationality: "England", Position: "Attacking Midfield"},
		{Name: "Vitinha", Aliases: []string{"Vítor Ferreira", "Vitor Machado Ferreira"},
			ExternalIDs: map[string]string{"transfermarkt": "485004", "fbref": "vitinha", "sofascore": "934725"},
			Team:        "PSG", Nationality: "Portugal", Position: "Central Midfield",
			DisambiguationNote: "PSG midfielder, not Vitinha from Marseille"},
		{Name: "Rodri", Aliases: []string{"Rodrigo Hernández Cascante", "Rodrigo Hernandez"},
			ExternalIDs: map[string]string{"transfermarkt": "357565", "fbref": "rodrigo-hernandez", "sofascore": "827653"},
			Team:        "Manchester City", Nationality: "Spain", Position: "Defensive Midfield"},
		{Name: "Declan Rice",
			ExternalIDs: map[string]string{"transfermarkt": "396823", "fbref": "declan-rice", "sofascore": "864264"},
			Team:        "Arsenal", Nationality: "England", Position: "Defensive Midfield"},
		{Name: "Jamal Musiala",
			ExternalIDs: map[string]string{"transfermarkt": "580195", "fbref": "jamal-musiala", "sofascore": "942570"},
			Team:        "Bayern Munich", Nationality: "Germany", Position: "Attacking Midfield"},
		{Name: "Kevin De Bruyne", Aliases: []string{"KDB"},
			ExternalIDs: map[string]string{"transfermarkt": "88755", "fbref": "kevin-de-bruyne", "sofascore": "70996"},
			Team:        "Manchester City", Nationality: "Belgium", Position: "Attacking Midfield"},
		{Name: "Bruno Fernandes", Aliases: []string{"Bruno Miguel Borges Fernandes"},
			ExternalIDs: map[string]string{"transfermarkt": "240306", "fbref": "bruno-fernandes", "sofascore": "193471"},
			Team:        "Manchester United", Nationality: "Portugal", Position: "Attacking Midfield"},
		{Name: "Frenkie de Jong", Aliases: []string{"Frenkie"},
			ExternalIDs: map[string]string{"transfermarkt": "326330", "fbref": "frenkie-de-jong", "sofascore": "804297"},
			Team:        "Barcelona", Nationality: "Netherlands", Position: "Central Midfield"},
		{Name: "Nicolò Barella", Aliases: []string{"Nicolo Barella", "Barella"},
			ExternalIDs: map[string]string{"transfermarkt": "255942", "fbref": "nicolo-barella", "sofascore": "815082"},
			Team:        "Inter Milan", Nationality: "Italy", Position: "Central Midfield"},
		{Name: "Eduardo Camavinga", Aliases: []string{"Camavinga"},
			ExternalIDs: map[string]string{"transfermarkt": "516018", "fbref": "eduardo-camavinga", "sofascore": "901627"},
			Team:        "Real Madrid", Nationality: "France", Position: "Central Midfield"},
		{Name: "João Neves", Aliases: []string{"Joao Neves"},
			ExternalIDs: map[string]string{"transfermarkt": "801890", "fbref": "joao-neves", "sofascore": "1096472"},
			Team:        "PSG", Nationality: "Portugal", Position: "Central Midfield",
			DisambiguationNote: "Young Portuguese midfielder at PSG, not Rúben Neves"},
		{Name: "Florian Wirtz", Aliases: []string{"Wirtz"},
			ExternalIDs: map[string]string{"transfermarkt": "521361", "fbref": "florian-wirtz", "sofascore": "929730"},
			Team:        "Bayer Leverkusen", Nationality: "Germany", Position: "Attacking Midfield"},
		{Name: "Martin Ødegaard", Aliases: []string{"Martin Odegaard", "Ødegaard", "Odegaard"},
			ExternalIDs: map[string]string{"transfermarkt": "316264", "fbref": "martin-odegaard", "sofascore": "794925"},
			Team:        "Arsenal", Nationality: "Norway", Position: "Attacking Midfield"},
		{Name: "Luka Modrić", Aliases: []string{"Luka Modric", "Modrić", "Modric"},
			ExternalIDs: map[string]string{"transfermarkt": "27992", "fbref": "luka-modric", "sofascore": "7767"},
			Team:        "Real Madrid", Nationality: "Croatia", Position: "Central Midfield"},
	}

	teams := []Entry{
		{Name: "FC Barcelona", Aliases: []string{"Barcelona", "Barça", "Barca", "FCB"},
			ExternalIDs: map[string]string{"transfermarkt": "131", "fbref": "barcelona", "sofascore": "2817"},
			Country:     "Spain", League: "LaLiga"},
		{Name: "Real Madrid", Aliases: []string{"Madrid", "Real", "Los Blancos"},
			ExternalIDs: map[string]string{"transfermarkt": "418", "fbref": "real-madrid", "sofascore": "2829"},
			Country:     "Spain", League: "LaLiga"},
		{Name: "Paris Saint-Germain", Aliases: []string{"PSG", "Paris SG", "Paris"},
			ExternalIDs: map[string]string{"transfermarkt": "583", "fbref": "paris-saint-germain", "sofascore": "1644"},
			Country:     "France", League: "Ligue 1"},
		{Name: "Manchester City", Aliases: []string{"Man City", "City", "MCFC"},
			ExternalIDs: map[string]string{"transfermarkt": "281", "fbref": "manchester-city", "sofascore": "17"},
			Country:     "England", League: "Premier League"},
		{Name: "Arsenal FC", Aliases: []string{"Arsenal", "Gunners", "AFC"},
			ExternalIDs: map[string]string{"transfermarkt": "11", "fbref": "arsenal", "sofascore": "42"},
			Country:     "England", League: "Premier League"},
		{Name: "Bayern Munich", Aliases: []string{"Bayern", "FC Bayern"},
			ExternalIDs: map[string]string{"transfermarkt": "27", "fbref": "bayern-munich", "sofascore": "2672"},
			Country:     "Germany", League: "Bundesliga"},
		{Name: "Inter Milan", Aliases: []string{"Inter", "Internazionale", "Nerazzurri"},
			ExternalIDs: map[string]string{"transfermarkt": "46", "fbref": "inter-milan", "sofascore": "2697"},
			Country:     "Italy", League: "Serie A"},
	}

	return NewStaticRegistry(players, teams)
}
