package model

// Config is the full runtime configuration tree. Defaults mirror the
// production lookup tables; everything is injectable so tests can
// substitute fixtures.
type Config struct {
	HTTP         HTTPConfig              `yaml:"http" mapstructure:"http"`
	Cache        CacheConfig             `yaml:"cache" mapstructure:"cache"`
	Concurrency  ConcurrencyConfig       `yaml:"concurrency" mapstructure:"concurrency"`
	Search       SearchConfig            `yaml:"search" mapstructure:"search"`
	Facts        FactsConfig             `yaml:"facts" mapstructure:"facts"`
	Trust        TrustConfig             `yaml:"trust" mapstructure:"trust"`
	Ranking      RankingConfig           `yaml:"ranking" mapstructure:"ranking"`
	Requirements map[string]Requirements `yaml:"requirements" mapstructure:"requirements"`
	LLM          LLMConfig               `yaml:"llm" mapstructure:"llm"`
}

// HTTPConfig bounds every outbound HTTP call.
type HTTPConfig struct {
	TimeoutSeconds    int     `yaml:"timeout_seconds" mapstructure:"timeout_seconds"`
	UserAgent         string  `yaml:"user_agent" mapstructure:"user_agent"`
	MaxBodyBytes      int64   `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	Burst             int     `yaml:"burst" mapstructure:"burst"`
}

// CacheConfig configures the layered fact cache.
type CacheConfig struct {
	Dir               string `yaml:"dir" mapstructure:"dir"`
	MemoryTTLMinutes  int    `yaml:"memory_ttl_minutes" mapstructure:"memory_ttl_minutes"`
	DiskTTLHours      int    `yaml:"disk_ttl_hours" mapstructure:"disk_ttl_hours"`
	FailureTTLMinutes int    `yaml:"failure_ttl_minutes" mapstructure:"failure_ttl_minutes"`
}

// ConcurrencyConfig sizes the worker pools.
type ConcurrencyConfig struct {
	FetchWorkers int `yaml:"fetch_workers" mapstructure:"fetch_workers"`
	BatchWorkers int `yaml:"batch_workers" mapstructure:"batch_workers"`
}

// SearchConfig configures the evidence search backend and the fan-out
// bounds per entity kind.
type SearchConfig struct {
	BaseURL        string `yaml:"base_url" mapstructure:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds" mapstructure:"timeout_seconds"`
	PlayerResults  int    `yaml:"player_results" mapstructure:"player_results"`
	TeamResults    int    `yaml:"team_results" mapstructure:"team_results"`
	TopicResults   int    `yaml:"topic_results" mapstructure:"topic_results"`
	MaxPlayers     int    `yaml:"max_players" mapstructure:"max_players"`
	MaxTeams       int    `yaml:"max_teams" mapstructure:"max_teams"`
}

// FactsConfig configures the structured facts source.
type FactsConfig struct {
	ProfileBaseURL string `yaml:"profile_base_url" mapstructure:"profile_base_url"`
	RegistryPath   string `yaml:"registry_path" mapstructure:"registry_path"`
}

// TrustConfig is the publisher-authority table: domain fragment to
// trust score in [0,1].
type TrustConfig struct {
	Publishers map[string]float64 `yaml:"publishers" mapstructure:"publishers"`
	Default    float64            `yaml:"default" mapstructure:"default"`
}

// Weights is one per-position scoring weight vector.
type Weights struct {
	Goals         float64 `yaml:"goals" mapstructure:"goals"`
	Assists       float64 `yaml:"assists" mapstructure:"assists"`
	Appearances   float64 `yaml:"appearances" mapstructure:"appearances"`
	Rating        float64 `yaml:"rating" mapstructure:"rating"`
	MarketValue   float64 `yaml:"market_value" mapstructure:"market_value"`
	Age           float64 `yaml:"age" mapstructure:"age"`
	MinutesPlayed float64 `yaml:"minutes_played" mapstructure:"minutes_played"`
}

// RankingConfig configures the deterministic scorer.
type RankingConfig struct {
	PositionWeights   map[string]Weights `yaml:"position_weights" mapstructure:"position_weights"`
	LeagueMultipliers map[string]float64 `yaml:"league_multipliers" mapstructure:"league_multipliers"`
	DefaultMultiplier float64            `yaml:"default_multiplier" mapstructure:"default_multiplier"`
	RatingFloor       float64            `yaml:"rating_floor" mapstructure:"rating_floor"`
	PeakAgeCeiling    int                `yaml:"peak_age_ceiling" mapstructure:"peak_age_ceiling"`
	DefaultLimit      int                `yaml:"default_limit" mapstructure:"default_limit"`
}

// Requirements is the minimum-quality profile for one post type.
type Requirements struct {
	MinEntities           int     `yaml:"min_entities" mapstructure:"min_entities"`
	MinPlayerFacts        int     `yaml:"min_player_facts" mapstructure:"min_player_facts"`
	MinEvidence           int     `yaml:"min_evidence" mapstructure:"min_evidence"`
	RequiresLockedRanking bool    `yaml:"requires_locked_ranking" mapstructure:"requires_locked_ranking"`
	MinConfidence         float64 `yaml:"min_confidence" mapstructure:"min_confidence"`
}

// LLMConfig configures the generation collaborator.
type LLMConfig struct {
	Provider       string `yaml:"provider" mapstructure:"provider"`
	Model          string `yaml:"model" mapstructure:"model"`
	APIKey         string `yaml:"api_key" mapstructure:"api_key"`
	BaseURL        string `yaml:"base_url" mapstructure:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds" mapstructure:"timeout_seconds"`
	MaxTokens      int    `yaml:"max_tokens" mapstructure:"max_tokens"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			TimeoutSeconds:    15,
			UserAgent:         "factsheet/1.0 (+https://github.com/afriquesports/factsheet)",
			MaxBodyBytes:      2 << 20,
			RequestsPerSecond: 2,
			Burst:             4,
		},
		Cache: CacheConfig{
			Dir:               "",
			MemoryTTLMinutes:  60,
			DiskTTLHours:      24,
			FailureTTLMinutes: 15,
		},
		Concurrency: ConcurrencyConfig{
			FetchWorkers: 4,
			BatchWorkers: 2,
		},
		Search: SearchConfig{
			BaseURL:        "http://127.0.0.1:8100",
			TimeoutSeconds: 15,
			PlayerResults:  3,
			TeamResults:    2,
			TopicResults:   3,
			MaxPlayers:     10,
			MaxTeams:       5,
		},
		Facts: FactsConfig{
			ProfileBaseURL: "https://www.transfermarkt.com/profil",
		},
		Trust: TrustConfig{
			Publishers: map[string]float64{
				"real-france":     0.7,
				"africatopsports": 0.75,
				"le10sport":       0.65,
				"lequipe":         0.9,
				"marca":           0.85,
				"gazzetta":        0.85,
				"bbc":             0.95,
				"espn":            0.9,
				"transfermarkt":   0.95,
			},
			Default: 0.5,
		},
		Ranking: RankingConfig{
			PositionWeights: map[string]Weights{
				"Attacking Midfield": {Goals: 12, Assists: 10, Appearances: 1, Rating: 8, MarketValue: 5, Age: 2, MinutesPlayed: 0.5},
				"Central Midfield":   {Goals: 8, Assists: 10, Appearances: 2, Rating: 10, MarketValue: 5, Age: 2, MinutesPlayed: 0.5},
				"Defensive Midfield": {Goals: 5, Assists: 8, Appearances: 3, Rating: 12, MarketValue: 4, Age: 1, MinutesPlayed: 0.5},
				"default":            {Goals: 10, Assists: 10, Appearances: 2, Rating: 10, MarketValue: 5, Age: 2, MinutesPlayed: 0.5},
			},
			LeagueMultipliers: map[string]float64{
				"Premier League": 1.1,
				"LaLiga":         1.08,
				"Serie A":        1.05,
				"Bundesliga":     1.05,
				"Ligue 1":        1.02,
			},
			DefaultMultiplier: 1.0,
			RatingFloor:       6.0,
			PeakAgeCeiling:    32,
			DefaultLimit:      10,
		},
		Requirements: map[string]Requirements{
			string(PostRanking): {MinEntities: 5, MinPlayerFacts: 5, MinEvidence: 3, RequiresLockedRanking: true, MinConfidence: 0.7},
			string(PostNews):    {MinEntities: 1, MinPlayerFacts: 0, MinEvidence: 1, RequiresLockedRanking: false, MinConfidence: 0.6},
			string(PostRecap):   {MinEntities: 2, MinPlayerFacts: 0, MinEvidence: 2, RequiresLockedRanking: false, MinConfidence: 0.7},
			string(PostProfile): {MinEntities: 1, MinPlayerFacts: 1, MinEvidence: 2, RequiresLockedRanking: false, MinConfidence: 0.8},
			"default":           {MinEntities: 1, MinPlayerFacts: 0, MinEvidence: 0, RequiresLockedRanking: false, MinConfidence: 0.5},
		},
		LLM: LLMConfig{
			Provider:       "",
			Model:          "gpt-4o-mini",
			TimeoutSeconds: 60,
			MaxTokens:      3000,
		},
	}
}

// RequirementsFor returns the profile for a post type, falling back to
// the default profile.
func (c *Config) RequirementsFor(postType PostType) Requirements {
	if r, ok := c.Requirements[string(postType)]; ok {
		return r
	}
	return c.Requirements["default"]
}
