package model

// RankingEntry is one scored row of a computed ranking. Array order
// implies position; Components keeps the transparent per-criterion
// breakdown that produced Score.
type RankingEntry struct {
	EntityRef        string             `json:"entityRef"`
	Name             string             `json:"name"`
	Score            float64            `json:"score"`
	Components       map[string]float64 `json:"components"`
	LeagueMultiplier float64            `json:"leagueMultiplier"`
}
