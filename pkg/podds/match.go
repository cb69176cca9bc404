package podds

import "fmt"

// TeamName is a canonical team name, the key of a StatsTable
type TeamName string

func (n TeamName) String() string {
	return string(n)
}

// CompletedMatch is one played fixture. Scores have already been validated
// and home and away teams are always different.
type CompletedMatch struct {
	HomeTeam  TeamName `json:"home_team"`
	AwayTeam  TeamName `json:"away_team"`
	HomeGoals int      `json:"home_goals"`
	AwayGoals int      `json:"away_goals"`
}

func (m CompletedMatch) String() string {
	return fmt.Sprintf("%s %d x %d %s", m.HomeTeam, m.HomeGoals, m.AwayGoals, m.AwayTeam)
}

// Fixture is an upcoming (or hypothetical) pairing to forecast.
type Fixture struct {
	Sequence int      `json:"sequence_number"`
	HomeTeam TeamName `json:"home_team"`
	AwayTeam TeamName `json:"away_team"`
}

func (f Fixture) String() string {
	return fmt.Sprintf("Jogo %d: %s x %s", f.Sequence, f.HomeTeam, f.AwayTeam)
}

// Round is a numbered set of fixtures, as published by the fixtures source
type Round struct {
	Number   int       `json:"round"`
	Fixtures []Fixture `json:"fixtures"`
}
