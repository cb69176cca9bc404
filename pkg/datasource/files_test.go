package datasource

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/g-claudino/Cartola-FC-Tournament-Analysis/pkg/podds"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestFileResultsJSON(t *testing.T) {
	path := writeFile(t, "results.json", `[
		{"home_team": "A", "away_team": "B", "home_goals": 2, "away_goals": 1},
		{"home_team": "B", "away_team": "A", "score": "1–1"},
		{"home_team": "C", "away_team": "C", "home_goals": 0, "away_goals": 0}
	]`)
	matches, err := (&FileResults{Path: path}).Results(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []podds.CompletedMatch{
		{HomeTeam: "A", AwayTeam: "B", HomeGoals: 2, AwayGoals: 1},
		{HomeTeam: "B", AwayTeam: "A", HomeGoals: 1, AwayGoals: 1},
	}, matches)
}

func TestFileResultsCSV(t *testing.T) {
	path := writeFile(t, "results.csv", "\ufeffhome_team,away_team,home_goals,away_goals,score\nA,B,2,1,\nB,A,,,3-0\n")
	matches, err := (&FileResults{Path: path}).Results(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []podds.CompletedMatch{
		{HomeTeam: "A", AwayTeam: "B", HomeGoals: 2, AwayGoals: 1},
		{HomeTeam: "B", AwayTeam: "A", HomeGoals: 3, AwayGoals: 0},
	}, matches)
}

func TestFileResultsMalformed(t *testing.T) {
	for name, content := range map[string]string{
		"negative.json": `[{"home_team": "A", "away_team": "B", "home_goals": -1, "away_goals": 0}]`,
		"fraction.json": `[{"home_team": "A", "away_team": "B", "home_goals": 1.5, "away_goals": 0}]`,
		"missing.csv":   "home_team,away_team,home_goals,away_goals\nA,B,2,\n",
		"score.csv":     "home_team,away_team,score\nA,B,two-one\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := (&FileResults{Path: writeFile(t, name, content)}).Results(context.Background())
			assert.ErrorIs(t, err, podds.ErrMalformedScore)
		})
	}
}

func TestFileFixtures(t *testing.T) {
	aliases := NewAliasTable(map[string]string{"Vasco": "Vasco da Gama"})

	wrapped := writeFile(t, "round.json", `{"round": 12, "fixtures": [
		{"sequence_number": 4, "home_team": "Vasco", "away_team": "Flamengo"},
		{"home_team": "Palmeiras", "away_team": "Bahia"}
	]}`)
	round, err := (&FileFixtures{Path: wrapped, Aliases: aliases}).Fixtures(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 12, round.Number)
	assert.Equal(t, []podds.Fixture{
		{Sequence: 4, HomeTeam: "Vasco da Gama", AwayTeam: "Flamengo"},
		{Sequence: 2, HomeTeam: "Palmeiras", AwayTeam: "Bahia"},
	}, round.Fixtures)

	bare := writeFile(t, "fixtures.json", `[{"home_team": "A", "away_team": "B"}]`)
	round, err = (&FileFixtures{Path: bare}).Fixtures(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, round.Number)
	assert.Equal(t, []podds.Fixture{{Sequence: 1, HomeTeam: "A", AwayTeam: "B"}}, round.Fixtures)

	csvPath := writeFile(t, "fixtures.csv", "sequence_number,home_team,away_team\n1,A,B\n2,C,D\n")
	round, err = (&FileFixtures{Path: csvPath}).Fixtures(context.Background())
	require.NoError(t, err)
	assert.Len(t, round.Fixtures, 2)
	assert.Equal(t, podds.TeamName("C"), round.Fixtures[1].HomeTeam)

	missing := writeFile(t, "bad.json", `[{"home_team": "A"}]`)
	_, err = (&FileFixtures{Path: missing}).Fixtures(context.Background())
	assert.ErrorContains(t, err, "home_team and away_team are required")
}
