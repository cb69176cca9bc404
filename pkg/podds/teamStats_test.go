package podds

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildTeamStatsTwoMatchExample(t *testing.T) {
	table := BuildTeamStats([]CompletedMatch{
		{HomeTeam: "A", AwayTeam: "B", HomeGoals: 3, AwayGoals: 1},
		{HomeTeam: "B", AwayTeam: "A", HomeGoals: 2, AwayGoals: 0},
	})
	require.Len(t, table, 2)

	a, ok := table.Lookup("A")
	require.True(t, ok)
	scored, conceded, ok := a.Home()
	require.True(t, ok)
	assert.Equal(t, 3.0, scored)
	assert.Equal(t, 1.0, conceded)
	scored, conceded, ok = a.Away()
	require.True(t, ok)
	assert.Equal(t, 0.0, scored)
	assert.Equal(t, 2.0, conceded)

	b, ok := table.Lookup("B")
	require.True(t, ok)
	assert.Equal(t, 2.0, b.HomeScored)
	assert.Equal(t, 0.0, b.HomeConceded)
	assert.Equal(t, 1.0, b.AwayScored)
	assert.Equal(t, 3.0, b.AwayConceded)
}

func TestBuildTeamStatsAverages(t *testing.T) {
	table := BuildTeamStats(leagueMatches())
	require.Len(t, table, 3)

	c, ok := table.Lookup("C")
	require.True(t, ok)
	assert.Equal(t, 2, c.HomeMatches)
	assert.Equal(t, 2, c.AwayMatches)
	assert.InDelta(t, 0.5, c.HomeScored, 1e-12)
	assert.InDelta(t, 1.0, c.HomeConceded, 1e-12)
	assert.InDelta(t, 1.0, c.AwayScored, 1e-12)
	assert.InDelta(t, 2.5, c.AwayConceded, 1e-12)

	assert.Equal(t, []TeamName{"A", "B", "C"}, table.Teams())
	assert.NoError(t, table.Validate())
}

func TestBuildTeamStatsOrderInsensitive(t *testing.T) {
	matches := leagueMatches()
	reversed := make([]CompletedMatch, len(matches))
	for i, m := range matches {
		reversed[len(matches)-1-i] = m
	}
	assert.Equal(t, BuildTeamStats(matches), BuildTeamStats(reversed))
}

func TestBuildTeamStatsSingleVenueIsUndefined(t *testing.T) {
	table := BuildTeamStats([]CompletedMatch{
		{HomeTeam: "Home Only", AwayTeam: "Away Only", HomeGoals: 1, AwayGoals: 1},
	})

	h, ok := table.Lookup("Home Only")
	require.True(t, ok)
	_, _, ok = h.Home()
	assert.True(t, ok)
	_, _, ok = h.Away()
	assert.False(t, ok, "a venue with no matches must not read as zero")

	a, ok := table.Lookup("Away Only")
	require.True(t, ok)
	_, _, ok = a.Home()
	assert.False(t, ok)

	err := table.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrIncompleteStatistics)
	assert.Contains(t, err.Error(), `"Home Only" has no away matches`)
	assert.Contains(t, err.Error(), `"Away Only" has no home matches`)
}

func TestBuildTeamStatsEmpty(t *testing.T) {
	table := BuildTeamStats(nil)
	assert.Empty(t, table)
	_, ok := table.Lookup("A")
	assert.False(t, ok)
}

func TestValidateListedTeams(t *testing.T) {
	table := BuildTeamStats(leagueMatches())
	assert.NoError(t, table.Validate("A", "B"))

	err := table.Validate("A", "Z")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownTeam)
	assert.NotErrorIs(t, err, ErrIncompleteStatistics)
}

func TestUnknownTeamSuggestsClosestName(t *testing.T) {
	table := BuildTeamStats([]CompletedMatch{
		{HomeTeam: "Vasco da Gama", AwayTeam: "Flamengo", HomeGoals: 1, AwayGoals: 2},
		{HomeTeam: "Flamengo", AwayTeam: "Vasco da Gama", HomeGoals: 0, AwayGoals: 0},
	})

	_, err := EstimateOutcome("Vasco", "Flamengo", table)
	require.Error(t, err)
	var te *TeamError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, TeamName("Vasco"), te.Team)
	assert.Equal(t, TeamName("Vasco da Gama"), te.Suggestion)
	assert.Equal(t, `unknown team: "Vasco" (closest known team "Vasco da Gama")`, err.Error())
}
