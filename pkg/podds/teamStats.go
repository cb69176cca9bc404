package podds

import (
	"errors"
	"sort"

	"github.com/g-claudino/Cartola-FC-Tournament-Analysis/internal/logger"
	"github.com/g-claudino/Cartola-FC-Tournament-Analysis/pkg/util"
)

// TeamStats holds a team's average goals scored and conceded, split by venue.
// The averages for a venue are undefined when that venue's match count is zero,
// use Home() and Away() rather than reading the fields blind.
type TeamStats struct {
	Team TeamName `json:"team"`

	HomeMatches int `json:"homeMatches"`
	AwayMatches int `json:"awayMatches"`

	HomeScored   float64 `json:"homeScored"`
	HomeConceded float64 `json:"homeConceded"`
	AwayScored   float64 `json:"awayScored"`
	AwayConceded float64 `json:"awayConceded"`
}

// Home returns the home averages, ok is false if the team never played at home
func (ts *TeamStats) Home() (scored, conceded float64, ok bool) {
	if ts == nil || ts.HomeMatches == 0 {
		return 0, 0, false
	}
	return ts.HomeScored, ts.HomeConceded, true
}

// Away returns the away averages, ok is false if the team never played away
func (ts *TeamStats) Away() (scored, conceded float64, ok bool) {
	if ts == nil || ts.AwayMatches == 0 {
		return 0, 0, false
	}
	return ts.AwayScored, ts.AwayConceded, true
}

// StatsTable is keyed by canonical team name. Built once, read-only afterwards.
type StatsTable map[TeamName]*TeamStats

// Lookup returns the stats for a team and whether it is present
func (t StatsTable) Lookup(name TeamName) (*TeamStats, bool) {
	ts, ok := t[name]
	return ts, ok
}

// Teams returns the team names in alphabetical order
func (t StatsTable) Teams() []TeamName {
	names := make([]TeamName, 0, len(t))
	for name := range t {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}

// lookupVenue fetches a team's averages for one venue, producing a TeamError
// for an unknown team or an empty venue
func (t StatsTable) lookupVenue(name TeamName, venue Venue) (scored, conceded float64, err error) {
	ts, found := t.Lookup(name)
	if !found {
		return 0, 0, t.unknownTeam(name)
	}
	var ok bool
	if venue == Home {
		scored, conceded, ok = ts.Home()
	} else {
		scored, conceded, ok = ts.Away()
	}
	if !ok {
		return 0, 0, &TeamError{Team: name, Venue: venue, Err: ErrIncompleteStatistics}
	}
	return scored, conceded, nil
}

func (t StatsTable) unknownTeam(name TeamName) *TeamError {
	candidates := make([]string, 0, len(t))
	for _, n := range t.Teams() {
		candidates = append(candidates, string(n))
	}
	suggestion, _ := util.ClosestMatch(string(name), candidates, 0.6)
	return &TeamError{Team: name, Suggestion: TeamName(suggestion), Err: ErrUnknownTeam}
}

// Validate checks that every listed team (every team in the table when none
// are listed) is present and has both home and away matches. All problems are
// joined into one error.
func (t StatsTable) Validate(teams ...TeamName) error {
	if len(teams) == 0 {
		teams = t.Teams()
	}
	var errs []error
	for _, name := range teams {
		if _, _, err := t.lookupVenue(name, Home); err != nil {
			errs = append(errs, err)
			var te *TeamError
			if errors.As(err, &te) && errors.Is(te.Err, ErrUnknownTeam) {
				continue
			}
		}
		if _, _, err := t.lookupVenue(name, Away); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

type goalTotals struct {
	matches  int
	scored   int
	conceded int
}

func (g goalTotals) averages() (float64, float64) {
	if g.matches == 0 {
		return 0, 0
	}
	return float64(g.scored) / float64(g.matches), float64(g.conceded) / float64(g.matches)
}

// BuildTeamStats groups the matches by home team and by away team, averages
// goals scored and conceded in each grouping, and joins the two by team name.
// Input is assumed well formed: scores are validated where they are parsed.
func BuildTeamStats(matches []CompletedMatch) StatsTable {
	home := make(map[TeamName]*goalTotals)
	away := make(map[TeamName]*goalTotals)

	for _, m := range matches {
		h, ok := home[m.HomeTeam]
		if !ok {
			h = &goalTotals{}
			home[m.HomeTeam] = h
		}
		h.matches++
		h.scored += m.HomeGoals
		h.conceded += m.AwayGoals

		a, ok := away[m.AwayTeam]
		if !ok {
			a = &goalTotals{}
			away[m.AwayTeam] = a
		}
		a.matches++
		a.scored += m.AwayGoals
		a.conceded += m.HomeGoals
	}

	table := make(StatsTable, len(home))
	get := func(name TeamName) *TeamStats {
		ts, ok := table[name]
		if !ok {
			ts = &TeamStats{Team: name}
			table[name] = ts
		}
		return ts
	}
	for name, totals := range home {
		ts := get(name)
		ts.HomeMatches = totals.matches
		ts.HomeScored, ts.HomeConceded = totals.averages()
	}
	for name, totals := range away {
		ts := get(name)
		ts.AwayMatches = totals.matches
		ts.AwayScored, ts.AwayConceded = totals.averages()
	}

	logger.Debug("Built team statistics", len(matches), "matches", len(table), "teams")
	return table
}
