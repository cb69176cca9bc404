package podds

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownTeam means a fixture names a team absent from the StatsTable,
	// usually an alias that was never mapped to its canonical name.
	ErrUnknownTeam = errors.New("unknown team")
	// ErrIncompleteStatistics means a team has no matches in one venue category.
	ErrIncompleteStatistics = errors.New("incomplete statistics")
	// ErrMalformedScore is returned by score parsers upstream of BuildTeamStats.
	ErrMalformedScore = errors.New("malformed score")
)

type Venue string

const (
	Home Venue = "home"
	Away Venue = "away"
)

// TeamError ties one of the sentinel errors to the team (and venue) that caused it.
type TeamError struct {
	Team  TeamName
	Venue Venue
	// Suggestion is the closest known team name for ErrUnknownTeam, if any
	Suggestion TeamName
	Err        error
}

func (e *TeamError) Error() string {
	switch {
	case errors.Is(e.Err, ErrIncompleteStatistics):
		return fmt.Sprintf("%s: %q has no %s matches", e.Err, e.Team, e.Venue)
	case e.Suggestion != "":
		return fmt.Sprintf("%s: %q (closest known team %q)", e.Err, e.Team, e.Suggestion)
	default:
		return fmt.Sprintf("%s: %q", e.Err, e.Team)
	}
}

func (e *TeamError) Unwrap() error {
	return e.Err
}
