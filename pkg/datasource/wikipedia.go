package datasource

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
	"github.com/g-claudino/Cartola-FC-Tournament-Analysis/internal/logger"
	"github.com/g-claudino/Cartola-FC-Tournament-Analysis/pkg/podds"
)

// Crosstable is what a results grid yields: the matches already played and
// the pairings still to play
type Crosstable struct {
	Played    []podds.CompletedMatch
	Remaining []podds.Fixture
}

// WikipediaResults reads the "home \ away" results grid of a league season
// article. Columns are labelled with abbreviations, so the i-th column is
// taken to be the team of the i-th row. The page is fetched and parsed once,
// so Results and Fixtures read the same grid.
type WikipediaResults struct {
	URL    string
	Header string // text of the grid's top-left cell
	Fetch  Fetcher

	mu     sync.Mutex
	parsed *Crosstable
}

func NewWikipediaResults(url, header string, fetch Fetcher) *WikipediaResults {
	if fetch == nil {
		fetch = HTTPFetcher()
	}
	return &WikipediaResults{URL: url, Header: header, Fetch: fetch}
}

// Crosstable fetches and parses the grid on first use. Failures are not
// remembered, the next call tries again.
func (w *WikipediaResults) Crosstable(ctx context.Context) (*Crosstable, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.parsed != nil {
		return w.parsed, nil
	}

	htmlContent, err := w.Fetch(ctx, w.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch data from external source: %w", err)
	}
	ct, err := ParseCrosstable(htmlContent, w.Header)
	if err != nil {
		return nil, err
	}
	w.parsed = ct
	return ct, nil
}

func (w *WikipediaResults) Results(ctx context.Context) ([]podds.CompletedMatch, error) {
	ct, err := w.Crosstable(ctx)
	if err != nil {
		return nil, err
	}
	return ct.Played, nil
}

// Fixtures returns every unplayed pairing of the grid as one pseudo round
// numbered 0
func (w *WikipediaResults) Fixtures(ctx context.Context) (podds.Round, error) {
	ct, err := w.Crosstable(ctx)
	if err != nil {
		return podds.Round{}, err
	}
	return podds.Round{Number: 0, Fixtures: ct.Remaining}, nil
}

// ParseCrosstable finds the table whose first header cell reads header and
// turns every off-diagonal cell into a played match or a remaining fixture.
// Remaining fixtures are numbered row by row from 1.
func ParseCrosstable(htmlContent []byte, header string) (*Crosstable, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(htmlContent))
	if err != nil {
		return nil, fmt.Errorf("error parsing HTML: %w", err)
	}

	want := normaliseHeader(header)
	var table *goquery.Selection
	doc.Find("table").EachWithBreak(func(i int, s *goquery.Selection) bool {
		first := s.Find("tr").First().Children().First()
		if normaliseHeader(first.Text()) == want {
			table = s
			return false
		}
		return true
	})
	if table == nil {
		return nil, fmt.Errorf("could not find results table headed %q", header)
	}

	rows := table.Find("tr")
	abbreviations := []string{}
	rows.First().Children().Each(func(i int, s *goquery.Selection) {
		if i > 0 {
			abbreviations = append(abbreviations, cleanCell(s.Text()))
		}
	})

	type gridRow struct {
		team  podds.TeamName
		cells []string
	}
	var grid []gridRow
	rows.Slice(1, goquery.ToEnd).Each(func(i int, s *goquery.Selection) {
		cells := s.Children()
		if cells.Length() < 2 {
			return
		}
		row := gridRow{team: podds.TeamName(cleanCell(cells.First().Text()))}
		cells.Slice(1, goquery.ToEnd).Each(func(j int, c *goquery.Selection) {
			row.cells = append(row.cells, cleanCell(c.Text()))
		})
		if row.team != "" {
			grid = append(grid, row)
		}
	})

	if len(grid) != len(abbreviations) {
		return nil, fmt.Errorf("results table has %d columns but %d team rows", len(abbreviations), len(grid))
	}
	logger.Debug("Results table columns", strings.Join(abbreviations, " "))

	ct := &Crosstable{}
	for _, home := range grid {
		if len(home.cells) < len(grid) {
			return nil, fmt.Errorf("row %q has %d cells, expected %d", home.team, len(home.cells), len(grid))
		}
		for j, away := range grid {
			if away.team == home.team {
				continue
			}
			cell := home.cells[j]
			if !IsPlayed(cell) {
				ct.Remaining = append(ct.Remaining, podds.Fixture{
					Sequence: len(ct.Remaining) + 1,
					HomeTeam: home.team,
					AwayTeam: away.team,
				})
				continue
			}
			hg, ag, err := ParseScore(cell)
			if err != nil {
				return nil, fmt.Errorf("%s x %s: %w", home.team, away.team, err)
			}
			ct.Played = append(ct.Played, podds.CompletedMatch{
				HomeTeam:  home.team,
				AwayTeam:  away.team,
				HomeGoals: hg,
				AwayGoals: ag,
			})
		}
	}

	logger.Info("Parsed results table", len(ct.Played), "played", len(ct.Remaining), "remaining")
	return ct, nil
}

func normaliseHeader(s string) string {
	return strings.Join(strings.Fields(cleanCell(s)), " ")
}
