package datasource

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/g-claudino/Cartola-FC-Tournament-Analysis/internal/logger"
	"github.com/g-claudino/Cartola-FC-Tournament-Analysis/pkg/podds"
	"github.com/g-claudino/Cartola-FC-Tournament-Analysis/pkg/util"
)

// FileResults loads completed matches from a local .json or .csv file.
//
// JSON is an array of {home_team, away_team, home_goals, away_goals}, where
// a "score" string such as "2-1" may replace the two goal fields. CSV needs a
// header row with the same column names.
type FileResults struct {
	Path string
}

// FileFixtures loads fixtures from a local .json or .csv file. JSON is either
// {round, fixtures: [...]} or a bare array of {sequence_number, home_team,
// away_team}; a missing sequence number becomes the 1-based position.
type FileFixtures struct {
	Path    string
	Aliases *AliasTable
}

type fileRecord struct {
	Sequence  any    `json:"sequence_number"`
	HomeTeam  string `json:"home_team"`
	AwayTeam  string `json:"away_team"`
	HomeGoals any    `json:"home_goals"`
	AwayGoals any    `json:"away_goals"`
	Score     string `json:"score"`
}

func (f *FileResults) Results(ctx context.Context) ([]podds.CompletedMatch, error) {
	records, err := readRecords(f.Path)
	if err != nil {
		return nil, err
	}

	var matches []podds.CompletedMatch
	for i, r := range records {
		m, err := r.completedMatch()
		if err != nil {
			return nil, fmt.Errorf("%s: record %d: %w", filepath.Base(f.Path), i+1, err)
		}
		if m.HomeTeam == m.AwayTeam {
			logger.Warn("Skipping self pairing at record", i+1, m.HomeTeam.String())
			continue
		}
		matches = append(matches, m)
	}
	logger.Info("Loaded results file", f.Path, len(matches), "matches")
	return matches, nil
}

func (f *FileFixtures) Fixtures(ctx context.Context) (podds.Round, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return podds.Round{}, fmt.Errorf("failed to read fixtures file: %w", err)
	}

	round := podds.Round{}
	var records []fileRecord
	if isJSON(f.Path) {
		trimmed := bytes.TrimSpace(data)
		if len(trimmed) > 0 && trimmed[0] == '{' {
			var wrapped struct {
				Round    int          `json:"round"`
				Fixtures []fileRecord `json:"fixtures"`
			}
			if err := json.Unmarshal(trimmed, &wrapped); err != nil {
				return podds.Round{}, fmt.Errorf("error parsing JSON data: %w", err)
			}
			round.Number = wrapped.Round
			records = wrapped.Fixtures
		} else if err := json.Unmarshal(trimmed, &records); err != nil {
			return podds.Round{}, fmt.Errorf("error parsing JSON data: %w", err)
		}
	} else {
		records, err = parseCSVRecords(data)
		if err != nil {
			return podds.Round{}, err
		}
	}

	for i, r := range records {
		seq := i + 1
		if !isBlank(r.Sequence) {
			if seq, err = util.GetAsInteger(r.Sequence); err != nil {
				return podds.Round{}, fmt.Errorf("fixture %d: sequence_number: %w", i+1, err)
			}
		}
		if strings.TrimSpace(r.HomeTeam) == "" || strings.TrimSpace(r.AwayTeam) == "" {
			return podds.Round{}, fmt.Errorf("fixture %d: home_team and away_team are required", i+1)
		}
		round.Fixtures = append(round.Fixtures, podds.Fixture{
			Sequence: seq,
			HomeTeam: f.Aliases.Resolve(r.HomeTeam),
			AwayTeam: f.Aliases.Resolve(r.AwayTeam),
		})
	}
	return round, nil
}

func (r fileRecord) completedMatch() (podds.CompletedMatch, error) {
	m := podds.CompletedMatch{
		HomeTeam: podds.TeamName(strings.TrimSpace(r.HomeTeam)),
		AwayTeam: podds.TeamName(strings.TrimSpace(r.AwayTeam)),
	}
	if m.HomeTeam == "" || m.AwayTeam == "" {
		return m, fmt.Errorf("home_team and away_team are required")
	}

	if strings.TrimSpace(r.Score) != "" {
		var err error
		m.HomeGoals, m.AwayGoals, err = ParseScore(r.Score)
		return m, err
	}

	var err error
	if m.HomeGoals, err = goalsField(r.HomeGoals); err != nil {
		return m, fmt.Errorf("%w: home_goals: %v", podds.ErrMalformedScore, err)
	}
	if m.AwayGoals, err = goalsField(r.AwayGoals); err != nil {
		return m, fmt.Errorf("%w: away_goals: %v", podds.ErrMalformedScore, err)
	}
	return m, nil
}

func goalsField(v any) (int, error) {
	if isBlank(v) {
		return 0, fmt.Errorf("missing")
	}
	n, err := util.GetAsInteger(v)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, fmt.Errorf("negative goals %d", n)
	}
	return n, nil
}

func isBlank(v any) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	return ok && strings.TrimSpace(s) == ""
}

func isJSON(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".json")
}

func readRecords(path string) ([]fileRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read results file: %w", err)
	}
	if isJSON(path) {
		var records []fileRecord
		if err := json.Unmarshal(data, &records); err != nil {
			return nil, fmt.Errorf("error parsing JSON data: %w", err)
		}
		return records, nil
	}
	return parseCSVRecords(data)
}

// parseCSVRecords reads a CSV with a header row into records, by column name
func parseCSVRecords(data []byte) ([]fileRecord, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.TrimLeadingSpace = true
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	headers := rows[0]
	headers[0] = strings.TrimPrefix(headers[0], "\ufeff")
	for i := range headers {
		headers[i] = strings.ToLower(strings.TrimSpace(headers[i]))
	}

	var records []fileRecord
	for _, values := range rows[1:] {
		row := make(map[string]string)
		for j, value := range values {
			if j < len(headers) {
				row[headers[j]] = strings.TrimSpace(value)
			}
		}
		if row["home_team"] == "" && row["away_team"] == "" {
			continue
		}
		rec := fileRecord{
			HomeTeam: row["home_team"],
			AwayTeam: row["away_team"],
			Score:    row["score"],
		}
		if v := row["sequence_number"]; v != "" {
			rec.Sequence = v
		}
		if v := row["home_goals"]; v != "" {
			rec.HomeGoals = v
		}
		if v := row["away_goals"]; v != "" {
			rec.AwayGoals = v
		}
		records = append(records, rec)
	}
	return records, nil
}
