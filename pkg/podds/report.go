package podds

import (
	"context"
	"fmt"

	"github.com/g-claudino/Cartola-FC-Tournament-Analysis/internal/logger"
	"golang.org/x/sync/errgroup"
)

// FixtureReport is the driver's output for one fixture. Percentages and
// expected goals are rounded with Round2. When Err is set the numeric fields
// are zero and Error carries the message.
type FixtureReport struct {
	Sequence int      `json:"sequence_number"`
	HomeTeam TeamName `json:"home_team"`
	AwayTeam TeamName `json:"away_team"`

	HomeWinPct float64 `json:"home_win_pct"`
	DrawPct    float64 `json:"draw_pct"`
	AwayWinPct float64 `json:"away_win_pct"`

	ExpectedHomeGoals float64 `json:"expected_home_goals"`
	ExpectedAwayGoals float64 `json:"expected_away_goals"`

	LambdaHome     float64 `json:"lambda_home"`
	LambdaAway     float64 `json:"lambda_away"`
	MostLikelyHome int     `json:"most_likely_home"`
	MostLikelyAway int     `json:"most_likely_away"`
	Over1p5Pct     float64 `json:"over_1_5_pct"`
	Over2p5Pct     float64 `json:"over_2_5_pct"`

	Err   error  `json:"-"`
	Error string `json:"error,omitempty"`
}

type DriverOptions struct {
	// FailFast aborts the batch on the first failing fixture. The default
	// records the error on that fixture's report and carries on.
	FailFast bool
	// Workers > 1 forecasts fixtures concurrently. Output order is unaffected.
	Workers int
	// MaxGoals is the truncation window, DefaultMaxGoals when zero
	MaxGoals int
}

// Driver turns fixtures into reports against one StatsTable
type Driver struct {
	table StatsTable
	opts  DriverOptions
}

func NewDriver(table StatsTable, opts DriverOptions) *Driver {
	if opts.MaxGoals <= 0 {
		opts.MaxGoals = DefaultMaxGoals
	}
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	return &Driver{table: table, opts: opts}
}

// Forecast computes the report for a single fixture
func (d *Driver) Forecast(f Fixture) (FixtureReport, error) {
	report := FixtureReport{
		Sequence: f.Sequence,
		HomeTeam: f.HomeTeam,
		AwayTeam: f.AwayTeam,
	}

	lambdaHome, lambdaAway, err := Lambdas(f.HomeTeam, f.AwayTeam, d.table)
	if err != nil {
		return report, err
	}
	expHome, expAway, err := ExpectedGoals(f.HomeTeam, f.AwayTeam, d.table)
	if err != nil {
		return report, err
	}

	matrix := ScoreMatrix(lambdaHome, lambdaAway, d.opts.MaxGoals)
	outcome := OutcomeFromMatrix(matrix)

	report.HomeWinPct = Percent(outcome.HomeWin)
	report.DrawPct = Percent(outcome.Draw)
	report.AwayWinPct = Percent(outcome.AwayWin)
	report.ExpectedHomeGoals = Round2(expHome)
	report.ExpectedAwayGoals = Round2(expAway)
	report.LambdaHome = Round2(lambdaHome)
	report.LambdaAway = Round2(lambdaAway)
	report.MostLikelyHome, report.MostLikelyAway = MostLikelyScore(matrix)
	report.Over1p5Pct = Percent(OverGoalsProbability(matrix, over1p5Threshold))
	report.Over2p5Pct = Percent(OverGoalsProbability(matrix, over2p5Threshold))
	return report, nil
}

// Run forecasts every fixture in input order. With FailFast the reports
// before the failing fixture are returned alongside its error; otherwise
// failures are recorded on their own report and the run continues. A
// cancelled context returns the reports finished so far with ctx.Err().
func (d *Driver) Run(ctx context.Context, fixtures []Fixture) ([]FixtureReport, error) {
	reports := make([]FixtureReport, len(fixtures))
	errs := make([]error, len(fixtures))

	if d.opts.Workers > 1 && len(fixtures) > 1 {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(d.opts.Workers)
		for i, f := range fixtures {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				reports[i], errs[i] = d.Forecast(f)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
		return d.settle(fixtures, reports, errs)
	}

	for i, f := range fixtures {
		if err := ctx.Err(); err != nil {
			done, failErr := d.settle(fixtures[:i], reports[:i], errs[:i])
			if failErr != nil {
				return done, failErr
			}
			return done, err
		}
		reports[i], errs[i] = d.Forecast(f)
		if errs[i] != nil && d.opts.FailFast {
			return d.settle(fixtures[:i+1], reports[:i+1], errs[:i+1])
		}
	}
	return d.settle(fixtures, reports, errs)
}

// settle applies the error policy to computed reports: the first failure
// ends the batch under FailFast, otherwise every failure is recorded on its
// own report
func (d *Driver) settle(fixtures []Fixture, reports []FixtureReport, errs []error) ([]FixtureReport, error) {
	for i, err := range errs {
		if err == nil {
			continue
		}
		if d.opts.FailFast {
			return reports[:i], fmt.Errorf("fixture %d (%s x %s): %w", fixtures[i].Sequence, fixtures[i].HomeTeam, fixtures[i].AwayTeam, err)
		}
		logger.Warn("Skipping fixture", fixtures[i].String(), err)
		reports[i].Err = err
		reports[i].Error = err.Error()
	}
	return reports, nil
}
