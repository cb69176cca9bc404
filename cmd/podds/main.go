package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/g-claudino/Cartola-FC-Tournament-Analysis/internal/logger"
	"github.com/g-claudino/Cartola-FC-Tournament-Analysis/pkg/datasource"
	"github.com/g-claudino/Cartola-FC-Tournament-Analysis/pkg/podds"
	"github.com/g-claudino/Cartola-FC-Tournament-Analysis/pkg/report"
	"github.com/g-claudino/Cartola-FC-Tournament-Analysis/pkg/transport"
)

type options struct {
	configPath   string
	resultsPath  string
	fixturesPath string
	format       string
	failFast     bool
	workers      int
	debug        bool
	remaining    bool
	logFile      string
}

func parseFlags() (options, map[string]bool) {
	var o options
	flag.StringVar(&o.configPath, "config", "", "YAML configuration file")
	flag.StringVar(&o.resultsPath, "results", "", "completed matches from a .json or .csv file instead of Wikipedia")
	flag.StringVar(&o.fixturesPath, "fixtures", "", "fixtures from a .json or .csv file instead of Cartola FC")
	flag.StringVar(&o.format, "format", "", "output format: text, json or markdown")
	flag.BoolVar(&o.failFast, "fail-fast", false, "stop at the first fixture that cannot be forecast")
	flag.IntVar(&o.workers, "workers", 0, "forecast fixtures concurrently with n workers")
	flag.BoolVar(&o.debug, "debug", false, "debug logging")
	flag.BoolVar(&o.remaining, "remaining", false, "forecast every unplayed pairing of the results table")
	flag.StringVar(&o.logFile, "log-file", "", "also write logs to this file")
	flag.Parse()

	set := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
	return o, set
}

func main() {
	opts, set := parseFlags()

	config, err := podds.LoadConfig(opts.configPath)
	if err != nil {
		logger.Error("Invalid configuration:", err)
		os.Exit(2)
	}
	if set["format"] {
		config.OutputFormat = opts.format
	}
	if set["fail-fast"] {
		config.FailFast = opts.failFast
	}
	if set["workers"] {
		config.Workers = opts.workers
	}
	if err := podds.ValidateConfig(config); err != nil {
		logger.Error("Invalid configuration:", err)
		os.Exit(2)
	}

	level, err := logger.ParseLevel(config.LogLevel)
	if err != nil {
		logger.Warn("Ignoring log level:", err)
		level = logger.INFO
	}
	if opts.debug {
		level = logger.DEBUG
	}
	logger.SetLevel(level)
	if opts.logFile != "" {
		if err := logger.SetLogFile(opts.logFile); err != nil {
			logger.Warn("Failed to open log file:", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, config, opts, os.Stdout); err != nil {
		logger.Error("Run failed:", err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, config *podds.PoddsConfig, opts options, out io.Writer) error {
	format, err := report.ParseFormat(config.OutputFormat)
	if err != nil {
		return err
	}
	transport.SetTimeout(config.HTTPTimeout)

	fetch := datasource.HTTPFetcher()
	if config.CachePath != "" {
		cache, err := datasource.OpenPageCache(config.CachePath, config.CacheTTL)
		if err != nil {
			return fmt.Errorf("failed to open page cache: %w", err)
		}
		defer cache.Close()
		fetch = cache.Wrap(fetch)
	}

	aliases := datasource.NewAliasTable(config.Aliases)
	wiki := datasource.NewWikipediaResults(config.ResultsURL, config.ResultsTableID, fetch)

	var results datasource.ResultsSource = wiki
	if opts.resultsPath != "" {
		results = &datasource.FileResults{Path: opts.resultsPath}
	}

	var fixtures datasource.FixturesSource
	switch {
	case opts.fixturesPath != "":
		fixtures = &datasource.FileFixtures{Path: opts.fixturesPath, Aliases: aliases}
	case opts.remaining:
		fixtures = wiki
	default:
		fixtures = datasource.NewCartolaFixtures(config.FixturesURL, config.CartolaTag, config.CartolaAuth, aliases, fetch)
	}

	matches, err := results.Results(ctx)
	if err != nil {
		return fmt.Errorf("failed to load results: %w", err)
	}
	table := podds.BuildTeamStats(matches)
	logger.Info("Built statistics for", len(table), "teams from", len(matches), "matches")

	round, err := fixtures.Fixtures(ctx)
	if err != nil {
		return fmt.Errorf("failed to load fixtures: %w", err)
	}

	if teams := fixtureTeams(round.Fixtures, table); len(teams) > 0 {
		if err := table.Validate(teams...); err != nil {
			if !config.AllowIncomplete {
				return fmt.Errorf("statistics table is incomplete: %w", err)
			}
			logger.Warn("Statistics table is incomplete, affected fixtures will be skipped", err)
		}
	}

	driver := podds.NewDriver(table, config.DriverOptions())
	reports, runErr := driver.Run(ctx, round.Fixtures)

	// reports produced before a fail-fast abort are still worth printing
	if err := report.Render(out, format, round.Number, reports); err != nil {
		return fmt.Errorf("failed to render reports: %w", err)
	}
	return runErr
}

// fixtureTeams lists the known teams playing in fixtures, each once. Unknown
// names are left to the driver, which reports them per fixture.
func fixtureTeams(fixtures []podds.Fixture, table podds.StatsTable) []podds.TeamName {
	seen := make(map[podds.TeamName]bool)
	var teams []podds.TeamName
	for _, f := range fixtures {
		for _, name := range []podds.TeamName{f.HomeTeam, f.AwayTeam} {
			if _, ok := table.Lookup(name); !ok || seen[name] {
				continue
			}
			seen[name] = true
			teams = append(teams, name)
		}
	}
	return teams
}
