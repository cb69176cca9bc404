// Package datasource acquires the two inputs of a run: the completed results
// of the season and the fixtures to forecast. Everything here hands the core
// plain podds records, validated and with canonical team names.
package datasource

import (
	"context"

	"github.com/g-claudino/Cartola-FC-Tournament-Analysis/pkg/podds"
	"github.com/g-claudino/Cartola-FC-Tournament-Analysis/pkg/transport"
)

// ResultsSource supplies the completed matches of the season
type ResultsSource interface {
	Results(ctx context.Context) ([]podds.CompletedMatch, error)
}

// FixturesSource supplies the round to forecast
type FixturesSource interface {
	Fixtures(ctx context.Context) (podds.Round, error)
}

// Fetcher returns the decoded body found at url
type Fetcher func(ctx context.Context, url string, headers map[string]string) ([]byte, error)

// HTTPFetcher fetches over the network through the shared transport client
func HTTPFetcher() Fetcher {
	return transport.Get
}
