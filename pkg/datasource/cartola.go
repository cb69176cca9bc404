package datasource

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/g-claudino/Cartola-FC-Tournament-Analysis/internal/logger"
	"github.com/g-claudino/Cartola-FC-Tournament-Analysis/pkg/podds"
	"github.com/g-claudino/Cartola-FC-Tournament-Analysis/pkg/util"
)

// cartolaPartidas is the subset of the /partidas payload we read. Club ids
// are decoded loosely since the API has sent them both as numbers and strings.
type cartolaPartidas struct {
	Rodada   int `json:"rodada"`
	Partidas []struct {
		CasaID      any `json:"clube_casa_id"`
		VisitanteID any `json:"clube_visitante_id"`
	} `json:"partidas"`
	Clubes map[string]struct {
		Nome       string `json:"nome"`
		Abreviacao string `json:"abreviacao"`
	} `json:"clubes"`
}

// CartolaFixtures reads the current round from the Cartola FC API
type CartolaFixtures struct {
	URL     string
	Tag     string // X-GLB-Tag
	Auth    string // Authorization
	Aliases *AliasTable
	Fetch   Fetcher
}

func NewCartolaFixtures(url, tag, auth string, aliases *AliasTable, fetch Fetcher) *CartolaFixtures {
	if fetch == nil {
		fetch = HTTPFetcher()
	}
	return &CartolaFixtures{URL: url, Tag: tag, Auth: auth, Aliases: aliases, Fetch: fetch}
}

func (c *CartolaFixtures) headers() map[string]string {
	h := map[string]string{
		"Content-Type": "application/json;charset=UTF-8",
		"X-GLB-App":    "cartola_web",
		"X-GLB-Auth":   "oidc",
	}
	if c.Tag != "" {
		h["X-GLB-Tag"] = c.Tag
	}
	if c.Auth != "" {
		h["Authorization"] = c.Auth
	}
	return h
}

// Fixtures returns the round's matches numbered from 1 in API order, with
// club names passed through the alias table
func (c *CartolaFixtures) Fixtures(ctx context.Context) (podds.Round, error) {
	body, err := c.Fetch(ctx, c.URL, c.headers())
	if err != nil {
		return podds.Round{}, fmt.Errorf("failed to fetch fixtures: %w", err)
	}
	return ParseCartolaPartidas(body, c.Aliases)
}

// ParseCartolaPartidas decodes a /partidas payload into a Round
func ParseCartolaPartidas(body []byte, aliases *AliasTable) (podds.Round, error) {
	var data cartolaPartidas
	if err := json.Unmarshal(body, &data); err != nil {
		return podds.Round{}, fmt.Errorf("error parsing JSON data: %w", err)
	}

	clubName := func(id any) (podds.TeamName, error) {
		n, err := util.GetAsInteger(id)
		if err != nil {
			return "", fmt.Errorf("bad club id: %w", err)
		}
		club, ok := data.Clubes[strconv.Itoa(n)]
		if !ok || club.Nome == "" {
			return "", fmt.Errorf("club id %d is not listed in clubes", n)
		}
		return aliases.Resolve(club.Nome), nil
	}

	round := podds.Round{Number: data.Rodada}
	for i, p := range data.Partidas {
		home, err := clubName(p.CasaID)
		if err != nil {
			return podds.Round{}, fmt.Errorf("partida %d: %w", i+1, err)
		}
		away, err := clubName(p.VisitanteID)
		if err != nil {
			return podds.Round{}, fmt.Errorf("partida %d: %w", i+1, err)
		}
		round.Fixtures = append(round.Fixtures, podds.Fixture{Sequence: i + 1, HomeTeam: home, AwayTeam: away})
	}

	logger.Info("Loaded round", round.Number, "with", len(round.Fixtures), "fixtures")
	return round, nil
}
