// Package report renders fixture reports for people (console text, markdown)
// and for programs (JSON).
package report

import (
	"encoding/json"
	"fmt"
	"html"
	"io"
	"strconv"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/g-claudino/Cartola-FC-Tournament-Analysis/pkg/podds"
)

type Format string

const (
	Text     Format = "text"
	JSON     Format = "json"
	Markdown Format = "markdown"
)

const separator = "#############################################################"

var banner = []string{
	"🚨🚨🚨🚨🚨🚨🚨🚨🚨🚨🚨🚨",
	"ATENÇÃO ISSO É UMA FASE DE TESTE",
	"🚧🚧🚧🚧🚧🚧🚧🚧🚧🚧🚧🚧",
	"PROTÓTIPO DE PREVISÃO DE RESULTADO LEVANDO EM CONSIDERAÇÃO APENAS GOLS FORA E DENTRO DE CASA",
}

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case Text, JSON, Markdown:
		return f, nil
	case "":
		return Text, nil
	default:
		return "", fmt.Errorf("unknown output format %q", s)
	}
}

// Render writes the reports of one round to w in the given format
func Render(w io.Writer, format Format, round int, reports []podds.FixtureReport) error {
	switch format {
	case Text, "":
		return renderText(w, round, reports)
	case JSON:
		return renderJSON(w, round, reports)
	case Markdown:
		return renderMarkdown(w, round, reports)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func renderText(w io.Writer, round int, reports []podds.FixtureReport) error {
	var b strings.Builder
	for _, line := range banner {
		b.WriteString(line + "\n")
	}
	fmt.Fprintf(&b, "\nRODADA: %d\n", round)

	for _, r := range reports {
		fmt.Fprintf(&b, "\nJogo %d: %s x %s\n\n", r.Sequence, r.HomeTeam, r.AwayTeam)
		if r.Error != "" {
			fmt.Fprintf(&b, "Erro: %s\n", r.Error)
		} else {
			fmt.Fprintf(&b, "Vitória de %s: %s %%\n", r.HomeTeam, number(r.HomeWinPct))
			fmt.Fprintf(&b, "Empate: %s %%\n", number(r.DrawPct))
			fmt.Fprintf(&b, "Vitória de %s: %s %%\n", r.AwayTeam, number(r.AwayWinPct))
			fmt.Fprintf(&b, "Média de gols esperados para %s: %s\n", r.HomeTeam, number(r.ExpectedHomeGoals))
			fmt.Fprintf(&b, "Média de gols esperados para %s: %s\n", r.AwayTeam, number(r.ExpectedAwayGoals))
		}
		b.WriteString("\n" + separator + "\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

type roundJSON struct {
	Round    int                   `json:"round"`
	Fixtures []podds.FixtureReport `json:"fixtures"`
}

func renderJSON(w io.Writer, round int, reports []podds.FixtureReport) error {
	if reports == nil {
		reports = []podds.FixtureReport{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(roundJSON{Round: round, Fixtures: reports}); err != nil {
		return fmt.Errorf("failed to encode reports: %w", err)
	}
	return nil
}

// renderMarkdown lays the round out as HTML and lets html-to-markdown do the
// escaping of team names
func renderMarkdown(w io.Writer, round int, reports []podds.FixtureReport) error {
	var b strings.Builder
	fmt.Fprintf(&b, "<h1>Rodada %d</h1>", round)
	for _, r := range reports {
		home, away := html.EscapeString(r.HomeTeam.String()), html.EscapeString(r.AwayTeam.String())
		fmt.Fprintf(&b, "<h2>Jogo %d: %s x %s</h2>", r.Sequence, home, away)
		if r.Error != "" {
			fmt.Fprintf(&b, "<p><strong>Erro:</strong> %s</p>", html.EscapeString(r.Error))
			continue
		}
		b.WriteString("<ul>")
		fmt.Fprintf(&b, "<li>Vitória de %s: %s %%</li>", home, number(r.HomeWinPct))
		fmt.Fprintf(&b, "<li>Empate: %s %%</li>", number(r.DrawPct))
		fmt.Fprintf(&b, "<li>Vitória de %s: %s %%</li>", away, number(r.AwayWinPct))
		fmt.Fprintf(&b, "<li>Gols esperados: %s x %s</li>", number(r.ExpectedHomeGoals), number(r.ExpectedAwayGoals))
		fmt.Fprintf(&b, "<li>Placar mais provável: %d x %d</li>", r.MostLikelyHome, r.MostLikelyAway)
		fmt.Fprintf(&b, "<li>Mais de 1,5 gols: %s %%</li>", number(r.Over1p5Pct))
		fmt.Fprintf(&b, "<li>Mais de 2,5 gols: %s %%</li>", number(r.Over2p5Pct))
		b.WriteString("</ul>")
	}

	markdown, err := htmltomarkdown.ConvertString(b.String())
	if err != nil {
		return fmt.Errorf("failed to convert report to markdown: %w", err)
	}
	_, err = io.WriteString(w, strings.TrimSpace(markdown)+"\n")
	return err
}

// number prints like the console prototype did: shortest form, but always
// with a decimal part
func number(x float64) string {
	s := strconv.FormatFloat(x, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
