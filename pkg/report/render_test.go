package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/g-claudino/Cartola-FC-Tournament-Analysis/pkg/podds"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReports() []podds.FixtureReport {
	return []podds.FixtureReport{
		{
			Sequence: 1, HomeTeam: "A", AwayTeam: "B",
			HomeWinPct: 60.12, DrawPct: 21.17, AwayWinPct: 18.25,
			ExpectedHomeGoals: 2.5, ExpectedAwayGoals: 1,
			LambdaHome: 2, LambdaAway: 1, MostLikelyHome: 1, MostLikelyAway: 1,
			Over1p5Pct: 79.62, Over2p5Pct: 57.22,
		},
		{
			Sequence: 2, HomeTeam: "A", AwayTeam: "Z",
			Error: `unknown team: "Z"`,
		},
	}
}

func TestRenderText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, Text, 31, sampleReports()))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, banner[0]+"\n"))
	assert.Contains(t, out, "\nRODADA: 31\n")
	assert.Contains(t, out, "\nJogo 1: A x B\n\nVitória de A: 60.12 %\nEmpate: 21.17 %\nVitória de B: 18.25 %\n")
	assert.Contains(t, out, "Média de gols esperados para A: 2.5\n")
	assert.Contains(t, out, "Média de gols esperados para B: 1.0\n")
	assert.Contains(t, out, "\nJogo 2: A x Z\n\nErro: unknown team: \"Z\"\n")
	assert.Equal(t, 2, strings.Count(out, separator))
}

func TestRenderJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, JSON, 7, sampleReports()))

	var decoded struct {
		Round    int                      `json:"round"`
		Fixtures []map[string]interface{} `json:"fixtures"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, 7, decoded.Round)
	require.Len(t, decoded.Fixtures, 2)
	assert.Equal(t, 60.12, decoded.Fixtures[0]["home_win_pct"])
	assert.NotContains(t, decoded.Fixtures[0], "error")
	assert.Equal(t, `unknown team: "Z"`, decoded.Fixtures[1]["error"])

	buf.Reset()
	require.NoError(t, Render(&buf, JSON, 1, nil))
	assert.Contains(t, buf.String(), `"fixtures": []`)
}

func TestRenderMarkdown(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, Markdown, 31, sampleReports()))
	out := buf.String()

	assert.Contains(t, out, "# Rodada 31")
	assert.Contains(t, out, "## Jogo 1: A x B")
	assert.Contains(t, out, "Vitória de A: 60.12 %")
	assert.Contains(t, out, "Placar mais provável: 1 x 1")
	assert.Contains(t, out, "## Jogo 2: A x Z")
	assert.Contains(t, out, "**Erro:**")
	assert.NotContains(t, out, "<li>")
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("Markdown")
	require.NoError(t, err)
	assert.Equal(t, Markdown, f)

	f, err = ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, Text, f)

	_, err = ParseFormat("xml")
	assert.Error(t, err)
	assert.Error(t, Render(&bytes.Buffer{}, Format("xml"), 1, nil))
}

func TestNumber(t *testing.T) {
	assert.Equal(t, "60.0", number(60))
	assert.Equal(t, "21.17", number(21.17))
	assert.Equal(t, "0.5", number(0.5))
}
