package logger

import (
	"bytes"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	SetColour(false)
	SetLevel(WARN)
	t.Cleanup(func() {
		SetOutput(os.Stderr)
		SetColour(true)
		SetLevel(INFO)
	})

	Info("hidden")
	Warn("shown", 3, 1.5, errors.New("boom"))

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "[WARN] logger_test.go:")
	assert.Contains(t, out, "shown 3 1.50 boom")
}

func TestObjectsAreLoggedAsJSON(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	SetColour(false)
	t.Cleanup(func() {
		SetOutput(os.Stderr)
		SetColour(true)
	})

	Info("stats", map[string]int{"goals": 2})
	out := buf.String()
	assert.Contains(t, out, "[Object of type map[string]int]")
	assert.Contains(t, out, `"goals": 2`)
}

func TestParseLevel(t *testing.T) {
	lvl, err := ParseLevel("debug")
	require.NoError(t, err)
	assert.Equal(t, DEBUG, lvl)

	lvl, err = ParseLevel("")
	require.NoError(t, err)
	assert.Equal(t, INFO, lvl)

	lvl, err = ParseLevel("warning")
	require.NoError(t, err)
	assert.Equal(t, WARN, lvl)

	_, err = ParseLevel("loud")
	assert.Error(t, err)
}
