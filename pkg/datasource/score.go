package datasource

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/g-claudino/Cartola-FC-Tournament-Analysis/pkg/podds"
)

// score separators seen in the wild: en dash (Wikipedia), hyphen, em dash
const scoreSeparators = "–-—"

var (
	footnoteRef = regexp.MustCompile(`\[[^\]]*\]`)
	scoreLike   = regexp.MustCompile(`\d\s*[–\-—]\s*\d`)
)

// cleanCell drops footnote markers such as "[a]" and non-breaking spaces
func cleanCell(s string) string {
	s = footnoteRef.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, "\u00a0", " ")
	return strings.TrimSpace(s)
}

// IsPlayed reports whether a results cell holds a score. An en dash marks a
// played match even if the numbers around it are broken, so that ParseScore
// gets to reject it instead of the match silently counting as unplayed.
func IsPlayed(cell string) bool {
	cell = cleanCell(cell)
	return strings.Contains(cell, "–") || scoreLike.MatchString(cell)
}

// ParseScore splits a score such as "2–1" into home and away goals. Anything
// that is not two non-negative integers either side of one separator is
// podds.ErrMalformedScore.
func ParseScore(s string) (home, away int, err error) {
	cleaned := cleanCell(s)
	idx := strings.IndexAny(cleaned, scoreSeparators)
	if idx < 0 {
		return 0, 0, fmt.Errorf("%w: %q has no separator", podds.ErrMalformedScore, s)
	}
	_, width := utf8.DecodeRuneInString(cleaned[idx:])
	left := strings.TrimSpace(cleaned[:idx])
	right := strings.TrimSpace(cleaned[idx+width:])

	home, err = parseGoals(left)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q: home goals: %v", podds.ErrMalformedScore, s, err)
	}
	away, err = parseGoals(right)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q: away goals: %v", podds.ErrMalformedScore, s, err)
	}
	return home, away, nil
}

func parseGoals(s string) (int, error) {
	if s == "" {
		return 0, fmt.Errorf("empty")
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("%q is not a whole number", s)
		}
	}
	return strconv.Atoi(s)
}
