package podds

import (
	"math"
)

// OutcomeDistribution holds home win, draw and away win probabilities.
// They are summed over the truncated score window and not renormalised, so
// the total falls short of 1 by the Poisson tail mass beyond the window.
type OutcomeDistribution struct {
	HomeWin float64 `json:"homeWin"`
	Draw    float64 `json:"draw"`
	AwayWin float64 `json:"awayWin"`
}

func (o OutcomeDistribution) Sum() float64 {
	return o.HomeWin + o.Draw + o.AwayWin
}

// PoissonPMF returns P(X = k) for X ~ Poisson(lambda), computed in log space.
// lambda <= 0 is a point mass at zero.
func PoissonPMF(k int, lambda float64) float64 {
	if k < 0 {
		return 0
	}
	if lambda <= 0 {
		if k == 0 {
			return 1.0
		}
		return 0
	}
	lgamma, _ := math.Lgamma(float64(k + 1))
	return math.Exp(float64(k)*math.Log(lambda) - lambda - lgamma)
}

// Lambdas derives the Poisson means for a fixture: each side's scoring
// average at its venue multiplied by the opponent's conceding average at the
// opposite venue.
func Lambdas(home, away TeamName, table StatsTable) (lambdaHome, lambdaAway float64, err error) {
	homeScored, homeConceded, err := table.lookupVenue(home, Home)
	if err != nil {
		return 0, 0, err
	}
	awayScored, awayConceded, err := table.lookupVenue(away, Away)
	if err != nil {
		return 0, 0, err
	}
	return homeScored * awayConceded, awayScored * homeConceded, nil
}

// ScoreMatrix returns the joint probabilities of every score line in the
// window, rows are home goals and columns away goals (outer product of the two pmfs)
func ScoreMatrix(lambdaHome, lambdaAway float64, maxGoals int) [][]float64 {
	if maxGoals <= 0 {
		maxGoals = DefaultMaxGoals
	}
	homeProbs := make([]float64, maxGoals)
	awayProbs := make([]float64, maxGoals)
	for goals := 0; goals < maxGoals; goals++ {
		homeProbs[goals] = PoissonPMF(goals, lambdaHome)
		awayProbs[goals] = PoissonPMF(goals, lambdaAway)
	}

	matrix := make([][]float64, maxGoals)
	for i := range matrix {
		matrix[i] = make([]float64, maxGoals)
		for j := range matrix[i] {
			matrix[i][j] = homeProbs[i] * awayProbs[j]
		}
	}
	return matrix
}

// OutcomeFromMatrix sums the lower triangle, diagonal and upper triangle
func OutcomeFromMatrix(matrix [][]float64) OutcomeDistribution {
	var o OutcomeDistribution
	for h, row := range matrix {
		for a, p := range row {
			switch {
			case h == a:
				o.Draw += p
			case h > a:
				o.HomeWin += p
			default:
				o.AwayWin += p
			}
		}
	}
	return o
}

func OutcomeFromLambdas(lambdaHome, lambdaAway float64, maxGoals int) OutcomeDistribution {
	return OutcomeFromMatrix(ScoreMatrix(lambdaHome, lambdaAway, maxGoals))
}

// EstimateOutcome returns win/draw/loss probabilities for home against away
// over the default 7x7 window.
func EstimateOutcome(home, away TeamName, table StatsTable) (OutcomeDistribution, error) {
	lambdaHome, lambdaAway, err := Lambdas(home, away, table)
	if err != nil {
		return OutcomeDistribution{}, err
	}
	return OutcomeFromLambdas(lambdaHome, lambdaAway, DefaultMaxGoals), nil
}

// MostLikelyScore returns the score line with the highest joint probability.
// Ties go to the lowest home then lowest away goals.
func MostLikelyScore(matrix [][]float64) (homeGoals, awayGoals int) {
	best := -1.0
	for h, row := range matrix {
		for a, p := range row {
			if p > best {
				best = p
				homeGoals, awayGoals = h, a
			}
		}
	}
	return homeGoals, awayGoals
}

// OverGoalsProbability sums the cells whose total goals exceed threshold
func OverGoalsProbability(matrix [][]float64, threshold float64) float64 {
	total := 0.0
	for h, row := range matrix {
		for a, p := range row {
			if float64(h+a) > threshold {
				total += p
			}
		}
	}
	return total
}

// ExpectedGoals is a display heuristic: the home side's home scoring average
// and the away side's away scoring average, with no opponent adjustment.
func ExpectedGoals(home, away TeamName, table StatsTable) (homeGoals, awayGoals float64, err error) {
	homeGoals, _, err = table.lookupVenue(home, Home)
	if err != nil {
		return 0, 0, err
	}
	awayGoals, _, err = table.lookupVenue(away, Away)
	if err != nil {
		return 0, 0, err
	}
	return homeGoals, awayGoals, nil
}
