// Package podds estimates football match outcome probabilities from a
// league's completed results using independent Poisson models for home and
// away goals.
//
// The flow is: completed matches -> BuildTeamStats -> StatsTable, then per
// fixture EstimateOutcome / ExpectedGoals, orchestrated by Driver.
package podds

const (
	// DefaultMaxGoals is the size of the truncation window, goals 0..6 for each side.
	DefaultMaxGoals = 7

	over1p5Threshold = 1.5
	over2p5Threshold = 2.5
)
