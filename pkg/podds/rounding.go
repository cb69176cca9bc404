package podds

import "github.com/shopspring/decimal"

// Round2 rounds half away from zero to two decimal places. The float is
// first taken at its shortest decimal representation, so 1.005 becomes 1.01
// rather than falling to 1.00 on its binary approximation.
func Round2(x float64) float64 {
	f, _ := decimal.NewFromFloat(x).Round(2).Float64()
	return f
}

// Percent converts a probability into a percentage rounded with Round2
func Percent(p float64) float64 {
	f, _ := decimal.NewFromFloat(p).Shift(2).Round(2).Float64()
	return f
}
