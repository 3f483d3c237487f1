package calculator

import "math"

// TradingDaysPerYear annualizes daily statistics.
const TradingDaysPerYear = 252

// LogReturns computes ln(p[i]/p[i-1]) for consecutive prices.
// Prices must be positive; fewer than two prices yield nil.
func LogReturns(prices []float64) []float64 {
	if len(prices) < 2 {
		return nil
	}
	returns := make([]float64, len(prices)-1)
	for i := 1; i < len(prices); i++ {
		returns[i-1] = math.Log(prices[i] / prices[i-1])
	}
	return returns
}

// SimpleReturns computes (p[i]-p[i-1])/p[i-1] for consecutive prices.
func SimpleReturns(prices []float64) []float64 {
	if len(prices) < 2 {
		return nil
	}
	returns := make([]float64, len(prices)-1)
	for i := 1; i < len(prices); i++ {
		returns[i-1] = (prices[i] - prices[i-1]) / prices[i-1]
	}
	return returns
}

// HeuristicBeta is the mean absolute daily simple return scaled by 1.5.
// It is a sensitivity proxy, not a regression against a market index.
// Fewer than two prices yield 1.
func HeuristicBeta(prices []float64) float64 {
	if len(prices) < 2 {
		return 1
	}
	returns := SimpleReturns(prices)
	sum := 0.0
	for _, r := range returns {
		sum += math.Abs(r)
	}
	return sum / float64(len(returns)) * 1.5
}
