package calculator

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// DefaultRiskFreeRate is the annual risk-free rate used by SharpeRatio callers.
const DefaultRiskFreeRate = 0.02

// SampleVolatility returns the annualized volatility of log returns using the
// sample variance (n-1). Used for the per-symbol risk profile.
// Fewer than two prices yield 0, and so does a single return since the
// sample variance of one observation is undefined.
func SampleVolatility(prices []float64) float64 {
	returns := LogReturns(prices)
	if len(returns) < 2 {
		return 0
	}
	return stat.StdDev(returns, nil) * math.Sqrt(TradingDaysPerYear)
}

// PopulationVolatility returns the annualized volatility of log returns using
// the population variance (n). Used by the stress tester.
func PopulationVolatility(prices []float64) float64 {
	returns := LogReturns(prices)
	if len(returns) == 0 {
		return 0
	}
	return stat.PopStdDev(returns, nil) * math.Sqrt(TradingDaysPerYear)
}

// SharpeRatio returns (mean(returns) - riskFreeRate) / stddev(returns - riskFreeRate),
// with the sample (n-1) deviation of the excess returns.
//
// Zero dispersion divides by zero and yields ±Inf or NaN; callers decide how to
// present that. An empty or single-element series yields NaN.
func SharpeRatio(returns []float64, riskFreeRate float64) float64 {
	n := float64(len(returns))
	sum := 0.0
	for _, r := range returns {
		sum += r
	}
	excess := sum/n - riskFreeRate

	ss := 0.0
	for _, r := range returns {
		d := (r - riskFreeRate) - excess
		ss += d * d
	}
	sd := math.Sqrt(ss / (n - 1))
	return excess / sd
}
