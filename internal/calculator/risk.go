package calculator

import "PortfolioAnalyzer/internal/model"

// Risk level thresholds on annualized volatility.
const (
	LowRiskCeiling    = 0.15
	MediumRiskCeiling = 0.25
)

// ClassifyRisk buckets an annualized volatility.
func ClassifyRisk(volatility float64) model.RiskLevel {
	switch {
	case volatility < LowRiskCeiling:
		return model.RiskLow
	case volatility < MediumRiskCeiling:
		return model.RiskMedium
	default:
		return model.RiskHigh
	}
}

// Profile builds the risk profile of a series: sample volatility, its level
// and the series range. An empty series yields a LOW profile with zero range.
func Profile(series model.PriceSeries) model.RiskProfile {
	closes := series.Closes()
	vol := SampleVolatility(closes)
	p := model.RiskProfile{
		Symbol:     series.Symbol,
		Volatility: vol,
		Level:      ClassifyRisk(vol),
		Points:     len(closes),
	}
	if high, low, last, err := SeriesRange(series.Points); err == nil {
		p.High, p.Low, p.Last = high, low, last
		if pos, err := RangePosition(last, high, low); err == nil {
			p.Position = pos
		}
	}
	return p
}
