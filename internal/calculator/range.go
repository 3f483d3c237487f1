package calculator

import (
	"errors"
	"math"

	"PortfolioAnalyzer/internal/model"
)

// SeriesRange scans the points and returns the high, the low and the last price.
func SeriesRange(points []model.PricePoint) (high, low, last float64, err error) {
	if len(points) == 0 {
		return 0, 0, 0, errors.New("no price points provided")
	}
	high = math.Inf(-1)
	low = math.Inf(1)
	for _, p := range points {
		if p.Price > high {
			high = p.Price
		}
		if p.Price < low {
			low = p.Price
		}
	}
	return high, low, points[len(points)-1].Price, nil
}

// RangePosition returns where price sits within [low, high] (0.0~1.0).
func RangePosition(price, high, low float64) (float64, error) {
	if high == low {
		return 0.5, nil
	}
	if high < low {
		return 0, errors.New("high must be >= low")
	}
	pos := (price - low) / (high - low)
	if pos < 0 {
		pos = 0
	}
	if pos > 1 {
		pos = 1
	}
	return pos, nil
}
