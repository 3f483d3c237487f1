package model

import (
	"sort"
	"time"
)

// PricePoint is one daily close.
type PricePoint struct {
	Date  time.Time `json:"date"`
	Price float64   `json:"price"`
}

// PriceSeries holds the daily closes of one symbol.
type PriceSeries struct {
	Symbol    string       `json:"symbol"`
	Points    []PricePoint `json:"points"`
	FetchedAt time.Time    `json:"fetched_at"`
}

// SortAscending orders the points by date, oldest first.
func (s *PriceSeries) SortAscending() {
	sort.Slice(s.Points, func(i, j int) bool { return s.Points[i].Date.Before(s.Points[j].Date) })
}

// Closes projects the prices in series order.
func (s PriceSeries) Closes() []float64 {
	closes := make([]float64, len(s.Points))
	for i, p := range s.Points {
		closes[i] = p.Price
	}
	return closes
}

// Len returns the number of points.
func (s PriceSeries) Len() int { return len(s.Points) }
