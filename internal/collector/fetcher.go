package collector

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"time"

	"PortfolioAnalyzer/internal/model"
)

// ErrNoData is returned when a provider answers without usable prices.
var ErrNoData = errors.New("no price data returned")

// CompactPoints is the number of most recent daily closes a compact series keeps.
const CompactPoints = 100

// Fetcher defines the interface for fetching market data.
type Fetcher interface {
	// FetchQuote returns the latest trade price.
	FetchQuote(ctx context.Context, symbol string) (float64, error)
	// FetchDailySeries returns recent daily closes sorted by date ascending.
	FetchDailySeries(ctx context.Context, symbol string) (model.PriceSeries, error)
	Name() string
}

// newHTTPClient builds a client with an optional proxy.
func newHTTPClient(proxyURL string, timeout time.Duration) *http.Client {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &http.Client{Timeout: timeout, Transport: transport}
}

// compact sorts the series ascending and keeps the most recent CompactPoints.
func compact(series *model.PriceSeries) {
	series.SortAscending()
	if n := len(series.Points); n > CompactPoints {
		series.Points = series.Points[n-CompactPoints:]
	}
}
