package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"PortfolioAnalyzer/internal/model"
)

// DefaultYahooURL is the chart API root.
const DefaultYahooURL = "https://query1.finance.yahoo.com/v8/finance/chart"

// YahooFetcher implements Fetcher using Yahoo Finance public API.
type YahooFetcher struct {
	BaseURL string
	Client  *http.Client
}

// NewYahooFetcher creates a new Yahoo Finance fetcher.
func NewYahooFetcher(baseURL, proxyURL string, timeout time.Duration) *YahooFetcher {
	if baseURL == "" {
		baseURL = DefaultYahooURL
	}
	return &YahooFetcher{BaseURL: baseURL, Client: newHTTPClient(proxyURL, timeout)}
}

func (f *YahooFetcher) Name() string { return "yahoo" }

// yahooChart is the response structure from Yahoo Finance chart API.
type yahooChart struct {
	Chart struct {
		Result []struct {
			Meta struct {
				RegularMarketPrice float64 `json:"regularMarketPrice"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []*float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

func (f *YahooFetcher) fetchChart(ctx context.Context, symbol, rng string) (*yahooChart, error) {
	u := fmt.Sprintf("%s/%s?interval=1d&range=%s", f.BaseURL, url.PathEscape(symbol), rng)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("yahoo fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("yahoo read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("yahoo: status %d, body: %s", resp.StatusCode, string(body))
	}

	var chart yahooChart
	if err := json.Unmarshal(body, &chart); err != nil {
		return nil, fmt.Errorf("yahoo decode: %w", err)
	}
	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo api error: %s", chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 {
		return nil, fmt.Errorf("yahoo: %w", ErrNoData)
	}
	return &chart, nil
}

func (f *YahooFetcher) FetchQuote(ctx context.Context, symbol string) (float64, error) {
	chart, err := f.fetchChart(ctx, symbol, "5d")
	if err != nil {
		return 0, fmt.Errorf("fetch quote %s: %w", symbol, err)
	}
	if p := chart.Chart.Result[0].Meta.RegularMarketPrice; p > 0 {
		return p, nil
	}
	series := chartSeries(symbol, chart)
	if len(series.Points) == 0 {
		return 0, fmt.Errorf("fetch quote %s: %w", symbol, ErrNoData)
	}
	return series.Points[len(series.Points)-1].Price, nil
}

func (f *YahooFetcher) FetchDailySeries(ctx context.Context, symbol string) (model.PriceSeries, error) {
	chart, err := f.fetchChart(ctx, symbol, "6mo")
	if err != nil {
		return model.PriceSeries{Symbol: symbol}, fmt.Errorf("fetch history %s: %w", symbol, err)
	}
	series := chartSeries(symbol, chart)
	compact(&series)
	series.FetchedAt = time.Now()
	return series, nil
}

func chartSeries(symbol string, chart *yahooChart) model.PriceSeries {
	series := model.PriceSeries{Symbol: symbol}
	result := chart.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return series
	}
	closes := result.Indicators.Quote[0].Close
	for i, ts := range result.Timestamp {
		if i >= len(closes) || closes[i] == nil || *closes[i] <= 0 {
			continue // skip null bars (holidays etc.)
		}
		series.Points = append(series.Points, model.PricePoint{
			Date:  time.Unix(ts, 0).UTC(),
			Price: *closes[i],
		})
	}
	series.SortAscending()
	return series
}
