package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"

	"PortfolioAnalyzer/internal/model"
)

// DefaultAlphaVantageURL is the public query endpoint.
const DefaultAlphaVantageURL = "https://www.alphavantage.co/query"

// AlphaVantageFetcher implements Fetcher using the Alpha Vantage query API.
type AlphaVantageFetcher struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

// NewAlphaVantageFetcher creates a fetcher with optional proxy support.
func NewAlphaVantageFetcher(baseURL, apiKey, proxyURL string, timeout time.Duration) *AlphaVantageFetcher {
	if baseURL == "" {
		baseURL = DefaultAlphaVantageURL
	}
	return &AlphaVantageFetcher{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Client:  newHTTPClient(proxyURL, timeout),
	}
}

func (f *AlphaVantageFetcher) Name() string { return "alphavantage" }

// avStatus carries the fields Alpha Vantage uses to report failures with a 200.
type avStatus struct {
	ErrorMessage string `json:"Error Message"`
	Note         string `json:"Note"`
	Information  string `json:"Information"`
}

func (s avStatus) err() error {
	switch {
	case s.ErrorMessage != "":
		return fmt.Errorf("alphavantage error: %s", s.ErrorMessage)
	case s.Note != "":
		return fmt.Errorf("alphavantage note: %s", s.Note)
	case s.Information != "":
		return fmt.Errorf("alphavantage information: %s", s.Information)
	}
	return nil
}

type avQuoteResponse struct {
	avStatus
	GlobalQuote map[string]string `json:"Global Quote"`
}

type avDailyResponse struct {
	avStatus
	TimeSeries map[string]map[string]string `json:"Time Series (Daily)"`
}

func (f *AlphaVantageFetcher) FetchQuote(ctx context.Context, symbol string) (float64, error) {
	var resp avQuoteResponse
	if err := f.query(ctx, url.Values{"function": {"GLOBAL_QUOTE"}, "symbol": {symbol}}, &resp); err != nil {
		return 0, fmt.Errorf("fetch quote %s: %w", symbol, err)
	}
	if err := resp.err(); err != nil {
		return 0, fmt.Errorf("fetch quote %s: %w", symbol, err)
	}
	raw, ok := resp.GlobalQuote["05. price"]
	if !ok {
		return 0, fmt.Errorf("fetch quote %s: %w", symbol, ErrNoData)
	}
	price, err := parseDecimal(raw)
	if err != nil {
		return 0, fmt.Errorf("fetch quote %s: %w", symbol, err)
	}
	return price, nil
}

func (f *AlphaVantageFetcher) FetchDailySeries(ctx context.Context, symbol string) (model.PriceSeries, error) {
	series := model.PriceSeries{Symbol: symbol}
	var resp avDailyResponse
	params := url.Values{
		"function":   {"TIME_SERIES_DAILY"},
		"symbol":     {symbol},
		"outputsize": {"compact"},
	}
	if err := f.query(ctx, params, &resp); err != nil {
		return series, fmt.Errorf("fetch history %s: %w", symbol, err)
	}
	if err := resp.err(); err != nil {
		return series, fmt.Errorf("fetch history %s: %w", symbol, err)
	}
	if resp.TimeSeries == nil {
		return series, fmt.Errorf("fetch history %s: %w", symbol, ErrNoData)
	}

	series.Points = make([]model.PricePoint, 0, len(resp.TimeSeries))
	for day, values := range resp.TimeSeries {
		date, err := time.Parse(time.DateOnly, day)
		if err != nil {
			return series, fmt.Errorf("fetch history %s: parse date %q: %w", symbol, day, err)
		}
		price, err := parseDecimal(values["4. close"])
		if err != nil {
			return series, fmt.Errorf("fetch history %s on %s: %w", symbol, day, err)
		}
		if price <= 0 {
			continue // log return undefined
		}
		series.Points = append(series.Points, model.PricePoint{Date: date, Price: price})
	}
	compact(&series)
	series.FetchedAt = time.Now()
	return series, nil
}

func (f *AlphaVantageFetcher) query(ctx context.Context, params url.Values, dest interface{}) error {
	params.Set("apikey", f.APIKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.BaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return err
	}
	resp, err := f.Client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("status %d, body: %s", resp.StatusCode, string(body))
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode json: %w", err)
	}
	return nil
}

// parseDecimal converts a provider decimal string such as "150.2300".
func parseDecimal(raw string) (float64, error) {
	if raw == "" {
		return 0, ErrNoData
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return 0, fmt.Errorf("parse price %q: %w", raw, err)
	}
	f, _ := d.Float64()
	return f, nil
}
