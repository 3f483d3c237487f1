package server

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"PortfolioAnalyzer/internal/analyzer"
	"PortfolioAnalyzer/internal/collector"
	"PortfolioAnalyzer/internal/metrics"
	"PortfolioAnalyzer/internal/recorder"
	"PortfolioAnalyzer/internal/session"
)

type testEnv struct {
	srv      *Server
	analyzer *analyzer.Analyzer
}

func newTestEnv(t *testing.T, fetcher *collector.MockFetcher) *testEnv {
	t.Helper()
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	sess, err := session.NewManager("", zerolog.Nop())
	require.NoError(t, err)
	a := analyzer.New(collector.NewCollector(fetcher, m, zerolog.Nop()), sess, zerolog.Nop(), analyzer.WithMetrics(m))
	h := NewPortfolioHandler(a, recorder.NewNoopRecorder(), zerolog.Nop())
	return &testEnv{srv: NewServer(h, reg, zerolog.Nop()), analyzer: a}
}

func (e *testEnv) do(method, target, body string) (*httptest.ResponseRecorder, APIResponse) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	e.srv.Echo().ServeHTTP(rec, req)
	var resp APIResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	return rec, resp
}

var prices = &collector.MockFetcher{
	Prices:  map[string]float64{"AAPL": 150, "MSFT": 280},
	History: map[string][]float64{"AAPL": {140, 145, 150}},
}

const validUpload = `{"holdings":[
	{"symbol":"aapl","quantity":10,"purchase_price":100},
	{"symbol":"MSFT","quantity":5,"purchase_price":300}
]}`

func TestUpload_OK(t *testing.T) {
	env := newTestEnv(t, prices)

	rec, resp := env.do(http.MethodPost, "/api/portfolio", validUpload)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, 2900.0, data["stats"].(map[string]interface{})["total_value"])
	assert.Len(t, data["stress_results"], 3)

	rec, resp = env.do(http.MethodGet, "/api/portfolio", "")
	require.Equal(t, http.StatusOK, rec.Code)
	holdings := resp.Data.(map[string]interface{})["holdings"].([]interface{})
	assert.Equal(t, "AAPL", holdings[0].(map[string]interface{})["symbol"])

	rec, resp = env.do(http.MethodGet, "/api/portfolio/stress", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, resp.Data, 3)

	rec, _ = env.do(http.MethodGet, "/api/portfolio/suggestions", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = env.do(http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `portfolio_analysis_runs_total{action="upload",outcome="ok"} 1`)
}

func TestUpload_Validation(t *testing.T) {
	env := newTestEnv(t, prices)
	tests := []struct {
		name string
		body string
	}{
		{"empty list", `{"holdings":[]}`},
		{"missing list", `{}`},
		{"zero quantity", `{"holdings":[{"symbol":"AAPL","quantity":0,"purchase_price":1}]}`},
		{"negative price", `{"holdings":[{"symbol":"AAPL","quantity":1,"purchase_price":-1}]}`},
		{"bad symbol", `{"holdings":[{"symbol":"AA PL","quantity":1,"purchase_price":1}]}`},
		{"malformed json", `{"holdings":`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, resp := env.do(http.MethodPost, "/api/portfolio", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, http.StatusBadRequest, resp.Status)
		})
	}
}

func TestUpload_FetchFailure(t *testing.T) {
	env := newTestEnv(t, &collector.MockFetcher{})

	rec, _ := env.do(http.MethodPost, "/api/portfolio", validUpload)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), analyzer.MsgStockDataFailed)

	_, resp := env.do(http.MethodGet, "/api/portfolio", "")
	assert.Equal(t, analyzer.MsgStockDataFailed, resp.Data.(map[string]interface{})["error"])
}

func TestUpload_Busy(t *testing.T) {
	env := newTestEnv(t, prices)
	release, err := env.analyzer.Session().Begin()
	require.NoError(t, err)
	defer release()

	rec, _ := env.do(http.MethodPost, "/api/portfolio", validUpload)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestSelect(t *testing.T) {
	env := newTestEnv(t, prices)

	rec, resp := env.do(http.MethodPost, "/api/portfolio/select/aapl", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	profile := resp.Data.(map[string]interface{})["profile"].(map[string]interface{})
	assert.Equal(t, "AAPL", profile["symbol"])
	assert.Equal(t, 150.0, profile["high"])

	rec, _ = env.do(http.MethodPost, "/api/portfolio/select/%20", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSelect_FetchFailure(t *testing.T) {
	env := newTestEnv(t, &collector.MockFetcher{Err: assert.AnError})
	rec, _ := env.do(http.MethodPost, "/api/portfolio/select/AAPL", "")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), analyzer.MsgHistoryFailed)
}

func TestScenariosHistoryHealth(t *testing.T) {
	env := newTestEnv(t, prices)

	rec, resp := env.do(http.MethodGet, "/api/scenarios", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, resp.Data, 3)

	rec, resp = env.do(http.MethodGet, "/api/history", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, resp.Data)

	rec, _ = env.do(http.MethodGet, "/api/history?limit=500", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = env.do(http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestStart_ReportsListenError(t *testing.T) {
	busy, err := net.Listen("tcp", ":0")
	require.NoError(t, err)
	defer busy.Close()
	port := busy.Addr().(*net.TCPAddr).Port

	srv := NewServer(nil, nil, zerolog.Nop(), WithPort(port))
	defer srv.Stop(context.Background())

	select {
	case err := <-srv.Start():
		assert.Error(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("listen error was not reported")
	}
}
