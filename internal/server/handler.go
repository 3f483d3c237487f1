package server

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"PortfolioAnalyzer/internal/analyzer"
	"PortfolioAnalyzer/internal/model"
	"PortfolioAnalyzer/internal/recorder"
	"PortfolioAnalyzer/internal/session"
	"PortfolioAnalyzer/internal/stress"
)

// Analyzer is the use case surface the API drives.
type Analyzer interface {
	Upload(ctx context.Context, holdings []model.Holding) (*model.Analysis, error)
	Select(ctx context.Context, symbol string) (model.RiskProfile, model.PriceSeries, error)
	Session() *session.Manager
}

// PortfolioHandler serves the portfolio API.
type PortfolioHandler struct {
	analyzer Analyzer
	recorder recorder.Recorder
	log      zerolog.Logger
}

func NewPortfolioHandler(a Analyzer, rec recorder.Recorder, log zerolog.Logger) *PortfolioHandler {
	return &PortfolioHandler{analyzer: a, recorder: rec, log: log.With().Str("component", "api").Logger()}
}

func (h *PortfolioHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.POST("/portfolio", h.Upload)
	g.GET("/portfolio", h.Portfolio)
	g.GET("/portfolio/stress", h.Stress)
	g.GET("/portfolio/suggestions", h.Suggestions)
	g.POST("/portfolio/select/:symbol", h.Select)
	g.GET("/scenarios", h.Scenarios)
	g.GET("/history", h.History)
	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
}

func (h *PortfolioHandler) Upload(c echo.Context) error {
	req := &UploadRequest{}
	if verr := ReadAndValidateRequest(c, req); verr != nil {
		return BadRequestResponse(c, verr)
	}

	res, err := h.analyzer.Upload(c.Request().Context(), req.ToHoldings())
	if err != nil {
		h.log.Error().Err(err).Int("holdings", len(req.Holdings)).Msg("upload usecase error")
		return ErrorResponse(c, err, analyzer.MsgStockDataFailed)
	}
	return SuccessResponse(c, res)
}

// portfolioView is the session snapshot without the selection detail.
type portfolioView struct {
	Holdings []model.Holding      `json:"holdings"`
	Stats    model.PortfolioStats `json:"stats"`
	Selected string               `json:"selected,omitempty"`
	Loading  bool                 `json:"loading"`
	Error    string               `json:"error,omitempty"`
}

func (h *PortfolioHandler) Portfolio(c echo.Context) error {
	st := h.analyzer.Session().State()
	return SuccessResponse(c, portfolioView{
		Holdings: st.Holdings,
		Stats:    st.Stats,
		Selected: st.Selected,
		Loading:  st.Loading,
		Error:    st.Error,
	})
}

func (h *PortfolioHandler) Stress(c echo.Context) error {
	return SuccessResponse(c, h.analyzer.Session().State().StressResults)
}

func (h *PortfolioHandler) Suggestions(c echo.Context) error {
	return SuccessResponse(c, h.analyzer.Session().State().Suggestions)
}

type selectResponse struct {
	Profile model.RiskProfile `json:"profile"`
	Series  model.PriceSeries `json:"series"`
}

func (h *PortfolioHandler) Select(c echo.Context) error {
	req := &SelectRequest{}
	if verr := ReadAndValidateRequest(c, req); verr != nil {
		return BadRequestResponse(c, verr)
	}

	profile, series, err := h.analyzer.Select(c.Request().Context(), req.Symbol)
	if err != nil {
		h.log.Error().Err(err).Str("symbol", req.Symbol).Msg("select usecase error")
		return ErrorResponse(c, err, analyzer.MsgHistoryFailed)
	}
	return SuccessResponse(c, selectResponse{Profile: profile, Series: series})
}

func (h *PortfolioHandler) Scenarios(c echo.Context) error {
	return SuccessResponse(c, stress.DefaultScenarios())
}

func (h *PortfolioHandler) History(c echo.Context) error {
	req := &HistoryRequest{}
	if verr := ReadAndValidateRequest(c, req); verr != nil {
		return BadRequestResponse(c, verr)
	}
	runs, err := h.recorder.RecentRuns(req.Limit)
	if err != nil {
		h.log.Error().Err(err).Msg("history query error")
		return ErrorResponse(c, err, "")
	}
	if runs == nil {
		runs = []recorder.RunSummary{}
	}
	return SuccessResponse(c, runs)
}
