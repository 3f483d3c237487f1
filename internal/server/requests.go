package server

import (
	"strings"

	"PortfolioAnalyzer/internal/model"
)

// HoldingInput is one uploaded position.
type HoldingInput struct {
	Symbol        string  `json:"symbol" validate:"required,ticker"`
	Quantity      float64 `json:"quantity" validate:"gt=0"`
	PurchasePrice float64 `json:"purchase_price" validate:"gt=0"`
}

// UploadRequest is the body of POST /api/portfolio.
type UploadRequest struct {
	Holdings []HoldingInput `json:"holdings" validate:"required,min=1,max=200,dive"`
}

func (r *UploadRequest) Normalize() {
	for i := range r.Holdings {
		r.Holdings[i].Symbol = strings.ToUpper(strings.TrimSpace(r.Holdings[i].Symbol))
	}
}

// ToHoldings converts the request to unpriced holdings.
func (r *UploadRequest) ToHoldings() []model.Holding {
	out := make([]model.Holding, len(r.Holdings))
	for i, h := range r.Holdings {
		out[i] = model.Holding{Symbol: h.Symbol, Quantity: h.Quantity, PurchasePrice: h.PurchasePrice}
	}
	return out
}

// SelectRequest carries the symbol path parameter.
type SelectRequest struct {
	Symbol string `param:"symbol" json:"-" validate:"required,ticker"`
}

func (r *SelectRequest) Normalize() {
	r.Symbol = strings.ToUpper(strings.TrimSpace(r.Symbol))
}

// HistoryRequest pages the recorded runs.
type HistoryRequest struct {
	Limit int `query:"limit" json:"limit" default:"10" validate:"gte=1,lte=100"`
}
