package model

// Holding is one stock position. CurrentPrice and the fields after it are
// derived and must be refreshed through Reprice; zero means not priced yet.
type Holding struct {
	Symbol               string  `json:"symbol" yaml:"symbol"`
	Quantity             float64 `json:"quantity" yaml:"quantity"`
	PurchasePrice        float64 `json:"purchase_price" yaml:"purchase_price"`
	CurrentPrice         float64 `json:"current_price,omitempty" yaml:"-"`
	TotalValue           float64 `json:"total_value,omitempty" yaml:"-"`
	ProfitLoss           float64 `json:"profit_loss,omitempty" yaml:"-"`
	ProfitLossPercentage float64 `json:"profit_loss_percentage,omitempty" yaml:"-"`
}

// Reprice sets the current price and recomputes the derived fields.
func (h *Holding) Reprice(price float64) {
	h.CurrentPrice = price
	h.TotalValue = h.Quantity * price
	h.ProfitLoss = h.Quantity * (price - h.PurchasePrice)
	if h.PurchasePrice != 0 {
		h.ProfitLossPercentage = (price - h.PurchasePrice) / h.PurchasePrice * 100
	} else {
		h.ProfitLossPercentage = 0
	}
}

// Priced reports whether a current price has been applied.
func (h Holding) Priced() bool { return h.CurrentPrice != 0 }

// PortfolioStats aggregates the derived values of all holdings.
type PortfolioStats struct {
	TotalValue                float64 `json:"total_value"`
	TotalCost                 float64 `json:"total_cost"`
	TotalProfitLoss           float64 `json:"total_profit_loss"`
	TotalProfitLossPercentage float64 `json:"total_profit_loss_percentage"`
}

// ComputeStats sums the holdings. The percentage is relative to total cost.
func ComputeStats(holdings []Holding) PortfolioStats {
	var s PortfolioStats
	for _, h := range holdings {
		s.TotalValue += h.TotalValue
		s.TotalCost += h.Quantity * h.PurchasePrice
		s.TotalProfitLoss += h.ProfitLoss
	}
	if s.TotalCost != 0 {
		s.TotalProfitLossPercentage = s.TotalProfitLoss / s.TotalCost * 100
	}
	return s
}

// Symbols returns the holding symbols in order.
func Symbols(holdings []Holding) []string {
	out := make([]string, len(holdings))
	for i, h := range holdings {
		out[i] = h.Symbol
	}
	return out
}
