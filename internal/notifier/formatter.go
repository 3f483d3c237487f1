package notifier

import (
	"fmt"
	"html"
	"strings"
	"time"

	"PortfolioAnalyzer/internal/model"
)

// FormatAnalysisReport formats a full upload run into a Telegram message.
func FormatAnalysisReport(a *model.Analysis) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("📊 <b>Portfolio Analysis</b> | %s\n\n", a.CreatedAt.Format("2006-01-02 15:04")))
	b.WriteString(FormatPortfolio(a.Holdings, a.Stats))
	b.WriteString("\n")
	b.WriteString(FormatStressResults(a.StressResults))
	b.WriteString("\n")
	b.WriteString(FormatSuggestions(a.Suggestions))
	return b.String()
}

// FormatPortfolio lists holdings with their value and profit/loss.
func FormatPortfolio(holdings []model.Holding, stats model.PortfolioStats) string {
	var b strings.Builder
	b.WriteString("💼 <b>Holdings</b>\n")
	if len(holdings) == 0 {
		b.WriteString("  no holdings uploaded\n")
		return b.String()
	}
	for _, h := range holdings {
		b.WriteString(fmt.Sprintf("  %s: %g × %.2f = %.2f (%+.2f, %+.1f%%)\n",
			html.EscapeString(h.Symbol), h.Quantity, h.CurrentPrice, h.TotalValue, h.ProfitLoss, h.ProfitLossPercentage))
	}
	b.WriteString("  ─────────────────\n")
	b.WriteString(fmt.Sprintf("  Total value: %.2f\n", stats.TotalValue))
	b.WriteString(fmt.Sprintf("  Total P/L: %+.2f (%+.1f%%)\n", stats.TotalProfitLoss, stats.TotalProfitLossPercentage))
	return b.String()
}

// FormatStressResults summarizes each scenario's loss and risk score.
func FormatStressResults(results []model.StressResult) string {
	var b strings.Builder
	b.WriteString("🌪 <b>Stress Test</b>\n")
	if len(results) == 0 {
		b.WriteString("  no results yet\n")
		return b.String()
	}
	for _, r := range results {
		b.WriteString(fmt.Sprintf("  <b>%s</b>: loss %.2f, risk %.2f/100\n", html.EscapeString(r.Scenario), r.PotentialLoss, r.RiskScore))
		for _, s := range r.ImpactedStocks {
			b.WriteString(fmt.Sprintf("    %s → %.2f (%+.1f%%)\n", html.EscapeString(s.Symbol), s.PotentialValue, s.PercentageChange))
		}
	}
	return b.String()
}

// FormatSuggestions renders the advisor output.
func FormatSuggestions(suggestions []model.Suggestion) string {
	var b strings.Builder
	b.WriteString("💡 <b>Suggestions</b>\n")
	if len(suggestions) == 0 {
		b.WriteString("  ✅ nothing to improve\n")
		return b.String()
	}
	for _, s := range suggestions {
		b.WriteString(fmt.Sprintf("  %s <b>%s</b> [%s]\n", impactIcon(s.Impact), html.EscapeString(s.Title), s.Type))
		b.WriteString(fmt.Sprintf("    %s\n", html.EscapeString(s.Description)))
		for _, a := range s.Actions {
			b.WriteString(fmt.Sprintf("    • %s\n", html.EscapeString(a)))
		}
	}
	return b.String()
}

// FormatFailure reports a failed scheduled refresh.
func FormatFailure(message string, at time.Time) string {
	return fmt.Sprintf("⚠️ <b>Refresh failed</b> | %s\n%s", at.Format("2006-01-02 15:04"), html.EscapeString(message))
}

func impactIcon(level model.ImpactLevel) string {
	switch level {
	case model.ImpactHigh:
		return "🔴"
	case model.ImpactMedium:
		return "🟡"
	default:
		return "🟢"
	}
}
