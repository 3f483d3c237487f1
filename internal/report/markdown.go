// Package report renders analysis results as markdown.
package report

import (
	"fmt"
	"strings"

	"PortfolioAnalyzer/internal/model"
	"PortfolioAnalyzer/internal/recorder"
)

// Markdown renders a full analysis: holdings, stress results and suggestions.
func Markdown(a *model.Analysis) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Portfolio Analysis\n\n_%s_\n\n", a.CreatedAt.Format("2006-01-02 15:04"))
	b.WriteString(Holdings(a.Holdings, a.Stats))
	b.WriteString(StressResults(a.StressResults))
	b.WriteString(Suggestions(a.Suggestions))
	return b.String()
}

// Holdings renders the portfolio table with totals.
func Holdings(holdings []model.Holding, stats model.PortfolioStats) string {
	var b strings.Builder
	b.WriteString("## Holdings\n\n")
	b.WriteString("| Symbol | Quantity | Purchase | Current | Value | P/L | P/L % |\n")
	b.WriteString("|:---|---:|---:|---:|---:|---:|---:|\n")
	for _, h := range holdings {
		fmt.Fprintf(&b, "| %s | %g | %s | %s | %s | %s | %+.2f%% |\n",
			h.Symbol, h.Quantity, Money(h.PurchasePrice), Money(h.CurrentPrice),
			Money(h.TotalValue), Money(h.ProfitLoss), h.ProfitLossPercentage)
	}
	fmt.Fprintf(&b, "| **Total** | | %s | | %s | %s | %+.2f%% |\n\n",
		Money(stats.TotalCost), Money(stats.TotalValue), Money(stats.TotalProfitLoss), stats.TotalProfitLossPercentage)
	return b.String()
}

// StressResults renders one section per scenario.
func StressResults(results []model.StressResult) string {
	var b strings.Builder
	b.WriteString("## Stress Test\n\n")
	if len(results) == 0 {
		b.WriteString("No stress results.\n\n")
		return b.String()
	}
	b.WriteString("| Scenario | Potential Loss | Risk Score |\n|:---|---:|---:|\n")
	for _, r := range results {
		fmt.Fprintf(&b, "| %s | %.2f%% | %.2f |\n", r.Scenario, r.PotentialLoss, r.RiskScore)
	}
	b.WriteString("\n")
	for _, r := range results {
		fmt.Fprintf(&b, "### %s\n\n| Symbol | Potential Value | Change |\n|:---|---:|---:|\n", r.Scenario)
		for _, s := range r.ImpactedStocks {
			fmt.Fprintf(&b, "| %s | %s | %+.2f%% |\n", s.Symbol, Money(s.PotentialValue), s.PercentageChange)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// Suggestions renders the advisor output.
func Suggestions(suggestions []model.Suggestion) string {
	var b strings.Builder
	b.WriteString("## Suggestions\n\n")
	if len(suggestions) == 0 {
		b.WriteString("Your portfolio passed every check.\n\n")
		return b.String()
	}
	for _, s := range suggestions {
		fmt.Fprintf(&b, "### %s\n\n**%s** · impact %s\n\n%s\n\n", s.Title, s.Type, s.Impact, s.Description)
		for _, a := range s.Actions {
			fmt.Fprintf(&b, "- %s\n", a)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// Profile renders the risk profile of a selected symbol.
func Profile(p model.RiskProfile) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", p.Symbol)
	fmt.Fprintf(&b, "| Metric | Value |\n|:---|---:|\n")
	fmt.Fprintf(&b, "| Annualized volatility | %.2f%% |\n", p.Volatility*100)
	fmt.Fprintf(&b, "| Risk level | %s |\n", p.Level)
	fmt.Fprintf(&b, "| High | %s |\n", Money(p.High))
	fmt.Fprintf(&b, "| Low | %s |\n", Money(p.Low))
	fmt.Fprintf(&b, "| Last | %s |\n", Money(p.Last))
	fmt.Fprintf(&b, "| Position in range | %.0f%% |\n", p.Position*100)
	fmt.Fprintf(&b, "| Daily closes | %d |\n", p.Points)
	return b.String()
}

// Scenarios lists the stress scenarios.
func Scenarios(scenarios []model.Scenario) string {
	var b strings.Builder
	b.WriteString("# Stress Scenarios\n\n| Scenario | Market | Volatility | Interest Rate |\n|:---|---:|---:|---:|\n")
	for _, s := range scenarios {
		fmt.Fprintf(&b, "| %s | %+.0f%% | %+.0f%% | %+.0f%% |\n",
			s.Name, s.MarketChange*100, s.VolatilityChange*100, s.InterestRateChange*100)
	}
	return b.String()
}

// History lists recorded runs, newest first.
func History(runs []recorder.RunSummary) string {
	var b strings.Builder
	b.WriteString("# Analysis History\n\n")
	if len(runs) == 0 {
		b.WriteString("No recorded runs.\n")
		return b.String()
	}
	b.WriteString("| Date | Holdings | Value | P/L | Worst Scenario | Max Risk | Suggestions |\n")
	b.WriteString("|:---|---:|---:|---:|:---|---:|---:|\n")
	for _, r := range runs {
		fmt.Fprintf(&b, "| %s | %d | %s | %s | %s | %.2f | %d |\n",
			r.CreatedAt.Format("2006-01-02 15:04"), r.Holdings, Money(r.TotalValue),
			Money(r.TotalProfitLoss), r.WorstScenario, r.MaxRiskScore, r.Suggestions)
	}
	return b.String()
}
