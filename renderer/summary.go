package renderer

import (
	"fmt"
	"io"
	"strings"

	"github.com/brdt/tally"
)

// SummaryMarkdown renders the full metric set as a markdown report. The
// trading section is dropped when no round trip has closed yet, since all
// of its figures would be zeros.
func SummaryMarkdown(s *tally.Summary, currency string) string {
	var b strings.Builder

	fmt.Fprint(&b, "# Session Summary\n\n")
	fmt.Fprintf(&b, "Equity %s, cash %s on %s initial.\n\n",
		M(s.CurrentEquity, currency), M(s.CurrentCash, currency), M(s.InitialCash, currency))

	fmt.Fprint(&b, "## Account\n\n")
	fmt.Fprintln(&b, "| Figure | Value |")
	fmt.Fprintln(&b, "|:---|---:|")
	fmt.Fprintf(&b, "| Trades | %d |\n", s.Trades)
	fmt.Fprintf(&b, "| Round Trips | %d |\n", s.RoundTrips)
	fmt.Fprintf(&b, "| Realised P&L | %s |\n", M(s.RealisedPnL, currency).SignedString())
	fmt.Fprintf(&b, "| Unrealised P&L | %s |\n", M(s.UnrealisedPnL, currency).SignedString())

	fmt.Fprint(&b, "\n## Risk\n\n")
	fmt.Fprintln(&b, "| Figure | Value |")
	fmt.Fprintln(&b, "|:---|---:|")
	fmt.Fprintf(&b, "| Max Drawdown | %s |\n", Percent(s.MaxDrawdown*100).SignedString())
	fmt.Fprintf(&b, "| Avg Drawdown | %s |\n", Percent(s.AvgDrawdown*100).SignedString())
	fmt.Fprintf(&b, "| Max Drawdown Duration | %s |\n", hold(seconds(s.MaxDrawdownDuration)))
	fmt.Fprintf(&b, "| Avg Drawdown Duration | %s |\n", hold(seconds(s.AvgDrawdownDuration)))
	fmt.Fprintf(&b, "| Exposure | %s |\n", Percent(s.ExposureTime*100).String())
	fmt.Fprintf(&b, "| Annualized Return | %s |\n", Percent(s.AnnualizedReturn*100).SignedString())
	fmt.Fprintf(&b, "| Sharpe | %.2f |\n", s.Sharpe)
	fmt.Fprintf(&b, "| Sortino | %.2f |\n", s.Sortino)
	fmt.Fprintf(&b, "| Calmar | %.2f |\n", s.Calmar)

	ConditionalBlock(&b, func(w io.Writer) bool {
		fmt.Fprint(w, "\n## Trading\n\n")
		fmt.Fprintln(w, "| Figure | Value |")
		fmt.Fprintln(w, "|:---|---:|")
		fmt.Fprintf(w, "| Win Rate | %s |\n", Percent(s.WinRate*100).String())
		fmt.Fprintf(w, "| Loss Rate | %s |\n", Percent(s.LossRate*100).String())
		fmt.Fprintf(w, "| Profit Factor | %.2f |\n", s.ProfitFactor)
		fmt.Fprintf(w, "| Avg Win | %s |\n", M(s.AvgWin, currency).SignedString())
		fmt.Fprintf(w, "| Avg Loss | %s |\n", M(s.AvgLoss, currency).SignedString())
		fmt.Fprintf(w, "| Expectancy | %s |\n", M(s.Expectancy, currency).SignedString())
		fmt.Fprintf(w, "| Kelly | %s |\n", Percent(s.KellyFraction*100).String())
		fmt.Fprintf(w, "| Kelly Half | %s |\n", Percent(s.KellyHalf*100).String())
		fmt.Fprintf(w, "| Avg Hold | %s |\n", hold(seconds(s.AvgHoldTimeSeconds)))
		fmt.Fprintf(w, "| Trade Frequency | %.1f trips/year |\n", s.TradeFrequency)
		return s.RoundTrips > 0
	})

	return b.String()
}
