package renderer

import (
	"fmt"
	"io"
	"strings"

	"github.com/brdt/tally"
)

// LogMarkdown renders the trade log in insertion order. Trades that carried
// commission or fees get a second, lazily-headed costs section.
func LogMarkdown(trades []tally.Trade, currency string) string {
	var b strings.Builder
	fmt.Fprint(&b, "# Trade Log\n\n")

	if len(trades) == 0 {
		fmt.Fprint(&b, "No trades recorded.\n")
		return b.String()
	}

	cell := func(x float64) string {
		if x == 0 {
			return "-"
		}
		return M(x, currency).String()
	}

	fmt.Fprintln(&b, "| Time | Side | Symbol | Quantity | Price | Notional |")
	fmt.Fprintln(&b, "|:---|:---|:---|---:|---:|---:|")
	for _, t := range trades {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s |\n",
			t.Time.Format(stamp), t.Side, t.Symbol, qty(t.Quantity),
			M(t.Price, currency), M(t.Notional(), currency))
	}

	var totalComm, totalFees float64
	costs := Header(func(w io.Writer) {
		fmt.Fprint(w, "\n## Costs\n\n")
		fmt.Fprintln(w, "| Time | Symbol | Commission | Fees |")
		fmt.Fprintln(w, "|:---|:---|---:|---:|")
	}).Footer(func(w io.Writer) {
		fmt.Fprintf(w, "| **Total** | | **%s** | **%s** |\n",
			cell(totalComm), cell(totalFees))
	})
	for _, t := range trades {
		if t.Costs() == 0 {
			continue
		}
		costs.PrintHeader(&b)
		totalComm += t.Commission
		totalFees += t.Fees
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n",
			t.Time.Format(stamp), t.Symbol, cell(t.Commission), cell(t.Fees))
	}
	costs.PrintFooter(&b)

	return b.String()
}
