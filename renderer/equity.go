package renderer

import (
	"fmt"
	"strings"

	"github.com/brdt/tally"
)

// EquityMarkdown renders the equity curve as a markdown table with
// point-to-point changes.
func EquityMarkdown(curve []tally.EquityPoint, currency string) string {
	var b strings.Builder
	fmt.Fprint(&b, "# Equity Curve\n\n")

	if len(curve) == 0 {
		fmt.Fprint(&b, "No equity points yet.\n")
		return b.String()
	}

	fmt.Fprintln(&b, "| Time | Equity | Change |")
	fmt.Fprintln(&b, "|:---|---:|---:|")
	for i, p := range curve {
		change := "-"
		if i > 0 && curve[i-1].Equity != 0 {
			change = Percent((p.Equity/curve[i-1].Equity - 1) * 100).SignedString()
		}
		fmt.Fprintf(&b, "| %s | %s | %s |\n", p.Time.Format(stamp), M(p.Equity, currency), change)
	}

	first, last := curve[0], curve[len(curve)-1]
	if len(curve) > 1 && first.Equity != 0 {
		fmt.Fprintf(&b, "\nFinal equity %s, %s since %s.\n",
			M(last.Equity, currency),
			Percent((last.Equity/first.Equity-1)*100).SignedString(),
			first.Time.Format(stamp),
		)
	}
	return b.String()
}
