package renderer

import (
	"fmt"
	"strings"

	"github.com/brdt/tally"
)

// RoundTripsMarkdown renders the closed round trips as a markdown table,
// oldest first, with a totals row.
func RoundTripsMarkdown(trips []tally.RoundTrip, currency string) string {
	var b strings.Builder
	fmt.Fprint(&b, "# Round Trips\n\n")

	if len(trips) == 0 {
		fmt.Fprint(&b, "No round trips yet.\n")
		return b.String()
	}

	fmt.Fprintln(&b, "| Symbol | Quantity | Entry | Exit | Hold | Gross | Net |")
	fmt.Fprintln(&b, "|:---|---:|---:|---:|---:|---:|---:|")

	var gross, net float64
	wins := 0
	for _, trip := range trips {
		gross += trip.GrossPnL
		net += trip.NetPnL
		if trip.Winner {
			wins++
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | %s |\n",
			trip.Symbol,
			qty(trip.Quantity),
			M(trip.EntryPrice, currency),
			M(trip.ExitPrice, currency),
			hold(trip.Hold),
			M(trip.GrossPnL, currency).SignedString(),
			M(trip.NetPnL, currency).SignedString(),
		)
	}
	fmt.Fprintf(&b, "| **Total** | | | | | **%s** | **%s** |\n",
		M(gross, currency).SignedString(),
		M(net, currency).SignedString(),
	)

	fmt.Fprintf(&b, "\n%d of %d trips closed green.\n", wins, len(trips))
	return b.String()
}
