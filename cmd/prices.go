package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/brdt/tally"
	"github.com/google/subcommands"
)

// pricesCmd holds the flags for the 'prices' subcommand.
type pricesCmd struct {
	when string
}

func (*pricesCmd) Name() string     { return "prices" }
func (*pricesCmd) Synopsis() string { return "record market price observations" }
func (*pricesCmd) Usage() string {
	return `tly prices [-at <time>] SYMBOL=PRICE [SYMBOL=PRICE ...]

  Appends one batch of quotes to the ledger. Open positions are marked to
  the latest recorded price.
`
}

func (c *pricesCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.when, "at", "", "Observation time, RFC3339 or date (defaults to now)")
}

func (c *pricesCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: at least one SYMBOL=PRICE pair is required.")
		return subcommands.ExitUsageError
	}
	quotes := make(map[string]float64, f.NArg())
	for _, arg := range f.Args() {
		symbol, cell, ok := strings.Cut(arg, "=")
		if !ok || symbol == "" {
			fmt.Fprintf(os.Stderr, "Error: %q is not a SYMBOL=PRICE pair.\n", arg)
			return subcommands.ExitUsageError
		}
		price, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %q is not a price: %v\n", cell, err)
			return subcommands.ExitUsageError
		}
		quotes[symbol] = price
	}
	at, err := parseWhen(c.when)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	log := logger()
	s, err := loadSession()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading session: %v\n", err)
		return subcommands.ExitFailure
	}
	file, err := appendLedger(s, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer file.Close()
	if err := tally.EncodePrices(file, quotes, at); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing to ledger %q: %v\n", s.Ledger, err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Successfully appended %d quote(s) to %s\n", len(quotes), s.Ledger)
	return subcommands.ExitSuccess
}
