package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/brdt/tally"
	"github.com/google/subcommands"
)

// importCmd holds the flags for the 'import' subcommand.
type importCmd struct {
	input  string
	dryRun bool
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "append trades from a CSV file to the ledger" }
func (*importCmd) Usage() string {
	return `tly import [-i <file>] [-n]

  Reads trades as CSV rows of time, symbol, side, quantity, price,
  commission, fees from stdin or -i, and appends them to the session
  ledger in file order. The first row must be that header.
`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.input, "i", "", "Read from this file instead of stdin")
	f.BoolVar(&c.dryRun, "n", false, "Parse and report without appending")
}

func (c *importCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	var r io.Reader = os.Stdin
	if c.input != "" {
		file, err := os.Open(c.input)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening %q: %v\n", c.input, err)
			return subcommands.ExitFailure
		}
		defer file.Close()
		r = file
	}

	trades, err := tally.ImportTrades(r)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if len(trades) == 0 {
		fmt.Println("No trades to import.")
		return subcommands.ExitSuccess
	}
	if c.dryRun {
		fmt.Printf("Parsed %d trade(s), not appended.\n", len(trades))
		return subcommands.ExitSuccess
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
	for _, trade := range trades {
		if err := tally.EncodeTrade(file, trade); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing to ledger %q: %v\n", s.Ledger, err)
			return subcommands.ExitFailure
		}
	}

	fmt.Printf("Successfully appended %d trade(s) to %s\n", len(trades), s.Ledger)
	return subcommands.ExitSuccess
}
