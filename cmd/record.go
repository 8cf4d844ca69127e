package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/brdt/tally"
	"github.com/brdt/tally/renderer"
	"github.com/google/subcommands"
)

// recordCmd holds the flags for the 'record' subcommand.
type recordCmd struct {
	symbol     string
	side       string
	quantity   float64
	price      float64
	commission float64
	fees       float64
	when       string
}

func (*recordCmd) Name() string     { return "record" }
func (*recordCmd) Synopsis() string { return "append an executed trade to the ledger" }
func (*recordCmd) Usage() string {
	return `tly record -s <symbol> -side <buy|sell> -q <qty> -p <price> [-comm <amt>] [-fees <amt>] [-at <time>]

  Appends one execution to the session ledger and reports the resulting
  cash balance.
`
}

func (c *recordCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.symbol, "s", "", "Instrument symbol")
	f.StringVar(&c.side, "side", "buy", "Trade side (buy, sell)")
	f.Float64Var(&c.quantity, "q", 0, "Quantity traded")
	f.Float64Var(&c.price, "p", 0, "Execution price per unit")
	f.Float64Var(&c.commission, "comm", 0, "Commission paid")
	f.Float64Var(&c.fees, "fees", 0, "Exchange and regulatory fees")
	f.StringVar(&c.when, "at", "", "Execution time, RFC3339 or date (defaults to now)")
}

func (c *recordCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.symbol == "" {
		fmt.Fprintln(os.Stderr, "Error: -s symbol is required.")
		return subcommands.ExitUsageError
	}
	side, err := tally.ParseSide(c.side)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
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

	trade := tally.Trade{
		Symbol:     c.symbol,
		Side:       side,
		Quantity:   c.quantity,
		Price:      c.price,
		Commission: c.commission,
		Fees:       c.fees,
		Time:       at,
	}

	file, err := appendLedger(s, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := tally.EncodeTrade(file, trade); err != nil {
		file.Close()
		fmt.Fprintf(os.Stderr, "Error writing to ledger %q: %v\n", s.Ledger, err)
		return subcommands.ExitFailure
	}
	file.Close()

	// Replay to show the cash impact of what was just written.
	t, _, err := loadTracker(log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Successfully appended %s %g %s @ %g, cash %s\n",
		side, c.quantity, c.symbol, c.price, renderer.M(t.Cash(), s.DisplayCurrency()))
	return subcommands.ExitSuccess
}
