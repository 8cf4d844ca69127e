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

// initCmd holds the flags for the 'init' subcommand.
type initCmd struct {
	cash     float64
	name     string
	currency string
}

func (*initCmd) Name() string     { return "init" }
func (*initCmd) Synopsis() string { return "create or rebase the session and its ledger" }
func (*initCmd) Usage() string {
	return `tly init [-name <name>] [-cash <amount>] [-currency <code>]

  Writes the session file and opens the ledger with the starting cash.
  On a ledger that already has trades, -cash cannot rebase the opening
  line anymore and the recorded history wins.
`
}

func (c *initCmd) SetFlags(f *flag.FlagSet) {
	f.Float64Var(&c.cash, "cash", 10000, "Starting cash for the session")
	f.StringVar(&c.name, "name", "", "Session name")
	f.StringVar(&c.currency, "currency", "", "ISO currency code used by reports")
}

func (c *initCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	log := logger()

	s, err := loadSession()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading session: %v\n", err)
		return subcommands.ExitFailure
	}
	if c.name != "" {
		s.Name = c.name
	}
	if c.currency != "" {
		s.Currency = c.currency
	}
	s.Cash = c.cash
	if err := s.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	if err := s.Save(*sessionFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving session: %v\n", err)
		return subcommands.ExitFailure
	}

	// Rewrite the ledger so its opening line carries the new cash. With
	// trades on file UpdateInitialCash refuses the rebase and the rewrite
	// reproduces the stream unchanged.
	t, _, err := loadTracker(log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	t.UpdateInitialCash(c.cash)

	file, err := os.Create(s.Ledger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening ledger file for writing: %v\n", err)
		return subcommands.ExitFailure
	}
	defer file.Close()
	if err := tally.EncodeSession(file, t); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing ledger: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Successfully initialized session %q with %s in %s\n",
		s.Name, renderer.M(t.InitialCash(), s.DisplayCurrency()), s.Ledger)
	return subcommands.ExitSuccess
}
