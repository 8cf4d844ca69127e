package cmd

import (
	"context"
	"flag"
	"fmt"
	"maps"
	"os"
	"slices"

	"github.com/brdt/tally"
	"github.com/google/subcommands"
)

// fetchCmd holds the flags for the 'fetch' subcommand.
type fetchCmd struct {
	when   string
	dryRun bool
}

func (*fetchCmd) Name() string     { return "fetch" }
func (*fetchCmd) Synopsis() string { return "fetch quotes from the configured feeds" }
func (*fetchCmd) Usage() string {
	return `tly fetch [-n] [-at <time>]

  Pulls a quote for every feed in the session file and appends them to the
  ledger as one prices batch. Feeds that fail are reported and skipped;
  the batch is recorded as long as at least one quote arrived.

  See 'tly topic feeds' for how feeds are configured.
`
}

func (c *fetchCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.dryRun, "n", false, "Print the fetched quotes without recording them")
	f.StringVar(&c.when, "at", "", "Observation time to record (defaults to now)")
}

func (c *fetchCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	log := logger()
	s, err := loadSession()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading session: %v\n", err)
		return subcommands.ExitFailure
	}
	if len(s.Feeds) == 0 {
		fmt.Fprintln(os.Stderr, "Error: the session has no feeds configured. See 'tly topic feeds'.")
		return subcommands.ExitFailure
	}

	quotes, err := tally.NewQuoter(log).Fetch(ctx, s.Feeds)
	if err != nil {
		// Partial failures are not fatal, the quotes that arrived still count.
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	if len(quotes) == 0 {
		fmt.Fprintln(os.Stderr, "Error: no feed produced a quote.")
		return subcommands.ExitFailure
	}

	for _, symbol := range slices.Sorted(maps.Keys(quotes)) {
		fmt.Printf("  %s: %g\n", symbol, quotes[symbol])
	}
	if c.dryRun {
		return subcommands.ExitSuccess
	}

	at, err := parseWhen(c.when)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
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
