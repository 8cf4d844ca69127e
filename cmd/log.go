package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/brdt/tally/renderer"
	"github.com/google/subcommands"
)

// logCmd holds the flags for the 'log' subcommand.
type logCmd struct {
	head int
	tail int
}

func (*logCmd) Name() string     { return "log" }
func (*logCmd) Synopsis() string { return "display the chronological trade log" }
func (*logCmd) Usage() string {
	return `tly log [-head n | -tail n]

  Displays every recorded trade in order, with a costs section when any
  trade carried commission or fees.
`
}

func (c *logCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.head, "head", 0, "Show only the first n trades")
	f.IntVar(&c.tail, "tail", 0, "Show only the last n trades")
}

func (c *logCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.head > 0 && c.tail > 0 {
		fmt.Fprintln(os.Stderr, "Error: -head and -tail cannot be combined.")
		return subcommands.ExitUsageError
	}

	t, s, err := loadTracker(logger())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	trades := t.Trades()
	if c.head > 0 && c.head < len(trades) {
		trades = trades[:c.head]
	}
	if c.tail > 0 && c.tail < len(trades) {
		trades = trades[len(trades)-c.tail:]
	}

	printMarkdown(renderer.LogMarkdown(trades, s.DisplayCurrency()))
	return subcommands.ExitSuccess
}
