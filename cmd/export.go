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

// exportCmd holds the flags for the 'export' subcommand.
type exportCmd struct {
	output string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "export trades, round trips or the equity curve as CSV" }
func (*exportCmd) Usage() string {
	return `tly export [-o <file>] <trades|trips|equity>

  Writes the selected dataset as CSV with a header row, to stdout unless
  -o names a file.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", "", "Write to this file instead of stdout")
}

func (c *exportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: exactly one of trades, trips or equity is required.")
		return subcommands.ExitUsageError
	}
	kind := f.Arg(0)

	t, _, err := loadTracker(logger())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	var w io.Writer = os.Stdout
	if c.output != "" {
		file, err := os.Create(c.output)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening %q for writing: %v\n", c.output, err)
			return subcommands.ExitFailure
		}
		defer file.Close()
		w = file
	}

	switch kind {
	case "trades":
		err = tally.ExportTrades(w, t.Trades())
	case "trips":
		err = tally.ExportRoundTrips(w, t.RoundTrips())
	case "equity":
		err = tally.ExportEquity(w, t.EquityCurve())
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown dataset %q, want trades, trips or equity.\n", kind)
		return subcommands.ExitUsageError
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error exporting %s: %v\n", kind, err)
		return subcommands.ExitFailure
	}

	if c.output != "" {
		fmt.Printf("Successfully exported %s to %s\n", kind, c.output)
	}
	return subcommands.ExitSuccess
}
