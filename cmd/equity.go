package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/brdt/tally/renderer"
	"github.com/google/subcommands"
)

type equityCmd struct{}

func (*equityCmd) Name() string     { return "equity" }
func (*equityCmd) Synopsis() string { return "display the equity curve" }
func (*equityCmd) Usage() string {
	return `tly equity

  Displays the equity curve, one point per recorded event, with the
  change from the previous point.
`
}

func (*equityCmd) SetFlags(_ *flag.FlagSet) {}

func (c *equityCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	t, s, err := loadTracker(logger())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.EquityMarkdown(t.EquityCurve(), s.DisplayCurrency()))
	return subcommands.ExitSuccess
}
