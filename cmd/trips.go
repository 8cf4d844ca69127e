package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/brdt/tally/renderer"
	"github.com/google/subcommands"
)

type tripsCmd struct{}

func (*tripsCmd) Name() string     { return "trips" }
func (*tripsCmd) Synopsis() string { return "display the closed round trips" }
func (*tripsCmd) Usage() string {
	return `tly trips

  Displays every closed round trip with its gross and net result. Entries
  and exits are matched first-in first-out.
`
}

func (*tripsCmd) SetFlags(_ *flag.FlagSet) {}

func (c *tripsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	t, s, err := loadTracker(logger())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.RoundTripsMarkdown(t.RoundTrips(), s.DisplayCurrency()))
	return subcommands.ExitSuccess
}
