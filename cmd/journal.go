package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/brdt/tally/journal"
	"github.com/google/subcommands"
)

// journalCmd holds the flags for the 'journal' subcommand.
type journalCmd struct {
	org  string
	note string
}

func (*journalCmd) Name() string     { return "journal" }
func (*journalCmd) Synopsis() string { return "record the session as a run in the journal" }
func (*journalCmd) Usage() string {
	return `tly journal [-org <file>] [-note <text>]

  Reduces the current session into one run row and records it, with every
  round trip and equity point, in the configured journal backend. With
  -org an org-mode review block is also written for your notes.
`
}

func (c *journalCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.org, "org", "", "Also write an org-mode review to this file")
	f.StringVar(&c.note, "note", "", "Attach an observation to the review")
}

func (c *journalCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	t, s, err := loadTracker(logger())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	j, err := journal.Open(s.Journal)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer j.Close()

	run := journal.NewRun(s.Name, t)
	if c.note != "" {
		run.Notes = append(run.Notes, c.note)
	}

	if err := j.RecordRun(run); err != nil {
		fmt.Fprintf(os.Stderr, "Error recording run: %v\n", err)
		return subcommands.ExitFailure
	}
	for _, trip := range t.RoundTrips() {
		if err := j.RecordTrip(run.RunID, trip); err != nil {
			fmt.Fprintf(os.Stderr, "Error recording round trip: %v\n", err)
			return subcommands.ExitFailure
		}
	}
	for _, point := range t.EquityCurve() {
		if err := j.RecordEquity(run.RunID, point); err != nil {
			fmt.Fprintf(os.Stderr, "Error recording equity point: %v\n", err)
			return subcommands.ExitFailure
		}
	}

	if c.org != "" {
		if err := run.WriteOrg(c.org); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing org review: %v\n", err)
			return subcommands.ExitFailure
		}
	}

	fmt.Printf("Successfully journaled run %s: %d round trip(s), %d equity point(s)\n",
		run.RunID, run.RoundTrips, len(t.EquityCurve()))
	return subcommands.ExitSuccess
}
