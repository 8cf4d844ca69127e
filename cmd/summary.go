package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/brdt/tally/renderer"
	"github.com/google/subcommands"
)

// summaryCmd holds the flags for the 'summary' subcommand.
type summaryCmd struct {
	metric string
	watch  int
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "display the session performance summary" }
func (*summaryCmd) Usage() string {
	return `tly summary [-metric <name>] [-w n]

  Replays the ledger and displays account, risk and trading statistics.
  With -metric only that one value is printed, which scripts can capture.
  'tly topic metrics' lists the metric names.
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.metric, "metric", "", "Print a single metric value instead of the report")
	f.IntVar(&c.watch, "w", 0, "Rerun every n seconds")
}

func (c *summaryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	log := logger()
	for {
		t, s, err := loadTracker(log)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}

		if c.metric != "" {
			fmt.Printf("%g\n", t.Metric(c.metric))
		} else {
			if c.watch > 0 {
				fmt.Println("\033[2J")
			}
			printMarkdown(renderer.SummaryMarkdown(t.Summary(), s.DisplayCurrency()))
		}

		if c.watch > 0 {
			time.Sleep(time.Duration(c.watch) * time.Second)
		} else {
			break
		}
	}
	return subcommands.ExitSuccess
}
