package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/brdt/tally"
	"github.com/brdt/tally/agent"
	"github.com/google/subcommands"
	"google.golang.org/genai"
)

// assistCmd is the subcommand for the AI assistant.
type assistCmd struct{}

func (*assistCmd) Name() string     { return "assist" }
func (*assistCmd) Synopsis() string { return "start an interactive session with the AI assistant" }
func (*assistCmd) Usage() string {
	return `tly assist [prompt...]

  Starts an interactive chat with an assistant that can research markets
  and query this session's statistics before answering. Any arguments are
  sent as the first prompt.

  Requires a Gemini API key in the environment.
`
}

func (*assistCmd) SetFlags(_ *flag.FlagSet) {}

func (c *assistCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	initialPrompt := strings.Join(f.Args(), " ")

	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error initializing Gemini's client:", err)
		return subcommands.ExitFailure
	}

	log := logger()
	s, err := loadSession()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading session: %v\n", err)
		return subcommands.ExitFailure
	}
	// The analyst replays the ledger on every question so it always sees
	// what was recorded since the chat started.
	load := func() (*tally.Tracker, error) {
		t, _, err := loadTracker(log)
		return t, err
	}

	researcher := agent.NewResearcher()
	analyst := agent.NewAnalyst(load, s.DisplayCurrency())
	a := agent.New(os.Stdout, os.Stdin, researcher, analyst)

	if err := a.Run(ctx, client, initialPrompt); err != nil {
		fmt.Fprintln(os.Stderr, "Agent failed:", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
