package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/brdt/tally/cmd"
	"github.com/google/subcommands"
)

func main() {
	// Shell completion short-circuits the process when the shell asks.
	cmd.Completion().Complete(path.Base(os.Args[0]))

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))

	for _, c := range cmd.Commands {
		commander.Register(c, "")
	}

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
