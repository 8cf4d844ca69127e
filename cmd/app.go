// Package cmd implements the CLI application to manage trading sessions.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/brdt/tally"
	"github.com/google/subcommands"
)

// Commands lists every subcommand. A main package registers them all and
// executes the user-selected one.
var Commands = []subcommands.Command{
	&initCmd{},
	&recordCmd{},
	&pricesCmd{},
	&fetchCmd{},
	&summaryCmd{},
	&equityCmd{},
	&tripsCmd{},
	&logCmd{},
	&exportCmd{},
	&importCmd{},
	&journalCmd{},
	&assistCmd{},
	&topicCmd{},
}

// As a CLI application the process is short lived, so it is ok to use
// global variables for the app-wide flags.

var sessionFile = flag.String("session", "session.yaml", "Path to the session file")
var ledgerFile = flag.String("ledger", "", "Ledger file to use, overriding the session's")
var verbose = flag.Bool("v", false, "Show replay and feed warnings on stderr")

// logger returns the logger that replay and feed code reports through.
func logger() *slog.Logger {
	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// loadSession reads the session file, falling back to the default session
// when the file does not exist yet.
func loadSession() (*tally.Session, error) {
	s, err := tally.LoadSession(*sessionFile)
	if errors.Is(err, fs.ErrNotExist) {
		s, err = tally.DefaultSession(), nil
	}
	if err != nil {
		return nil, err
	}
	if *ledgerFile != "" {
		s.Ledger = *ledgerFile
	}
	return s, nil
}

// loadTracker replays the session ledger into a fresh tracker. A missing
// ledger file is an empty session at the configured cash level.
func loadTracker(log *slog.Logger) (*tally.Tracker, *tally.Session, error) {
	s, err := loadSession()
	if err != nil {
		return nil, nil, err
	}
	f, err := os.Open(s.Ledger)
	if errors.Is(err, fs.ErrNotExist) {
		return tally.New(s.Cash, log), s, nil
	}
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	t, err := tally.DecodeSession(f, log)
	if err != nil {
		return nil, nil, fmt.Errorf("could not replay ledger %q: %w", s.Ledger, err)
	}
	return t, s, nil
}

// appendLedger opens the session ledger in append mode, writing the opening
// line first when the file is new or empty.
func appendLedger(s *tally.Session, log *slog.Logger) (*os.File, error) {
	f, err := os.OpenFile(s.Ledger, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("open ledger %q: %w", s.Ledger, err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	if info.Size() == 0 {
		if err := tally.EncodeSession(f, tally.New(s.Cash, log)); err != nil {
			f.Close()
			return nil, err
		}
	}
	return f, nil
}

// parseWhen parses a timestamp flag. Empty means now, otherwise RFC3339 or
// a plain date at midnight UTC.
func parseWhen(cell string) (time.Time, error) {
	if cell == "" {
		return time.Now().UTC().Truncate(time.Second), nil
	}
	if at, err := time.Parse(time.RFC3339, cell); err == nil {
		return at, nil
	}
	at, err := time.Parse(time.DateOnly, cell)
	if err != nil {
		return time.Time{}, fmt.Errorf("%q is neither an RFC3339 timestamp nor a date", cell)
	}
	return at, nil
}
