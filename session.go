package tally

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/Rhymond/go-money"
	"gopkg.in/yaml.v3"
)

// Session describes one tracked account: its starting cash, where the event
// log lives, how trades are journaled and where quotes come from.
type Session struct {
	Name     string        `json:"name" yaml:"name"`
	Cash     float64       `json:"cash" yaml:"cash"`
	Currency string        `json:"currency,omitempty" yaml:"currency,omitempty"`
	Ledger   string        `json:"ledger" yaml:"ledger"`
	Journal  JournalConfig `json:"journal,omitempty" yaml:"journal,omitempty"`
	Feeds    []FeedConfig  `json:"feeds,omitempty" yaml:"feeds,omitempty"`
}

// DisplayCurrency returns the ISO code reports should format amounts in.
func (s *Session) DisplayCurrency() string {
	if s.Currency == "" {
		return "USD"
	}
	return s.Currency
}

// JournalConfig selects the trade journal backend, if any.
type JournalConfig struct {
	Type       string `json:"type,omitempty" yaml:"type,omitempty"` // "csv" or "sqlite"
	TradesFile string `json:"trades_file,omitempty" yaml:"trades_file,omitempty"`
	EquityFile string `json:"equity_file,omitempty" yaml:"equity_file,omitempty"`
	RunsFile   string `json:"runs_file,omitempty" yaml:"runs_file,omitempty"`
	DBPath     string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
}

// FeedConfig locates one symbol's quote inside a JSON HTTP response.
type FeedConfig struct {
	Symbol string  `json:"symbol" yaml:"symbol"`
	URL    string  `json:"url" yaml:"url"`
	Path   string  `json:"path" yaml:"path"`                       // jsonpath of the price in the response
	Scale  float64 `json:"scale,omitempty" yaml:"scale,omitempty"` // divisor for feeds quoting minor units, 0 means none
}

// LoadSession loads a session description from a file, YAML or JSON.
func LoadSession(path string) (*Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read session file: %w", err)
	}

	s := &Session{}
	// Try YAML first, fall back to JSON.
	if yerr := yaml.Unmarshal(data, s); yerr != nil {
		if jerr := json.Unmarshal(data, s); jerr != nil {
			return nil, fmt.Errorf("parse session file (tried YAML and JSON): %w", yerr)
		}
	}

	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid session file %q: %w", path, err)
	}
	return s, nil
}

// Save writes the session description, YAML unless the path says .json.
func (s *Session) Save(path string) error {
	var data []byte
	var err error
	if strings.HasSuffix(path, ".json") {
		data, err = json.MarshalIndent(s, "", "  ")
	} else {
		data, err = yaml.Marshal(s)
	}
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}
	return nil
}

// Validate checks the session description for the mistakes a hand-edited
// file commonly has.
func (s *Session) Validate() error {
	if s.Ledger == "" {
		return fmt.Errorf("ledger is required")
	}
	if s.Currency != "" && money.GetCurrency(s.Currency) == nil {
		return fmt.Errorf("unknown currency code %q", s.Currency)
	}
	switch s.Journal.Type {
	case "":
	case "csv":
		if s.Journal.TradesFile == "" || s.Journal.EquityFile == "" {
			return fmt.Errorf("journal trades_file and equity_file required for csv type")
		}
	case "sqlite":
		if s.Journal.DBPath == "" {
			return fmt.Errorf("journal db_path required for sqlite type")
		}
	default:
		return fmt.Errorf("journal.type must be 'csv' or 'sqlite', got %q", s.Journal.Type)
	}
	for i, feed := range s.Feeds {
		if feed.Symbol == "" {
			return fmt.Errorf("feeds[%d].symbol is required", i)
		}
		if feed.URL == "" {
			return fmt.Errorf("feeds[%d].url is required", i)
		}
		if feed.Path == "" {
			return fmt.Errorf("feeds[%d].path is required", i)
		}
		if feed.Scale < 0 {
			return fmt.Errorf("feeds[%d].scale must be positive, got %v", i, feed.Scale)
		}
	}
	return nil
}

// DefaultSession returns a session with sensible defaults around a ledger
// file in the working directory.
func DefaultSession() *Session {
	return &Session{
		Name:     "session",
		Cash:     10000,
		Currency: "USD",
		Ledger:   "session.jsonl",
		Journal: JournalConfig{
			Type:       "csv",
			TradesFile: "trades.csv",
			EquityFile: "equity.csv",
		},
	}
}
