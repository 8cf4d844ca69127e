package journal

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brdt/tally"
)

// newSessionTracker replays a small session: two buys, one partial sell,
// then a closing mark at 15.
func newSessionTracker(t *testing.T) *tally.Tracker {
	t.Helper()
	opened := time.Date(2025, time.March, 3, 9, 30, 0, 0, time.UTC)
	day := func(n int) time.Time { return opened.AddDate(0, 0, n) }

	tr := tally.NewAt(10000, opened, slog.New(slog.DiscardHandler))
	tr.RecordTrade(tally.Trade{Symbol: "ACME", Side: tally.Buy, Quantity: 100, Price: 10, Time: day(1)})
	tr.RecordTrade(tally.Trade{Symbol: "ACME", Side: tally.Buy, Quantity: 100, Price: 12, Time: day(2)})
	tr.RecordTrade(tally.Trade{Symbol: "ACME", Side: tally.Sell, Quantity: 150, Price: 14, Time: day(3)})
	tr.UpdateMarketPrices(map[string]float64{"ACME": 15}, day(4))
	return tr
}

func TestNewRun(t *testing.T) {
	tr := newSessionTracker(t)
	r := NewRun("demo", tr)
	s := tr.Summary()

	_, err := ulid.Parse(r.RunID)
	require.NoError(t, err)
	assert.False(t, r.Created.IsZero())

	assert.Equal(t, "demo", r.Session)
	assert.True(t, r.Opened.Equal(tr.Opened()))
	assert.True(t, r.Closed.Equal(tr.Opened().AddDate(0, 0, 4)))

	assert.Equal(t, 10000.0, r.InitialCash)
	assert.Equal(t, 9900.0, r.FinalCash)
	assert.Equal(t, 10650.0, r.FinalEquity)
	assert.Equal(t, 3, r.Trades)
	assert.Equal(t, 2, r.RoundTrips)
	assert.Equal(t, 2, r.Wins)
	assert.Equal(t, 0, r.Losses)
	assert.Equal(t, 650.0, r.NetPnL)
	assert.InDelta(t, 6.5, r.ReturnPct, 1e-9)
	assert.InDelta(t, -22.0, r.MaxDDPct, 1e-9)
	assert.Equal(t, s.WinRate, r.WinRate)
	assert.Equal(t, s.ProfitFactor, r.ProfitFactor)
	assert.Equal(t, s.Sharpe, r.Sharpe)
}

func TestNewRunEmptyTracker(t *testing.T) {
	opened := time.Date(2025, time.March, 3, 9, 30, 0, 0, time.UTC)
	tr := tally.NewAt(0, opened, slog.New(slog.DiscardHandler))

	r := NewRun("blank", tr)
	assert.Zero(t, r.ReturnPct)
	assert.Zero(t, r.Trades)
	// curve still carries the opening point
	assert.True(t, r.Closed.Equal(opened))
}

func TestRunIDsSortIncreasing(t *testing.T) {
	ids := make([]string, 20)
	for i := range ids {
		ids[i] = newRunID()
	}
	assert.IsIncreasing(t, ids)
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()

	t.Run("csv", func(t *testing.T) {
		j, err := Open(tally.JournalConfig{
			Type:       "csv",
			TradesFile: filepath.Join(dir, "trips.csv"),
			EquityFile: filepath.Join(dir, "equity.csv"),
		})
		require.NoError(t, err)
		defer j.Close()
		_, ok := j.(*CSVJournal)
		assert.True(t, ok)
	})
	t.Run("sqlite", func(t *testing.T) {
		j, err := Open(tally.JournalConfig{Type: "sqlite", DBPath: filepath.Join(dir, "journal.db")})
		require.NoError(t, err)
		defer j.Close()
		_, ok := j.(*SQLiteJournal)
		assert.True(t, ok)
	})
	t.Run("none", func(t *testing.T) {
		_, err := Open(tally.JournalConfig{})
		require.ErrorContains(t, err, "no journal configured")
	})
	t.Run("unknown", func(t *testing.T) {
		_, err := Open(tally.JournalConfig{Type: "bolt"})
		require.ErrorContains(t, err, `unknown journal type "bolt"`)
	})
}

func TestRunOrg(t *testing.T) {
	tr := newSessionTracker(t)
	r := NewRun("demo", tr)
	r.Notes = []string{"clean exit into the close"}

	got, err := r.Org()
	require.NoError(t, err)

	for _, want := range []string{
		"* SESSION: demo",
		":RUN_ID:      " + r.RunID,
		":TRADES:      3",
		":WIN_RATE:    100.00",
		"- Max Drawdown:  *-22.00%*",
		"(profit-factor?)", // no losing trips in this session
		"| Wins    | 2 |",
		"** Observations",
		"- clean exit into the close",
	} {
		assert.Contains(t, got, want)
	}
}

func TestRunOrgSkipsEmptyNotes(t *testing.T) {
	r := NewRun("demo", newSessionTracker(t))
	got, err := r.Org()
	require.NoError(t, err)
	assert.NotContains(t, got, "** Observations")
}

func TestWriteOrg(t *testing.T) {
	r := NewRun("demo", newSessionTracker(t))
	path := filepath.Join(t.TempDir(), "run.org")
	require.NoError(t, r.WriteOrg(path))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "* SESSION: demo")
}
