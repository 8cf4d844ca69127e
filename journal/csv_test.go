package journal

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brdt/tally"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestCSVJournalRows(t *testing.T) {
	dir := t.TempDir()
	tripsPath := filepath.Join(dir, "trips.csv")
	equityPath := filepath.Join(dir, "equity.csv")

	j, err := NewCSV(tripsPath, equityPath, "")
	require.NoError(t, err)

	entry := time.Date(2025, time.March, 4, 9, 30, 0, 0, time.UTC)
	trip := tally.RoundTrip{
		Symbol:     "ACME",
		Quantity:   100,
		EntryPrice: 10,
		EntryTime:  entry,
		ExitPrice:  15,
		ExitTime:   entry.AddDate(0, 0, 2),
		GrossPnL:   500,
		NetPnL:     470,
		Winner:     true,
		Hold:       48 * time.Hour,
	}
	require.NoError(t, j.RecordTrip("01RUN", trip))
	require.NoError(t, j.RecordEquity("01RUN", tally.EquityPoint{Time: entry, Equity: 10470}))
	require.NoError(t, j.Close())

	rows := readCSV(t, tripsPath)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{
		"run_id", "symbol", "quantity", "entry_price", "entry_time", "exit_price", "exit_time", "gross_pnl", "net_pnl", "winner", "hold_seconds",
	}, rows[0])
	assert.Equal(t, []string{
		"01RUN", "ACME", "100.000000", "10.000000", "2025-03-04T09:30:00Z", "15.000000", "2025-03-06T09:30:00Z", "500.000000", "470.000000", "true", "172800.000000",
	}, rows[1])

	rows = readCSV(t, equityPath)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"run_id", "time", "equity"}, rows[0])
	assert.Equal(t, []string{"01RUN", "2025-03-04T09:30:00Z", "10470.000000"}, rows[1])
}

func TestCSVJournalAppendsWithoutDuplicateHeader(t *testing.T) {
	dir := t.TempDir()
	tripsPath := filepath.Join(dir, "trips.csv")
	equityPath := filepath.Join(dir, "equity.csv")

	for _, runID := range []string{"01AAA", "01BBB"} {
		j, err := NewCSV(tripsPath, equityPath, "")
		require.NoError(t, err)
		require.NoError(t, j.RecordTrip(runID, tally.RoundTrip{Symbol: "ZETA", Hold: time.Hour}))
		require.NoError(t, j.Close())
	}

	rows := readCSV(t, tripsPath)
	require.Len(t, rows, 3)
	assert.Equal(t, "run_id", rows[0][0])
	assert.Equal(t, "01AAA", rows[1][0])
	assert.Equal(t, "01BBB", rows[2][0])
}

func TestCSVJournalDerivesRunsPath(t *testing.T) {
	dir := t.TempDir()
	j, err := NewCSV(filepath.Join(dir, "trips.csv"), filepath.Join(dir, "equity.csv"), "")
	require.NoError(t, err)

	require.NoError(t, j.RecordRun(NewRun("demo", newSessionTracker(t))))
	require.NoError(t, j.Close())

	rows := readCSV(t, filepath.Join(dir, "runs.csv"))
	require.Len(t, rows, 2)
	assert.Equal(t, "run_id", rows[0][0])
	assert.Equal(t, "demo", rows[1][2])
}
