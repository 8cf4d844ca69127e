package journal

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/brdt/tally"
)

// CSVJournal appends to three flat files: trips, equity and runs. The
// files stay loadable in a spreadsheet across many journaled sessions.
type CSVJournal struct {
	trips  *csv.Writer
	equity *csv.Writer
	runs   *csv.Writer
	files  []*os.File
}

// NewCSV opens the three journal files, writing headers on the ones that
// are new. An empty runsPath puts runs.csv next to the trips file.
func NewCSV(tripsPath, equityPath, runsPath string) (*CSVJournal, error) {
	if runsPath == "" {
		runsPath = filepath.Join(filepath.Dir(tripsPath), "runs.csv")
	}

	j := &CSVJournal{}
	var err error
	if j.trips, err = j.open(tripsPath, []string{
		"run_id", "symbol", "quantity", "entry_price", "entry_time", "exit_price", "exit_time", "gross_pnl", "net_pnl", "winner", "hold_seconds",
	}); err != nil {
		return nil, err
	}
	if j.equity, err = j.open(equityPath, []string{"run_id", "time", "equity"}); err != nil {
		j.Close()
		return nil, err
	}
	if j.runs, err = j.open(runsPath, []string{
		"run_id", "created", "session", "opened", "closed", "initial_cash", "final_cash", "final_equity",
		"trades", "round_trips", "wins", "losses", "net_pnl", "return_pct", "max_dd_pct", "win_rate", "profit_factor", "sharpe",
	}); err != nil {
		j.Close()
		return nil, err
	}
	return j, nil
}

// open appends to path, writing the header first when the file starts out
// empty.
func (j *CSVJournal) open(path string, header []string) (*csv.Writer, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_RDWR, 0644)
	if err != nil {
		return nil, err
	}
	j.files = append(j.files, f)

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	w := csv.NewWriter(f)
	if info.Size() == 0 {
		if err := w.Write(header); err != nil {
			return nil, err
		}
		w.Flush()
		if err := w.Error(); err != nil {
			return nil, err
		}
	}
	return w, nil
}

func (j *CSVJournal) RecordRun(r Run) error {
	j.runs.Write([]string{
		r.RunID,
		r.Created.Format(time.RFC3339),
		r.Session,
		r.Opened.Format(time.RFC3339),
		r.Closed.Format(time.RFC3339),
		f(r.InitialCash),
		f(r.FinalCash),
		f(r.FinalEquity),
		strconv.Itoa(r.Trades),
		strconv.Itoa(r.RoundTrips),
		strconv.Itoa(r.Wins),
		strconv.Itoa(r.Losses),
		f(r.NetPnL),
		f(r.ReturnPct),
		f(r.MaxDDPct),
		f(r.WinRate),
		f(r.ProfitFactor),
		f(r.Sharpe),
	})
	j.runs.Flush()
	return j.runs.Error()
}

func (j *CSVJournal) RecordTrip(runID string, t tally.RoundTrip) error {
	j.trips.Write([]string{
		runID,
		t.Symbol,
		f(t.Quantity),
		f(t.EntryPrice),
		t.EntryTime.Format(time.RFC3339),
		f(t.ExitPrice),
		t.ExitTime.Format(time.RFC3339),
		f(t.GrossPnL),
		f(t.NetPnL),
		strconv.FormatBool(t.Winner),
		f(t.Hold.Seconds()),
	})
	j.trips.Flush()
	return j.trips.Error()
}

func (j *CSVJournal) RecordEquity(runID string, p tally.EquityPoint) error {
	j.equity.Write([]string{runID, p.Time.Format(time.RFC3339), f(p.Equity)})
	j.equity.Flush()
	return j.equity.Error()
}

func (j *CSVJournal) Close() error {
	var firstErr error
	for _, w := range []*csv.Writer{j.trips, j.equity, j.runs} {
		if w == nil {
			continue
		}
		w.Flush()
		if err := w.Error(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	for _, f := range j.files {
		if err := f.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func f(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
