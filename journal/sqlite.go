package journal

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/brdt/tally"
)

// SQLiteJournal keeps every run in one embedded database file.
type SQLiteJournal struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLiteJournal, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open journal db %q: %w", path, err)
	}
	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply journal schema: %w", err)
	}
	return &SQLiteJournal{db: db}, nil
}

func (j *SQLiteJournal) RecordRun(r Run) error {
	_, err := j.db.Exec(`
		INSERT INTO runs
		(run_id, created, session, opened, closed, initial_cash, final_cash, final_equity,
		 trades, round_trips, wins, losses, net_pnl, return_pct, max_dd_pct, win_rate, profit_factor, sharpe)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.RunID, r.Created, r.Session, r.Opened, r.Closed, r.InitialCash, r.FinalCash, r.FinalEquity,
		r.Trades, r.RoundTrips, r.Wins, r.Losses, r.NetPnL, r.ReturnPct, r.MaxDDPct, r.WinRate, r.ProfitFactor, r.Sharpe,
	)
	return err
}

func (j *SQLiteJournal) RecordTrip(runID string, t tally.RoundTrip) error {
	_, err := j.db.Exec(`
		INSERT INTO trips
		(run_id, symbol, quantity, entry_price, entry_time, exit_price, exit_time, gross_pnl, net_pnl, winner, hold_seconds)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		runID, t.Symbol, t.Quantity, t.EntryPrice, t.EntryTime, t.ExitPrice, t.ExitTime,
		t.GrossPnL, t.NetPnL, t.Winner, t.Hold.Seconds(),
	)
	return err
}

func (j *SQLiteJournal) RecordEquity(runID string, p tally.EquityPoint) error {
	_, err := j.db.Exec(`
		INSERT INTO equity (run_id, time, equity) VALUES (?, ?, ?)`,
		runID, p.Time, p.Equity,
	)
	return err
}

// ListRuns returns every journaled run, most recent id first.
func (j *SQLiteJournal) ListRuns(ctx context.Context) ([]Run, error) {
	rows, err := j.db.QueryContext(ctx, `
		SELECT run_id, created, session, opened, closed, initial_cash, final_cash, final_equity,
		       trades, round_trips, wins, losses, net_pnl, return_pct, max_dd_pct, win_rate, profit_factor, sharpe
		FROM runs ORDER BY run_id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(
			&r.RunID, &r.Created, &r.Session, &r.Opened, &r.Closed, &r.InitialCash, &r.FinalCash, &r.FinalEquity,
			&r.Trades, &r.RoundTrips, &r.Wins, &r.Losses, &r.NetPnL, &r.ReturnPct, &r.MaxDDPct, &r.WinRate, &r.ProfitFactor, &r.Sharpe,
		); err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// ListTrips returns the round trips of one run in insertion order.
func (j *SQLiteJournal) ListTrips(ctx context.Context, runID string) ([]tally.RoundTrip, error) {
	rows, err := j.db.QueryContext(ctx, `
		SELECT symbol, quantity, entry_price, entry_time, exit_price, exit_time, gross_pnl, net_pnl, winner, hold_seconds
		FROM trips WHERE run_id = ? ORDER BY rowid`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trips []tally.RoundTrip
	for rows.Next() {
		var t tally.RoundTrip
		var holdSeconds float64
		if err := rows.Scan(
			&t.Symbol, &t.Quantity, &t.EntryPrice, &t.EntryTime, &t.ExitPrice, &t.ExitTime,
			&t.GrossPnL, &t.NetPnL, &t.Winner, &holdSeconds,
		); err != nil {
			return nil, err
		}
		t.Hold = time.Duration(holdSeconds * float64(time.Second))
		trips = append(trips, t)
	}
	return trips, rows.Err()
}

// ListEquity returns one run's equity curve in time order.
func (j *SQLiteJournal) ListEquity(ctx context.Context, runID string) ([]tally.EquityPoint, error) {
	rows, err := j.db.QueryContext(ctx, `
		SELECT time, equity FROM equity WHERE run_id = ? ORDER BY time`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var curve []tally.EquityPoint
	for rows.Next() {
		var p tally.EquityPoint
		if err := rows.Scan(&p.Time, &p.Equity); err != nil {
			return nil, err
		}
		curve = append(curve, p)
	}
	return curve, rows.Err()
}

func (j *SQLiteJournal) Close() error {
	return j.db.Close()
}
