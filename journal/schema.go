package journal

const Schema = `
CREATE TABLE IF NOT EXISTS runs (
	run_id TEXT PRIMARY KEY,
	created DATETIME NOT NULL,
	session TEXT NOT NULL,
	opened DATETIME NOT NULL,
	closed DATETIME NOT NULL,
	initial_cash REAL NOT NULL,
	final_cash REAL NOT NULL,
	final_equity REAL NOT NULL,
	trades INTEGER NOT NULL,
	round_trips INTEGER NOT NULL,
	wins INTEGER NOT NULL,
	losses INTEGER NOT NULL,
	net_pnl REAL NOT NULL,
	return_pct REAL NOT NULL,
	max_dd_pct REAL NOT NULL,
	win_rate REAL NOT NULL,
	profit_factor REAL NOT NULL,
	sharpe REAL NOT NULL
);

CREATE TABLE IF NOT EXISTS trips (
	run_id TEXT NOT NULL,
	symbol TEXT NOT NULL,
	quantity REAL NOT NULL,
	entry_price REAL NOT NULL,
	entry_time DATETIME NOT NULL,
	exit_price REAL NOT NULL,
	exit_time DATETIME NOT NULL,
	gross_pnl REAL NOT NULL,
	net_pnl REAL NOT NULL,
	winner INTEGER NOT NULL,
	hold_seconds REAL NOT NULL
);

CREATE TABLE IF NOT EXISTS equity (
	run_id TEXT NOT NULL,
	time DATETIME NOT NULL,
	equity REAL NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_trips_run ON trips(run_id);
CREATE INDEX IF NOT EXISTS idx_equity_run_time ON equity(run_id, time);
`
