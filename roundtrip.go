package tally

import "time"

// RoundTrip is one complete entry-to-exit match between an open lot, or a
// fraction of it, and a closing trade. A single exit spanning several lots
// yields several round trips, each with its own entry price and time.
//
// Round trips are derived values: they are recomputed on demand by
// replaying the trade log, never kept as live state.
type RoundTrip struct {
	Symbol     string
	Quantity   float64
	EntryPrice float64
	EntryTime  time.Time
	ExitPrice  float64
	ExitTime   time.Time
	GrossPnL   float64
	NetPnL     float64
	Winner     bool
	Hold       time.Duration
}
