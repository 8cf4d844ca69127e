package tally

import (
	"log/slog"
	"testing"
	"time"
)

// sessionStart is the fixed opening instant used across tests.
var sessionStart = time.Date(2025, time.March, 3, 9, 30, 0, 0, time.UTC)

// day returns the instant n days after the session start.
func day(n int) time.Time { return sessionStart.AddDate(0, 0, n) }

// newTestTracker creates a tracker opened at the fixed session start with
// its log output discarded.
func newTestTracker(t *testing.T, initialCash float64) *Tracker {
	t.Helper()
	return NewAt(initialCash, sessionStart, slog.New(slog.DiscardHandler))
}

// buyAt is a helper to build a buy trade from consts.
func buyAt(symbol string, qty, price, commission, fees float64, at time.Time) Trade {
	return Trade{Symbol: symbol, Side: Buy, Quantity: qty, Price: price, Commission: commission, Fees: fees, Time: at}
}

// sellAt is a helper to build a sell trade from consts.
func sellAt(symbol string, qty, price, commission, fees float64, at time.Time) Trade {
	return Trade{Symbol: symbol, Side: Sell, Quantity: qty, Price: price, Commission: commission, Fees: fees, Time: at}
}
