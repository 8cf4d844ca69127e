package tally

import (
	"iter"
	"log/slog"
	"time"
)

// Tracker is the single entry point of the engine. It owns the trade log,
// the cash ledger, the position book and the price history of one trading
// session; external collaborators only ever talk to it.
//
// A Tracker has no internal locking and is meant for a single logical
// owner. Derivations (EquityCurve, RoundTrips, Summary, Metric) are pure
// reads and may run concurrently with each other, but not with mutations.
type Tracker struct {
	log    *slog.Logger
	opened time.Time

	trades []Trade
	cash   *cashLedger
	book   *book
	prices *priceBook
}

// New creates a Tracker holding the given starting cash, opened now. A nil
// logger falls back to slog.Default().
func New(initialCash float64, log *slog.Logger) *Tracker {
	return NewAt(initialCash, time.Now(), log)
}

// NewAt creates a Tracker opened at a given instant. Session replay uses it
// to rebuild a tracker with its original opening time.
func NewAt(initialCash float64, opened time.Time, log *slog.Logger) *Tracker {
	if log == nil {
		log = slog.Default()
	}
	return &Tracker{
		log:    log,
		opened: opened,
		cash:   newCashLedger(initialCash, opened),
		book:   newBook(),
		prices: newPriceBook(),
	}
}

// Opened returns the instant the session started, the timestamp of the
// first cash point.
func (t *Tracker) Opened() time.Time { return t.opened }

// RecordTrade appends a trade to the session log and applies it to the cash
// ledger and the position book. A zero timestamp is stamped with the
// current time. The trade as recorded is returned.
//
// Inputs are taken as-is: zero, negative and NaN quantities, prices or
// costs are recorded and propagate arithmetically into derived figures.
func (t *Tracker) RecordTrade(tr Trade) Trade {
	if tr.Time.IsZero() {
		tr.Time = time.Now()
	}
	t.trades = append(t.trades, tr)
	t.cash.apply(tr)
	t.book.apply(tr)
	return tr
}

// UpdateMarketPrices records one price observation per symbol at the given
// instant. A zero instant is stamped with the current time.
func (t *Tracker) UpdateMarketPrices(prices map[string]float64, at time.Time) {
	if at.IsZero() {
		at = time.Now()
	}
	t.prices.update(prices, at)
}

// UpdateInitialCash corrects the starting cash of the session. It is only
// honored before the first trade: once trades exist the call logs a
// warning and leaves the state untouched, keeping historical cash points
// valid.
func (t *Tracker) UpdateInitialCash(v float64) {
	if len(t.trades) > 0 {
		t.log.Warn("ignoring initial cash update, trades already recorded",
			"initial_cash", t.cash.initial,
			"requested", v,
			"trades", len(t.trades))
		return
	}
	t.cash.setInitial(v)
}

// InitialCash returns the session's starting cash.
func (t *Tracker) InitialCash() float64 { return t.cash.initial }

// Cash returns the current cash balance.
func (t *Tracker) Cash() float64 { return t.cash.balance }

// CashHistory returns the recorded cash points in insertion order, starting
// with the opening balance.
func (t *Tracker) CashHistory() []CashPoint { return t.cash.history() }

// Trades returns a copy of the trade log in insertion order.
func (t *Tracker) Trades() []Trade {
	out := make([]Trade, len(t.trades))
	copy(out, t.trades)
	return out
}

// RoundTrips derives the completed round trips by replaying the whole trade
// log through a fresh position book.
func (t *Tracker) RoundTrips() []RoundTrip {
	replay := newBook()
	var out []RoundTrip
	for _, tr := range t.trades {
		out = append(out, replay.apply(tr)...)
	}
	return out
}

// RealisedPnL sums the net result of every completed round trip.
func (t *Tracker) RealisedPnL() float64 {
	var total float64
	for _, trip := range t.RoundTrips() {
		total += trip.NetPnL
	}
	return total
}

// UnrealisedPnL marks the open positions against the latest observed
// prices. Symbols with no observation contribute zero.
func (t *Tracker) UnrealisedPnL() float64 {
	var total float64
	for _, symbol := range t.book.symbols() {
		price, ok := t.prices.latest(symbol)
		if !ok {
			continue
		}
		total += (price - t.book.weightedAvgCost(symbol)) * t.book.openQuantity(symbol)
	}
	return total
}

// OpenQuantity returns the signed net open quantity for a symbol, negative
// when short.
func (t *Tracker) OpenQuantity(symbol string) float64 { return t.book.openQuantity(symbol) }

// WeightedAvgCost returns the open-quantity weighted average entry price
// for a symbol.
func (t *Tracker) WeightedAvgCost(symbol string) float64 { return t.book.weightedAvgCost(symbol) }

// OpenSymbols returns the sorted symbols with an open position.
func (t *Tracker) OpenSymbols() []string { return t.book.symbols() }

// LastPrice returns the most recent price observation for a symbol.
func (t *Tracker) LastPrice(symbol string) (float64, bool) { return t.prices.latest(symbol) }

// PriceAsOf returns the last price observed at or before the given instant.
func (t *Tracker) PriceAsOf(symbol string, at time.Time) (float64, bool) {
	return t.prices.asOf(symbol, at)
}

// PriceSymbols lists the symbols with at least one recorded quote.
func (t *Tracker) PriceSymbols() []string { return t.prices.symbols() }

// PriceHistory iterates a symbol's recorded quotes in chronological order.
func (t *Tracker) PriceHistory(symbol string) iter.Seq2[time.Time, float64] {
	s, ok := t.prices.series[symbol]
	if !ok {
		return func(yield func(time.Time, float64) bool) {}
	}
	return s.Values()
}

// EquityCurve materializes the equity series over the union of cash and
// price timestamps. With nothing recorded it is the single opening point.
func (t *Tracker) EquityCurve() []EquityPoint {
	return equityCurve(t.cash, t.prices, t.trades)
}

// Summary computes the full metric battery from the current state. It is a
// pure read: calling it twice without intervening mutation yields equal
// results.
func (t *Tracker) Summary() *Summary {
	return newSummary(t.trades, t.RoundTrips(), t.EquityCurve(),
		t.cash.initial, t.cash.balance, t.UnrealisedPnL())
}

// Metric returns one summary figure by name, 0.0 for unknown names.
func (t *Tracker) Metric(name string) float64 { return t.Summary().Metric(name) }
