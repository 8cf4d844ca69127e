package tally

import (
	"sort"
	"time"
)

// CashPoint is one entry of the cash history.
type CashPoint struct {
	Time    time.Time
	Balance float64
}

// cashLedger tracks the running cash balance and its full history.
//
// The history preserves insertion order, not timestamp order: callers may
// record trades with out-of-order timestamps and the ledger keeps them as
// given. Chronological consumers sort a copy themselves.
type cashLedger struct {
	initial float64
	balance float64
	points  []CashPoint
}

func newCashLedger(initial float64, opened time.Time) *cashLedger {
	return &cashLedger{
		initial: initial,
		balance: initial,
		points:  []CashPoint{{Time: opened, Balance: initial}},
	}
}

// apply moves the balance by the trade's cash effect and appends a point at
// the trade's timestamp. Buys debit notional plus costs, sells credit
// notional minus costs. Zero-quantity trades still debit their costs.
func (l *cashLedger) apply(t Trade) {
	switch t.Side {
	case Buy:
		l.balance -= t.Notional() + t.Costs()
	case Sell:
		l.balance += t.Notional() - t.Costs()
	}
	l.points = append(l.points, CashPoint{Time: t.Time, Balance: l.balance})
}

// setInitial rewrites the opening balance. The caller guarantees no trade
// has been applied yet, so the history still holds the single opening point.
func (l *cashLedger) setInitial(v float64) {
	l.initial = v
	l.balance = v
	l.points[0].Balance = v
}

// history returns a copy of the cash points in insertion order.
func (l *cashLedger) history() []CashPoint {
	out := make([]CashPoint, len(l.points))
	copy(out, l.points)
	return out
}

// chronological returns a copy of the cash points stably sorted by
// timestamp. Points sharing a timestamp keep their insertion order, so the
// later insertion wins any as-of lookup.
func (l *cashLedger) chronological() []CashPoint {
	out := l.history()
	sort.SliceStable(out, func(i, j int) bool { return out[i].Time.Before(out[j].Time) })
	return out
}

// balanceAsOf returns the balance of the last point, in stable timestamp
// order, recorded at or before the given instant. Before any point it falls
// back to the initial cash.
func (l *cashLedger) balanceAsOf(at time.Time) float64 {
	points := l.chronological()
	i := sort.Search(len(points), func(i int) bool { return points[i].Time.After(at) })
	if i == 0 {
		return l.initial
	}
	return points[i-1].Balance
}
