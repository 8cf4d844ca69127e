package tally

import (
	"maps"
	"slices"
	"sort"
	"time"
)

// EquityPoint is one entry of the equity curve: total account value, cash
// plus mark-to-market positions, at an instant.
type EquityPoint struct {
	Time   time.Time
	Equity float64
}

// equityCurve materializes the account value series over the deduplicated
// ascending union of all cash history and price observation timestamps.
//
// At each instant t: equity = cash balance as of t plus, for every symbol,
// the net open quantity as of t times the latest price observed at or
// before t. A symbol with no observation by t contributes zero. Each symbol
// is counted exactly once.
func equityCurve(cash *cashLedger, prices *priceBook, trades []Trade) []EquityPoint {
	stamps := make([]time.Time, 0, len(cash.points))
	for _, p := range cash.points {
		stamps = append(stamps, p.Time)
	}
	stamps = append(stamps, prices.times()...)
	slices.SortFunc(stamps, time.Time.Compare)
	stamps = slices.CompactFunc(stamps, time.Time.Equal)

	// Net quantity per symbol is a plain sum of signed trade quantities, so
	// walking the trades in stable timestamp order reconstructs the open
	// position at every instant regardless of insertion order.
	deltas := make([]Trade, len(trades))
	copy(deltas, trades)
	sort.SliceStable(deltas, func(i, j int) bool { return deltas[i].Time.Before(deltas[j].Time) })

	points := cash.chronological()

	curve := make([]EquityPoint, 0, len(stamps))
	qty := make(map[string]float64)
	balance := cash.initial
	di, ci := 0, 0
	for _, t := range stamps {
		for di < len(deltas) && !deltas[di].Time.After(t) {
			qty[deltas[di].Symbol] += deltas[di].signedQuantity()
			di++
		}
		for ci < len(points) && !points[ci].Time.After(t) {
			balance = points[ci].Balance
			ci++
		}

		equity := balance
		// Sorted iteration keeps the float accumulation deterministic.
		symbols := slices.Collect(maps.Keys(qty))
		slices.Sort(symbols)
		for _, symbol := range symbols {
			q := qty[symbol]
			if q == 0 {
				continue
			}
			if price, ok := prices.asOf(symbol, t); ok {
				equity += q * price
			}
		}
		curve = append(curve, EquityPoint{Time: t, Equity: equity})
	}
	return curve
}

// positionSpans reports, in stable timestamp order, the instants at which
// the net open position changed and whether anything was open from that
// instant on. It is the raw material of the exposure time metric.
func positionSpans(trades []Trade) (stamps []time.Time, open []bool) {
	deltas := make([]Trade, len(trades))
	copy(deltas, trades)
	sort.SliceStable(deltas, func(i, j int) bool { return deltas[i].Time.Before(deltas[j].Time) })

	qty := make(map[string]float64)
	for i := 0; i < len(deltas); {
		t := deltas[i].Time
		for i < len(deltas) && deltas[i].Time.Equal(t) {
			qty[deltas[i].Symbol] += deltas[i].signedQuantity()
			i++
		}
		anyOpen := false
		for _, q := range qty {
			if q != 0 {
				anyOpen = true
				break
			}
		}
		stamps = append(stamps, t)
		open = append(open, anyOpen)
	}
	return stamps, open
}
