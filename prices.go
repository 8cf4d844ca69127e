package tally

import (
	"maps"
	"slices"
	"time"

	"github.com/brdt/tally/timeline"
)

// priceBook holds one observed market price series per symbol.
//
// Observations only ever accumulate. A symbol that has never been observed
// contributes zero market value; the entry price of a trade is never used
// as a valuation fallback.
type priceBook struct {
	series map[string]*timeline.Series[float64]
}

func newPriceBook() *priceBook {
	return &priceBook{series: make(map[string]*timeline.Series[float64])}
}

// update appends one observation per symbol at the given instant.
// Observing the same instant twice appends again, it overwrites nothing;
// the last appended observation wins any as-of lookup.
func (p *priceBook) update(prices map[string]float64, at time.Time) {
	for symbol, price := range prices {
		s, ok := p.series[symbol]
		if !ok {
			s = new(timeline.Series[float64])
			p.series[symbol] = s
		}
		s.Append(at, price)
	}
}

// asOf returns the latest price observed at or before the given instant.
func (p *priceBook) asOf(symbol string, at time.Time) (float64, bool) {
	s, ok := p.series[symbol]
	if !ok {
		return 0, false
	}
	return s.AsOf(at)
}

// latest returns the most recent observation for a symbol.
func (p *priceBook) latest(symbol string) (float64, bool) {
	s, ok := p.series[symbol]
	if !ok || s.Len() == 0 {
		return 0, false
	}
	_, v := s.Latest()
	return v, true
}

// times returns every observation instant across all symbols.
func (p *priceBook) times() []time.Time {
	var out []time.Time
	for _, s := range p.series {
		out = append(out, s.Times()...)
	}
	return out
}

// symbols returns the sorted symbols with at least one observation.
func (p *priceBook) symbols() []string {
	out := slices.Collect(maps.Keys(p.series))
	slices.Sort(out)
	return out
}
