package tally

import (
	"math"
	"slices"
	"time"
)

// lot is a discrete quantity of a symbol acquired by one trade, tracked
// until fully closed.
type lot struct {
	quantity   float64 // remaining, positive while open
	original   float64 // quantity acquired by the opening trade
	price      float64
	time       time.Time
	commission float64
	fees       float64
}

// entryCosts allocates the opening trade's costs to a matched fraction of
// the lot, pro-rata over the original quantity.
func (l lot) entryCosts(matched float64) float64 {
	return (l.commission + l.fees) * matched / l.original
}

// queue is an index-based FIFO of lots. Consumed lots advance the head
// instead of reslicing, so the arena stays append-only and pop-from-front
// is O(1).
type queue struct {
	lots []lot
	head int
}

func (q *queue) len() int    { return len(q.lots) - q.head }
func (q *queue) empty() bool { return q.len() == 0 }
func (q *queue) front() *lot { return &q.lots[q.head] }
func (q *queue) push(l lot)  { q.lots = append(q.lots, l) }
func (q *queue) pop()        { q.head++ }

func (q *queue) open() []lot {
	out := make([]lot, q.len())
	copy(out, q.lots[q.head:])
	return out
}

// position holds a symbol's open lots and their common direction.
type position struct {
	side Side // Buy for a long position, Sell for a short one
	lots queue
}

// book is the position book: one FIFO lot queue per symbol.
type book struct {
	positions map[string]*position
}

func newBook() *book {
	return &book{positions: make(map[string]*position)}
}

// apply mutates the book with one trade and returns the round trips it
// produced, one per lot (or lot fraction) consumed. Trades in the direction
// of the open position, or on a flat symbol, open a new lot and produce
// nothing. Zero-quantity trades leave the book untouched.
func (b *book) apply(t Trade) []RoundTrip {
	if t.Quantity == 0 {
		return nil
	}
	pos, ok := b.positions[t.Symbol]
	if !ok {
		pos = &position{side: t.Side}
		b.positions[t.Symbol] = pos
	}
	if pos.lots.empty() {
		pos.side = t.Side
	}

	if t.Side == pos.side {
		pos.lots.push(lot{
			quantity:   t.Quantity,
			original:   t.Quantity,
			price:      t.Price,
			time:       t.Time,
			commission: t.Commission,
			fees:       t.Fees,
		})
		return nil
	}

	// The trade reduces or closes the position: consume the oldest lots
	// first, emitting one round trip per lot touched.
	var trips []RoundTrip
	remaining := t.Quantity
	for remaining > 0 && !pos.lots.empty() {
		l := pos.lots.front()
		matched := math.Min(remaining, l.quantity)

		gross := (t.Price - l.price) * matched
		if pos.side == Sell {
			gross = -gross
		}
		net := gross - l.entryCosts(matched) - t.Costs()*matched/t.Quantity

		trips = append(trips, RoundTrip{
			Symbol:     t.Symbol,
			Quantity:   matched,
			EntryPrice: l.price,
			EntryTime:  l.time,
			ExitPrice:  t.Price,
			ExitTime:   t.Time,
			GrossPnL:   gross,
			NetPnL:     net,
			Winner:     net > 0,
			Hold:       t.Time.Sub(l.time),
		})

		l.quantity -= matched
		remaining -= matched
		if l.quantity <= 0 {
			pos.lots.pop()
		}
	}

	if remaining > 0 {
		// Direction reversal: the residual opens a lot the other way,
		// carrying the still unallocated share of the trade's costs.
		frac := remaining / t.Quantity
		pos.side = t.Side
		pos.lots.push(lot{
			quantity:   remaining,
			original:   remaining,
			price:      t.Price,
			time:       t.Time,
			commission: t.Commission * frac,
			fees:       t.Fees * frac,
		})
	}
	return trips
}

// openQuantity returns the signed net open quantity for a symbol, negative
// for a short position, 0 for a flat or unknown symbol.
func (b *book) openQuantity(symbol string) float64 {
	pos, ok := b.positions[symbol]
	if !ok {
		return 0
	}
	var total float64
	for _, l := range pos.lots.open() {
		total += l.quantity
	}
	if pos.side == Sell {
		total = -total
	}
	return total
}

// weightedAvgCost returns the open-quantity weighted average entry price
// for a symbol, or 0 when the symbol is flat.
func (b *book) weightedAvgCost(symbol string) float64 {
	pos, ok := b.positions[symbol]
	if !ok {
		return 0
	}
	var qty, cost float64
	for _, l := range pos.lots.open() {
		qty += l.quantity
		cost += l.quantity * l.price
	}
	if qty == 0 {
		return 0
	}
	return cost / qty
}

// symbols returns the sorted symbols holding at least one open lot.
func (b *book) symbols() []string {
	out := make([]string, 0, len(b.positions))
	for symbol, pos := range b.positions {
		if !pos.lots.empty() {
			out = append(out, symbol)
		}
	}
	slices.Sort(out)
	return out
}
