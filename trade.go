package tally

import (
	"fmt"
	"strings"
	"time"
)

// Side is the direction of a trade.
type Side int8

const (
	Buy Side = iota
	Sell
)

func (s Side) String() string {
	switch s {
	case Buy:
		return "buy"
	case Sell:
		return "sell"
	default:
		return "unknown"
	}
}

// ParseSide parses a string into a Side, ignoring case.
func ParseSide(s string) (Side, error) {
	switch strings.ToLower(s) {
	case "buy":
		return Buy, nil
	case "sell":
		return Sell, nil
	default:
		return 0, fmt.Errorf("unknown side: %q", s)
	}
}

// Trade is a single executed order. It is immutable once recorded.
//
// Quantities, prices and costs are stored exactly as given: zero, negative
// and NaN values are accepted and propagate arithmetically into every
// derived figure. Rejecting them is a caller concern.
type Trade struct {
	Symbol     string
	Side       Side
	Quantity   float64
	Price      float64
	Commission float64
	Fees       float64
	Time       time.Time
}

// Notional returns the traded amount, quantity times price.
func (t Trade) Notional() float64 { return t.Quantity * t.Price }

// Costs returns the total transaction costs, commission plus fees.
func (t Trade) Costs() float64 { return t.Commission + t.Fees }

// signedQuantity is the position delta carried by this trade.
func (t Trade) signedQuantity() float64 {
	if t.Side == Sell {
		return -t.Quantity
	}
	return t.Quantity
}
