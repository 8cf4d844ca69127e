package tally

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"math"
	"slices"
	"time"
)

// This file persists a session as a JSONL event log, one command per line,
// human-readable and git-friendly. The first line opens the session; every
// later line is either a trade or a batch of quotes. Replaying the lines in
// file order rebuilds the exact tracker state, so an append-only writer is
// enough for live recording.

// commandType identifies a session log line.
type commandType string

const (
	cmdInit   commandType = "init"
	cmdTrade  commandType = "trade"
	cmdPrices commandType = "prices"
)

// initEvent opens a session with its starting cash.
type initEvent struct {
	Time time.Time `json:"time"`
	Cash float64   `json:"cash"`
}

func (e initEvent) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("command", cmdInit)
	w.Append("time", e.Time)
	w.Append("cash", e.Cash)
	return w.MarshalJSON()
}

// tradeEvent is one executed order.
type tradeEvent struct {
	Time       time.Time `json:"time"`
	Symbol     string    `json:"symbol"`
	Side       string    `json:"side"`
	Quantity   float64   `json:"quantity"`
	Price      float64   `json:"price"`
	Commission float64   `json:"commission"`
	Fees       float64   `json:"fees"`
}

func (e tradeEvent) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("command", cmdTrade)
	w.Append("time", e.Time)
	w.Append("symbol", e.Symbol)
	w.Append("side", e.Side)
	w.Append("quantity", e.Quantity)
	w.Append("price", e.Price)
	w.Optional("commission", e.Commission)
	w.Optional("fees", e.Fees)
	return w.MarshalJSON()
}

// pricesEvent is a batch of quotes observed at one instant.
type pricesEvent struct {
	Time   time.Time          `json:"time"`
	Quotes map[string]float64 `json:"quotes"`
}

func (e pricesEvent) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("command", cmdPrices)
	w.Append("time", e.Time)

	// json encoder cannot be used on the map directly as map order is not
	// guaranteed; quotes are written sorted by symbol. NaN quotes are
	// skipped, json has no representation for them.
	var quotes jsonObjectWriter
	for _, symbol := range slices.Sorted(maps.Keys(e.Quotes)) {
		if price := e.Quotes[symbol]; !math.IsNaN(price) {
			quotes.Append(symbol, price)
		}
	}
	w.Append("quotes", &quotes)
	return w.MarshalJSON()
}

func encodeEvent(w io.Writer, event any) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("cannot marshal session event: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("cannot write session event: %w", err)
	}
	return nil
}

// EncodeTrade writes a single trade line. It is what a live recorder
// appends to an existing session file.
func EncodeTrade(w io.Writer, tr Trade) error {
	return encodeEvent(w, tradeEvent{
		Time:       tr.Time,
		Symbol:     tr.Symbol,
		Side:       tr.Side.String(),
		Quantity:   tr.Quantity,
		Price:      tr.Price,
		Commission: tr.Commission,
		Fees:       tr.Fees,
	})
}

// EncodePrices writes a single quote batch line.
func EncodePrices(w io.Writer, quotes map[string]float64, at time.Time) error {
	return encodeEvent(w, pricesEvent{Time: at, Quotes: quotes})
}

// EncodeSession writes the whole session: the init line, every trade in
// insertion order, then the quote history symbol by symbol. Replaying the
// output through DecodeSession yields an identical tracker.
func EncodeSession(w io.Writer, t *Tracker) error {
	if err := encodeEvent(w, initEvent{Time: t.Opened(), Cash: t.InitialCash()}); err != nil {
		return err
	}
	for _, tr := range t.Trades() {
		if err := EncodeTrade(w, tr); err != nil {
			return err
		}
	}
	for _, symbol := range t.PriceSymbols() {
		for at, price := range t.PriceHistory(symbol) {
			if err := EncodePrices(w, map[string]float64{symbol: price}, at); err != nil {
				return err
			}
		}
	}
	return nil
}

// DecodeSession replays a JSONL event log into a fresh Tracker. The first
// non-empty line must be the init command. The logger is handed to the
// rebuilt tracker; nil falls back to slog.Default().
func DecodeSession(r io.Reader, log *slog.Logger) (*Tracker, error) {
	var t *Tracker
	scanner := bufio.NewScanner(r)
	n := 0
	for scanner.Scan() {
		n++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		var identifier struct {
			Command commandType `json:"command"`
		}
		if err := json.Unmarshal(line, &identifier); err != nil {
			return nil, fmt.Errorf("could not identify command on line %d %q: %w", n, line, err)
		}

		if identifier.Command == cmdInit {
			if t != nil {
				return nil, fmt.Errorf("line %d: duplicate init command", n)
			}
			var e initEvent
			if err := json.Unmarshal(line, &e); err != nil {
				return nil, fmt.Errorf("line %d: bad init command: %w", n, err)
			}
			t = NewAt(e.Cash, e.Time, log)
			continue
		}
		if t == nil {
			return nil, fmt.Errorf("line %d: %q command before init", n, identifier.Command)
		}

		switch identifier.Command {
		case cmdTrade:
			var e tradeEvent
			if err := json.Unmarshal(line, &e); err != nil {
				return nil, fmt.Errorf("line %d: bad trade command: %w", n, err)
			}
			side, err := ParseSide(e.Side)
			if err != nil {
				return nil, fmt.Errorf("line %d: bad trade command: %w", n, err)
			}
			t.RecordTrade(Trade{
				Symbol:     e.Symbol,
				Side:       side,
				Quantity:   e.Quantity,
				Price:      e.Price,
				Commission: e.Commission,
				Fees:       e.Fees,
				Time:       e.Time,
			})
		case cmdPrices:
			var e pricesEvent
			if err := json.Unmarshal(line, &e); err != nil {
				return nil, fmt.Errorf("line %d: bad prices command: %w", n, err)
			}
			t.UpdateMarketPrices(e.Quotes, e.Time)
		default:
			return nil, fmt.Errorf("line %d: unknown session command %q", n, identifier.Command)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading session log: %w", err)
	}
	if t == nil {
		return nil, errors.New("session log has no init command")
	}
	return t, nil
}
