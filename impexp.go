package tally

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// This file handles the import/export format. It is plain CSV so a session
// can be assembled from a broker export and merged in a spreadsheet.

var tradeHeader = []string{"time", "symbol", "side", "quantity", "price", "commission", "fees"}

// ImportTrades reads trades from 'r' in the import/export format.
//
// The first record must be the header "time,symbol,side,quantity,price,
// commission,fees". Times are RFC3339 or plain dates; commission and fees
// may be left empty. Numeric cells go through decimal parsing, keeping the
// exact broker figures before the float conversion.
func ImportTrades(r io.Reader) ([]Trade, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("cannot read trade import header: %w", err)
	}
	for i := range header {
		header[i] = strings.ToLower(strings.TrimSpace(header[i]))
	}
	if len(header) != len(tradeHeader) {
		return nil, fmt.Errorf("trade import header has %d columns, want %d", len(header), len(tradeHeader))
	}
	for i, want := range tradeHeader {
		if header[i] != want {
			return nil, fmt.Errorf("trade import header column %d is %q, want %q", i+1, header[i], want)
		}
	}

	var trades []Trade
	line := 1
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("cannot read trade import line %d: %w", line, err)
		}

		at, err := parseStamp(record[0])
		if err != nil {
			return nil, fmt.Errorf("line %d: column time: %w", line, err)
		}
		side, err := ParseSide(record[2])
		if err != nil {
			return nil, fmt.Errorf("line %d: column side: %w", line, err)
		}
		tr := Trade{Symbol: strings.TrimSpace(record[1]), Side: side, Time: at}
		if tr.Quantity, err = parseCell(record[3], "quantity", line); err != nil {
			return nil, err
		}
		if tr.Price, err = parseCell(record[4], "price", line); err != nil {
			return nil, err
		}
		if tr.Commission, err = parseCell(record[5], "commission", line); err != nil {
			return nil, err
		}
		if tr.Fees, err = parseCell(record[6], "fees", line); err != nil {
			return nil, err
		}
		trades = append(trades, tr)
	}
	return trades, nil
}

// parseStamp parses an RFC3339 timestamp, falling back to a plain date at
// midnight UTC.
func parseStamp(cell string) (time.Time, error) {
	cell = strings.TrimSpace(cell)
	if at, err := time.Parse(time.RFC3339, cell); err == nil {
		return at, nil
	}
	at, err := time.Parse(time.DateOnly, cell)
	if err != nil {
		return time.Time{}, fmt.Errorf("%q is neither an RFC3339 timestamp nor a date", cell)
	}
	return at, nil
}

// parseCell parses a numeric cell, empty meaning zero.
func parseCell(cell, column string, line int) (float64, error) {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return 0, nil
	}
	d, err := decimal.NewFromString(cell)
	if err != nil {
		return 0, fmt.Errorf("line %d: column %s: %w", line, column, err)
	}
	return d.InexactFloat64(), nil
}

// ExportTrades writes trades to 'w' in the import/export format. The output
// reimports to the identical trade list.
func ExportTrades(w io.Writer, trades []Trade) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(tradeHeader); err != nil {
		return fmt.Errorf("cannot write trade export: %w", err)
	}
	for _, tr := range trades {
		cw.Write([]string{
			tr.Time.Format(time.RFC3339),
			tr.Symbol,
			tr.Side.String(),
			g(tr.Quantity),
			g(tr.Price),
			g(tr.Commission),
			g(tr.Fees),
		})
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("cannot write trade export: %w", err)
	}
	return nil
}

// ExportRoundTrips writes the closed round trips to 'w' as CSV.
func ExportRoundTrips(w io.Writer, trips []RoundTrip) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"symbol", "quantity", "entry_price", "entry_time", "exit_price", "exit_time", "gross_pnl", "net_pnl", "winner", "hold_seconds"}); err != nil {
		return fmt.Errorf("cannot write round trip export: %w", err)
	}
	for _, trip := range trips {
		cw.Write([]string{
			trip.Symbol,
			g(trip.Quantity),
			g(trip.EntryPrice),
			trip.EntryTime.Format(time.RFC3339),
			g(trip.ExitPrice),
			trip.ExitTime.Format(time.RFC3339),
			g(trip.GrossPnL),
			g(trip.NetPnL),
			strconv.FormatBool(trip.Winner),
			g(trip.Hold.Seconds()),
		})
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("cannot write round trip export: %w", err)
	}
	return nil
}

// ExportEquity writes the equity curve to 'w' as CSV.
func ExportEquity(w io.Writer, curve []EquityPoint) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"time", "equity"}); err != nil {
		return fmt.Errorf("cannot write equity export: %w", err)
	}
	for _, p := range curve {
		cw.Write([]string{p.Time.Format(time.RFC3339), g(p.Equity)})
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("cannot write equity export: %w", err)
	}
	return nil
}

// g formats a float with the fewest digits that survive a round trip.
func g(x float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64)
}
