package tally

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestCashDebitOnBuy(t *testing.T) {
	tr := newTestTracker(t, 10000)
	tr.RecordTrade(buyAt("ACME", 10, 150, 7.5, 2.5, day(1)))

	// 10000 - (10*150 + 7.5 + 2.5)
	if got := tr.Cash(); got != 8490.0 {
		t.Errorf("Cash() = %v, want 8490", got)
	}
}

func TestCashCreditOnSell(t *testing.T) {
	tr := newTestTracker(t, 10000)
	tr.RecordTrade(buyAt("ACME", 100, 10, 5, 0, day(1)))
	tr.RecordTrade(sellAt("ACME", 100, 11, 5, 0, day(2)))

	// 10000 - (1000+5) + (1100-5)
	if got := tr.Cash(); got != 10090.0 {
		t.Errorf("Cash() = %v, want 10090", got)
	}
}

func TestCashHistoryKeepsInsertionOrder(t *testing.T) {
	tr := newTestTracker(t, 1000)
	tr.RecordTrade(buyAt("ACME", 1, 100, 0, 0, day(5)))
	tr.RecordTrade(buyAt("ACME", 1, 100, 0, 0, day(2)))

	hist := tr.CashHistory()
	if len(hist) != 3 {
		t.Fatalf("history has %d points, want 3", len(hist))
	}
	if !hist[0].Time.Equal(sessionStart) || !hist[1].Time.Equal(day(5)) || !hist[2].Time.Equal(day(2)) {
		t.Errorf("history times = %v %v %v, want insertion order", hist[0].Time, hist[1].Time, hist[2].Time)
	}
	if hist[2].Balance != 800 {
		t.Errorf("final balance = %v, want 800", hist[2].Balance)
	}
}

func TestBalanceAsOf(t *testing.T) {
	tr := newTestTracker(t, 1000)
	tr.RecordTrade(buyAt("ACME", 1, 100, 0, 0, day(5)))
	tr.RecordTrade(buyAt("ACME", 1, 100, 0, 0, day(2)))

	testCases := []struct {
		name string
		at   int
		want float64
	}{
		{"before opening", -1, 1000},
		{"at opening", 0, 1000},
		{"after first recorded trade only", 3, 800},
		{"after both", 6, 800},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tr.cash.balanceAsOf(day(tc.at)); got != tc.want {
				t.Errorf("balanceAsOf(day %d) = %v, want %v", tc.at, got, tc.want)
			}
		})
	}
}

func TestBalanceAsOfSameInstant(t *testing.T) {
	tr := newTestTracker(t, 1000)
	tr.RecordTrade(buyAt("ACME", 1, 100, 0, 0, day(1)))
	tr.RecordTrade(buyAt("ACME", 1, 100, 0, 0, day(1)))

	// ties resolve to the last point recorded at that instant
	if got := tr.cash.balanceAsOf(day(1)); got != 800 {
		t.Errorf("balanceAsOf = %v, want 800", got)
	}
}

func TestZeroQuantityTradeMovesCostsOnly(t *testing.T) {
	tr := newTestTracker(t, 1000)
	tr.RecordTrade(buyAt("ACME", 0, 100, 2, 1, day(1)))

	if got := tr.Cash(); got != 997.0 {
		t.Errorf("Cash() = %v, want 997", got)
	}
	if got := len(tr.CashHistory()); got != 2 {
		t.Errorf("history has %d points, want 2", got)
	}
	if got := len(tr.Trades()); got != 1 {
		t.Errorf("Trades() has %d entries, want 1", got)
	}
	if got := tr.OpenQuantity("ACME"); got != 0 {
		t.Errorf("OpenQuantity = %v, want 0", got)
	}
	if got := len(tr.RoundTrips()); got != 0 {
		t.Errorf("RoundTrips() has %d entries, want 0", got)
	}
}

func TestUpdateInitialCashBeforeTrades(t *testing.T) {
	tr := newTestTracker(t, 1000)
	tr.UpdateInitialCash(2500)

	if got := tr.InitialCash(); got != 2500 {
		t.Errorf("InitialCash() = %v, want 2500", got)
	}
	if got := tr.Cash(); got != 2500 {
		t.Errorf("Cash() = %v, want 2500", got)
	}
	hist := tr.CashHistory()
	if len(hist) != 1 || hist[0].Balance != 2500 {
		t.Errorf("history = %+v, want single rebased point", hist)
	}
}

func TestUpdateInitialCashAfterTradesWarns(t *testing.T) {
	var buf bytes.Buffer
	tr := NewAt(1000, sessionStart, slog.New(slog.NewTextHandler(&buf, nil)))
	tr.RecordTrade(buyAt("ACME", 1, 100, 0, 0, day(1)))
	tr.UpdateInitialCash(2500)

	if got := tr.InitialCash(); got != 1000 {
		t.Errorf("InitialCash() = %v, want 1000 (unchanged)", got)
	}
	if got := tr.Cash(); got != 900 {
		t.Errorf("Cash() = %v, want 900 (unchanged)", got)
	}
	if !strings.Contains(buf.String(), "ignoring initial cash update") {
		t.Errorf("expected a warning in the log, got %q", buf.String())
	}
}
