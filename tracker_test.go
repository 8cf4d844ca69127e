package tally

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// setupSessionTest replays a short session: two buys averaged up, a
// partial exit, then a closing quote above the last fill.
func setupSessionTest(t *testing.T) *Tracker {
	t.Helper()
	tr := newTestTracker(t, 10000)
	tr.RecordTrade(buyAt("ACME", 100, 10, 0, 0, day(1)))
	tr.RecordTrade(buyAt("ACME", 100, 12, 0, 0, day(2)))
	tr.RecordTrade(sellAt("ACME", 150, 14, 0, 0, day(3)))
	tr.UpdateMarketPrices(map[string]float64{"ACME": 15}, day(4))
	return tr
}

func TestTrackerSession(t *testing.T) {
	tr := setupSessionTest(t)

	s := tr.Summary()
	assert.Equal(t, 3, s.Trades)
	assert.Equal(t, 2, s.RoundTrips)
	assert.InDelta(t, 10000, s.InitialCash, 1e-12)
	assert.InDelta(t, 9900, s.CurrentCash, 1e-12)
	assert.InDelta(t, 500, s.RealisedPnL, 1e-12)
	assert.InDelta(t, 150, s.UnrealisedPnL, 1e-12, "50 shares carried at 12, quoted 15")
	assert.InDelta(t, 10650, s.CurrentEquity, 1e-12)
}

func TestTrackerMetricMatchesSummary(t *testing.T) {
	tr := setupSessionTest(t)

	s := tr.Summary()
	for _, name := range MetricNames() {
		assert.Equalf(t, s.Metric(name), tr.Metric(name), "metric %s", name)
	}
	assert.Zero(t, tr.Metric("not_a_metric"))
}

func TestTrackerDerivationsArePure(t *testing.T) {
	tr := setupSessionTest(t)

	first := *tr.Summary()
	second := *tr.Summary()
	assert.Equal(t, first, second)

	c1, c2 := tr.EquityCurve(), tr.EquityCurve()
	assert.Equal(t, c1, c2)
}

func TestTrackerEmptyState(t *testing.T) {
	tr := newTestTracker(t, 10000)

	s := tr.Summary()
	assert.Equal(t, 0, s.Trades)
	assert.InDelta(t, 10000, s.CurrentCash, 1e-12)
	assert.InDelta(t, 10000, s.CurrentEquity, 1e-12)
	assert.Zero(t, s.AnnualizedReturn)
	assert.Zero(t, s.MaxDrawdown)
	assert.Zero(t, s.TradeFrequency)
}

func TestTrackerUnquotedPositionHasNoUnrealised(t *testing.T) {
	tr := newTestTracker(t, 1000)
	tr.RecordTrade(buyAt("BBB", 10, 10, 0, 0, day(1)))

	assert.Zero(t, tr.UnrealisedPnL())
	tr.UpdateMarketPrices(map[string]float64{"BBB": 11}, day(2))
	assert.InDelta(t, 10, tr.UnrealisedPnL(), 1e-12)
}

func TestRecordTradeStampsMissingTime(t *testing.T) {
	tr := newTestTracker(t, 1000)
	before := time.Now()
	rec := tr.RecordTrade(Trade{Symbol: "ACME", Side: Buy, Quantity: 1, Price: 10})

	if rec.Time.IsZero() {
		t.Fatal("recorded trade kept a zero timestamp")
	}
	if rec.Time.Before(before) {
		t.Errorf("recorded time %v predates the call", rec.Time)
	}
	logged := tr.Trades()
	if len(logged) != 1 || !logged[0].Time.Equal(rec.Time) {
		t.Errorf("logged trade = %+v, want the stamped copy", logged)
	}
}

func TestTrackerTradesReturnsCopy(t *testing.T) {
	tr := newTestTracker(t, 1000)
	tr.RecordTrade(buyAt("ACME", 1, 10, 0, 0, day(1)))

	got := tr.Trades()
	got[0].Symbol = "MUTATED"
	assert.Equal(t, "ACME", tr.Trades()[0].Symbol)
}

func TestParseSide(t *testing.T) {
	testCases := []struct {
		in      string
		want    Side
		wantErr bool
	}{
		{"buy", Buy, false},
		{"BUY", Buy, false},
		{"Sell", Sell, false},
		{"hold", 0, true},
		{"", 0, true},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseSide(tc.in)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("ParseSide(%q) expected an error", tc.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseSide(%q): %v", tc.in, err)
			}
			if got != tc.want {
				t.Errorf("ParseSide(%q) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}
