package tally

import (
	"testing"
)

func TestEquityCurveEmptyState(t *testing.T) {
	tr := newTestTracker(t, 10000)

	curve := tr.EquityCurve()
	if len(curve) != 1 {
		t.Fatalf("curve has %d points, want 1", len(curve))
	}
	if !curve[0].Time.Equal(sessionStart) || curve[0].Equity != 10000 {
		t.Errorf("curve[0] = %+v, want opening point at 10000", curve[0])
	}
}

func TestEquityCurveWithoutPricesTracksCash(t *testing.T) {
	tr := newTestTracker(t, 1000)
	tr.RecordTrade(buyAt("ACME", 1, 100, 0, 0, day(1)))
	tr.RecordTrade(buyAt("ACME", 1, 100, 0, 0, day(3)))

	// no quotes ever observed: open positions are worth nothing
	curve := tr.EquityCurve()
	want := []EquityPoint{
		{Time: sessionStart, Equity: 1000},
		{Time: day(1), Equity: 900},
		{Time: day(3), Equity: 800},
	}
	if len(curve) != len(want) {
		t.Fatalf("curve has %d points, want %d", len(curve), len(want))
	}
	for i := range want {
		if !curve[i].Time.Equal(want[i].Time) || curve[i].Equity != want[i].Equity {
			t.Errorf("curve[%d] = %+v, want %+v", i, curve[i], want[i])
		}
	}
}

func TestEquityCurveMarksToMarket(t *testing.T) {
	tr := newTestTracker(t, 10000)
	tr.RecordTrade(buyAt("ACME", 100, 10, 0, 0, day(1)))
	tr.RecordTrade(buyAt("ACME", 100, 12, 0, 0, day(2)))
	tr.RecordTrade(sellAt("ACME", 150, 14, 0, 0, day(3)))
	tr.UpdateMarketPrices(map[string]float64{"ACME": 15}, day(4))

	curve := tr.EquityCurve()
	want := []EquityPoint{
		{Time: sessionStart, Equity: 10000},
		{Time: day(1), Equity: 9000},
		{Time: day(2), Equity: 7800},
		{Time: day(3), Equity: 9900},
		{Time: day(4), Equity: 10650}, // 9900 cash + 50 shares at 15
	}
	if len(curve) != len(want) {
		t.Fatalf("curve has %d points, want %d", len(curve), len(want))
	}
	for i := range want {
		if !curve[i].Time.Equal(want[i].Time) || curve[i].Equity != want[i].Equity {
			t.Errorf("curve[%d] = %+v, want %+v", i, curve[i], want[i])
		}
	}
}

func TestEquityCurveUsesPriceAtOrBefore(t *testing.T) {
	tr := newTestTracker(t, 1000)
	tr.UpdateMarketPrices(map[string]float64{"ACME": 10}, day(1))
	tr.RecordTrade(buyAt("ACME", 1, 11, 0, 0, day(1)))
	tr.UpdateMarketPrices(map[string]float64{"ACME": 12}, day(2))

	curve := tr.EquityCurve()
	want := []EquityPoint{
		{Time: sessionStart, Equity: 1000},
		{Time: day(1), Equity: 999},  // 989 cash + 1 share at the day(1) quote
		{Time: day(2), Equity: 1001}, // marked up to 12
	}
	if len(curve) != len(want) {
		t.Fatalf("curve has %d points, want %d", len(curve), len(want))
	}
	for i := range want {
		if !curve[i].Time.Equal(want[i].Time) || curve[i].Equity != want[i].Equity {
			t.Errorf("curve[%d] = %+v, want %+v", i, curve[i], want[i])
		}
	}
}

func TestEquityCurveDuplicateQuoteLastWins(t *testing.T) {
	tr := newTestTracker(t, 100)
	tr.RecordTrade(buyAt("ACME", 1, 5, 0, 0, day(1)))
	tr.UpdateMarketPrices(map[string]float64{"ACME": 10}, day(1))
	tr.UpdateMarketPrices(map[string]float64{"ACME": 11}, day(1))

	curve := tr.EquityCurve()
	if len(curve) != 2 {
		t.Fatalf("curve has %d points, want 2 (duplicate stamps collapse)", len(curve))
	}
	if got := curve[1].Equity; got != 106 {
		t.Errorf("curve[1].Equity = %v, want 106 (95 cash + last quote)", got)
	}
}

func TestEquityCurveUnquotedSymbolWorthZero(t *testing.T) {
	tr := newTestTracker(t, 1000)
	tr.RecordTrade(buyAt("AAA", 1, 10, 0, 0, day(1)))
	tr.RecordTrade(buyAt("BBB", 1, 10, 0, 0, day(1)))
	tr.UpdateMarketPrices(map[string]float64{"AAA": 12}, day(2))

	curve := tr.EquityCurve()
	last := curve[len(curve)-1]
	// BBB never quoted: its entry price is not a substitute
	if last.Equity != 992 {
		t.Errorf("final equity = %v, want 992", last.Equity)
	}
}
