package tally

import (
	"maps"
	"slices"
)

// metricAccessors maps the flat metric names to their Summary field. The
// table is the single source of the public metric name set.
var metricAccessors = map[string]func(*Summary) float64{
	"trades":      func(s *Summary) float64 { return float64(s.Trades) },
	"round_trips": func(s *Summary) float64 { return float64(s.RoundTrips) },

	"initial_cash":   func(s *Summary) float64 { return s.InitialCash },
	"current_cash":   func(s *Summary) float64 { return s.CurrentCash },
	"current_equity": func(s *Summary) float64 { return s.CurrentEquity },
	"realised_pnl":   func(s *Summary) float64 { return s.RealisedPnL },
	"unrealised_pnl": func(s *Summary) float64 { return s.UnrealisedPnL },

	"max_drawdown":          func(s *Summary) float64 { return s.MaxDrawdown },
	"avg_drawdown":          func(s *Summary) float64 { return s.AvgDrawdown },
	"max_drawdown_duration": func(s *Summary) float64 { return s.MaxDrawdownDuration },
	"avg_drawdown_duration": func(s *Summary) float64 { return s.AvgDrawdownDuration },
	"exposure_time":         func(s *Summary) float64 { return s.ExposureTime },

	"annualized_return": func(s *Summary) float64 { return s.AnnualizedReturn },
	"sharpe":            func(s *Summary) float64 { return s.Sharpe },
	"sortino":           func(s *Summary) float64 { return s.Sortino },
	"calmar":            func(s *Summary) float64 { return s.Calmar },

	"win_rate":              func(s *Summary) float64 { return s.WinRate },
	"loss_rate":             func(s *Summary) float64 { return s.LossRate },
	"profit_factor":         func(s *Summary) float64 { return s.ProfitFactor },
	"avg_win":               func(s *Summary) float64 { return s.AvgWin },
	"avg_loss":              func(s *Summary) float64 { return s.AvgLoss },
	"expectancy":            func(s *Summary) float64 { return s.Expectancy },
	"kelly_fraction":        func(s *Summary) float64 { return s.KellyFraction },
	"kelly_half":            func(s *Summary) float64 { return s.KellyHalf },
	"avg_hold_time_bars":    func(s *Summary) float64 { return s.AvgHoldTimeBars },
	"avg_hold_time_seconds": func(s *Summary) float64 { return s.AvgHoldTimeSeconds },
	"trade_frequency":       func(s *Summary) float64 { return s.TradeFrequency },
}

// Metric returns one figure by its flat name. Unknown names yield 0.0, they
// are not an error.
func (s *Summary) Metric(name string) float64 {
	if get, ok := metricAccessors[name]; ok {
		return get(s)
	}
	return 0.0
}

// Metrics flattens the summary into a name to value mapping carrying the
// complete metric set.
func (s *Summary) Metrics() map[string]float64 {
	out := make(map[string]float64, len(metricAccessors))
	for name, get := range metricAccessors {
		out[name] = get(s)
	}
	return out
}

// MetricNames returns every metric name, sorted.
func MetricNames() []string {
	names := slices.Collect(maps.Keys(metricAccessors))
	slices.Sort(names)
	return names
}
