package tally

import (
	"math"
	"slices"
)

const secondsPerYear = 365.25 * 24 * 60 * 60

// Summary is the full battery of account and performance figures. Every
// field is always populated: figures whose inputs are missing or degenerate
// are 0 rather than absent.
//
// Drawdowns keep their sign (a 25% dip is -0.25). Durations and hold times
// are in seconds, with an additional hold time expressed in bars, one bar
// being the median spacing between equity samples.
type Summary struct {
	Trades     int
	RoundTrips int

	InitialCash   float64
	CurrentCash   float64
	CurrentEquity float64
	RealisedPnL   float64
	UnrealisedPnL float64

	MaxDrawdown         float64
	AvgDrawdown         float64
	MaxDrawdownDuration float64
	AvgDrawdownDuration float64
	ExposureTime        float64

	AnnualizedReturn float64
	Sharpe           float64
	Sortino          float64
	Calmar           float64

	WinRate            float64
	LossRate           float64
	ProfitFactor       float64
	AvgWin             float64
	AvgLoss            float64
	Expectancy         float64
	KellyFraction      float64
	KellyHalf          float64
	AvgHoldTimeBars    float64
	AvgHoldTimeSeconds float64
	TradeFrequency     float64
}

// newSummary reduces the trade log, the derived round trips, the equity
// curve and the account figures into the flat metric set. It is a total
// function: empty or degenerate state yields zeros, never an error.
func newSummary(trades []Trade, trips []RoundTrip, curve []EquityPoint, initial, cash, unrealised float64) *Summary {
	s := &Summary{
		Trades:        len(trades),
		RoundTrips:    len(trips),
		InitialCash:   initial,
		CurrentCash:   cash,
		UnrealisedPnL: unrealised,
	}
	for _, trip := range trips {
		s.RealisedPnL += trip.NetPnL
	}
	if len(curve) > 0 {
		s.CurrentEquity = curve[len(curve)-1].Equity
	}

	// Drawdown episodes.
	if eps := drawdowns(curve); len(eps) > 0 {
		var troughs, durations float64
		for _, e := range eps {
			if e.trough < s.MaxDrawdown {
				s.MaxDrawdown = e.trough
			}
			troughs += e.trough
			d := e.duration().Seconds()
			if d > s.MaxDrawdownDuration {
				s.MaxDrawdownDuration = d
			}
			durations += d
		}
		s.AvgDrawdown = troughs / float64(len(eps))
		s.AvgDrawdownDuration = durations / float64(len(eps))
	}

	s.ExposureTime = exposureTime(curve, trades)

	// Per-period returns annualized against the median sample spacing.
	rets := pointReturns(curve)
	spacing := median(sampleSpacings(curve))
	if len(rets) > 0 && spacing > 0 {
		periods := secondsPerYear / spacing
		m := mean(rets)
		s.AnnualizedReturn = math.Pow(1+m, periods) - 1
		if sd := sampleStd(rets); sd > 0 {
			s.Sharpe = m / sd * math.Sqrt(periods)
		}
		var neg []float64
		for _, r := range rets {
			if r < 0 {
				neg = append(neg, r)
			}
		}
		if dd := sampleStd(neg); dd > 0 {
			s.Sortino = m / dd * math.Sqrt(periods)
		}
	}
	if s.MaxDrawdown != 0 {
		s.Calmar = s.AnnualizedReturn / math.Abs(s.MaxDrawdown)
	}

	// Round-trip statistics.
	if n := len(trips); n > 0 {
		var wins, losses int
		var winSum, lossSum, holdSeconds float64
		for _, trip := range trips {
			switch {
			case trip.NetPnL > 0:
				wins++
				winSum += trip.NetPnL
			case trip.NetPnL < 0:
				losses++
				lossSum += trip.NetPnL
			}
			holdSeconds += trip.Hold.Seconds()
		}
		total := float64(n)
		s.WinRate = float64(wins) / total
		s.LossRate = float64(losses) / total
		if lossSum != 0 {
			s.ProfitFactor = winSum / math.Abs(lossSum)
		}
		if wins > 0 {
			s.AvgWin = winSum / float64(wins)
		}
		if losses > 0 {
			s.AvgLoss = lossSum / float64(losses)
		}
		s.Expectancy = s.WinRate*s.AvgWin + s.LossRate*s.AvgLoss
		if s.AvgWin != 0 && s.AvgLoss != 0 {
			payoff := s.AvgWin / math.Abs(s.AvgLoss)
			s.KellyFraction = s.WinRate - (1-s.WinRate)/payoff
			s.KellyHalf = s.KellyFraction / 2
		}
		s.AvgHoldTimeSeconds = holdSeconds / total
		if spacing > 0 {
			s.AvgHoldTimeBars = s.AvgHoldTimeSeconds / spacing
		}
		if len(curve) >= 2 {
			if span := curve[len(curve)-1].Time.Sub(curve[0].Time).Seconds(); span > 0 {
				s.TradeFrequency = total / (span / secondsPerYear)
			}
		}
	}

	return s
}

// exposureTime is the fraction of the curve's wall-clock span during which
// at least one symbol held a nonzero open quantity.
func exposureTime(curve []EquityPoint, trades []Trade) float64 {
	if len(curve) < 2 {
		return 0
	}
	first, last := curve[0].Time, curve[len(curve)-1].Time
	span := last.Sub(first).Seconds()
	if span <= 0 {
		return 0
	}

	stamps, open := positionSpans(trades)
	var covered float64
	for i, at := range stamps {
		if !open[i] {
			continue
		}
		start := at
		if start.Before(first) {
			start = first
		}
		end := last
		if i+1 < len(stamps) && stamps[i+1].Before(last) {
			end = stamps[i+1]
		}
		if end.After(start) {
			covered += end.Sub(start).Seconds()
		}
	}
	return covered / span
}

// pointReturns derives the simple per-period returns between successive
// curve points. A zero previous value yields a zero return.
func pointReturns(curve []EquityPoint) []float64 {
	if len(curve) < 2 {
		return nil
	}
	out := make([]float64, 0, len(curve)-1)
	for i := 1; i < len(curve); i++ {
		prev := curve[i-1].Equity
		if prev == 0 {
			out = append(out, 0)
			continue
		}
		out = append(out, curve[i].Equity/prev-1)
	}
	return out
}

// sampleSpacings returns the elapsed seconds between successive curve
// points.
func sampleSpacings(curve []EquityPoint) []float64 {
	if len(curve) < 2 {
		return nil
	}
	out := make([]float64, 0, len(curve)-1)
	for i := 1; i < len(curve); i++ {
		out = append(out, curve[i].Time.Sub(curve[i-1].Time).Seconds())
	}
	return out
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// sampleStd is the n-1 standard deviation, 0 for fewer than two samples.
func sampleStd(xs []float64) float64 {
	n := len(xs)
	if n < 2 {
		return 0
	}
	m := mean(xs)
	var sum float64
	for _, x := range xs {
		d := x - m
		sum += d * d
	}
	return math.Sqrt(sum / float64(n-1))
}

// median returns the middle value of the samples, averaging the two middle
// ones for an even count, and 0 for none.
func median(xs []float64) float64 {
	n := len(xs)
	if n == 0 {
		return 0
	}
	sorted := make([]float64, n)
	copy(sorted, xs)
	slices.Sort(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}
