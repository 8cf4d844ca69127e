package tally

import "time"

// episode is a maximal contiguous run of equity points strictly below the
// prior running peak.
type episode struct {
	peak   time.Time // last point at the running max before going under
	end    time.Time // recovery point, or the last underwater point
	trough float64   // most negative drawdown reached
}

func (e episode) duration() time.Duration { return e.end.Sub(e.peak) }

// drawdowns partitions the curve into underwater episodes. The per-point
// drawdown is value/runningMax - 1 while the running max is positive, 0
// otherwise, so a curve that never dips below its peak yields no episodes.
func drawdowns(curve []EquityPoint) []episode {
	var out []episode
	var cur episode
	under := false

	var runMax float64
	var peakAt time.Time
	for i, p := range curve {
		if i == 0 || p.Equity > runMax {
			runMax = p.Equity
		}
		var dd float64
		if runMax > 0 {
			dd = p.Equity/runMax - 1
		}

		if dd < 0 {
			if !under {
				under = true
				cur = episode{peak: peakAt, trough: dd, end: p.Time}
			} else {
				if dd < cur.trough {
					cur.trough = dd
				}
				cur.end = p.Time
			}
			continue
		}

		if under {
			// Back at the running max: the episode recovers here.
			cur.end = p.Time
			out = append(out, cur)
			under = false
		}
		peakAt = p.Time
	}
	if under {
		out = append(out, cur)
	}
	return out
}
