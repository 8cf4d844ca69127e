// Package renderer turns tracker state into markdown reports. Every report
// is a plain string built with fmt on a strings.Builder, so the caller can
// print it raw, pipe it through a terminal renderer, or drop it in a file.
package renderer

import (
	"strconv"
	"time"
)

// stamp is the timestamp layout used in report cells.
const stamp = "2006-01-02 15:04"

// qty formats share counts without trailing zeros.
func qty(x float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64)
}

// hold formats a holding period, dropping sub-second noise.
func hold(d time.Duration) string {
	return d.Round(time.Second).String()
}

// seconds converts a metric expressed in seconds into a duration.
func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
