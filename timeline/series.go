// Package timeline provides a chronological series container keyed by
// time.Time, shared by the price history and the equity curve.
package timeline

import (
	"iter"
	"sort"
	"time"
)

// Series stores a chronological series of values, each associated with an
// instant. Entries are kept sorted by time. Duplicate instants are allowed:
// a new entry is inserted after existing entries with the same instant, so
// the last appended value wins any "as of" resolution.
type Series[T any] struct {
	times  []time.Time
	values []T
}

// Len returns the number of entries in the series.
func (s *Series[T]) Len() int { return len(s.times) }

// Append inserts a value at the given instant, keeping the series sorted.
// Existing entries at the same instant are preserved, the new one lands
// after them.
func (s *Series[T]) Append(at time.Time, v T) *Series[T] {
	i := sort.Search(len(s.times), func(i int) bool { return s.times[i].After(at) })
	s.times = append(s.times, time.Time{})
	s.values = append(s.values, *new(T))
	copy(s.times[i+1:], s.times[i:])
	copy(s.values[i+1:], s.values[i:])
	s.times[i] = at
	s.values[i] = v
	return s
}

// Latest returns the last instant and value in the series, or zero values
// when the series is empty.
func (s *Series[T]) Latest() (at time.Time, value T) {
	last := len(s.times) - 1
	if last < 0 {
		return time.Time{}, *new(T)
	}
	return s.times[last], s.values[last]
}

// At returns the i-th entry in chronological order.
func (s *Series[T]) At(i int) (time.Time, T) { return s.times[i], s.values[i] }

// AsOf returns the value recorded at the given instant, or the most recent
// value before it. When several entries share that instant, the last
// appended one is returned. It reports false when no entry exists at or
// before the instant.
func (s *Series[T]) AsOf(at time.Time) (T, bool) {
	// First index strictly after 'at'; the answer sits just before it.
	i := sort.Search(len(s.times), func(i int) bool { return s.times[i].After(at) })
	if i == 0 {
		var zero T
		return zero, false
	}
	return s.values[i-1], true
}

// Values returns an iterator over all time/value pairs in chronological
// order.
func (s *Series[T]) Values() iter.Seq2[time.Time, T] {
	return func(yield func(time.Time, T) bool) {
		for i, at := range s.times {
			if !yield(at, s.values[i]) {
				return
			}
		}
	}
}

// Times returns a copy of the instants in the series, in order.
func (s *Series[T]) Times() []time.Time {
	out := make([]time.Time, len(s.times))
	copy(out, s.times)
	return out
}
