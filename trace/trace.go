// Package trace holds the recorded power series for one session and the
// forward-only cursor the detection engine consumes it through.
package trace

import "time"

// PowerReading is one power sample from the recorded trace. Readings are
// immutable and ordered by time; sample ticks are roughly one second apart
// but only monotonicity is assumed.
type PowerReading struct {
	Time  time.Time
	Power int
}

// Buffer is the unconsumed suffix of one session's power trace. It is a
// cursor over an immutable backing slice: Advance moves the cursor forward
// and discarded readings can never be revisited, which bounds every later
// search to the suffix and keeps already-reported intervals out of reach.
// A Buffer is owned by exactly one detection run.
type Buffer struct {
	readings []PowerReading
	cursor   int
}

// NewBuffer wraps readings in a Buffer. The buffer owns the slice from
// then on.
func NewBuffer(readings []PowerReading) *Buffer {
	return &Buffer{readings: readings}
}

// Len reports the number of unconsumed readings.
func (b *Buffer) Len() int { return len(b.readings) - b.cursor }

// Consumed reports how many readings have been discarded so far.
func (b *Buffer) Consumed() int { return b.cursor }

// ReadingAt returns the i-th unconsumed reading. Out-of-range indexes
// return a zero reading so window code may probe slightly past the end.
func (b *Buffer) ReadingAt(i int) PowerReading {
	if i < 0 || i >= b.Len() {
		return PowerReading{}
	}
	return b.readings[b.cursor+i]
}

// PowerAt returns the power of the i-th unconsumed reading, or 0 when out
// of range.
func (b *Buffer) PowerAt(i int) int { return b.ReadingAt(i).Power }

// TimeAt returns the timestamp of the i-th unconsumed reading, or the zero
// time when out of range.
func (b *Buffer) TimeAt(i int) time.Time { return b.ReadingAt(i).Time }

// Advance discards the first n unconsumed readings. Negative n is a no-op
// and advancing past the end empties the buffer.
func (b *Buffer) Advance(n int) {
	if n <= 0 {
		return
	}
	if n > b.Len() {
		n = b.Len()
	}
	b.cursor += n
}
