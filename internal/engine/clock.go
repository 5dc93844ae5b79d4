package engine

import "sync/atomic"

// Clock hands out the seq numbers stored with a match's events. Seqs
// start at 1 and have no gaps, so a log's last seq is also its length.
// Wall time never orders events.
type Clock struct {
	last atomic.Int64
}

// NewClockAt returns a clock whose last issued seq is last. A fresh match
// starts at 0; a loaded one resumes after its last stored event.
func NewClockAt(last int64) *Clock {
	c := &Clock{}
	c.last.Store(last)
	return c
}

// Next issues the next seq.
func (c *Clock) Next() int64 {
	return c.last.Add(1)
}

// Current is the last issued seq, or 0.
func (c *Clock) Current() int64 {
	return c.last.Load()
}

// Reset rewinds the clock after the log was rewritten to last events.
func (c *Clock) Reset(last int64) {
	c.last.Store(last)
}
