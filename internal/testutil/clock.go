package testutil

// StepClock numbers the steps of a scripted run, starting at 1. Rewind
// restarts the numbering so a rerun reports the same step numbers. It is
// not safe for concurrent use.
type StepClock struct {
	n int64
}

// NewStepClock returns a clock that has issued no steps.
func NewStepClock() *StepClock {
	return &StepClock{}
}

// Next issues the next step number.
func (c *StepClock) Next() int64 {
	c.n++
	return c.n
}

// Current is the last issued step, or 0.
func (c *StepClock) Current() int64 {
	return c.n
}

// Rewind forgets every issued step.
func (c *StepClock) Rewind() {
	c.n = 0
}
