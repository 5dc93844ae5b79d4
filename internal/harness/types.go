package harness

import "github.com/roach88/scricket/internal/scorecard"

// TraceEvent records what happened to one scenario step.
type TraceEvent struct {
	Step     int64  `json:"step"`
	Type     string `json:"type"`
	Seq      int64  `json:"seq,omitempty"`
	Hint     string `json:"hint,omitempty"`
	Rejected string `json:"rejected,omitempty"`
}

// Result is the outcome of a scenario run.
type Result struct {
	// Pass is true when every step behaved as declared and every
	// assertion held.
	Pass bool `json:"pass"`

	Trace  []TraceEvent `json:"trace"`
	Errors []string     `json:"errors,omitempty"`

	// Digest is the canonical digest of the submitted log.
	Digest string `json:"digest"`

	Card scorecard.Card `json:"card"`
}

// NewResult creates a passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Trace:  []TraceEvent{},
		Errors: []string{},
	}
}

// AddError records a failure and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// hintAt returns the hint of the step numbered step.
func (r *Result) hintAt(step int64) (string, bool) {
	for _, ev := range r.Trace {
		if ev.Step == step {
			return ev.Hint, ev.Rejected == ""
		}
	}
	return "", false
}
