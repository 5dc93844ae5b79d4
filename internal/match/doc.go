// Package match implements the scricket scoring engine.
//
// A match is an event-sourced state machine. The ordered event log is the
// only source of truth and the live State is a cache of fold(events):
//
//	s := match.New()
//	hint, err := s.Apply(match.Runs{N: 4})
//
// ARCHITECTURE:
//
// Single Writer:
// One event is fully applied (validation, log append, every rule effect)
// before the next is accepted. State is not safe for concurrent use; the
// engine package serializes callers.
//
// Apply Flow:
//  1. Check validates the event against the current state
//  2. The event is appended to the log with its display context
//  3. Rule effects mutate teams, players and the live pointers
//  4. Over and innings completions append Derived entries and return a Hint
//
// A rejected event leaves the state untouched and returns a *RuleError.
//
// Replay:
// Replay builds a fresh State and applies the submitted events in order.
// It uses the same Apply as live scoring, so Replay(s.Events()) deep-equals
// s. Derived entries are regenerated, never read back.
//
// Players are owned by exactly one Team. The State refers to the active
// batters and bowler by roster index, so every role observes the same
// record after a mutation.
package match
