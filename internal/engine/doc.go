// Package engine persists matches and serializes every change to them.
//
// The engine wraps the match rules with durable storage. Each open match
// is a Session holding the live state and a logical clock.
//
// ARCHITECTURE:
//
// Single Writer:
// A Session applies one event at a time under its mutex. The event is
// checked against the rules, written to the store at the next seq, and
// only then applied to the live state. A store failure leaves both the
// log and the state as they were.
//
// Loading:
// Open reads the stored events in seq order, decodes them and replays
// them through match.Replay. There is no snapshot: the log is the match.
//
// Edits:
// Undo and Delete rebuild the state by replay without the removed event,
// then replace the stored log with the rebuilt one in one transaction.
//
// CRITICAL PATTERNS:
//
// Logical Clock:
// Events are stamped with seq from Clock.Next(), starting at 1 per match.
// NEVER use wall-clock timestamps for ordering.
//
// Content-Addressed Events:
// Stored event ids are ir.EventID(match, seq, payload), so a retried write
// of the same event is a no-op.
package engine
