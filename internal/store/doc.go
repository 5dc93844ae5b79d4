// Package store provides SQLite-backed durable storage for match event logs.
//
// The store holds two tables:
//   - matches: one row per match with the versions that wrote it
//   - events: the submitted events of each match, in order
//
// Derived events are never stored. Loading a match replays the stored
// events through the rules, which regenerate them.
//
// # Ordering
//
// Events are ordered by seq, a per-match logical sequence number starting
// at 1. Wall-clock time is never stored or used for ordering. UNIQUE
// (match_id, seq) rejects two writers claiming the same slot.
//
// # Identity
//
// Event ids are content-addressed (see ir.EventID), so writing the same
// event at the same position twice is a no-op.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
package store
