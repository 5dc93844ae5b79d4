// Package ir provides the canonical value representation used to fingerprint
// match event logs.
//
// Every stored event is converted to an IRObject, serialized with
// MarshalCanonical and hashed with a domain-separated SHA-256. Two logs that
// replay to the same match produce the same digest, so the digest is what
// the engine and CLI compare when verifying replay determinism.
//
// Key design constraints:
//   - NO float types anywhere - counts and indices are int64
//   - All object keys use snake_case
//   - Ordering comes from logical sequence numbers, never wall-clock time
//
// ir imports nothing internal.
package ir
