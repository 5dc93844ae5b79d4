// Package codec moves match event logs across the persistence boundary.
//
// Every event is first mapped to a Record, a flat wire shape with a type
// tag and only the fields that variant carries. Records are then written
// in one of three formats:
//
//   - Binary: "SCRK" magic, a version byte, then msgpack
//   - Text: a YAML document with a version and an events list
//   - JSON: a single RFC 8785 canonical JSON document
//
// All formats round-trip losslessly. Decoding is all-or-nothing: one bad
// record fails the whole log with a *DecodeError and nothing is returned.
package codec
