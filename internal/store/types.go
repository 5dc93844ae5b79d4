package store

import "github.com/roach88/scricket/internal/ir"

// Match is one row of the matches table.
type Match struct {
	ID              string
	Name            string
	EngineVersion   string
	EncodingVersion string

	// Events is the number of stored events. Filled by reads only.
	Events int
}

// Event is one stored, submitted match event.
type Event struct {
	ID      string
	MatchID string
	Seq     int64
	Kind    string
	Payload ir.IRObject
}
