package testutil

// DefaultMatchID is used by FixedMatchID when no id is given.
const DefaultMatchID = "test-match-default"

// FixedMatchID hands out the same match id every time, so a scenario run
// twice stores byte-identical event ids.
//
// It satisfies engine.IDGenerator and is safe for concurrent use.
type FixedMatchID struct {
	id string
}

// NewFixedMatchID returns a generator for id, or DefaultMatchID if id is
// empty.
func NewFixedMatchID(id string) *FixedMatchID {
	if id == "" {
		id = DefaultMatchID
	}
	return &FixedMatchID{id: id}
}

// Generate returns the fixed id.
func (g *FixedMatchID) Generate() string {
	return g.id
}
